package upstream

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// FailureKind 上游失败分类
type FailureKind string

const (
	KindTransport FailureKind = "transport" // 超时、DNS、连接被拒
	KindUpstream  FailureKind = "upstream"  // 非 2xx、success=false
	KindMalformed FailureKind = "malformed" // 响应不是 JSON 或缺少必需字段
	KindInput     FailureKind = "input"     // 调用方参数错误
)

var (
	ErrNotFound    = errors.New("未找到结果")
	ErrUnsupported = errors.New("上游不支持该操作")
	ErrMalformed   = errors.New("响应格式错误")
	ErrNoRoute     = errors.New("没有可用的上游")
)

// Failure 描述一次上游调用失败
type Failure struct {
	Kind     FailureKind
	Provider string
	Op       string
	URL      string
	Err      error
}

func (f *Failure) Error() string {
	if f.URL != "" {
		return fmt.Sprintf("%s %s (%s) %s: %v", f.Provider, f.Op, f.Kind, f.URL, f.Err)
	}
	return fmt.Sprintf("%s %s (%s): %v", f.Provider, f.Op, f.Kind, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// KindOf returns the failure kind carried by err, or "" when err is not a *Failure.
func KindOf(err error) FailureKind {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}
	return ""
}

// IsTransport reports whether err came from the network rather than the upstream's answer.
func IsTransport(err error) bool {
	if err == nil {
		return false
	}
	if KindOf(err) == KindTransport {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}
