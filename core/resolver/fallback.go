package resolver

import (
	"context"
	"errors"
	"fmt"

	"MetingHub/core/upstream"
	"MetingHub/logger"
)

// ErrExhausted 所有路由都失败
var ErrExhausted = errors.New("所有上游均失败")

// Attempt 一次失败的尝试
type Attempt struct {
	Route Route
	Err   error
}

// Outcome 回退链的结果：要么有值和命中的路由，要么只有失败记录
type Outcome[T any] struct {
	Value    T
	Route    Route
	Attempts []Attempt
	ok       bool
}

// OK reports whether some route produced a usable value.
func (o Outcome[T]) OK() bool {
	return o.ok
}

// Err summarises every failed attempt, or returns nil on success.
func (o Outcome[T]) Err() error {
	if o.ok {
		return nil
	}
	if len(o.Attempts) == 0 {
		return ErrExhausted
	}
	errs := make([]error, 0, len(o.Attempts)+1)
	errs = append(errs, ErrExhausted)
	for _, a := range o.Attempts {
		errs = append(errs, fmt.Errorf("%s: %w", a.Route, a.Err))
	}
	return errors.Join(errs...)
}

// Run 严格按顺序尝试，第一个成功的结果胜出
// try 返回 error 即视为该路由失败；ctx 取消后不再尝试后续路由
func Run[T any](ctx context.Context, routes []Route, try func(ctx context.Context, route Route) (T, error)) Outcome[T] {
	var out Outcome[T]
	for _, route := range routes {
		if err := ctx.Err(); err != nil {
			out.Attempts = append(out.Attempts, Attempt{Route: route, Err: err})
			break
		}
		value, err := try(ctx, route)
		if err != nil {
			logger.Debug("[Resolver] 路由失败，尝试下一个",
				logger.String("route", route.String()),
				logger.String("kind", string(upstream.KindOf(err))),
				logger.Bool("transport", upstream.IsTransport(err)),
				logger.ErrorField(err))
			out.Attempts = append(out.Attempts, Attempt{Route: route, Err: err})
			continue
		}
		out.Value = value
		out.Route = route
		out.ok = true
		return out
	}
	return out
}
