package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"MetingHub/core/normalize"
	"MetingHub/logger"
	"MetingHub/model"

	"github.com/tidwall/gjson"
)

// MatchResult 解锁匹配结果
type MatchResult struct {
	URL     string `json:"url"`
	Size    int64  `json:"size"`
	Bitrate string `json:"br"`
	Source  string `json:"source"`
	Title   string `json:"name"`
	Artist  string `json:"artist"`
	Album   string `json:"album"`
	Lyric   string `json:"lyric"`
}

// Matcher 根据网易云歌曲 ID 在其它音源中查找可播放版本
type Matcher interface {
	Match(ctx context.Context, id string, sources []string, cookie string) (*MatchResult, error)
}

// MatcherFunc 让普通函数实现 Matcher
type MatcherFunc func(ctx context.Context, id string, sources []string, cookie string) (*MatchResult, error)

func (f MatcherFunc) Match(ctx context.Context, id string, sources []string, cookie string) (*MatchResult, error) {
	return f(ctx, id, sources, cookie)
}

// HTTPMatcher 调用独立部署的解锁服务：GET {base}/match?id=..&server=kuwo,migu
type HTTPMatcher struct {
	client *Client
}

// NewHTTPMatcher 创建 HTTP 解锁匹配器
func NewHTTPMatcher(baseURL string, timeout time.Duration) *HTTPMatcher {
	return &HTTPMatcher{client: NewClient("unlock", baseURL, timeout)}
}

// Client 返回底层 HTTP 客户端
func (h *HTTPMatcher) Client() *Client {
	return h.client
}

func (h *HTTPMatcher) Match(ctx context.Context, id string, sources []string, cookie string) (*MatchResult, error) {
	params := url.Values{}
	params.Set("id", id)
	if len(sources) > 0 {
		params.Set("server", strings.Join(sources, ","))
	}
	var header http.Header
	if cookie != "" {
		header = http.Header{}
		header.Set("Cookie", "MUSIC_U="+cookie)
	}

	res, err := h.client.Get(ctx, "match", "/match", params, header)
	if err != nil {
		return nil, err
	}
	if code := res.Get("code"); code.Exists() && code.Int() != 200 {
		return nil, &Failure{Kind: KindUpstream, Provider: "unlock", Op: "match", Err: fmt.Errorf("code=%d %s", code.Int(), res.Get("message").String())}
	}
	data := res.Get("data")
	if !data.IsObject() {
		data = res
	}
	return &MatchResult{
		URL:     data.Get("url").String(),
		Size:    data.Get("size").Int(),
		Bitrate: data.Get("br").String(),
		Source:  data.Get("source").String(),
		Title:   data.Get("name").String(),
		Artist:  data.Get("artist").String(),
		Album:   data.Get("album").String(),
		Lyric:   data.Get("lyric").String(),
	}, nil
}

// Unlock 把 Matcher 包装成上游，只能处理网易云歌曲 ID
type Unlock struct {
	unsupported
	matcher Matcher
	sources []string
	cookie  string
}

// NewUnlock 创建解锁上游，matcher 为 nil 时不参与任何操作
func NewUnlock(matcher Matcher, sources []string, cookie string) *Unlock {
	return &Unlock{matcher: matcher, sources: sources, cookie: cookie}
}

func (u *Unlock) Name() string {
	return "unlock"
}

func (u *Unlock) Supports(op model.Operation, server string) bool {
	if u.matcher == nil || (server != "netease" && server != "pyncmd") {
		return false
	}
	switch op {
	case model.OpInfo, model.OpMediaURL, model.OpLyric:
		return true
	}
	return false
}

func (u *Unlock) Fields(server string) normalize.TrackFields {
	return normalize.UnlockTrackFields
}

func (u *Unlock) match(ctx context.Context, op model.Operation, id string) (*MatchResult, error) {
	if u.matcher == nil {
		return nil, ErrUnsupported
	}
	logger.Debug("[UnlockProvider] 匹配音源",
		logger.String("op", string(op)),
		logger.String("id", id),
		logger.Strings("sources", u.sources))

	res, err := u.matcher.Match(ctx, id, u.sources, u.cookie)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, &Failure{Kind: KindUpstream, Provider: u.Name(), Op: string(op), Err: ErrNotFound}
	}
	return res, nil
}

// Song 解锁服务只返回少量元数据，转换为 JSON 后交给归一化层
func (u *Unlock) Song(ctx context.Context, server, id string) (gjson.Result, error) {
	res, err := u.match(ctx, model.OpInfo, id)
	if err != nil {
		return gjson.Result{}, err
	}
	if res.Title == "" {
		return gjson.Result{}, &Failure{Kind: KindMalformed, Provider: u.Name(), Op: string(model.OpInfo), Err: ErrNotFound}
	}
	raw, err := json.Marshal(struct {
		ID string `json:"id"`
		*MatchResult
	}{ID: id, MatchResult: res})
	if err != nil {
		return gjson.Result{}, err
	}
	return gjson.ParseBytes(raw), nil
}

func (u *Unlock) URL(ctx context.Context, server, id, bitrate string) (Media, error) {
	res, err := u.match(ctx, model.OpMediaURL, id)
	if err != nil {
		return Media{}, err
	}
	return Media{URL: stripQuery(res.URL), Size: res.Size, Bitrate: res.Bitrate}, nil
}

func (u *Unlock) Lyric(ctx context.Context, server, id string) (Lyrics, error) {
	res, err := u.match(ctx, model.OpLyric, id)
	if err != nil {
		return Lyrics{}, err
	}
	return Lyrics{Lyric: res.Lyric}, nil
}
