package upstream

import (
	"context"
	"strings"

	"MetingHub/core/normalize"
	"MetingHub/model"

	"github.com/tidwall/gjson"
)

// Provider 上游音乐数据接口
// 返回值是原始 JSON，字段归一化交给 core/normalize
type Provider interface {
	// Name 上游标识，如 "meting"
	Name() string

	// Supports 是否能在指定平台上执行该操作
	Supports(op model.Operation, server string) bool

	// Fields 该上游在指定平台上单曲条目使用的字段别名表
	Fields(server string) normalize.TrackFields

	// Search 返回第 page 页（从 1 开始）的原始条目，最多 limit 条
	Search(ctx context.Context, server, keyword string, page, limit int) ([]gjson.Result, error)

	Song(ctx context.Context, server, id string) (gjson.Result, error)

	URL(ctx context.Context, server, id, bitrate string) (Media, error)

	Lyric(ctx context.Context, server, id string) (Lyrics, error)

	// Picture 把封面 ID 解析成图片地址
	Picture(ctx context.Context, server, picID string, size int) (string, error)

	Playlist(ctx context.Context, server, id string) (gjson.Result, error)
	Album(ctx context.Context, server, id string) (gjson.Result, error)
	Artist(ctx context.Context, server, id string) (gjson.Result, error)
}

// Media 上游返回的播放地址
type Media struct {
	URL     string
	Size    int64
	Bitrate string
}

// Lyrics 原文歌词与翻译歌词
type Lyrics struct {
	Lyric       string
	Translation string
}

// stripQuery 去掉地址中的查询参数
func stripQuery(raw string) string {
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		return raw[:i]
	}
	return raw
}

// unsupported 为只实现部分操作的上游提供默认实现
type unsupported struct{}

func (unsupported) Search(context.Context, string, string, int, int) ([]gjson.Result, error) {
	return nil, ErrUnsupported
}

func (unsupported) Song(context.Context, string, string) (gjson.Result, error) {
	return gjson.Result{}, ErrUnsupported
}

func (unsupported) URL(context.Context, string, string, string) (Media, error) {
	return Media{}, ErrUnsupported
}

func (unsupported) Lyric(context.Context, string, string) (Lyrics, error) {
	return Lyrics{}, ErrUnsupported
}

func (unsupported) Picture(context.Context, string, string, int) (string, error) {
	return "", ErrUnsupported
}

func (unsupported) Playlist(context.Context, string, string) (gjson.Result, error) {
	return gjson.Result{}, ErrUnsupported
}

func (unsupported) Album(context.Context, string, string) (gjson.Result, error) {
	return gjson.Result{}, ErrUnsupported
}

func (unsupported) Artist(context.Context, string, string) (gjson.Result, error) {
	return gjson.Result{}, ErrUnsupported
}

// Registry 上游注册表，按注册顺序参与回退
type Registry struct {
	providers map[string]Provider
	order     []string
}

// NewRegistry 创建注册表
func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[string]Provider)}
	for _, p := range providers {
		r.Register(p)
	}
	return r
}

// Register 注册上游，同名上游会被替换但保留原有位置
func (r *Registry) Register(p Provider) {
	if p == nil {
		return
	}
	name := p.Name()
	if _, exists := r.providers[name]; !exists {
		r.order = append(r.order, name)
	}
	r.providers[name] = p
}

// Get 获取指定名称的上游
func (r *Registry) Get(name string) Provider {
	return r.providers[name]
}

// Ordered 按注册顺序返回全部上游
func (r *Registry) Ordered() []Provider {
	out := make([]Provider, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.providers[name])
	}
	return out
}
