package upstream

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"time"

	"MetingHub/config"
	"MetingHub/core/normalize"
	"MetingHub/logger"
	"MetingHub/model"

	"github.com/tidwall/gjson"
)

// Meting Meting 风格的 REST 聚合接口
// 路径形如 {base}/song/{id}?server=netease，响应外层为 {success, data, error}
type Meting struct {
	client *Client
}

// NewMeting 创建 Meting 上游
func NewMeting(baseURL string, timeout time.Duration) *Meting {
	return &Meting{client: NewClient("meting", baseURL, timeout)}
}

// Client 返回底层 HTTP 客户端
func (m *Meting) Client() *Client {
	return m.client
}

func (m *Meting) Name() string {
	return "meting"
}

func (m *Meting) Supports(op model.Operation, server string) bool {
	return config.ValidServer(server)
}

func (m *Meting) Fields(server string) normalize.TrackFields {
	return normalize.MetingTrackFields
}

// Search Meting 没有分页参数，按 page*limit 取回后在本地切片
func (m *Meting) Search(ctx context.Context, server, keyword string, page, limit int) ([]gjson.Result, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	// page*limit 溢出时不可能还有数据
	if page > math.MaxInt/limit {
		return nil, nil
	}
	params := url.Values{}
	params.Set("q", keyword)
	params.Set("server", server)
	params.Set("limit", strconv.Itoa(page*limit))

	logger.Info("[MetingProvider] 搜索歌曲",
		logger.String("keyword", keyword),
		logger.String("server", server),
		logger.Int("page", page))

	res, err := m.client.GetJSON(ctx, string(model.OpSearch), "/search", params)
	if err != nil {
		return nil, err
	}
	data, err := m.unwrap(string(model.OpSearch), res)
	if err != nil {
		return nil, err
	}

	items := listOf(data)
	offset := (page - 1) * limit
	if offset >= len(items) {
		return nil, nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end], nil
}

func (m *Meting) Song(ctx context.Context, server, id string) (gjson.Result, error) {
	return m.object(ctx, model.OpInfo, "/song/", server, id, nil)
}

func (m *Meting) URL(ctx context.Context, server, id, bitrate string) (Media, error) {
	extra := url.Values{}
	extra.Set("bitrate", bitrate)
	data, err := m.object(ctx, model.OpMediaURL, "/url/", server, id, extra)
	if err != nil {
		return Media{}, err
	}
	return Media{
		URL:     data.Get("url").String(),
		Size:    data.Get("size").Int(),
		Bitrate: data.Get("br").String(),
	}, nil
}

func (m *Meting) Lyric(ctx context.Context, server, id string) (Lyrics, error) {
	data, err := m.object(ctx, model.OpLyric, "/lyric/", server, id, nil)
	if err != nil {
		return Lyrics{}, err
	}
	return Lyrics{
		Lyric:       firstString(data, "lyric", "lrc"),
		Translation: firstString(data, "tlyric", "translation", "tlrc"),
	}, nil
}

func (m *Meting) Picture(ctx context.Context, server, picID string, size int) (string, error) {
	params := url.Values{}
	params.Set("server", server)
	params.Set("size", strconv.Itoa(size))

	res, err := m.client.GetJSON(ctx, string(model.OpPicture), "/picture/"+url.PathEscape(picID), params)
	if err != nil {
		return "", err
	}
	data, err := m.unwrap(string(model.OpPicture), res)
	if err != nil {
		return "", err
	}
	if data.Type == gjson.String {
		return data.String(), nil
	}
	if u := firstString(data, "url", "pic"); u != "" {
		return u, nil
	}
	return "", &Failure{Kind: KindMalformed, Provider: m.Name(), Op: string(model.OpPicture), Err: ErrNotFound}
}

func (m *Meting) Playlist(ctx context.Context, server, id string) (gjson.Result, error) {
	return m.object(ctx, model.OpPlaylist, "/playlist/", server, id, nil)
}

func (m *Meting) Album(ctx context.Context, server, id string) (gjson.Result, error) {
	return m.object(ctx, model.OpAlbum, "/album/", server, id, nil)
}

func (m *Meting) Artist(ctx context.Context, server, id string) (gjson.Result, error) {
	return m.object(ctx, model.OpArtist, "/artist/", server, id, nil)
}

// object 请求 {prefix}{id} 并返回单个对象
func (m *Meting) object(ctx context.Context, op model.Operation, prefix, server, id string, extra url.Values) (gjson.Result, error) {
	params := url.Values{}
	params.Set("server", server)
	for k, vs := range extra {
		for _, v := range vs {
			params.Add(k, v)
		}
	}

	res, err := m.client.GetJSON(ctx, string(op), prefix+url.PathEscape(id), params)
	if err != nil {
		return gjson.Result{}, err
	}
	data, err := m.unwrap(string(op), res)
	if err != nil {
		return gjson.Result{}, err
	}
	if data.IsArray() {
		data = data.Get("0")
	}
	if !data.IsObject() {
		return gjson.Result{}, &Failure{Kind: KindMalformed, Provider: m.Name(), Op: string(op), Err: ErrNotFound}
	}
	return data, nil
}

// unwrap 拆开 {success, data, error} 外层；没有 success 字段时整个响应就是数据
func (m *Meting) unwrap(op string, res gjson.Result) (gjson.Result, error) {
	success := res.Get("success")
	if !success.Exists() {
		return res, nil
	}
	if !success.Bool() {
		msg := res.Get("error").String()
		if msg == "" {
			msg = "success=false"
		}
		return gjson.Result{}, &Failure{Kind: KindUpstream, Provider: m.Name(), Op: op, Err: fmt.Errorf("上游返回错误: %s", msg)}
	}
	return res.Get("data"), nil
}

// listOf 接受 {results:[...]}、数组或单个对象
func listOf(data gjson.Result) []gjson.Result {
	if results := data.Get("results"); results.IsArray() {
		return results.Array()
	}
	if data.IsArray() {
		return data.Array()
	}
	if data.IsObject() && len(data.Map()) > 0 {
		return []gjson.Result{data}
	}
	return nil
}

func firstString(obj gjson.Result, keys ...string) string {
	for _, key := range keys {
		v := obj.Get(normalize.EscapeKey(key))
		if v.Type == gjson.String && v.Str != "" {
			return v.Str
		}
		// 网易云格式：{"lrc": {"lyric": "..."}}
		if v.IsObject() {
			if inner := v.Get("lyric"); inner.Type == gjson.String && inner.Str != "" {
				return inner.Str
			}
		}
	}
	return ""
}
