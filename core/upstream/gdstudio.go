package upstream

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"MetingHub/core/normalize"
	"MetingHub/logger"
	"MetingHub/model"

	"github.com/tidwall/gjson"
)

var gdstudioServers = map[string]bool{
	"netease": true,
	"tencent": true,
	"kugou":   true,
	"kuwo":    true,
}

// GDStudio GD 音乐台接口，所有操作共用一个地址，通过 types 参数区分
// 只提供搜索、播放地址、歌词和封面
type GDStudio struct {
	unsupported
	client *Client
}

// NewGDStudio 创建 GDStudio 上游
func NewGDStudio(baseURL string, timeout time.Duration) *GDStudio {
	return &GDStudio{client: NewClient("gdstudio", baseURL, timeout)}
}

// Client 返回底层 HTTP 客户端
func (g *GDStudio) Client() *Client {
	return g.client
}

func (g *GDStudio) Name() string {
	return "gdstudio"
}

func (g *GDStudio) Supports(op model.Operation, server string) bool {
	if !gdstudioServers[server] {
		return false
	}
	switch op {
	case model.OpSearch, model.OpMediaURL, model.OpLyric, model.OpPicture:
		return true
	}
	return false
}

// Fields 酷我搜索结果直接透传酷我原始字段
func (g *GDStudio) Fields(server string) normalize.TrackFields {
	if server == "kuwo" {
		return normalize.KuwoTrackFields
	}
	return normalize.GDStudioTrackFields
}

func (g *GDStudio) Search(ctx context.Context, server, keyword string, page, limit int) ([]gjson.Result, error) {
	if page < 1 {
		page = 1
	}
	params := url.Values{}
	params.Set("types", "search")
	params.Set("source", server)
	params.Set("name", keyword)
	params.Set("count", strconv.Itoa(limit))
	params.Set("pages", strconv.Itoa(page))

	logger.Info("[GDStudioProvider] 搜索歌曲",
		logger.String("keyword", keyword),
		logger.String("server", server),
		logger.Int("page", page))

	res, err := g.client.GetJSON(ctx, string(model.OpSearch), "", params)
	if err != nil {
		return nil, err
	}
	switch {
	case res.IsArray():
		return res.Array(), nil
	case res.Get("data").IsArray():
		return res.Get("data").Array(), nil
	}
	return nil, &Failure{Kind: KindMalformed, Provider: g.Name(), Op: string(model.OpSearch), Err: ErrMalformed}
}

func (g *GDStudio) URL(ctx context.Context, server, id, bitrate string) (Media, error) {
	params := url.Values{}
	params.Set("types", "url")
	params.Set("source", server)
	params.Set("id", id)
	params.Set("br", bitrate)

	res, err := g.client.GetJSON(ctx, string(model.OpMediaURL), "", params)
	if err != nil {
		return Media{}, err
	}
	return Media{
		URL:     stripQuery(res.Get("url").String()),
		Size:    res.Get("size").Int(),
		Bitrate: res.Get("br").String(),
	}, nil
}

func (g *GDStudio) Lyric(ctx context.Context, server, id string) (Lyrics, error) {
	params := url.Values{}
	params.Set("types", "lyric")
	params.Set("source", server)
	params.Set("id", id)

	res, err := g.client.GetJSON(ctx, string(model.OpLyric), "", params)
	if err != nil {
		return Lyrics{}, err
	}
	return Lyrics{
		Lyric:       firstString(res, "lyric", "lrc"),
		Translation: firstString(res, "tlyric", "translation"),
	}, nil
}

func (g *GDStudio) Picture(ctx context.Context, server, picID string, size int) (string, error) {
	params := url.Values{}
	params.Set("types", "pic")
	params.Set("source", server)
	params.Set("id", picID)
	params.Set("size", strconv.Itoa(size))

	res, err := g.client.GetJSON(ctx, string(model.OpPicture), "", params)
	if err != nil {
		return "", err
	}
	if u := res.Get("url").String(); u != "" {
		return u, nil
	}
	return "", &Failure{Kind: KindMalformed, Provider: g.Name(), Op: string(model.OpPicture), Err: ErrNotFound}
}
