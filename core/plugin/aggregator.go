package plugin

import (
	"context"
	"math"
	"strings"

	"MetingHub/config"
	"MetingHub/core/normalize"
	"MetingHub/core/resolver"
	"MetingHub/core/upstream"
	"MetingHub/logger"
	"MetingHub/model"
)

const (
	pictureSize    = 400
	albumPageSize  = 50
	artistPageSize = 30
)

// Aggregator 聚合多个上游，按回退顺序返回第一个可用结果
type Aggregator struct {
	cfg      *config.Config
	registry *upstream.Registry
	resolver *resolver.Resolver
}

// New 使用给定的配置快照和上游注册表创建聚合器
func New(cfg *config.Config, registry *upstream.Registry) *Aggregator {
	if cfg == nil {
		cfg = config.Default()
	}
	if cfg.PageSize < 1 {
		c := *cfg
		c.PageSize = config.DefaultPageSize
		cfg = &c
	}
	providers := registry.Ordered()
	caps := make([]resolver.Capability, 0, len(providers))
	for _, p := range providers {
		caps = append(caps, p)
	}
	return &Aggregator{
		cfg:      cfg,
		registry: registry,
		resolver: resolver.New(cfg.PreferredServer, cfg.FallbackServers, caps...),
	}
}

// NewFromConfig 按配置注册 Meting、GDStudio 和（可选的）解锁上游
func NewFromConfig(cfg *config.Config) *Aggregator {
	if cfg == nil {
		cfg = config.Default()
	}
	registry := upstream.NewRegistry(
		upstream.NewMeting(cfg.MetingAPIURL, cfg.HTTPTimeout),
		upstream.NewGDStudio(cfg.GDStudioAPIURL, cfg.HTTPTimeout),
	)
	var matcher upstream.Matcher
	if cfg.UnlockAPIURL != "" {
		matcher = upstream.NewHTTPMatcher(cfg.UnlockAPIURL, cfg.HTTPTimeout)
	}
	registry.Register(upstream.NewUnlock(matcher, cfg.UnlockSources, cfg.Cookie))
	return New(cfg, registry)
}

// Config returns the configuration snapshot in use.
func (a *Aggregator) Config() *config.Config {
	return a.cfg
}

func (a *Aggregator) provider(route resolver.Route) (upstream.Provider, error) {
	p := a.registry.Get(route.Provider)
	if p == nil {
		return nil, upstream.ErrNoRoute
	}
	return p, nil
}

func malformed(p upstream.Provider, op model.Operation) error {
	return &upstream.Failure{Kind: upstream.KindMalformed, Provider: p.Name(), Op: string(op), Err: upstream.ErrNotFound}
}

func warnExhausted(op model.Operation, key string, err error) {
	logger.Warn("[Aggregator] 所有上游均失败",
		logger.String("op", string(op)),
		logger.String("key", key),
		logger.ErrorField(err))
}

type searchPage struct {
	tracks []model.Track
	raw    int
}

// Search 搜索歌曲
func (a *Aggregator) Search(ctx context.Context, query string, page int, searchType string) model.SearchResult {
	empty := model.SearchResult{IsEnd: true, Data: []model.Track{}}
	if searchType != "" && searchType != "music" {
		return empty
	}
	query = strings.TrimSpace(query)
	if query == "" {
		empty.Error = "请提供搜索关键词"
		return empty
	}
	if page < 1 {
		page = 1
	}
	size := a.cfg.PageSize

	out := resolver.Run(ctx, a.resolver.Plan(model.OpSearch, ""), func(ctx context.Context, route resolver.Route) (searchPage, error) {
		p, err := a.provider(route)
		if err != nil {
			return searchPage{}, err
		}
		items, err := p.Search(ctx, route.Server, query, page, size)
		if err != nil {
			return searchPage{}, err
		}
		// 空页说明列表已经结束，不换平台续翻
		if len(items) == 0 {
			return searchPage{tracks: []model.Track{}}, nil
		}
		tracks := normalize.NormalizeTracks(items, route.Server, p.Fields(route.Server))
		if len(tracks) == 0 {
			return searchPage{}, malformed(p, model.OpSearch)
		}
		return searchPage{tracks: tracks, raw: len(items)}, nil
	})
	if !out.OK() {
		warnExhausted(model.OpSearch, query, out.Err())
		empty.Error = "未找到相关歌曲"
		return empty
	}

	logger.Info("[Aggregator] 搜索完成",
		logger.String("query", query),
		logger.String("route", out.Route.String()),
		logger.Int("count", len(out.Value.tracks)))
	return model.SearchResult{
		IsEnd: out.Value.raw < size,
		Data:  out.Value.tracks,
	}
}

func placeholderTrack(track model.Track, title string) model.Track {
	return model.PlaceholderTrack(track.ID, track.Source, track.LyricID, title)
}

// GetTrackInfo 获取歌曲详情
func (a *Aggregator) GetTrackInfo(ctx context.Context, track model.Track) model.Track {
	id := strings.TrimSpace(track.ID)
	if id == "" {
		return placeholderTrack(track, "Error: Track ID missing")
	}

	out := resolver.Run(ctx, a.resolver.Plan(model.OpInfo, track.Source), func(ctx context.Context, route resolver.Route) (model.Track, error) {
		p, err := a.provider(route)
		if err != nil {
			return model.Track{}, err
		}
		raw, err := p.Song(ctx, route.Server, id)
		if err != nil {
			return model.Track{}, err
		}
		t, ok := normalize.NormalizeTrack(raw, route.Server, p.Fields(route.Server))
		if !ok {
			return model.Track{}, malformed(p, model.OpInfo)
		}
		if t.Artwork == "" && t.PicID != "" {
			t.Artwork = a.resolvePicture(ctx, p, route.Server, t.PicID)
			if t.Artwork != "" {
				t.PicID = ""
			}
		}
		return t, nil
	})
	if !out.OK() {
		warnExhausted(model.OpInfo, id, out.Err())
		track.ID = id
		return placeholderTrack(track, "Track (ID: "+id+")")
	}
	return out.Value
}

// resolvePicture 封面 ID 换成地址，失败时返回空字符串
func (a *Aggregator) resolvePicture(ctx context.Context, p upstream.Provider, server, picID string) string {
	if !p.Supports(model.OpPicture, server) {
		return ""
	}
	pic, err := p.Picture(ctx, server, picID, pictureSize)
	if err != nil || !normalize.IsURL(pic) {
		logger.Debug("[Aggregator] 封面解析失败",
			logger.String("provider", p.Name()),
			logger.String("picId", picID),
			logger.ErrorField(err))
		return ""
	}
	return pic
}

// GetPlayableURL 获取播放地址
func (a *Aggregator) GetPlayableURL(ctx context.Context, track model.Track, quality model.Quality) model.MediaSource {
	q := model.ParseQuality(string(quality))
	id := strings.TrimSpace(track.ID)
	if id == "" {
		return model.MediaSource{Quality: q, Error: "缺少歌曲 ID"}
	}

	out := resolver.Run(ctx, a.resolver.Plan(model.OpMediaURL, track.Source), func(ctx context.Context, route resolver.Route) (model.MediaSource, error) {
		p, err := a.provider(route)
		if err != nil {
			return model.MediaSource{}, err
		}
		br := resolver.BitrateFor(route.Server, q)
		media, err := p.URL(ctx, route.Server, id, br)
		if err != nil {
			return model.MediaSource{}, err
		}
		if !normalize.IsURL(media.URL) {
			return model.MediaSource{}, malformed(p, model.OpMediaURL)
		}
		bitrate := media.Bitrate
		if bitrate == "" {
			bitrate = br
		}
		return model.MediaSource{
			URL:     media.URL,
			Size:    media.Size,
			Quality: q,
			Bitrate: bitrate,
			Source:  route.Server,
		}, nil
	})
	if !out.OK() {
		warnExhausted(model.OpMediaURL, id, out.Err())
		return model.MediaSource{Quality: q, Error: "无法获取播放地址"}
	}

	media := out.Value
	media.URL = ApplyProxy(media.URL, a.cfg.ProxyURL)
	logger.Info("[Aggregator] 获取播放地址",
		logger.String("id", id),
		logger.String("route", out.Route.String()),
		logger.String("quality", string(q)),
		logger.Int64("size", media.Size))
	return media
}

// GetLyrics 获取歌词
func (a *Aggregator) GetLyrics(ctx context.Context, track model.Track) model.Lyric {
	id := strings.TrimSpace(track.LyricKey())
	if id == "" {
		return model.Lyric{Error: "缺少歌曲 ID"}
	}

	out := resolver.Run(ctx, a.resolver.Plan(model.OpLyric, track.Source), func(ctx context.Context, route resolver.Route) (upstream.Lyrics, error) {
		p, err := a.provider(route)
		if err != nil {
			return upstream.Lyrics{}, err
		}
		l, err := p.Lyric(ctx, route.Server, id)
		if err != nil {
			return upstream.Lyrics{}, err
		}
		if l.Lyric == "" && l.Translation == "" {
			return upstream.Lyrics{}, malformed(p, model.OpLyric)
		}
		return l, nil
	})
	if !out.OK() {
		warnExhausted(model.OpLyric, id, out.Err())
		return model.Lyric{Error: "未找到歌词"}
	}
	return model.Lyric{
		RawLrc:       out.Value.Lyric,
		TranslateLrc: out.Value.Translation,
		Source:       out.Route.Server,
	}
}

// GetPlaylist 获取歌单
func (a *Aggregator) GetPlaylist(ctx context.Context, idOrURL string) model.PlaylistResult {
	ref, ok := ParsePlaylistRef(idOrURL, a.resolver.Preferred())
	if !ok {
		return model.PlaylistResult{IsEnd: true, Error: "无法识别的歌单地址"}
	}

	out := resolver.Run(ctx, a.resolver.Plan(model.OpPlaylist, ref.Server), func(ctx context.Context, route resolver.Route) (model.Playlist, error) {
		p, err := a.provider(route)
		if err != nil {
			return model.Playlist{}, err
		}
		raw, err := p.Playlist(ctx, route.Server, ref.ID)
		if err != nil {
			return model.Playlist{}, err
		}
		pl, ok := normalize.NormalizePlaylist(raw, route.Server, normalize.DefaultPlaylistFields, p.Fields(route.Server))
		if !ok {
			return model.Playlist{}, malformed(p, model.OpPlaylist)
		}
		if pl.ID == "" {
			pl.ID = ref.ID
		}
		return pl, nil
	})
	if !out.OK() {
		warnExhausted(model.OpPlaylist, ref.ID, out.Err())
		return model.PlaylistResult{IsEnd: true, Error: "获取歌单失败"}
	}
	pl := out.Value
	return model.PlaylistResult{IsEnd: true, Playlist: &pl}
}

// ImportTrack 导入单曲
func (a *Aggregator) ImportTrack(ctx context.Context, urlOrID string) model.Track {
	ref, ok := ParseTrackRef(urlOrID, a.resolver.Preferred())
	if !ok {
		return placeholderTrack(model.Track{}, "Error: Track ID missing")
	}
	return a.GetTrackInfo(ctx, model.Track{ID: ref.ID, Source: ref.Server})
}

// pageOf 本地分页，page 从 1 开始
func pageOf[T any](items []T, page, size int) ([]T, bool) {
	if page < 1 {
		page = 1
	}
	if size < 1 || page-1 > (math.MaxInt-size)/size {
		return []T{}, true
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}, true
	}
	end := start + size
	if end >= len(items) {
		return items[start:], true
	}
	return items[start:end], false
}

// GetAlbumInfo 获取专辑详情及歌曲
func (a *Aggregator) GetAlbumInfo(ctx context.Context, album model.Album, page int) model.AlbumResult {
	id := strings.TrimSpace(album.ID)
	if id == "" {
		return model.AlbumResult{IsEnd: true, Tracks: []model.Track{}, Error: "缺少专辑 ID"}
	}

	out := resolver.Run(ctx, a.resolver.Plan(model.OpAlbum, album.Source), func(ctx context.Context, route resolver.Route) (model.Album, error) {
		p, err := a.provider(route)
		if err != nil {
			return model.Album{}, err
		}
		raw, err := p.Album(ctx, route.Server, id)
		if err != nil {
			return model.Album{}, err
		}
		al, ok := normalize.NormalizeAlbum(raw, route.Server, normalize.DefaultAlbumFields, p.Fields(route.Server))
		if !ok {
			return model.Album{}, malformed(p, model.OpAlbum)
		}
		if al.ID == "" {
			al.ID = id
		}
		return al, nil
	})
	if !out.OK() {
		warnExhausted(model.OpAlbum, id, out.Err())
		return model.AlbumResult{IsEnd: true, Tracks: []model.Track{}, Error: "获取专辑失败"}
	}

	al := out.Value
	tracks, isEnd := pageOf(al.Tracks, page, albumPageSize)
	al.Tracks = nil
	return model.AlbumResult{IsEnd: isEnd, Album: &al, Tracks: tracks}
}

// GetArtistWorks 获取歌手的歌曲或专辑
func (a *Aggregator) GetArtistWorks(ctx context.Context, artist model.Artist, page int, worksType string) model.ArtistWorksResult {
	if worksType != "music" && worksType != "album" {
		return model.ArtistWorksResult{IsEnd: true}
	}
	id := strings.TrimSpace(artist.ID)
	if id == "" {
		return model.ArtistWorksResult{IsEnd: true, Error: "缺少歌手 ID"}
	}

	out := resolver.Run(ctx, a.resolver.Plan(model.OpArtist, artist.Source), func(ctx context.Context, route resolver.Route) (model.Artist, error) {
		p, err := a.provider(route)
		if err != nil {
			return model.Artist{}, err
		}
		raw, err := p.Artist(ctx, route.Server, id)
		if err != nil {
			return model.Artist{}, err
		}
		ar, ok := normalize.NormalizeArtist(raw, route.Server, normalize.DefaultArtistFields, normalize.DefaultAlbumFields, p.Fields(route.Server))
		if !ok {
			return model.Artist{}, malformed(p, model.OpArtist)
		}
		if ar.ID == "" {
			ar.ID = id
		}
		return ar, nil
	})
	if !out.OK() {
		warnExhausted(model.OpArtist, id, out.Err())
		return model.ArtistWorksResult{IsEnd: true, Error: "获取歌手作品失败"}
	}

	ar := out.Value
	result := model.ArtistWorksResult{Artist: &ar}
	if worksType == "album" {
		result.Albums, result.IsEnd = pageOf(ar.Albums, page, artistPageSize)
	} else {
		result.Tracks, result.IsEnd = pageOf(ar.Tracks, page, artistPageSize)
	}
	ar.Tracks, ar.Albums = nil, nil
	return result
}
