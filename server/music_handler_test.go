package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"MetingHub/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePlugin records the last call and returns canned results.
type fakePlugin struct {
	query     string
	page      int
	typ       string
	track     model.Track
	quality   model.Quality
	playlist  string
	worksType string

	trackResult model.Track
	media       model.MediaSource
}

func (f *fakePlugin) Search(ctx context.Context, query string, page int, searchType string) model.SearchResult {
	f.query, f.page, f.typ = query, page, searchType
	return model.SearchResult{IsEnd: true, Data: []model.Track{{ID: "1", Title: "t"}}}
}

func (f *fakePlugin) GetTrackInfo(ctx context.Context, track model.Track) model.Track {
	f.track = track
	return f.trackResult
}

func (f *fakePlugin) GetPlayableURL(ctx context.Context, track model.Track, quality model.Quality) model.MediaSource {
	f.track, f.quality = track, quality
	return f.media
}

func (f *fakePlugin) GetLyrics(ctx context.Context, track model.Track) model.Lyric {
	f.track = track
	return model.Lyric{RawLrc: "[00:00]x"}
}

func (f *fakePlugin) GetPlaylist(ctx context.Context, idOrURL string) model.PlaylistResult {
	f.playlist = idOrURL
	return model.PlaylistResult{IsEnd: true, Playlist: &model.Playlist{ID: "9", Title: "p"}}
}

func (f *fakePlugin) ImportTrack(ctx context.Context, urlOrID string) model.Track {
	return f.trackResult
}

func (f *fakePlugin) GetAlbumInfo(ctx context.Context, album model.Album, page int) model.AlbumResult {
	f.page = page
	return model.AlbumResult{IsEnd: true, Album: &album}
}

func (f *fakePlugin) GetArtistWorks(ctx context.Context, artist model.Artist, page int, worksType string) model.ArtistWorksResult {
	f.page, f.worksType = page, worksType
	return model.ArtistWorksResult{IsEnd: true, Artist: &artist}
}

func do(t *testing.T, h http.Handler, method, target string) (*httptest.ResponseRecorder, APIResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	var resp APIResponse
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func TestSearchRoute(t *testing.T) {
	fp := &fakePlugin{}
	router := NewRouter(fp)

	rec, resp := do(t, router, http.MethodGet, "/api/search?q=Beyond&page=2&type=music")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, "Beyond", fp.query)
	assert.Equal(t, 2, fp.page)
	assert.Equal(t, "music", fp.typ)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestSearchRouteBadInput(t *testing.T) {
	router := NewRouter(&fakePlugin{})

	rec, resp := do(t, router, http.MethodGet, "/api/search")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, resp.Success)

	rec, _ = do(t, router, http.MethodGet, "/api/search?q=x&page=abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTrackURLRoute(t *testing.T) {
	fp := &fakePlugin{media: model.MediaSource{URL: "https://a/b.mp3", Quality: model.QualityHigh}}
	router := NewRouter(fp)

	rec, resp := do(t, router, http.MethodGet, "/api/track/Kuwo/123/url?quality=high")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, model.Track{ID: "123", Source: "kuwo"}, fp.track)
	assert.Equal(t, model.QualityHigh, fp.quality)
}

func TestTrackURLRouteSoftFailure(t *testing.T) {
	fp := &fakePlugin{media: model.MediaSource{Error: "无法获取播放地址"}}
	router := NewRouter(fp)

	rec, resp := do(t, router, http.MethodGet, "/api/track/netease/1/url")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, "无法获取播放地址", resp.Error)
	assert.Equal(t, model.QualityStandard, fp.quality)
}

func TestTrackRoutePlaceholder(t *testing.T) {
	fp := &fakePlugin{trackResult: model.PlaceholderTrack("5", "netease", "", "Track (ID: 5)")}
	router := NewRouter(fp)

	_, resp := do(t, router, http.MethodGet, "/api/track/netease/5")
	assert.False(t, resp.Success)
	assert.Equal(t, "Track (ID: 5)", resp.Error)

	fp.trackResult = model.Track{ID: "5", Title: "晴天"}
	_, resp = do(t, router, http.MethodGet, "/api/track/netease/5")
	assert.True(t, resp.Success)

	fp.trackResult = model.Track{ID: "5", Title: "Error: Not Found"}
	_, resp = do(t, router, http.MethodGet, "/api/track/netease/5")
	assert.True(t, resp.Success)
}

func TestLyricRoutePassesLyricID(t *testing.T) {
	fp := &fakePlugin{}
	router := NewRouter(fp)

	_, resp := do(t, router, http.MethodGet, "/api/track/tencent/1/lyric?lyricId=L1")
	assert.True(t, resp.Success)
	assert.Equal(t, "L1", fp.track.LyricID)
	assert.Equal(t, "tencent", fp.track.Source)
}

func TestPlaylistRoute(t *testing.T) {
	fp := &fakePlugin{}
	router := NewRouter(fp)

	_, resp := do(t, router, http.MethodGet, "/api/playlist?id=https%3A%2F%2Fmusic.163.com%2Fplaylist%3Fid%3D9")
	assert.True(t, resp.Success)
	assert.Equal(t, "https://music.163.com/playlist?id=9", fp.playlist)

	rec, _ := do(t, router, http.MethodGet, "/api/playlist")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestArtistRouteDefaultsToMusic(t *testing.T) {
	fp := &fakePlugin{}
	router := NewRouter(fp)

	_, resp := do(t, router, http.MethodGet, "/api/artist/netease/6452")
	assert.True(t, resp.Success)
	assert.Equal(t, "music", fp.worksType)
	assert.Equal(t, 1, fp.page)
}

func TestPreflight(t *testing.T) {
	router := NewRouter(&fakePlugin{})

	rec, _ := do(t, router, http.MethodOptions, "/api/search")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "GET, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
}

func TestRequestIDIsPropagated(t *testing.T) {
	router := NewRouter(&fakePlugin{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	router.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}
