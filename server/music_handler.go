package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"MetingHub/core/plugin"
	"MetingHub/logger"
	"MetingHub/model"

	"github.com/gorilla/mux"
)

// MusicHandler 把查询接口暴露为 JSON API
type MusicHandler struct {
	plugin plugin.MusicPlugin
}

// NewMusicHandler 创建处理器
func NewMusicHandler(p plugin.MusicPlugin) *MusicHandler {
	return &MusicHandler{plugin: p}
}

// APIResponse 统一响应结构
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("[HTTP] 写入响应失败", logger.ErrorField(err))
	}
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, APIResponse{Success: false, Error: msg})
}

// soft 查询本身失败时仍返回 200，由 success 和 error 字段表达
func soft(w http.ResponseWriter, data interface{}, errMsg string) {
	writeJSON(w, http.StatusOK, APIResponse{Success: errMsg == "", Data: data, Error: errMsg})
}

// pageParam 缺省为 1，非数字返回 false
func pageParam(r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1, true
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, false
	}
	return page, true
}

func trackFromRoute(r *http.Request) model.Track {
	vars := mux.Vars(r)
	return model.Track{
		ID:      vars["id"],
		Source:  strings.ToLower(vars["source"]),
		LyricID: r.URL.Query().Get("lyricId"),
	}
}

// HandleHealth 健康检查
func (h *MusicHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: "ok"})
}

// HandleSearch GET /api/search?q=&page=&type=
func (h *MusicHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		badRequest(w, "请提供搜索关键词")
		return
	}
	page, ok := pageParam(r)
	if !ok {
		badRequest(w, "无效的页码")
		return
	}

	res := h.plugin.Search(r.Context(), query, page, r.URL.Query().Get("type"))
	soft(w, res, res.Error)
}

// HandleTrack GET /api/track/{source}/{id}
func (h *MusicHandler) HandleTrack(w http.ResponseWriter, r *http.Request) {
	track := h.plugin.GetTrackInfo(r.Context(), trackFromRoute(r))
	if track.IsPlaceholder() {
		soft(w, track, track.Title)
		return
	}
	soft(w, track, "")
}

// HandleTrackURL GET /api/track/{source}/{id}/url?quality=
func (h *MusicHandler) HandleTrackURL(w http.ResponseWriter, r *http.Request) {
	quality := model.ParseQuality(r.URL.Query().Get("quality"))
	media := h.plugin.GetPlayableURL(r.Context(), trackFromRoute(r), quality)
	soft(w, media, media.Error)
}

// HandleLyric GET /api/track/{source}/{id}/lyric?lyricId=
func (h *MusicHandler) HandleLyric(w http.ResponseWriter, r *http.Request) {
	lrc := h.plugin.GetLyrics(r.Context(), trackFromRoute(r))
	soft(w, lrc, lrc.Error)
}

// HandlePlaylist GET /api/playlist?id=<歌单ID或链接>
func (h *MusicHandler) HandlePlaylist(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		badRequest(w, "请提供歌单 ID 或链接")
		return
	}
	res := h.plugin.GetPlaylist(r.Context(), id)
	soft(w, res, res.Error)
}

// HandleImportTrack GET /api/track/import?id=<歌曲ID或链接>
func (h *MusicHandler) HandleImportTrack(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		badRequest(w, "请提供歌曲 ID 或链接")
		return
	}
	track := h.plugin.ImportTrack(r.Context(), id)
	if track.IsPlaceholder() {
		soft(w, track, track.Title)
		return
	}
	soft(w, track, "")
}

// HandleAlbum GET /api/album/{source}/{id}?page=
func (h *MusicHandler) HandleAlbum(w http.ResponseWriter, r *http.Request) {
	page, ok := pageParam(r)
	if !ok {
		badRequest(w, "无效的页码")
		return
	}
	vars := mux.Vars(r)
	res := h.plugin.GetAlbumInfo(r.Context(), model.Album{ID: vars["id"], Source: strings.ToLower(vars["source"])}, page)
	soft(w, res, res.Error)
}

// HandleArtist GET /api/artist/{source}/{id}?page=&type=music|album
func (h *MusicHandler) HandleArtist(w http.ResponseWriter, r *http.Request) {
	page, ok := pageParam(r)
	if !ok {
		badRequest(w, "无效的页码")
		return
	}
	worksType := r.URL.Query().Get("type")
	if worksType == "" {
		worksType = "music"
	}
	vars := mux.Vars(r)
	res := h.plugin.GetArtistWorks(r.Context(), model.Artist{ID: vars["id"], Source: strings.ToLower(vars["source"])}, page, worksType)
	soft(w, res, res.Error)
}
