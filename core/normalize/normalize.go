// Package normalize 把各上游风格迥异的 JSON 映射为统一的 model 结构。
// 所有函数都是纯函数：不发请求、不 panic，缺失字段使用显示默认值。
package normalize

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"MetingHub/model"

	"github.com/tidwall/gjson"
)

// 酷我的 MUSICRID 形如 "MUSIC_123456"
var prefixedID = regexp.MustCompile(`^[A-Za-z]+_(\d+)$`)

// EscapeKey escapes gjson path metacharacters so key is matched literally.
func EscapeKey(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\', '!', '=', '<', '>', '%':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Sanitize 去掉 NUL 字符和首尾空白
func Sanitize(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\x00", ""))
}

// IsURL reports whether s is an absolute http(s) URL.
func IsURL(s string) bool {
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return false
	}
	u, err := url.Parse(s)
	return err == nil && u.Host != ""
}

// scalar 字符串和数字转为字符串，其它类型返回空
func scalar(v gjson.Result) string {
	switch v.Type {
	case gjson.String:
		return Sanitize(v.Str)
	case gjson.Number:
		return v.Raw
	}
	return ""
}

// first 返回第一个存在且非空的字段
func first(obj gjson.Result, keys []string) gjson.Result {
	for _, key := range keys {
		v := obj.Get(EscapeKey(key))
		if !v.Exists() || v.Type == gjson.Null {
			continue
		}
		if v.Type == gjson.String && Sanitize(v.Str) == "" {
			continue
		}
		return v
	}
	return gjson.Result{}
}

func firstScalar(obj gjson.Result, keys []string) string {
	for _, key := range keys {
		if s := scalar(obj.Get(EscapeKey(key))); s != "" {
			return s
		}
	}
	return ""
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// number 接受数字或数字字符串，无法解析时返回 0
func number(v gjson.Result) float64 {
	switch v.Type {
	case gjson.Number:
		return v.Num
	case gjson.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err == nil {
			return f
		}
	}
	return 0
}

func firstInt(obj gjson.Result, keys []string) int64 {
	for _, key := range keys {
		if n := number(obj.Get(EscapeKey(key))); n > 0 {
			return int64(n)
		}
	}
	return 0
}

// ArtistName 把数组、对象或字符串形式的歌手字段统一成 "A&B"
func ArtistName(v gjson.Result, separators []string) string {
	switch {
	case v.IsArray():
		var names []string
		v.ForEach(func(_, item gjson.Result) bool {
			var name string
			if item.IsObject() {
				name = firstScalar(item, []string{"name", "title"})
			} else {
				name = scalar(item)
			}
			if name != "" {
				names = append(names, name)
			}
			return true
		})
		return strings.Join(names, "&")
	case v.IsObject():
		return firstScalar(v, []string{"name", "title", "nickname"})
	default:
		return splitJoin(scalar(v), separators)
	}
}

func splitJoin(s string, separators []string) string {
	if s == "" || len(separators) == 0 {
		return s
	}
	for _, sep := range separators {
		s = strings.ReplaceAll(s, sep, "&")
	}
	parts := strings.Split(s, "&")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "&")
}

func normalizeID(s string) string {
	if m := prefixedID.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return s
}

// NormalizeTrack 把一条上游单曲数据映射为 Track
// raw 不是对象或没有任何 ID 字段时返回 false
func NormalizeTrack(raw gjson.Result, sourceHint string, f TrackFields) (model.Track, bool) {
	if !raw.IsObject() {
		return model.Track{}, false
	}
	id := normalizeID(firstScalar(raw, f.ID))
	if id == "" {
		return model.Track{}, false
	}

	t := model.Track{
		ID:     id,
		Title:  orDefault(firstScalar(raw, f.Title), model.UnknownTitle),
		Artist: model.UnknownArtist,
		Album:  model.UnknownAlbum,
		Source: orDefault(firstScalar(raw, f.Source), sourceHint),
	}

	for _, key := range f.Artist {
		if name := ArtistName(raw.Get(EscapeKey(key)), f.ArtistSeparators); name != "" {
			t.Artist = name
			break
		}
	}

	// 专辑可能是对象也可能只是名字
	var albumArt, albumPicID string
	if album := first(raw, f.Album); album.Exists() {
		if album.IsObject() {
			t.Album = orDefault(firstScalar(album, []string{"name", "title"}), model.UnknownAlbum)
			t.AlbumID = firstScalar(album, []string{"id", "mid"})
			for _, key := range f.AlbumArtwork {
				s := scalar(album.Get(EscapeKey(key)))
				if IsURL(s) {
					albumArt = s
					break
				}
				if s != "" && albumPicID == "" {
					albumPicID = s
				}
			}
		} else if name := scalar(album); name != "" {
			t.Album = name
		}
	}
	if id := firstScalar(raw, f.AlbumID); id != "" {
		t.AlbumID = id
	}

	// 封面优先级：条目直链 > 专辑图片 > 封面 ID
	var picID string
	for _, key := range f.Artwork {
		s := scalar(raw.Get(EscapeKey(key)))
		if IsURL(s) {
			t.Artwork = s
			break
		}
		if s != "" && picID == "" {
			picID = s
		}
	}
	if t.Artwork == "" {
		t.Artwork = albumArt
	}
	if t.Artwork == "" {
		for _, key := range f.PicID {
			s := scalar(raw.Get(EscapeKey(key)))
			if IsURL(s) {
				t.Artwork = s
				break
			}
			if s != "" {
				picID = s
				break
			}
		}
	}
	if t.Artwork == "" {
		t.PicID = orDefault(picID, albumPicID)
	}

	if ms := firstInt(raw, f.DurationMS); ms > 0 {
		t.Duration = ms
	} else if sec := firstInt(raw, f.DurationSec); sec > 0 {
		t.Duration = sec * 1000
	}

	t.LyricID = orDefault(firstScalar(raw, f.LyricID), t.ID)
	t.RawLyric = firstScalar(raw, f.Lyric)
	return t, true
}

// NormalizeTracks 逐条归一化，丢弃无法识别的条目
func NormalizeTracks(items []gjson.Result, sourceHint string, f TrackFields) []model.Track {
	tracks := make([]model.Track, 0, len(items))
	for _, item := range items {
		if t, ok := NormalizeTrack(item, sourceHint, f); ok {
			tracks = append(tracks, t)
		}
	}
	return tracks
}

// subject 网易云等接口把主体放在嵌套对象里，列表放在外层
func subject(raw gjson.Result, nested, idKeys []string) gjson.Result {
	if firstScalar(raw, idKeys) != "" {
		return raw
	}
	for _, key := range nested {
		if v := raw.Get(EscapeKey(key)); v.IsObject() {
			return v
		}
	}
	return raw
}

// trackList 依次在主体和外层里找歌曲数组
func trackList(keys []string, objs ...gjson.Result) []gjson.Result {
	for _, obj := range objs {
		for _, key := range keys {
			if v := obj.Get(EscapeKey(key)); v.IsArray() {
				return v.Array()
			}
		}
	}
	return nil
}

// artwork 从候选字段中分出直链和封面 ID
func artwork(obj gjson.Result, urlKeys, idKeys []string) (art, picID string) {
	for _, key := range urlKeys {
		s := scalar(obj.Get(EscapeKey(key)))
		if IsURL(s) {
			return s, ""
		}
		if s != "" && picID == "" {
			picID = s
		}
	}
	if id := firstScalar(obj, idKeys); id != "" {
		if IsURL(id) {
			return id, ""
		}
		picID = id
	}
	return "", picID
}

// NormalizeAlbum 专辑信息，ID 缺失时由调用方补上请求的 ID
func NormalizeAlbum(raw gjson.Result, sourceHint string, f AlbumFields, tf TrackFields) (model.Album, bool) {
	if !raw.IsObject() {
		return model.Album{}, false
	}
	obj := subject(raw, f.Nested, f.ID)
	a := model.Album{
		ID:          normalizeID(firstScalar(obj, f.ID)),
		Title:       orDefault(firstScalar(obj, f.Title), model.UnknownAlbum),
		Artist:      model.UnknownArtist,
		Description: firstScalar(obj, f.Description),
		Date:        firstScalar(obj, f.Date),
		Source:      sourceHint,
	}
	for _, key := range f.Artist {
		if name := ArtistName(obj.Get(EscapeKey(key)), tf.ArtistSeparators); name != "" {
			a.Artist = name
			break
		}
	}
	a.Artwork, a.PicID = artwork(obj, f.Artwork, f.PicID)
	a.Tracks = NormalizeTracks(trackList(f.Tracks, obj, raw), sourceHint, tf)
	a.WorksNum = int(firstInt(obj, f.WorksNum))
	if a.WorksNum == 0 {
		a.WorksNum = len(a.Tracks)
	}
	return a, true
}

// NormalizeArtist 歌手信息及其热门歌曲、专辑
func NormalizeArtist(raw gjson.Result, sourceHint string, f ArtistFields, af AlbumFields, tf TrackFields) (model.Artist, bool) {
	if !raw.IsObject() {
		return model.Artist{}, false
	}
	obj := subject(raw, f.Nested, f.ID)
	a := model.Artist{
		ID:          normalizeID(firstScalar(obj, f.ID)),
		Name:        orDefault(firstScalar(obj, f.Name), model.UnknownArtist),
		Description: firstScalar(obj, f.Description),
		Source:      sourceHint,
	}
	a.Avatar, a.PicID = artwork(obj, f.Avatar, f.PicID)
	a.Tracks = NormalizeTracks(trackList(f.Tracks, obj, raw), sourceHint, tf)

	for _, item := range trackList(f.Albums, obj, raw) {
		album, ok := NormalizeAlbum(item, sourceHint, af, tf)
		if ok && album.ID != "" {
			a.Albums = append(a.Albums, album)
		}
	}
	a.WorksNum = int(firstInt(obj, f.WorksNum))
	if a.WorksNum == 0 {
		a.WorksNum = len(a.Tracks)
	}
	return a, true
}

// NormalizePlaylist 歌单信息，Tracks 保持上游顺序
func NormalizePlaylist(raw gjson.Result, sourceHint string, f PlaylistFields, tf TrackFields) (model.Playlist, bool) {
	if !raw.IsObject() {
		return model.Playlist{}, false
	}
	obj := subject(raw, f.Nested, f.ID)
	p := model.Playlist{
		ID:          normalizeID(firstScalar(obj, f.ID)),
		Title:       orDefault(firstScalar(obj, f.Title), model.UnknownPlaylist),
		Description: firstScalar(obj, f.Description),
		PlayCount:   firstInt(obj, f.PlayCount),
		Source:      sourceHint,
	}
	for _, key := range f.Creator {
		if name := ArtistName(obj.Get(EscapeKey(key)), nil); name != "" {
			p.Creator = name
			break
		}
	}
	p.Artwork, p.PicID = artwork(obj, f.Artwork, f.PicID)
	p.Tracks = NormalizeTracks(trackList(f.Tracks, obj, raw), sourceHint, tf)
	p.WorksNum = int(firstInt(obj, f.WorksNum))
	if p.WorksNum == 0 {
		p.WorksNum = len(p.Tracks)
	}
	return p, true
}
