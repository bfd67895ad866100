package model

// Track 归一化后的单曲信息
// 不同上游的字段在 core/normalize 中统一映射到这里
type Track struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Artist   string `json:"artist"` // 多位歌手以 "&" 连接
	Album    string `json:"album"`
	AlbumID  string `json:"albumId,omitempty"`
	Artwork  string `json:"artwork"`
	PicID    string `json:"picId,omitempty"` // 尚未解析成 URL 的封面 ID
	Duration int64  `json:"duration"`        // 毫秒
	Source   string `json:"source"`
	LyricID  string `json:"lyricId,omitempty"`
	RawLyric string `json:"rawLyric,omitempty"`

	placeholder bool
}

// Display defaults used when an upstream omits a field.
const (
	UnknownTitle    = "Unknown Title"
	UnknownArtist   = "Unknown Artist"
	UnknownAlbum    = "Unknown Album"
	UnknownPlaylist = "Unknown Playlist"
)

// PlaceholderTrack 查询失败时代替真实歌曲返回，IsPlaceholder 为 true
func PlaceholderTrack(id, source, lyricID, title string) Track {
	return Track{
		ID:          id,
		Title:       title,
		Artist:      UnknownArtist,
		Album:       UnknownAlbum,
		Source:      source,
		LyricID:     lyricID,
		placeholder: true,
	}
}

// IsPlaceholder reports whether t was built by PlaceholderTrack.
func (t Track) IsPlaceholder() bool {
	return t.placeholder
}

// LyricKey returns the id used for lyric lookups.
func (t Track) LyricKey() string {
	if t.LyricID != "" {
		return t.LyricID
	}
	return t.ID
}
