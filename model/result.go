package model

// 以下结构为查询接口的返回值，失败时通过 Error 字段携带原因而不是返回 error

// SearchResult 搜索结果
type SearchResult struct {
	IsEnd bool    `json:"isEnd"`
	Data  []Track `json:"data"`
	Error string  `json:"error,omitempty"`
}

// MediaSource 可播放地址
type MediaSource struct {
	URL     string  `json:"url"`
	Size    int64   `json:"size,omitempty"`
	Quality Quality `json:"quality"`
	Bitrate string  `json:"bitrate,omitempty"`
	Source  string  `json:"source,omitempty"`
	Error   string  `json:"error,omitempty"`
}

// OK reports whether a playable URL was resolved.
func (m MediaSource) OK() bool {
	return m.URL != "" && m.Error == ""
}

// Lyric 歌词，TranslateLrc 为翻译歌词
type Lyric struct {
	RawLrc       string `json:"rawLrc"`
	TranslateLrc string `json:"translateLrc"`
	Source       string `json:"source,omitempty"`
	Error        string `json:"error,omitempty"`
}

// PlaylistResult 歌单查询结果
type PlaylistResult struct {
	IsEnd    bool      `json:"isEnd"`
	Playlist *Playlist `json:"playlist,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// AlbumResult 专辑详情，Tracks 为当前页
type AlbumResult struct {
	IsEnd  bool    `json:"isEnd"`
	Album  *Album  `json:"album,omitempty"`
	Tracks []Track `json:"musicList"`
	Error  string  `json:"error,omitempty"`
}

// ArtistWorksResult 歌手作品
type ArtistWorksResult struct {
	IsEnd  bool    `json:"isEnd"`
	Artist *Artist `json:"artist,omitempty"`
	Tracks []Track `json:"tracks,omitempty"`
	Albums []Album `json:"albums,omitempty"`
	Error  string  `json:"error,omitempty"`
}
