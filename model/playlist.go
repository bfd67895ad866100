package model

// Playlist 歌单，Tracks 保持上游返回的顺序
type Playlist struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Creator     string  `json:"creator,omitempty"`
	Artwork     string  `json:"artwork"`
	PicID       string  `json:"picId,omitempty"`
	Description string  `json:"description,omitempty"`
	WorksNum    int     `json:"worksNum"`
	PlayCount   int64   `json:"playCount,omitempty"`
	Source      string  `json:"source"`
	Tracks      []Track `json:"tracks"`
}
