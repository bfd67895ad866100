package model

// Artist 歌手信息
type Artist struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Avatar      string  `json:"avatar"`
	PicID       string  `json:"picId,omitempty"`
	Description string  `json:"description,omitempty"`
	WorksNum    int     `json:"worksNum"`
	Source      string  `json:"source"`
	Tracks      []Track `json:"tracks,omitempty"`
	Albums      []Album `json:"albums,omitempty"`
}
