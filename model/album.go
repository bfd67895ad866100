package model

// Album 表示一张专辑
type Album struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Artist      string  `json:"artist"`
	Artwork     string  `json:"artwork"`
	PicID       string  `json:"picId,omitempty"`
	Description string  `json:"description,omitempty"`
	Date        string  `json:"date,omitempty"`
	WorksNum    int     `json:"worksNum"`
	Source      string  `json:"source"`
	Tracks      []Track `json:"tracks,omitempty"`
}
