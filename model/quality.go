package model

import "strings"

// Quality 音质档位
type Quality string

const (
	QualityLow      Quality = "low"
	QualityStandard Quality = "standard"
	QualityHigh     Quality = "high"
	QualitySuper    Quality = "super"
)

// ParseQuality maps free-form input to a known quality, defaulting to standard.
func ParseQuality(s string) Quality {
	switch q := Quality(strings.ToLower(strings.TrimSpace(s))); q {
	case QualityLow, QualityStandard, QualityHigh, QualitySuper:
		return q
	default:
		return QualityStandard
	}
}

// Operation 对上游发起的查询类型
type Operation string

const (
	OpSearch   Operation = "search"
	OpInfo     Operation = "info"
	OpMediaURL Operation = "media-url"
	OpLyric    Operation = "lyric"
	OpPlaylist Operation = "playlist"
	OpAlbum    Operation = "album"
	OpArtist   Operation = "artist"
	OpPicture  Operation = "picture"
)
