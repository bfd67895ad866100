package plugin

import (
	"context"

	"MetingHub/model"
)

// MusicPlugin 音乐查询接口
// 所有方法都不返回 error：失败时返回带 Error 字段或占位内容的结果
type MusicPlugin interface {
	// Search 搜索歌曲，page 从 1 开始，searchType 目前只支持 "music"
	Search(ctx context.Context, query string, page int, searchType string) model.SearchResult

	// GetTrackInfo 获取歌曲详情，失败时返回占位歌曲
	GetTrackInfo(ctx context.Context, track model.Track) model.Track

	// GetPlayableURL 获取播放地址
	GetPlayableURL(ctx context.Context, track model.Track, quality model.Quality) model.MediaSource

	// GetLyrics 获取歌词
	GetLyrics(ctx context.Context, track model.Track) model.Lyric

	// GetPlaylist 获取歌单，支持歌单 ID 或各平台分享链接
	GetPlaylist(ctx context.Context, idOrURL string) model.PlaylistResult

	// ImportTrack 从歌曲链接或 ID 导入单曲
	ImportTrack(ctx context.Context, urlOrID string) model.Track

	GetAlbumInfo(ctx context.Context, album model.Album, page int) model.AlbumResult

	// GetArtistWorks worksType 为 "music" 或 "album"
	GetArtistWorks(ctx context.Context, artist model.Artist, page int, worksType string) model.ArtistWorksResult
}

var _ MusicPlugin = (*Aggregator)(nil)
