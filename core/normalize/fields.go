package normalize

// TrackFields 单曲字段别名表，每个字段按顺序尝试，取第一个有值的
type TrackFields struct {
	ID      []string
	Title   []string
	Artist  []string
	Album   []string // 对象取 name，字符串直接使用
	AlbumID []string

	Artwork      []string // 条目上的图片字段
	AlbumArtwork []string // 专辑对象里的图片字段
	PicID        []string // 需要二次请求才能得到地址的封面 ID

	DurationMS  []string
	DurationSec []string

	LyricID []string
	Lyric   []string
	Source  []string

	// ArtistSeparators 字符串形式的歌手名里出现这些分隔符时替换为 "&"
	ArtistSeparators []string
}

// DefaultTrackFields 覆盖网易云、QQ、酷我、Meting 常见字段
var DefaultTrackFields = TrackFields{
	ID:               []string{"id", "songid", "song_id", "songmid", "mid", "rid", "MUSICRID", "musicrid", "DC_TARGETID"},
	Title:            []string{"name", "title", "songname", "SONGNAME", "NAME"},
	Artist:           []string{"ar", "artists", "artist", "singer", "author", "ARTIST"},
	Album:            []string{"al", "album", "albumname", "ALBUM"},
	AlbumID:          []string{"album_id", "albumid", "albummid", "ALBUMID"},
	Artwork:          []string{"pic", "artwork", "cover", "picture", "picUrl", "img", "albumpic"},
	AlbumArtwork:     []string{"picUrl", "pic", "cover", "picture", "img"},
	PicID:            []string{"pic_id", "album_pic_id", "cover_id", "picId", "pic_str"},
	DurationMS:       []string{"dt", "duration"},
	DurationSec:      []string{"DURATION", "interval"},
	LyricID:          []string{"lyric_id", "lyricid"},
	Source:           []string{"source", "server"},
	ArtistSeparators: []string{";", "；", "、"},
}

// MetingTrackFields Meting 直接透传各平台字段，使用默认表
var MetingTrackFields = DefaultTrackFields

// GDStudioTrackFields GD 音乐台返回 {id,name,artist:[],album,pic_id,lyric_id,source}
var GDStudioTrackFields = DefaultTrackFields

// KuwoTrackFields 酷我原始搜索结果，字段为大写，DURATION 单位为秒
var KuwoTrackFields = TrackFields{
	ID:               []string{"MUSICRID", "DC_TARGETID", "rid", "id"},
	Title:            []string{"SONGNAME", "NAME", "name"},
	Artist:           []string{"ARTIST", "artist"},
	Album:            []string{"ALBUM", "album"},
	AlbumID:          []string{"ALBUMID", "albumid"},
	Artwork:          []string{"web_albumpic_short", "pic", "albumpic"},
	PicID:            []string{"pic_id"},
	DurationSec:      []string{"DURATION", "duration"},
	Source:           []string{"source"},
	ArtistSeparators: []string{";", "&"},
}

// UnlockTrackFields 解锁结果的 source 是匹配到的音源而不是歌曲所属平台，因此不读取
var UnlockTrackFields = TrackFields{
	ID:               DefaultTrackFields.ID,
	Title:            DefaultTrackFields.Title,
	Artist:           DefaultTrackFields.Artist,
	Album:            DefaultTrackFields.Album,
	Artwork:          DefaultTrackFields.Artwork,
	DurationMS:       DefaultTrackFields.DurationMS,
	Lyric:            []string{"lyric", "lrc"},
	ArtistSeparators: DefaultTrackFields.ArtistSeparators,
}

// AlbumFields 专辑字段别名表
type AlbumFields struct {
	Nested      []string // 网易云把专辑信息放在 {"album": {...}, "songs": [...]}
	ID          []string
	Title       []string
	Artist      []string
	Artwork     []string
	PicID       []string
	Description []string
	Date        []string
	WorksNum    []string
	Tracks      []string
}

var DefaultAlbumFields = AlbumFields{
	Nested:      []string{"album"},
	ID:          []string{"id", "album_id", "albumid", "albumMID"},
	Title:       []string{"name", "title", "album_name", "albumname"},
	Artist:      []string{"artist", "artists", "ar", "singer", "artist_name"},
	Artwork:     []string{"pic", "picUrl", "blurPicUrl", "cover", "picture", "img"},
	PicID:       []string{"pic_id", "picId", "cover_id"},
	Description: []string{"description", "desc", "brief", "info"},
	Date:        []string{"publish_date", "publishTime", "publishDate", "time", "releaseDate"},
	WorksNum:    []string{"song_count", "size", "track_count", "songnum", "total"},
	Tracks:      []string{"songs", "tracks", "songlist", "list"},
}

// ArtistFields 歌手字段别名表
type ArtistFields struct {
	Nested      []string
	ID          []string
	Name        []string
	Avatar      []string
	PicID       []string
	Description []string
	WorksNum    []string
	Tracks      []string
	Albums      []string
}

var DefaultArtistFields = ArtistFields{
	Nested:      []string{"artist", "singer"},
	ID:          []string{"id", "artist_id", "artistid", "singer_id", "singermid", "mid"},
	Name:        []string{"name", "artist_name", "singer_name", "title"},
	Avatar:      []string{"avatar", "pic", "picUrl", "img1v1Url", "cover", "picture", "img"},
	PicID:       []string{"pic_id", "picId"},
	Description: []string{"description", "desc", "briefDesc", "brief", "info"},
	WorksNum:    []string{"musicSize", "song_count", "songnum", "total"},
	Tracks:      []string{"songs", "hotSongs", "tracks", "songlist", "list"},
	Albums:      []string{"hotAlbums", "albums", "albumlist"},
}

// PlaylistFields 歌单字段别名表
type PlaylistFields struct {
	Nested      []string
	ID          []string
	Title       []string
	Creator     []string // 对象取 nickname/name
	Artwork     []string
	PicID       []string
	Description []string
	WorksNum    []string
	PlayCount   []string
	Tracks      []string
}

var DefaultPlaylistFields = PlaylistFields{
	Nested:      []string{"playlist"},
	ID:          []string{"id", "playlist_id", "dissid", "disstid", "tid"},
	Title:       []string{"name", "title", "dissname"},
	Creator:     []string{"creator", "nickname", "author", "userName"},
	Artwork:     []string{"pic", "cover", "coverImgUrl", "cover_img_url", "picture", "logo", "img"},
	PicID:       []string{"pic_id", "cover_id", "coverImgId"},
	Description: []string{"description", "desc", "intro", "info"},
	WorksNum:    []string{"trackCount", "song_count", "track_count", "songnum", "total"},
	PlayCount:   []string{"playCount", "play_count", "visitnum", "listennum"},
	Tracks:      []string{"tracks", "songs", "songlist", "musicList", "list"},
}
