package normalize

import (
	"testing"

	"MetingHub/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestNormalizeTrackNeteaseShape(t *testing.T) {
	raw := gjson.Parse(`{
		"id": 186016,
		"name": " 晴天\u0000 ",
		"ar": [{"id": 6452, "name": "周杰伦"}, {"name": "合唱"}],
		"al": {"id": 18905, "name": "叶惠美", "picUrl": "https://p1.music.126.net/a.jpg"},
		"dt": 269000
	}`)

	track, ok := NormalizeTrack(raw, "netease", DefaultTrackFields)
	require.True(t, ok)
	assert.Equal(t, "186016", track.ID)
	assert.Equal(t, "晴天", track.Title)
	assert.Equal(t, "周杰伦&合唱", track.Artist)
	assert.Equal(t, "叶惠美", track.Album)
	assert.Equal(t, "18905", track.AlbumID)
	assert.Equal(t, "https://p1.music.126.net/a.jpg", track.Artwork)
	assert.Empty(t, track.PicID)
	assert.Equal(t, int64(269000), track.Duration)
	assert.Equal(t, "netease", track.Source)
	assert.Equal(t, "186016", track.LyricID)
}

func TestNormalizeTrackKuwoShape(t *testing.T) {
	raw := gjson.Parse(`{
		"MUSICRID": "MUSIC_228908",
		"SONGNAME": "晴天",
		"ARTIST": "周杰伦;杨瑞代",
		"ALBUM": "叶惠美",
		"DURATION": "269"
	}`)

	track, ok := NormalizeTrack(raw, "kuwo", KuwoTrackFields)
	require.True(t, ok)
	assert.Equal(t, "228908", track.ID)
	assert.Equal(t, "周杰伦&杨瑞代", track.Artist)
	assert.Equal(t, "叶惠美", track.Album)
	assert.Equal(t, int64(269000), track.Duration)
	assert.Equal(t, "kuwo", track.Source)
}

func TestNormalizeTrackArtistVariants(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"array of objects", `{"id":1,"artists":[{"name":"A"},{"name":"B"}]}`, "A&B"},
		{"array of strings", `{"id":1,"artist":["A","B"]}`, "A&B"},
		{"object", `{"id":1,"artist":{"name":"A"}}`, "A"},
		{"string", `{"id":1,"artist":"A"}`, "A"},
		{"string with separators", `{"id":1,"artist":"A; B、C"}`, "A&B&C"},
		{"empty array falls through", `{"id":1,"ar":[],"artist":"A"}`, "A"},
		{"absent", `{"id":1}`, model.UnknownArtist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			track, ok := NormalizeTrack(gjson.Parse(tt.raw), "netease", DefaultTrackFields)
			require.True(t, ok)
			assert.NotEmpty(t, track.Artist)
			assert.Equal(t, tt.want, track.Artist)
		})
	}
}

func TestNormalizeTrackDuration(t *testing.T) {
	tests := []struct {
		raw  string
		want int64
	}{
		{`{"id":1}`, 0},
		{`{"id":1,"duration":null}`, 0},
		{`{"id":1,"duration":"abc"}`, 0},
		{`{"id":1,"duration":-5}`, 0},
		{`{"id":1,"dt":1000}`, 1000},
		{`{"id":1,"interval":200}`, 200000},
	}
	for _, tt := range tests {
		track, ok := NormalizeTrack(gjson.Parse(tt.raw), "", DefaultTrackFields)
		require.True(t, ok, tt.raw)
		assert.Equal(t, tt.want, track.Duration, tt.raw)
	}
}

func TestNormalizeTrackArtworkPrecedence(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		artwork string
		picID   string
	}{
		{
			name:    "direct url wins over album",
			raw:     `{"id":1,"pic":"https://img/a.jpg","album":{"name":"x","picUrl":"https://img/b.jpg"}}`,
			artwork: "https://img/a.jpg",
		},
		{
			name:    "album url",
			raw:     `{"id":1,"album":{"name":"x","picUrl":"https://img/b.jpg"},"pic_id":"999"}`,
			artwork: "https://img/b.jpg",
		},
		{
			name:  "picture id only",
			raw:   `{"id":1,"pic_id":"109951163"}`,
			picID: "109951163",
		},
		{
			name:    "picture id that is already a url",
			raw:     `{"id":1,"pic_id":"http://img/c.jpg"}`,
			artwork: "http://img/c.jpg",
		},
		{
			name: "nothing",
			raw:  `{"id":1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			track, ok := NormalizeTrack(gjson.Parse(tt.raw), "netease", DefaultTrackFields)
			require.True(t, ok)
			assert.Equal(t, tt.artwork, track.Artwork)
			assert.Equal(t, tt.picID, track.PicID)
		})
	}
}

func TestNormalizeTrackRejects(t *testing.T) {
	for _, raw := range []string{``, `null`, `[]`, `"x"`, `{}`, `{"name":"no id"}`, `{"id":""}`, `{"id":null}`} {
		_, ok := NormalizeTrack(gjson.Parse(raw), "netease", DefaultTrackFields)
		assert.False(t, ok, raw)
	}
}

func TestNormalizeTrackDefaults(t *testing.T) {
	track, ok := NormalizeTrack(gjson.Parse(`{"id":"7","lyric_id":"8"}`), "", DefaultTrackFields)
	require.True(t, ok)
	assert.Equal(t, model.UnknownTitle, track.Title)
	assert.Equal(t, model.UnknownAlbum, track.Album)
	assert.Equal(t, "8", track.LyricID)
	assert.Empty(t, track.Source)
}

func TestUnlockFieldsIgnoreMatchedSource(t *testing.T) {
	raw := gjson.Parse(`{"id":"33894312","name":"情非得已","artist":"庾澄庆","source":"kuwo","lyric":"[00:01]x"}`)
	track, ok := NormalizeTrack(raw, "netease", UnlockTrackFields)
	require.True(t, ok)
	assert.Equal(t, "netease", track.Source)
	assert.Equal(t, "[00:01]x", track.RawLyric)
}

func TestNormalizeTracksDropsMalformed(t *testing.T) {
	items := gjson.Parse(`[{"id":1},{"name":"bad"},{"id":2},null,{"id":3}]`).Array()
	tracks := NormalizeTracks(items, "netease", DefaultTrackFields)
	require.Len(t, tracks, 3)
	for _, tr := range tracks {
		assert.NotEmpty(t, tr.ID)
	}
}

func TestNormalizePlaylist(t *testing.T) {
	raw := gjson.Parse(`{
		"playlist": {
			"id": 3778678,
			"name": "热歌榜",
			"creator": {"nickname": "网易云音乐"},
			"coverImgUrl": "https://p1.music.126.net/c.jpg",
			"playCount": 1234,
			"tracks": [{"id":1,"name":"a"},{"bad":true},{"id":2,"name":"b"}]
		}
	}`)

	p, ok := NormalizePlaylist(raw, "netease", DefaultPlaylistFields, DefaultTrackFields)
	require.True(t, ok)
	assert.Equal(t, "3778678", p.ID)
	assert.Equal(t, "热歌榜", p.Title)
	assert.Equal(t, "网易云音乐", p.Creator)
	assert.Equal(t, "https://p1.music.126.net/c.jpg", p.Artwork)
	assert.Equal(t, int64(1234), p.PlayCount)
	require.Len(t, p.Tracks, 2)
	assert.Equal(t, "1", p.Tracks[0].ID)
	assert.Equal(t, "2", p.Tracks[1].ID)
	assert.Equal(t, 2, p.WorksNum)
}

func TestNormalizePlaylistDefaults(t *testing.T) {
	p, ok := NormalizePlaylist(gjson.Parse(`{"creator":"someone","songs":[]}`), "tencent", DefaultPlaylistFields, DefaultTrackFields)
	require.True(t, ok)
	assert.Empty(t, p.ID)
	assert.Equal(t, model.UnknownPlaylist, p.Title)
	assert.Equal(t, "someone", p.Creator)
	assert.Empty(t, p.Tracks)
}

func TestNormalizeAlbumNested(t *testing.T) {
	raw := gjson.Parse(`{
		"album": {"id": 18905, "name": "叶惠美", "artist": {"name": "周杰伦"}, "picUrl": "https://img/a.jpg", "publishTime": 1059580800000},
		"songs": [{"id": 186016, "name": "晴天"}]
	}`)

	a, ok := NormalizeAlbum(raw, "netease", DefaultAlbumFields, DefaultTrackFields)
	require.True(t, ok)
	assert.Equal(t, "18905", a.ID)
	assert.Equal(t, "叶惠美", a.Title)
	assert.Equal(t, "周杰伦", a.Artist)
	assert.Equal(t, "https://img/a.jpg", a.Artwork)
	assert.Equal(t, "1059580800000", a.Date)
	require.Len(t, a.Tracks, 1)
	assert.Equal(t, 1, a.WorksNum)
}

func TestNormalizeArtist(t *testing.T) {
	raw := gjson.Parse(`{
		"artist": {"id": 6452, "name": "周杰伦", "picUrl": "https://img/j.jpg", "briefDesc": "歌手", "musicSize": 500},
		"hotSongs": [{"id": 1}, {"id": 2}],
		"hotAlbums": [{"id": 10, "name": "范特西"}, {"name": "no id"}]
	}`)

	a, ok := NormalizeArtist(raw, "netease", DefaultArtistFields, DefaultAlbumFields, DefaultTrackFields)
	require.True(t, ok)
	assert.Equal(t, "6452", a.ID)
	assert.Equal(t, "周杰伦", a.Name)
	assert.Equal(t, "https://img/j.jpg", a.Avatar)
	assert.Equal(t, "歌手", a.Description)
	assert.Equal(t, 500, a.WorksNum)
	assert.Len(t, a.Tracks, 2)
	require.Len(t, a.Albums, 1)
	assert.Equal(t, "范特西", a.Albums[0].Title)
}

func TestEscapeKey(t *testing.T) {
	raw := gjson.Parse(`{"a.b": "dot", "a": {"b": "nested"}}`)
	assert.Equal(t, "dot", raw.Get(EscapeKey("a.b")).String())
	assert.Equal(t, "nested", raw.Get("a.b").String())
}
