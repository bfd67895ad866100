package plugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePlaylistRef(t *testing.T) {
	tests := []struct {
		input string
		want  Ref
		ok    bool
	}{
		{"3778678", Ref{"netease", "3778678"}, true},
		{"  3778678  ", Ref{"netease", "3778678"}, true},
		{"https://music.163.com/playlist?id=3778678&userid=1", Ref{"netease", "3778678"}, true},
		{"https://music.163.com/#/playlist?id=3778678", Ref{"netease", "3778678"}, true},
		{"https://y.music.163.com/m/playlist/3778678", Ref{"netease", "3778678"}, true},
		{"https://y.qq.com/n/ryqq/playlist/8522515502", Ref{"tencent", "8522515502"}, true},
		{"https://y.qq.com/n/yqq/playsquare/8522515502.html", Ref{"tencent", "8522515502"}, true},
		{"https://i.y.qq.com/n2/m/share/details/taoge.html?id=7256912512", Ref{"tencent", "7256912512"}, true},
		{"https://y.qq.com/w/taoge.html?dissid=7256912512", Ref{"tencent", "7256912512"}, true},
		{"https://www.kuwo.cn/playlist_detail/3445678012", Ref{"kuwo", "3445678012"}, true},
		{"http://m.kuwo.cn/newh5app/playlist/2891238463", Ref{"kuwo", "2891238463"}, true},
		{"https://www.kugou.com/yy/special/single/546903.html", Ref{"kugou", "546903"}, true},
		{"https://www.kugou.com/songlist/special/123", Ref{"kugou", "123"}, true},
		{"https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M", Ref{}, false},
		{"https://music.163.com/discover", Ref{}, false},
		{"", Ref{}, false},
		{"not a url at all", Ref{}, false},
	}

	for _, tt := range tests {
		got, ok := ParsePlaylistRef(tt.input, "netease")
		assert.Equal(t, tt.ok, ok, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}
}

func TestParseTrackRef(t *testing.T) {
	tests := []struct {
		input string
		want  Ref
		ok    bool
	}{
		{"186016", Ref{"kuwo", "186016"}, true},
		{"https://music.163.com/song?id=186016&userid=1", Ref{"netease", "186016"}, true},
		{"https://music.163.com/#/song?id=186016", Ref{"netease", "186016"}, true},
		{"https://y.qq.com/n/ryqq/songDetail/0039MnYb0qxYhV", Ref{"tencent", "0039MnYb0qxYhV"}, true},
		{"https://www.kuwo.cn/play_detail/228908", Ref{"kuwo", "228908"}, true},
		{"https://www.kugou.com/song/#hash=abc", Ref{}, false},
	}

	for _, tt := range tests {
		got, ok := ParseTrackRef(tt.input, "kuwo")
		assert.Equal(t, tt.ok, ok, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}
}

func TestApplyProxy(t *testing.T) {
	const proxy = "https://proxy.example.com/"
	tests := []struct {
		name  string
		raw   string
		proxy string
		want  string
	}{
		{"kuwo", "http://er.sycdn.kuwo.cn/x/a.mp3?k=1", proxy, "https://proxy.example.com/er.sycdn.kuwo.cn/x/a.mp3?k=1"},
		{"migu", "https://freetyst.nf.migu.cn/a.mp3", proxy, "https://proxy.example.com/freetyst.nf.migu.cn/a.mp3"},
		{"netease web", "https://music.163.com/song/media/outer/url?id=1", proxy, "https://proxy.example.com/music.163.com/song/media/outer/url?id=1"},
		{"qq", "http://ws.stream.qqmusic.qq.com/M500.mp3", proxy, "https://proxy.example.com/ws.stream.qqmusic.qq.com/M500.mp3"},
		{"exact host only", "https://notkuwo.cn/a.mp3", proxy, "https://notkuwo.cn/a.mp3"},
		{"netease cdn", "http://m701.music.126.net/a.mp3", proxy, "http://m701.music.126.net/a.mp3"},
		{"no proxy", "http://er.sycdn.kuwo.cn/a.mp3", "", "http://er.sycdn.kuwo.cn/a.mp3"},
		{"bad proxy", "http://er.sycdn.kuwo.cn/a.mp3", "ftp://x", "http://er.sycdn.kuwo.cn/a.mp3"},
		{"not a url", "kuwo.cn/a.mp3", proxy, "kuwo.cn/a.mp3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ApplyProxy(tt.raw, tt.proxy))
		})
	}
}
