package plugin

import (
	"net/url"
	"regexp"
	"strings"
)

// Ref 某个平台上的资源 ID
type Ref struct {
	Server string
	ID     string
}

type urlRule struct {
	domain   string
	server   string
	patterns []*regexp.Regexp
}

var rawID = regexp.MustCompile(`^[0-9A-Za-z_-]+$`)

var playlistRules = []urlRule{
	{"music.163.com", "netease", []*regexp.Regexp{
		regexp.MustCompile(`[?&]id=(\d+)`),
		regexp.MustCompile(`playlist/(\d+)`),
	}},
	{"y.qq.com", "tencent", []*regexp.Regexp{
		regexp.MustCompile(`playlist/(\d+)`),
		regexp.MustCompile(`playsquare/(\w+)\.html`),
		regexp.MustCompile(`[?&]id=(\d+)`),
		regexp.MustCompile(`[?&]dissid=(\d+)`),
	}},
	{"kuwo.cn", "kuwo", []*regexp.Regexp{
		regexp.MustCompile(`playlist_detail/(\d+)`),
		regexp.MustCompile(`playlist/(\d+)`),
	}},
	{"kugou.com", "kugou", []*regexp.Regexp{
		regexp.MustCompile(`special/single/(\d+)`),
		regexp.MustCompile(`special/(\d+)`),
	}},
}

var trackRules = []urlRule{
	{"music.163.com", "netease", []*regexp.Regexp{
		regexp.MustCompile(`song\?id=(\d+)`),
		regexp.MustCompile(`song/(\d+)`),
		regexp.MustCompile(`[?&]id=(\d+)`),
	}},
	{"y.qq.com", "tencent", []*regexp.Regexp{
		regexp.MustCompile(`songDetail/(\w+)`),
		regexp.MustCompile(`[?&]songmid=(\w+)`),
	}},
	{"kuwo.cn", "kuwo", []*regexp.Regexp{
		regexp.MustCompile(`play_detail/(\d+)`),
	}},
}

// ParsePlaylistRef 识别歌单链接；纯 ID 归属 preferred 平台
func ParsePlaylistRef(input, preferred string) (Ref, bool) {
	return parseRef(input, preferred, playlistRules)
}

// ParseTrackRef 识别歌曲链接；纯 ID 归属 preferred 平台
func ParseTrackRef(input, preferred string) (Ref, bool) {
	return parseRef(input, preferred, trackRules)
}

func parseRef(input, preferred string, rules []urlRule) (Ref, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Ref{}, false
	}
	if rawID.MatchString(input) {
		return Ref{Server: preferred, ID: input}, true
	}

	u, err := url.Parse(input)
	if err != nil || u.Host == "" {
		return Ref{}, false
	}
	host := strings.ToLower(u.Hostname())
	for _, rule := range rules {
		if host != rule.domain && !strings.HasSuffix(host, "."+rule.domain) {
			continue
		}
		for _, re := range rule.patterns {
			if m := re.FindStringSubmatch(input); m != nil {
				return Ref{Server: rule.server, ID: m[1]}, true
			}
		}
		return Ref{}, false
	}
	return Ref{}, false
}
