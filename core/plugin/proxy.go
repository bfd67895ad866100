package plugin

import (
	"net/url"
	"strings"

	"MetingHub/config"
)

// 只有这些域名下的播放地址需要走代理
var proxyHosts = []string{"kuwo.cn", "migu.cn", "music.163.com", "qqmusic.qq.com"}

// ApplyProxy 把 http(s)://host/path 改写为 {proxy}/host/path
// proxy 无效或域名不在名单内时原样返回
func ApplyProxy(raw, proxy string) string {
	if proxy == "" || !config.ValidProxyURL(proxy) {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || !proxyAllowed(u.Hostname()) {
		return raw
	}
	rest := raw[strings.Index(raw, "://")+len("://"):]
	return strings.TrimSuffix(proxy, "/") + "/" + rest
}

func proxyAllowed(host string) bool {
	host = strings.ToLower(host)
	for _, domain := range proxyHosts {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}
