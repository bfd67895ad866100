package config

import (
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultMetingAPIURL   = "https://meting-api.imixc.top/api.php"
	DefaultGDStudioAPIURL = "https://music-api.gdstudio.xyz/api.php"
	DefaultServer         = "netease"
	DefaultPageSize       = 30
	DefaultHTTPTimeout    = 10 * time.Second
)

// Servers 上游支持的平台标识
var Servers = []string{"netease", "tencent", "kugou", "kuwo", "baidu", "pyncmd"}

// DefaultFallbackServers 跨平台回退顺序
var DefaultFallbackServers = []string{"netease", "tencent", "kugou", "kuwo"}

// DefaultUnlockSources 解锁匹配的默认音源顺序
var DefaultUnlockSources = []string{"pyncmd", "kuwo", "bilibili", "migu", "kugou", "qq", "youtube"}

// Config stores the application configuration.
// A Config is treated as an immutable snapshot once handed to the aggregator.
type Config struct {
	MetingAPIURL    string
	GDStudioAPIURL  string
	UnlockAPIURL    string // 为空时不启用解锁匹配
	ProxyURL        string // 仅接受 http/https
	PreferredServer string
	FallbackServers []string
	Cookie          string // MUSIC_U，原样透传给解锁服务
	UnlockSources   []string
	HTTPTimeout     time.Duration
	PageSize        int
	ListenAddr      string
	LogLevel        string
	LogFile         string
}

// Default returns the built-in configuration without reading the environment.
func Default() *Config {
	return &Config{
		MetingAPIURL:    DefaultMetingAPIURL,
		GDStudioAPIURL:  DefaultGDStudioAPIURL,
		PreferredServer: DefaultServer,
		FallbackServers: append([]string(nil), DefaultFallbackServers...),
		UnlockSources:   append([]string(nil), DefaultUnlockSources...),
		HTTPTimeout:     DefaultHTTPTimeout,
		PageSize:        DefaultPageSize,
		ListenAddr:      ":8080",
		LogLevel:        "info",
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt gets an environment variable as int or returns a default value.
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

// Load loads configuration from environment variables (via .env file) or defaults.
func Load() *Config {
	// godotenv.Load() will not override existing env vars.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on existing environment variables and defaults.")
	}

	def := Default()
	cfg := &Config{
		MetingAPIURL:    getEnv("METING_API_URL", def.MetingAPIURL),
		GDStudioAPIURL:  getEnv("GDSTUDIO_API_URL", def.GDStudioAPIURL),
		UnlockAPIURL:    getEnv("UNM_API_URL", ""),
		HTTPTimeout:     getEnvDuration("HTTP_TIMEOUT", def.HTTPTimeout),
		PageSize:        clampPageSize(getEnvInt("PAGE_SIZE", def.PageSize)),
		ListenAddr:      getEnv("LISTEN_ADDR", def.ListenAddr),
		LogLevel:        getEnv("LOG_LEVEL", def.LogLevel),
		LogFile:         getEnv("LOG_FILE", ""),
		PreferredServer: def.PreferredServer,
		FallbackServers: def.FallbackServers,
		UnlockSources:   def.UnlockSources,
	}
	if list := splitCSV(getEnv("FALLBACK_SERVERS", "")); len(list) > 0 {
		cfg.FallbackServers = filterServers(list)
	}

	vars := make(map[string]string)
	for _, key := range hostKeys {
		if value, exists := os.LookupEnv(key); exists {
			vars[key] = value
		}
	}
	return FromVariables(cfg, vars)
}

// hostKeys 宿主注入的变量名，环境变量与之同名
var hostKeys = []string{"PROXY_URL", "METING_SOURCE", "METING_SERVER", "MUSIC_U", "music_u", "UNM_SOURCES"}

// FromVariables overlays host-injected variables on a copy of base.
// Invalid values are ignored so the base setting survives.
func FromVariables(base *Config, vars map[string]string) *Config {
	if base == nil {
		base = Default()
	}
	cfg := *base
	cfg.FallbackServers = append([]string(nil), base.FallbackServers...)
	cfg.UnlockSources = append([]string(nil), base.UnlockSources...)

	if proxy := strings.TrimSpace(vars["PROXY_URL"]); proxy != "" {
		if ValidProxyURL(proxy) {
			cfg.ProxyURL = proxy
		} else {
			log.Printf("ignoring PROXY_URL %q: must be an http(s) URL", proxy)
		}
	}

	for _, key := range []string{"METING_SERVER", "METING_SOURCE"} {
		if server := strings.ToLower(strings.TrimSpace(vars[key])); server != "" {
			if ValidServer(server) {
				cfg.PreferredServer = server
			} else {
				log.Printf("ignoring %s %q: unknown server", key, server)
			}
		}
	}

	for _, key := range []string{"music_u", "MUSIC_U"} {
		if cookie := strings.TrimSpace(vars[key]); cookie != "" {
			cfg.Cookie = cookie
		}
	}

	if sources := splitCSV(vars["UNM_SOURCES"]); len(sources) > 0 {
		cfg.UnlockSources = sources
	}
	return &cfg
}

// ValidServer reports whether s is one of the known upstream server tags.
func ValidServer(s string) bool {
	for _, server := range Servers {
		if s == server {
			return true
		}
	}
	return false
}

// ValidProxyURL accepts absolute http/https URLs only.
func ValidProxyURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func filterServers(list []string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		s = strings.ToLower(s)
		if ValidServer(s) {
			out = append(out, s)
		}
	}
	return out
}

func clampPageSize(n int) int {
	if n < 1 {
		return 1
	}
	if n > 100 {
		return 100
	}
	return n
}
