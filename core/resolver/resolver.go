package resolver

import (
	"MetingHub/config"
	"MetingHub/model"
)

// Capability 参与路由规划的上游只需要暴露名称和能力
type Capability interface {
	Name() string
	Supports(op model.Operation, server string) bool
}

// Route 一次尝试：哪个上游、哪个平台
type Route struct {
	Provider string `json:"provider"`
	Server   string `json:"server"`
}

func (r Route) String() string {
	return r.Provider + "/" + r.Server
}

// Resolver 为每次查询生成有序的尝试列表
type Resolver struct {
	providers []Capability
	preferred string
	priority  []string
}

// New preferred 为空或无效时使用 netease；priority 为空时使用默认回退顺序
func New(preferred string, priority []string, providers ...Capability) *Resolver {
	if !config.ValidServer(preferred) {
		preferred = config.DefaultServer
	}
	if len(priority) == 0 {
		priority = config.DefaultFallbackServers
	}
	return &Resolver{providers: providers, preferred: preferred, priority: priority}
}

// Preferred returns the default server.
func (r *Resolver) Preferred() string {
	return r.preferred
}

// crossServer 关键字可以换平台重试；歌曲 ID 只在所属平台有效，
// 播放地址仅在不知道所属平台时才跨平台
// 已知平台的播放地址和歌词不跨平台，见 DESIGN.md 中 Open Question decisions 的取舍
func crossServer(op model.Operation, hint string) bool {
	switch op {
	case model.OpSearch:
		return true
	case model.OpMediaURL:
		return !config.ValidServer(hint)
	}
	return false
}

// Servers returns the ordered, de-duplicated server list for op.
// An invalid hint is ignored.
func (r *Resolver) Servers(op model.Operation, hint string) []string {
	if !crossServer(op, hint) {
		if config.ValidServer(hint) {
			return []string{hint}
		}
		return []string{r.preferred}
	}

	seen := make(map[string]bool)
	var servers []string
	add := func(s string) {
		if config.ValidServer(s) && !seen[s] {
			seen[s] = true
			servers = append(servers, s)
		}
	}
	add(hint)
	add(r.preferred)
	for _, s := range r.priority {
		add(s)
	}
	return servers
}

// Plan 按平台优先：同一平台下依次尝试所有上游，再换下一个平台
func (r *Resolver) Plan(op model.Operation, hint string) []Route {
	var routes []Route
	for _, server := range r.Servers(op, hint) {
		for _, p := range r.providers {
			if p.Supports(op, server) {
				routes = append(routes, Route{Provider: p.Name(), Server: server})
			}
		}
	}
	return routes
}
