package resolver

import "MetingHub/model"

// 音质到码率参数的映射，999 表示无损
var defaultBitrates = map[model.Quality]string{
	model.QualityLow:      "128",
	model.QualityStandard: "320",
	model.QualityHigh:     "999",
	model.QualitySuper:    "999",
}

// 各平台单独的映射，没有列出的平台使用默认表
var serverBitrates = map[string]map[model.Quality]string{
	"kuwo": {
		model.QualityLow:      "128",
		model.QualityStandard: "320",
		model.QualityHigh:     "999",
		model.QualitySuper:    "999",
	},
}

// BitrateFor returns the upstream bitrate parameter for quality on server.
func BitrateFor(server string, quality model.Quality) string {
	quality = model.ParseQuality(string(quality))
	if table, ok := serverBitrates[server]; ok {
		if br, ok := table[quality]; ok {
			return br
		}
	}
	return defaultBitrates[quality]
}
