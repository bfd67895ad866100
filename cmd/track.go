package cmd

import (
	"fmt"
	"strings"

	"MetingHub/model"

	"github.com/spf13/cobra"
)

var (
	urlQuality string
	lyricID    string
)

func trackArg(args []string) model.Track {
	return model.Track{Source: strings.ToLower(args[0]), ID: args[1], LyricID: lyricID}
}

var infoCmd = &cobra.Command{
	Use:     "info <source> <id>",
	Short:   "获取歌曲详情",
	Example: "metinghub info netease 186016",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		track := newPlugin().GetTrackInfo(cmd.Context(), trackArg(args))
		if track.IsPlaceholder() {
			return fmt.Errorf("获取歌曲详情失败: %s", track.Title)
		}
		fmt.Printf("歌曲: %s\n", track.Title)
		fmt.Printf("艺术家: %s\n", track.Artist)
		fmt.Printf("专辑: %s\n", track.Album)
		fmt.Printf("时长: %s\n", formatDuration(track.Duration))
		if track.Artwork != "" {
			fmt.Printf("封面: %s\n", track.Artwork)
		}
		return nil
	},
}

var urlCmd = &cobra.Command{
	Use:     "url <source> <id>",
	Short:   "获取播放地址",
	Example: "metinghub url kuwo 228908 -q high",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		media := newPlugin().GetPlayableURL(cmd.Context(), trackArg(args), model.ParseQuality(urlQuality))
		if !media.OK() {
			return fmt.Errorf("获取播放地址失败: %s", media.Error)
		}
		fmt.Println(media.URL)
		return nil
	},
}

var lyricCmd = &cobra.Command{
	Use:     "lyric <source> <id>",
	Short:   "获取歌词",
	Example: "metinghub lyric netease 186016",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		lrc := newPlugin().GetLyrics(cmd.Context(), trackArg(args))
		if lrc.Error != "" {
			return fmt.Errorf("获取歌词失败: %s", lrc.Error)
		}
		fmt.Println(lrc.RawLrc)
		if lrc.TranslateLrc != "" {
			fmt.Println()
			fmt.Println(lrc.TranslateLrc)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd, urlCmd, lyricCmd)

	urlCmd.Flags().StringVarP(&urlQuality, "quality", "q", "standard", "音质 low|standard|high|super")
	lyricCmd.Flags().StringVar(&lyricID, "lyric-id", "", "歌词 ID（默认与歌曲 ID 相同）")
}
