package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var playlistCmd = &cobra.Command{
	Use:     "playlist <id|url>",
	Short:   "获取歌单",
	Long:    `支持歌单 ID 以及网易云、QQ 音乐、酷我、酷狗的分享链接`,
	Example: "metinghub playlist https://music.163.com/#/playlist?id=3778678",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res := newPlugin().GetPlaylist(cmd.Context(), args[0])
		if res.Playlist == nil {
			return fmt.Errorf("获取歌单失败: %s", res.Error)
		}

		pl := res.Playlist
		fmt.Printf("歌单: %s (%s:%s)\n", pl.Title, pl.Source, pl.ID)
		if pl.Creator != "" {
			fmt.Printf("创建者: %s\n", pl.Creator)
		}
		fmt.Printf("共 %d 首歌曲:\n", len(pl.Tracks))
		for i, song := range pl.Tracks {
			fmt.Printf("%d. %s - %s [%s]\n", i+1, song.Title, song.Artist, song.Album)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(playlistCmd)
}
