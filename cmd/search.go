package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"MetingHub/model"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var (
	searchKeyword string
	searchPage    int
	searchPick    bool
	pickQuality   string
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "搜索歌曲",
	Long:  `按关键词搜索歌曲，--pick 可以交互选择一首并获取播放地址`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if searchKeyword == "" && len(args) > 0 {
			searchKeyword = args[0]
		}
		if searchKeyword == "" {
			return errors.New("请输入要搜索的歌曲名称")
		}

		p := newPlugin()
		fmt.Printf("正在搜索: %s\n", searchKeyword)
		res := p.Search(cmd.Context(), searchKeyword, searchPage, "music")
		if len(res.Data) == 0 {
			if res.Error != "" {
				fmt.Println(res.Error)
			} else {
				fmt.Println("未找到相关歌曲")
			}
			return nil
		}

		fmt.Printf("\n找到 %d 首歌曲:\n", len(res.Data))
		for i, song := range res.Data {
			fmt.Printf("%d. %s - %s [%s] (%s:%s)\n", i+1, song.Title, song.Artist, song.Album, song.Source, song.ID)
		}
		if !res.IsEnd {
			fmt.Printf("\n还有更多结果，使用 -p %d 查看下一页\n", searchPage+1)
		}

		if !searchPick {
			return nil
		}
		choice, err := pickTrack(res.Data)
		if err != nil {
			return err
		}

		song := res.Data[choice]
		media := p.GetPlayableURL(cmd.Context(), song, model.ParseQuality(pickQuality))
		fmt.Printf("\n歌曲: %s\n", song.Title)
		fmt.Printf("艺术家: %s\n", song.Artist)
		fmt.Printf("专辑: %s\n", song.Album)
		if !media.OK() {
			return fmt.Errorf("获取播放地址失败: %s", media.Error)
		}
		fmt.Printf("播放地址: %s\n", media.URL)
		return nil
	},
}

func pickTrack(tracks []model.Track) (int, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return 0, fmt.Errorf("inspect stdin: %w", err)
	}
	if stat.Mode()&os.ModeCharDevice == 0 {
		return 0, errors.New("交互选择需要终端，请去掉 --pick 后使用 url 子命令")
	}

	options := make([]huh.Option[int], 0, len(tracks))
	for i, song := range tracks {
		label := fmt.Sprintf("%s - %s [%s]", song.Title, song.Artist, formatDuration(song.Duration))
		options = append(options, huh.NewOption(label, i))
	}

	var choice int
	err = huh.NewSelect[int]().
		Title("请选择要获取播放地址的歌曲").
		Options(options...).
		Value(&choice).
		Run()
	if err != nil {
		return 0, fmt.Errorf("run interactive track selector: %w", err)
	}
	return choice, nil
}

func formatDuration(ms int64) string {
	if ms <= 0 {
		return "--:--"
	}
	d := time.Duration(ms) * time.Millisecond
	return fmt.Sprintf("%02d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVarP(&searchKeyword, "keyword", "k", "", "要搜索的歌曲名称")
	searchCmd.Flags().IntVarP(&searchPage, "page", "p", 1, "页码")
	searchCmd.Flags().BoolVar(&searchPick, "pick", false, "交互选择一首歌曲并获取播放地址")
	searchCmd.Flags().StringVarP(&pickQuality, "quality", "q", "standard", "音质 low|standard|high|super")
}
