package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"MetingHub/config"
	"MetingHub/core/plugin"
	"MetingHub/logger"

	"github.com/spf13/cobra"
)

var (
	cfg      *config.Config
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "metinghub",
	Short: "MetingHub 音乐元数据聚合服务",
	Long:  `聚合 Meting、GD 音乐台等上游接口，提供搜索、歌曲详情、播放地址、歌词和歌单查询`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		return logger.InitLogger(logger.NewConfig(cfg.LogLevel, cfg.LogFile))
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "日志级别 debug|info|warn|error（默认读取 LOG_LEVEL）")
}

// newPlugin 命令行子命令共用的聚合器
func newPlugin() plugin.MusicPlugin {
	return plugin.NewFromConfig(cfg)
}

// Execute executes the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
