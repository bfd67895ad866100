package cmd

import (
	"MetingHub/server"

	"github.com/spf13/cobra"
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动 HTTP 服务",
	Long:  `启动 JSON API 服务，提供 /api/search、/api/track、/api/playlist 等接口`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if listenAddr != "" {
			cfg.ListenAddr = listenAddr
		}
		return server.Start(cfg)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&listenAddr, "addr", "a", "", "监听地址（默认读取 LISTEN_ADDR）")
}
