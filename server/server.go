package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"MetingHub/config"
	"MetingHub/core/plugin"
	"MetingHub/logger"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// NewRouter 注册全部 API 路由
func NewRouter(p plugin.MusicPlugin) *mux.Router {
	h := NewMusicHandler(p)
	router := mux.NewRouter()

	router.Use(corsMiddleware, requestIDMiddleware, accessLogMiddleware)

	router.HandleFunc("/healthz", h.HandleHealth).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/search", h.HandleSearch).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/playlist", h.HandlePlaylist).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/track/import", h.HandleImportTrack).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/track/{source}/{id}", h.HandleTrack).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/track/{source}/{id}/url", h.HandleTrackURL).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/track/{source}/{id}/lyric", h.HandleLyric).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/album/{source}/{id}", h.HandleAlbum).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/artist/{source}/{id}", h.HandleArtist).Methods(http.MethodGet, http.MethodOptions)

	return router
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		w.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")
		w.Header().Set("Access-Control-Max-Age", "86400") // 24 hours

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func accessLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("[HTTP] 请求完成",
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.Int("status", rec.status),
			logger.String("requestId", w.Header().Get("X-Request-ID")),
			logger.Duration("elapsed", time.Since(start)))
	})
}

// Start 启动 HTTP 服务，收到 SIGINT/SIGTERM 后优雅退出
func Start(cfg *config.Config) error {
	agg := plugin.NewFromConfig(cfg)

	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      NewRouter(agg),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2*cfg.HTTPTimeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 创建一个通道来接收操作系统信号
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("[Server] 服务启动",
			logger.String("addr", cfg.ListenAddr),
			logger.String("preferredServer", cfg.PreferredServer),
			logger.Bool("proxy", cfg.ProxyURL != ""),
			logger.Bool("unlock", cfg.UnlockAPIURL != ""))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-stop:
	}

	logger.Info("[Server] 正在关闭服务")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return err
	}
	logger.Info("[Server] 服务已停止")
	return nil
}
