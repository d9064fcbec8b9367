package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/tubebridge/server/internal/controller"
	"github.com/tubebridge/server/internal/repository/connection/inmemory"
	sessionRedis "github.com/tubebridge/server/internal/repository/session/redis"
	"github.com/tubebridge/server/internal/service/player"
	"github.com/tubebridge/server/pkg/ctxlogger"
	"github.com/tubebridge/server/pkg/redisclient"
	"github.com/tubebridge/server/pkg/ytvideodata"
)

type AppConfig struct {
	Host                    string `json:"host"`
	Port                    int    `json:"port"`
	LogLevel                string `json:"log_level"`
	ControlsHideTimeoutMs   int    `json:"controls_hide_timeout_ms"`
	FullscreenReseekDelayMs int    `json:"fullscreen_reseek_delay_ms"`
	SessionTTLHours         int    `json:"session_ttl_hours"`
	RedisHost               string `json:"redis_host"`
	RedisPort               int    `json:"redis_port"`
	RedisPassword           string `json:"-"`
}

func (cfg *AppConfig) Validate() error {
	if cfg.ControlsHideTimeoutMs < 1 {
		return fmt.Errorf("controls hide timeout must be greater than 0")
	}
	if cfg.FullscreenReseekDelayMs < 1 {
		return fmt.Errorf("fullscreen reseek delay must be greater than 0")
	}
	if cfg.SessionTTLHours < 1 {
		return fmt.Errorf("session ttl must be greater than 0")
	}
	return nil
}

func Run(ctx context.Context, cfg *AppConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logLevel := slog.LevelInfo
	if err := logLevel.UnmarshalText([]byte(strings.ToUpper(cfg.LogLevel))); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	h := ctxlogger.ContextHandler{
		Handler: slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		}),
	}
	logger := slog.New(&h)

	rc, err := redisclient.NewRedisClient(ctx, &redisclient.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
	})
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	defer rc.Close()

	sessionRepo := sessionRedis.NewRepo(rc, time.Duration(cfg.SessionTTLHours)*time.Hour)
	connRepo := inmemory.NewRepo()
	playerService := player.NewService(sessionRepo, connRepo, ytvideodata.NewClient(), logger, &player.Config{
		ControlsHideTimeout:   time.Duration(cfg.ControlsHideTimeoutMs) * time.Millisecond,
		FullscreenReseekDelay: time.Duration(cfg.FullscreenReseekDelayMs) * time.Millisecond,
	})
	controller := controller.NewController(playerService, logger)
	server := &http.Server{Addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port), Handler: controller.GetMux()}

	// graceful shutdown
	serverCtx, serverStopCtx := context.WithCancel(ctx)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-sig

		shutdownCtx, c := context.WithTimeout(serverCtx, 30*time.Second)
		defer c()

		go func() {
			<-shutdownCtx.Done()
			if shutdownCtx.Err() == context.DeadlineExceeded {
				log.Fatal("graceful shutdown timed out.. forcing exit.")
			}
		}()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Fatal(err)
		}
		serverStopCtx()
	}()

	logger.InfoContext(serverCtx, "starting server", "address", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	<-serverCtx.Done()

	return nil
}
