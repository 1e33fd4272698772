package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Raiyyanpatel/PrepVerse/internal/api"
	"github.com/Raiyyanpatel/PrepVerse/internal/app/service"
	"github.com/Raiyyanpatel/PrepVerse/internal/common/security"
	"github.com/Raiyyanpatel/PrepVerse/internal/domain/repository"
	"github.com/Raiyyanpatel/PrepVerse/internal/platform/config"
	"github.com/Raiyyanpatel/PrepVerse/internal/platform/database"
	"github.com/Raiyyanpatel/PrepVerse/internal/platform/executor"
	"github.com/Raiyyanpatel/PrepVerse/internal/platform/redisconn"

	"github.com/lmittmann/tint"
)

func main() {
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.TimeOnly,
	})))

	config.Load()
	security.InitJWT()

	database.Connect()
	defer database.Close()

	redisconn.Connect()
	defer redisconn.Close()

	questionRepo := repository.NewPgQuestionRepository(database.DB)

	engine := executor.NewClient(
		config.AppConfig.EngineBaseURL,
		config.AppConfig.EngineAPIKey,
		config.AppConfig.EngineAPIHost,
	)
	if config.AppConfig.EngineAPIKey == "" {
		slog.Warn("no engine API key configured; engine calls will likely be rejected")
	}

	evaluationService := service.NewEvaluationService(questionRepo, engine)

	router := api.NewRouter(evaluationService, questionRepo, redisconn.RDB)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 150 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	<-stop

	slog.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "err", err)
		os.Exit(1)
	}
	slog.Info("server stopped gracefully")
}
