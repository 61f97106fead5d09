package main

import (
	"bitwise74/file-linker/app"
	"bitwise74/file-linker/config"
	"bitwise74/file-linker/internal"
	"bitwise74/file-linker/internal/bot"
	"bitwise74/file-linker/internal/model"
	"bitwise74/file-linker/internal/resolver"
	"bitwise74/file-linker/internal/service"
	"bitwise74/file-linker/internal/store"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	err := config.Setup()
	if err != nil {
		panic(err)
	}

	s := config.Get()

	if err := app.MakeLogger(s.LogLevel); err != nil {
		panic(err)
	}
	defer zap.L().Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, s); err != nil {
		zap.L().Fatal("Server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, s config.Settings) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	links, err := store.Open[model.Link](ctx, s.StoreURL, store.Options{
		CleanupInterval: s.CleanupInterval,
		Timeout:         2 * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to open store, %w", err)
	}
	defer links.Close()

	zap.L().Info("Store ready", zap.String("kind", links.Kind()))

	registry := service.NewRegistry(links, service.RegistryOpts{
		DefaultTTL: s.LinkTTL,
		AdminID:    s.AdminID,
	})

	var api *tgbotapi.BotAPI
	if s.BotEnabled || s.ResolverType == "telegram" {
		api, err = tgbotapi.NewBotAPI(s.BotToken)
		if err != nil {
			return fmt.Errorf("failed to initialize telegram bot, %w", err)
		}
	}

	var objects service.ObjectResolver
	switch s.ResolverType {
	case "s3":
		objects, err = resolver.NewS3(ctx, resolver.S3Config{
			AccessKey:       s.S3.AccessKey,
			SecretAccessKey: s.S3.SecretAccessKey,
			Region:          s.S3.Region,
			Bucket:          s.S3.Bucket,
			Endpoint:        s.S3.Endpoint,
			PresignTTL:      s.S3.PresignTTL,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client, %w", err)
		}
	default:
		objects = resolver.NewTelegram(api)
	}

	if s.BotEnabled {
		b := bot.New(api, registry, bot.Config{
			BaseURL: s.BaseURL,
			MaxSize: s.MaxUploadSize,
		})
		botDone := make(chan struct{})
		go func() {
			defer close(botDone)
			b.Run(ctx, api)
		}()

		// In-flight updates finish before the sessions go away
		defer func() {
			cancel()
			<-botDone
			b.Close()
		}()
	}

	d := &internal.Deps{
		Registry:      registry,
		Resolver:      objects,
		BaseURL:       s.BaseURL,
		MaxUploadSize: s.MaxUploadSize,
	}

	srv := &http.Server{
		Addr: fmt.Sprintf(":%d", s.Port),
		Handler: app.NewRouter(ctx, d, app.Options{
			CORS:      s.CORS,
			RateLimit: s.RateLimit,
			JWTSecret: s.JWTSecret,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			zap.L().Error("Failed to shut down server", zap.Error(err))
		}
	}()

	zap.L().Info("Server starting", zap.Int("port", s.Port), zap.String("base_url", s.BaseURL))

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	zap.L().Info("Server stopped")
	return nil
}
