package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"

	"github.com/bframe197/MilMedMatch/internal/ai"
	"github.com/bframe197/MilMedMatch/internal/bootstrap"
	"github.com/bframe197/MilMedMatch/internal/config"
	"github.com/bframe197/MilMedMatch/internal/server"
	"github.com/bframe197/MilMedMatch/internal/store"
	"github.com/bframe197/MilMedMatch/pkg/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	st := store.New()
	if err := bootstrap.SeedPrograms(st); err != nil {
		logger.Error("failed to seed programs", "error", err)
		os.Exit(1)
	}
	bootstrap.SeedDeadlines(st)
	if cfg.AppEnv == "development" {
		if err := bootstrap.SeedAdminUser(st, logger); err != nil {
			logger.Error("failed to seed admin user", "error", err)
			os.Exit(1)
		}
	}

	deps := server.Deps{}

	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error("invalid REDIS_URL", "error", err)
			os.Exit(1)
		}
		deps.Redis = redis.NewClient(opts)
		if err := deps.Redis.Ping(context.Background()).Err(); err != nil {
			logger.Warn("redis unreachable, live notifications and logout revocation disabled", "error", err)
			deps.Redis = nil
		}
	} else {
		logger.Warn("REDIS_URL not set, live notifications and logout revocation disabled")
	}

	if cfg.MeiliSearchHost != "" {
		deps.Meili = meilisearch.New(cfg.MeiliSearchHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	}

	if cfg.CloudinaryURL != "" {
		imageStorer, err := storage.NewCloudinaryStorage()
		if err != nil {
			logger.Warn("cloudinary unavailable, generated images fall back to data URIs", "error", err)
		} else {
			deps.ImageStorer = imageStorer
		}
	}

	if cfg.GeminiAPIKey != "" {
		aiClient, err := ai.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiTextModel, cfg.GeminiImageModel)
		if err != nil {
			logger.Warn("gemini unavailable, advisor falls back to canned responses", "error", err)
		} else {
			deps.AI = aiClient
			defer aiClient.Close()
		}
	} else {
		logger.Warn("GEMINI_API_KEY not set, advisor falls back to canned responses")
	}

	srv := server.NewServer(cfg, st, deps)

	logger.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv)
	if err := srv.Run(":" + cfg.Port); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}
