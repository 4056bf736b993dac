package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	router "github.com/oatrn/brawlhq/internal/adapters/http"
	"github.com/oatrn/brawlhq/internal/adapters/cloudinary"
	"github.com/oatrn/brawlhq/internal/adapters/postgres"
	"github.com/oatrn/brawlhq/internal/adapters/rcache"
	"github.com/oatrn/brawlhq/internal/app"
	"github.com/oatrn/brawlhq/internal/auth"
	"github.com/oatrn/brawlhq/internal/config"
	"github.com/oatrn/brawlhq/internal/core"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so everything below can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := postgres.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer db.Close()

	cache, err := rcache.Connect(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer cache.Close()

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	uploader := cloudinary.NewClient(cloudinary.Config{
		CloudName: cfg.Cloudinary.CloudName,
		APIKey:    cfg.Cloudinary.APIKey,
		APISecret: cfg.Cloudinary.APISecret,
	})

	brawlerRepo := postgres.NewBrawlerRepository(db)
	missionRepo := postgres.NewMissionRepository(db)
	crewRepo := postgres.NewCrewRepository(db)
	messageRepo := postgres.NewMessageRepository(db)

	svc := router.Services{
		Brawlers: app.NewBrawlerService(brawlerRepo, tokens, uploader),
		Missions: app.NewMissionService(missionRepo, missionRepo, cache, uploader),
		Crew:     app.NewCrewService(crewRepo, missionRepo, cache),
		Chat:     app.NewChatService(messageRepo, cache),
		Rooms:    core.NewRegistry(),
		Tokens:   tokens,
	}

	r := router.SetupRouter(ctx, cfg, svc)
	addr := fmt.Sprintf(":%d", cfg.Port)

	// No WriteTimeout: websocket connections are long-lived.
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("brawlhq server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
}
