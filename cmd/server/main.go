package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/lumenview/lumen/internal/notify"
	"github.com/lumenview/lumen/internal/store"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	env := LoadEnvironment()

	if env.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// The catalog lives on a filesystem sandboxed to the data directory.
	if err := os.MkdirAll(env.DataDir, 0o755); err != nil {
		log.Fatal().Err(err).Msg("failed to create data directory")
	}
	fs := afero.NewBasePathFs(afero.NewOsFs(), env.DataDir)
	st := store.New(fs)
	log.Info().Str("data_dir", env.DataDir).Msg("catalog store initialized")

	var rdb *redis.Client
	if env.RedisAddress != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     env.RedisAddress,
			Username: env.RedisUsername,
			Password: env.RedisPassword,
		})
	}

	var notifier *notify.Notifier
	if env.MQTTBroker != "" {
		client, err := notify.ConnectMQTT(env.MQTTBroker, "lumen-server")
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to MQTT broker")
		}
		notifier = notify.New(client, rdb)
	} else {
		notifier = notify.New(nil, rdb)
	}
	defer notifier.Close()

	uploads := InitStorage(env)

	r := gin.Default()
	RegisterRoutes(r, env, st, uploads, notifier, rdb)

	httpServer := &http.Server{
		Addr:    env.ServerAddress,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("address", env.ServerAddress).Msg("server starting")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
