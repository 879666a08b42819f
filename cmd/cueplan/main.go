package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mediehuset/cueplan/internal/board"
	"github.com/mediehuset/cueplan/internal/config"
	"github.com/mediehuset/cueplan/internal/engine"
	"github.com/mediehuset/cueplan/internal/logger"
	"github.com/mediehuset/cueplan/internal/scheduler"
	"github.com/mediehuset/cueplan/internal/source"
	"github.com/mediehuset/cueplan/internal/status"
	"github.com/mediehuset/cueplan/internal/token"
	"github.com/mediehuset/cueplan/internal/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("fatal: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Output: cfg.LogFile,
		Pretty: cfg.Env == "development",
	}); err != nil {
		panic(err)
	}

	log := logger.Get()
	log.Info().
		Str("app", cfg.AppName).
		Str("version", cfg.AppVersion).
		Bool("online", cfg.RunOnline).
		Bool("print", cfg.RunPrint).
		Msg("starting")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tokens, err := token.NewProvider(ctx, token.Config{
		Bucket:    cfg.BucketName,
		Region:    cfg.BucketRegion,
		Endpoint:  cfg.BucketEndpoint,
		AccessKey: cfg.BucketAccessKey,
		SecretKey: cfg.BucketSecretKey,
		ObjectKey: cfg.BucketObjectKey,
	}, token.NewCache(cfg.TokenCacheTTL), logger.With("token"))
	if err != nil {
		log.Fatal().Err(err).Msg("token provider setup failed")
	}

	httpClient := transport.New(cfg.HTTPTimeout)
	sourceClient := source.NewClient(httpClient, tokens, cfg.SourceSearchURL, cfg.PublicationCode, logger.With("source"))
	boardClient := board.NewClient(httpClient, cfg.BoardBaseURL, cfg.BoardAPIKey, cfg.BoardAPIToken, logger.With("board"))

	eng := engine.New(sourceClient, boardClient, cfg, logger.With("engine"))

	var tasks []*scheduler.Task
	tasks = append(tasks, &scheduler.Task{
		Name:     "new-check",
		Interval: cfg.NewCheckInterval,
		Run: func(ctx context.Context) error {
			if cfg.RunOnline {
				if err := eng.CheckNew(ctx, config.Online); err != nil {
					return err
				}
			}
			if cfg.RunPrint {
				if err := eng.CheckNew(ctx, config.Print); err != nil {
					return err
				}
			}
			return nil
		},
	})
	if cfg.RunOnline {
		tasks = append(tasks, &scheduler.Task{
			Name:     "online-reconcile",
			Interval: cfg.OnlineReconcileInterval,
			Run: func(ctx context.Context) error {
				return eng.Reconcile(ctx, config.Online)
			},
		})
	}
	if cfg.RunPrint {
		tasks = append(tasks, &scheduler.Task{
			Name:     "print-reconcile",
			Interval: cfg.PrintReconcileInterval,
			Run: func(ctx context.Context) error {
				return eng.Reconcile(ctx, config.Print)
			},
		})
	}
	if cfg.HeartbeatCardID != "" {
		tasks = append(tasks, &scheduler.Task{
			Name:     "heartbeat",
			Interval: cfg.HeartbeatInterval,
			Run: func(ctx context.Context) error {
				return boardClient.Heartbeat(ctx, cfg.HeartbeatCardID)
			},
		})
	}

	sched := scheduler.New(scheduler.RealClock(), logger.With("scheduler"), tasks...)

	srv := status.NewServer(cfg.StatusPort, cfg.AppName, cfg.AppVersion, sched, logger.With("status"))
	go func() {
		if err := srv.Listen(); err != nil {
			log.Error().Err(err).Msg("status server stopped")
		}
	}()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		sig := <-quit
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		cancel()
	}()

	err = sched.Start(ctx)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if serr := srv.Shutdown(shutdownCtx); serr != nil {
		log.Error().Err(serr).Msg("status server shutdown failed")
	}

	if err != nil && err != context.Canceled {
		log.Error().Err(err).Msg("scheduler error")
		os.Exit(1)
	}
	log.Info().Msg("exited cleanly")
}
