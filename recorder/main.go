package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/nats-io/nats.go"
	"github.com/rakushite-inc/demo-obentou/config"
	"github.com/rakushite-inc/demo-obentou/events"
	"github.com/rakushite-inc/demo-obentou/store"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to the config file")
	flag.Parse()

	if err := config.LoadEnvFile(); err != nil {
		log.Fatal(err)
	}
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := store.Open(cfg.Database)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatal(err)
	}

	nc, err := events.Connect(cfg.Nats)
	if err != nil {
		log.Fatal(err)
	}
	defer nc.Close()

	handler := NewHandler(db)

	slog.Info("starting recorder", "subject", cfg.Nats.GeneratedSubject, "workers", cfg.Recorder.Workers, "queueSize", cfg.Recorder.QueueSize)

	pool := NewWorkerPool(ctx, cfg.Recorder.Workers, cfg.Recorder.QueueSize, handler.HandleMenusGenerated)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return nc.Consume(ctx, cfg.Nats.GeneratedSubject, func(m *nats.Msg) {
			pool.Submit(ctx, JobFromMsg(m))
		})
	})

	if err := g.Wait(); err != nil {
		slog.Error("subscription stopped", "error", err)
	}

	slog.Info("shutting down")
	pool.Stop()
	pool.Wait()
}
