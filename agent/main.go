package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rakushite-inc/demo-obentou/config"
	"github.com/rakushite-inc/demo-obentou/events"
	"github.com/rakushite-inc/demo-obentou/generator"
	"github.com/rakushite-inc/demo-obentou/provider"
	"github.com/rakushite-inc/demo-obentou/store"
	"golang.org/x/sync/errgroup"
)

type Agent struct {
	config   *config.Config
	handler  *Handler
	upgrader websocket.Upgrader
}

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

	loc, err := cfg.LLM.Location()
	if err != nil {
		log.Fatalf("invalid llm.timezone: %v", err)
	}
	now := func() time.Time { return time.Now().In(loc) }

	db, err := store.Open(cfg.Database)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := db.Migrate(ctx); err != nil {
		log.Fatal(err)
	}

	completer, err := provider.New(cfg)
	var unavailable *generator.ConfigurationError
	if err != nil {
		if !errors.As(err, &unavailable) {
			log.Fatal(err)
		}
		slog.Warn("menu generation is disabled", "err", err)
	}
	gen := generator.New(completer, generator.WithClock(now))

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.Nats.Enabled {
		nc, err := events.Connect(cfg.Nats)
		if err != nil {
			log.Fatal(err)
		}
		defer nc.Close()
		publisher = nc.Publisher(cfg.Nats.GeneratedSubject)
	}

	handler := NewHandler(gen, db, publisher, now)
	if unavailable != nil {
		handler.DisableGeneration(unavailable)
	}

	agent := &Agent{
		handler:  handler,
		config:   cfg,
		upgrader: websocket.Upgrader{},
	}

	if err := agent.Run(ctx); err != nil {
		log.Fatalf("failed to run the agent: %v", err)
	}
}

func (a *Agent) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    a.config.Server.Address(),
		Handler: a.Router(),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("agent listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (a *Agent) Router() *gin.Engine {
	r := gin.Default()

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.GET("/options", a.options)
	api.GET("/sample-menus", a.sampleMenus)
	api.POST("/generate-menu", a.generateMenu)

	api.GET("/menus", a.listMenus)
	api.POST("/menus", a.saveMenus)
	api.GET("/menus/stats", a.menuStats)
	api.DELETE("/menus/:id", a.deleteMenu)
	api.PATCH("/menus/:id/selected", a.setSelected)

	api.GET("/generations", a.listGenerations)

	r.GET("/ws/generate", a.streamGeneration)

	return r
}
