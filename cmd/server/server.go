package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	herogw "github.com/crawlforge/dungeon-api/internal/clients/hero"
	"github.com/crawlforge/dungeon-api/internal/config"
	"github.com/crawlforge/dungeon-api/internal/engine/combat"
	"github.com/crawlforge/dungeon-api/internal/engine/mapgen"
	"github.com/crawlforge/dungeon-api/internal/events"
	v1 "github.com/crawlforge/dungeon-api/internal/handlers/api/v1"
	dungeonsvc "github.com/crawlforge/dungeon-api/internal/orchestrators/dungeon"
	fightsvc "github.com/crawlforge/dungeon-api/internal/orchestrators/fight"
	gamesvc "github.com/crawlforge/dungeon-api/internal/orchestrators/game"
	"github.com/crawlforge/dungeon-api/internal/pkg/clock"
	"github.com/crawlforge/dungeon-api/internal/pkg/idgen"
	"github.com/crawlforge/dungeon-api/internal/pkg/rng"
	redisclient "github.com/crawlforge/dungeon-api/internal/redis"
	dungeonrepo "github.com/crawlforge/dungeon-api/internal/repositories/dungeon"
	gamerepo "github.com/crawlforge/dungeon-api/internal/repositories/game"
	"github.com/crawlforge/dungeon-api/internal/repositories/mobtemplate"
)

var httpPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP server",
	Long:  `Start the dungeon API HTTP server with all configured services.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().IntVar(&httpPort, "port", 0, "HTTP server port (overrides DUNGEON_API_HTTP_PORT)")
}

func runServer(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("received shutdown signal, gracefully stopping")
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if httpPort != 0 {
		cfg.HTTPPort = httpPort
	}

	router, err := buildRouter(ctx, cfg)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("http server starting", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down http server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("graceful shutdown failed, forcing close", "error", err)
			_ = srv.Close()
		}
		slog.Info("server stopped")
		return nil
	case err := <-errChan:
		return err
	}
}

// buildRouter wires repositories, engines, and orchestrators into the
// HTTP handler
func buildRouter(ctx context.Context, cfg *config.Config) (*gin.Engine, error) {
	client, err := redisclient.NewClient(cfg.RedisAddr, nil)
	if err != nil {
		return nil, err
	}

	gameRepo := gamerepo.NewRedisRepository(client)
	dungeonRepo := dungeonrepo.NewRedisRepository(client)
	templateRepo := mobtemplate.NewRedisRepository(client)

	if err := seedMobTemplates(ctx, templateRepo); err != nil {
		return nil, err
	}

	catalog := mapgen.DefaultCatalog()
	if cfg.CatalogPath != "" {
		catalog, err = mapgen.LoadCatalog(cfg.CatalogPath)
		if err != nil {
			return nil, err
		}
		slog.Info("room catalog loaded", "path", cfg.CatalogPath, "types", len(catalog.Types))
	}

	generator, err := mapgen.New(&mapgen.Config{
		Catalog:     catalog,
		Roller:      rng.New(),
		IDGenerator: idgen.NewPrefixed("room"),
	})
	if err != nil {
		return nil, err
	}

	heroGateway, err := herogw.NewHTTPGateway(&herogw.Config{BaseURL: cfg.HeroServiceURL})
	if err != nil {
		return nil, err
	}

	sink := events.NewRedisPublisher(client, cfg.EventChannel)

	dungeons, err := dungeonsvc.NewOrchestrator(&dungeonsvc.Config{
		Generator:   generator,
		Repo:        dungeonRepo,
		IDGenerator: idgen.NewPrefixed("dungeon"),
		EventSink:   sink,
	})
	if err != nil {
		return nil, err
	}

	resolver, err := combat.NewResolver(&combat.Config{Roller: rng.New()})
	if err != nil {
		return nil, err
	}

	fights, err := fightsvc.NewOrchestrator(&fightsvc.Config{
		GameRepo:    gameRepo,
		Resolver:    resolver,
		HeroGateway: heroGateway,
		EventSink:   sink,
		IDGenerator: idgen.NewPrefixed("fight"),
		Clock:       clock.New(),
	})
	if err != nil {
		return nil, err
	}

	games, err := gamesvc.NewOrchestrator(&gamesvc.Config{
		GameRepo:       gameRepo,
		DungeonRepo:    dungeonRepo,
		MobTemplates:   templateRepo,
		DungeonService: dungeons,
		FightService:   fights,
		HeroGateway:    heroGateway,
		Roller:         rng.New(),
		IDGenerator:    idgen.NewPrefixed("game"),
		EventSink:      sink,
		Clock:          clock.New(),
	})
	if err != nil {
		return nil, err
	}

	handler, err := v1.NewHandler(&v1.Config{
		DungeonService: dungeons,
		GameService:    games,
		FightService:   fights,
	})
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handler.Register(router)

	return router, nil
}

// seedMobTemplates installs the default mob pool when the catalog is empty
func seedMobTemplates(ctx context.Context, repo mobtemplate.Repository) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing.Templates) > 0 {
		return nil
	}

	seeded, err := repo.Seed(ctx, mobtemplate.SeedInput{Templates: mobtemplate.DefaultTemplates()})
	if err != nil {
		return err
	}

	slog.Info("mob templates seeded", "count", seeded.Seeded)
	return nil
}

// requestLogger logs one line per request with method, path, status,
// and latency
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		slog.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}
