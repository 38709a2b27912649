package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/lexicology/internal/config"
	"github.com/mrlokans/lexicology/internal/database"
	"github.com/mrlokans/lexicology/internal/database/users"
	"github.com/mrlokans/lexicology/internal/database/words"
	http_controllers "github.com/mrlokans/lexicology/internal/http"
	"github.com/mrlokans/lexicology/internal/scheduler"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Lexicology v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	userRepo := users.NewRepository(db)
	wordRepo := words.NewRepository(db)

	var statsScheduler *scheduler.StatsSnapshotScheduler
	if cfg.StatsSnapshot.Enabled {
		statsScheduler = scheduler.NewStatsSnapshotScheduler(wordRepo, cfg.StatsSnapshot.Schedule)
		if err := statsScheduler.Start(); err != nil {
			log.Fatalf("Failed to start stats snapshot scheduler: %v", err)
		}
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		UserStore: userRepo,
		WordStore: wordRepo,
		Database:  db,
		Version:   version,
	})

	onShutdown := func(ctx context.Context) {
		if statsScheduler != nil {
			statsScheduler.Stop()
		}
	}

	Serve(router, cfg, onShutdown)
}
