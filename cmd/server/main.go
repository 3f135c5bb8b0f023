package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/ignite/crowdfund/internal/api"
	"github.com/ignite/crowdfund/internal/config"
	"github.com/ignite/crowdfund/internal/repository/dynamo"
	"github.com/ignite/crowdfund/internal/repository/memory"
	"github.com/ignite/crowdfund/internal/repository/postgres"
	redisrepo "github.com/ignite/crowdfund/internal/repository/redis"
	"github.com/ignite/crowdfund/internal/service/campaign"
)

// checkPortAvailable verifies that the target port is not already in use.
// This prevents confusion from stale processes occupying the port.
func checkPortAvailable(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("address %s is already in use: %v\n"+
			"  Hint: run 'lsof -i' to find the blocking process", addr, err)
	}
	ln.Close()
	return nil
}

// newStore builds the campaign store selected by the storage config.
func newStore(ctx context.Context, cfg config.StorageConfig) (campaign.Store, error) {
	switch cfg.Backend {
	case "memory":
		log.Println("[server] WARNING: memory backend is not durable across restarts; use redis/postgres/dynamodb in production")
		return memory.New(), nil
	case "redis":
		return redisrepo.NewFromURL(cfg.RedisURL)
	case "postgres":
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := db.PingContext(pingCtx); err != nil {
			return nil, fmt.Errorf("postgres connection failed: %w", err)
		}
		log.Println("[server] Connected to PostgreSQL")
		return postgres.NewCampaignStore(db), nil
	case "dynamodb":
		return dynamo.New(ctx, cfg.DynamoDBTable, cfg.AWSRegion, cfg.AWSProfile)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

func main() {
	log.Println("[server] Crowdfund campaign ledger starting")

	cfg, err := config.LoadFromEnv("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	addr := cfg.Server.Addr()
	if err := checkPortAvailable(addr); err != nil {
		log.Fatalf("Pre-flight check failed: %v", err)
	}

	ctx := context.Background()
	store, err := newStore(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize %s storage: %v", cfg.Storage.Backend, err)
	}

	svc := campaign.NewService(store, campaign.SystemClock{})
	handlers := api.NewHandlers(svc, campaign.SystemClock{}, cfg.Storage.Backend)
	server := api.NewServer(addr, api.SetupRoutes(handlers))

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[server] Listening on %s (backend=%s)", addr, cfg.Storage.Backend)
		errCh <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatalf("Server error: %v", err)
	case sig := <-sigCh:
		log.Printf("[server] Received %s, shutting down", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("[server] Shutdown error: %v", err)
	}
	log.Println("[server] Stopped")
}
