package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/datelohan/projetorh/internal/app/seed"
	"github.com/datelohan/projetorh/pkg/config"
	"github.com/datelohan/projetorh/pkg/logger"
)

func main() {
	timeout := flag.Duration("timeout", time.Minute, "seed timeout")
	flag.Parse()

	log := logger.New("seed")

	cfg, err := config.LoadAPIConfig()
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := seed.New(pool, log).Run(ctx); err != nil {
		log.Error("seed failed", "error", err)
		os.Exit(1)
	}
}
