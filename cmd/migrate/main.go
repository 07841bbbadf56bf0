package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/flexprice/propbill/internal/config"
	"github.com/flexprice/propbill/internal/logger"
	"github.com/flexprice/propbill/migrations"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "Print migration SQL without executing it")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	scripts, err := migrations.Postgres()
	if err != nil {
		logger.Fatalw("Failed to read migrations", "error", err)
	}

	if *dryRun {
		logger.Info("Dry run mode - printing migration SQL without executing")
		for _, m := range scripts {
			fmt.Printf("-- %s\n%s\n", m.Name, m.SQL)
		}
		return
	}

	logger.Infow("Connecting to database", "host", cfg.Postgres.Host)
	db, err := sqlx.Connect("postgres", cfg.Postgres.GetDSN())
	if err != nil {
		logger.Fatalw("Failed to connect to postgres", "error", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Info("Running database migrations...")
	for _, m := range scripts {
		if _, err := db.ExecContext(ctx, m.SQL); err != nil {
			logger.Fatalw("Failed to apply migration", "migration", m.Name, "error", err)
		}
		logger.Infow("Applied migration", "migration", m.Name)
	}

	logger.Info("Migration completed successfully")
}
