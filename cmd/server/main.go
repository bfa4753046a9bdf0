package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"movingday/internal/api"
	"movingday/internal/assessment"
	"movingday/internal/catalog"
	"movingday/internal/config"
	"movingday/internal/db"
	"movingday/internal/engine"
	"movingday/internal/logger"
	redisdb "movingday/internal/redis"
	"movingday/internal/task"
)

func main() {
	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := db.Init(cfg); err != nil {
		log.Fatalw("db init failed", "err", err)
	}
	log.Infow("database connected and migrated")
	rdb := redisdb.NewClient(cfg)

	source := catalog.NewCachedSource(
		catalog.NewGormSource(db.DB),
		rdb,
		time.Duration(cfg.Catalog.CacheTTLMinutes)*time.Minute,
	)

	// Seed the catalog from disk; the entries are the authored source of
	// truth and re-seeding upserts by id.
	if cfg.Catalog.SeedPath != "" {
		entries, err := catalog.LoadSeed(cfg.Catalog.SeedPath)
		if err != nil {
			log.Fatalw("catalog seed failed", "err", err)
		}
		if err := catalog.Seed(db.DB, entries); err != nil {
			log.Fatalw("catalog seed failed", "err", err)
		}
		if err := source.Invalidate(context.Background()); err != nil {
			log.Warnw("catalog cache invalidation failed", "err", err)
		}
		log.Infow("catalog seeded", "entries", len(entries))
	}

	tasks := task.NewGormStore(db.DB)
	answers := assessment.NewGormStore(db.DB)
	gen := engine.NewGenerator(source, tasks, answers, time.Now, log)

	r := api.SetupRouter(cfg, rdb, api.Deps{
		Generator: gen,
		Tasks:     tasks,
		Answers:   answers,
	})
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Infow("starting server", "addr", addr, "subpath", cfg.Server.Subpath)
	if err := r.Run(addr); err != nil {
		log.Fatalw("server error", "err", err)
	}
}
