package main

import (
	"log"

	appconfig "gallery-backend/internal/config"
)

// Config is the worker-side view of the application config.
type Config struct {
	Environment   string
	RedisEnabled  bool
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Concurrency   int

	App *appconfig.Config
}

// loadConfig loads configuration from environment variables
func loadConfig() *Config {
	cfg, err := appconfig.Load()
	if err != nil {
		log.Fatalf("[Worker] Failed to load config: %v", err)
	}

	log.Printf("[Config] Redis: %s, storage driver: %s",
		cfg.Redis.Addr, cfg.Storage.Driver)

	return &Config{
		Environment:   cfg.App.Environment,
		RedisEnabled:  cfg.Redis.Enabled,
		RedisAddr:     cfg.Redis.Addr,
		RedisPassword: cfg.Redis.Password,
		RedisDB:       cfg.Redis.DB,
		Concurrency:   10,
		App:           cfg,
	}
}
