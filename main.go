package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"weather-dashboard/internal/config"
	"weather-dashboard/internal/database"
	"weather-dashboard/internal/router"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set OPENWEATHER_API_KEY directly
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	// load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// a missing weather API key is a deployment error, fail at startup
	if cfg.Weather.APIKey == "" {
		log.Fatal("weather API key is not configured (set OPENWEATHER_API_KEY)")
	}
	if cfg.JWT.Secret == "" {
		log.Fatal("jwt secret is not configured")
	}

	// ensure basic directories exist
	if err := ensureDir(filepath.Dir(cfg.Database.Path)); err != nil {
		log.Fatalf("create data dir: %v", err)
	}

	// init database
	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	// run migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	// setup router
	r := router.SetupRouter(cfg, db)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Printf("server listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}

func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
