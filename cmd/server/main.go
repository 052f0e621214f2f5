package main

import (
	"net/http"
	"os"
	"time"

	"github.com/AjilAshok/ai-access-platfrom/internal/config"
	"github.com/AjilAshok/ai-access-platfrom/internal/db"
	"github.com/AjilAshok/ai-access-platfrom/internal/generation"
	internalhttp "github.com/AjilAshok/ai-access-platfrom/internal/http"
	"github.com/AjilAshok/ai-access-platfrom/internal/logging"
	"github.com/AjilAshok/ai-access-platfrom/internal/modelregistry"
	"github.com/AjilAshok/ai-access-platfrom/internal/provider"
	"github.com/AjilAshok/ai-access-platfrom/internal/quota"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	if errEnv := godotenv.Load(); errEnv != nil {
		log.Debugf("no .env file loaded: %v", errEnv)
	}

	configPath := os.Getenv("CONFIG_PATH")
	cfg, errLoad := config.Load(configPath)
	if errLoad != nil {
		log.Fatalf("load config: %v", errLoad)
	}
	logging.Setup(cfg.Logging)

	conn, errOpen := db.Open(cfg.Database.DSN)
	if errOpen != nil {
		log.Fatalf("open database: %v", errOpen)
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		log.Fatalf("migrate database: %v", errMigrate)
	}

	registry := modelregistry.Default()
	if len(cfg.Models) > 0 {
		registry = modelregistry.New(cfg.Models)
	}

	gate := quota.NewGate(conn)
	completer := provider.NewOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL)
	generator := generation.NewGenerator(conn, registry, gate, completer)

	router := internalhttp.NewRouter(cfg, conn, registry, gate, generator)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	log.Infof("server listening on %s", cfg.Server.Addr)
	if errServe := srv.ListenAndServe(); errServe != nil {
		log.Fatalf("server stopped: %v", errServe)
	}
}
