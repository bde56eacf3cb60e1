package main

import (
	"log"

	"github.com/joho/godotenv"

	"caseflow/api"
	"caseflow/internal/config"
	"caseflow/internal/container"
)

func main() {
	// Missing .env is fine; the environment may be set by the deployment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	c, err := container.New(cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer c.Close()

	server := api.NewServer(c.CaseService, c.Batch, c.Logger, cfg.Server.GinMode)
	if err := server.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
