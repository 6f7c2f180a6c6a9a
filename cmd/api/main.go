package main

import (
	"context"
	"log"

	"stackadvisor-backend/internal/bootstrap"
	"stackadvisor-backend/internal/shared/config"
	"stackadvisor-backend/internal/shared/server"
)

func main() {
	cfg := config.Load()
	app := bootstrap.Build(context.Background(), cfg)
	defer app.Close()

	addr := server.Addr(cfg.Port)
	log.Printf("Starting API server on %s", addr)

	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
