package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"resume-tailor-backend/internal/shared/config"
	"resume-tailor-backend/internal/shared/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	r := server.NewRouter(ctx, cfg)

	addr := server.Addr(cfg.Port)
	log.Printf("Starting API server on %s", addr)

	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
