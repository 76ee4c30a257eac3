// FILE: cmd/puzzle-server/main.go

// Package main runs the read-only puzzle REST API.
package main

import (
	"flag"
	"log"

	"puzzlekit/internal/config"
	"puzzlekit/internal/service"
	transport "puzzlekit/internal/transport/http"
)

func main() {
	addr := flag.String("addr", "", "listen address (overrides PUZZLEKIT_LISTEN_ADDR)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *addr != "" {
		cfg.ListenAddr = *addr
	}

	svc, err := service.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize service: %v", err)
	}
	defer svc.Close()

	app := transport.NewFiberApp(svc)

	log.Printf("Puzzle server listening on %s", cfg.ListenAddr)
	if err := app.Listen(cfg.ListenAddr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
