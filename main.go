package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"voice-orders/internal/server"
	"voice-orders/pkg/config"
	"voice-orders/pkg/logger"
)

func main() {
	port := flag.Int("port", 0, "HTTP port (overrides config)")
	configPath := flag.String("config", "", "Path to optional YAML config file")
	flag.Parse()

	log := logger.NewLogger("voice-orders")

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Error("startup", "config_load_failed", "Failed to load configuration", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Port = *port
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(cfg, log)
	if err := srv.Start(ctx); err != nil {
		log.Error("startup", "server_failed", "Server exited with error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
