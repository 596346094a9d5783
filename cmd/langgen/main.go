package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"langgen/internal/engine"
)

func init() {
	// load .env
	_ = godotenv.Load()
}

func main() {
	cfg, err := engine.LoadConfig(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	if err := engine.SetLogLevel(cfg.LogLevel); err != nil {
		log.Fatal(err)
	}

	if err := getRootCmd(&cfg).Execute(); err != nil {
		os.Exit(1)
	}
}
