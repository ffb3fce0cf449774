package main

import (
	"context"
	"flag"
	"log"

	"github.com/Apurer/purchase-order-exercise/internal/app/api"
	"github.com/Apurer/purchase-order-exercise/internal/app/config"
)

func main() {
	envFile := flag.String("env-file", ".env", "optional dotenv file loaded before the environment")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if err := api.Run(context.Background(), cfg); err != nil {
		log.Fatalf("exercise API stopped: %v", err)
	}
}
