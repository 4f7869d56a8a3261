package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/pustakahq/bookstore-api/internal/app/api"
)

func main() {
	_ = godotenv.Load()
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("api exited: %v", err)
	}
}
