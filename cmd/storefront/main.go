package main

import (
	"log"

	"github.com/MrSnakeDoc/storefront/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("storefront failed to start: %v", err)
	}
}
