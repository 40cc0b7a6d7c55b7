package main

import (
	"log"

	"helmetwatch/internal/app"
)

func main() {
	application, err := app.NewApp()
	if err != nil {
		log.Fatalf("Failed to initialize agent: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("Agent stopped with error: %v", err)
	}
}
