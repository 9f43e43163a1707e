package main

import (
	"log"

	"api_ledger/internal/app"
)

func main() {
	app, err := app.NewApp()
	if err != nil {
		log.Fatalf("failed to create application: %v", err)
	}

	app.BuildLayers()
	if err := app.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
