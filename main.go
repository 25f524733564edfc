package main

import (
	"log"

	"github.com/learnfx/academy-api/app"
)

func main() {
	if err := app.SetupAndRunApp(); err != nil {
		log.Fatal("Failed to start application:", err)
	}
}
