package main

import (
	"flag"
	"log"

	"github.com/relabs-tech/gesture_engine/internal/app"
	"github.com/relabs-tech/gesture_engine/internal/config"
)

func main() {
	configPath := flag.String("config", "./gesture_config.txt", "path to configuration file")
	flag.Parse()

	log.Println("starting gesture-engine replay (recorded motion → events)")

	// Load configuration
	if err := config.InitGlobal(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := app.RunReplay(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
