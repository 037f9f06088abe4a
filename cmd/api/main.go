package main

import (
	"flag"

	"github.com/joho/godotenv"
	"github.com/truelife/learningapp/internal/bootstrap"
	"github.com/truelife/learningapp/internal/config"
	"github.com/truelife/learningapp/internal/pkg/logger"
)

// @title LearningApp API
// @version 1.0
// @description Online course marketplace backend
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	flag.Parse()

	// .env is optional; real deployments use actual environment variables
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	app, err := bootstrap.New(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to start application")
	}
	defer app.Close()

	if err := app.Server.Run(); err != nil {
		logger.Fatal().Err(err).Msg("Server exited with error")
	}
}
