package main

import (
	_ "questboard/docs"
	"questboard/internal/config"
	"questboard/internal/server"
	"questboard/pkg/logger"
)

// @title           Questboard API
// @version         1.0
// @description     API for a gamified task manager: tasks, members and XP progression.

// @host      localhost:8080
// @BasePath  /

// @schemes http
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Server initialization failed")
	}

	s.Run()
}
