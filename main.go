package main

import (
	"context"
	"log"

	"workmesh-backend/controller"
	"workmesh-backend/models"
	"workmesh-backend/utils"
	"workmesh-backend/utils/logger"
	"workmesh-backend/worker"

	"github.com/gin-gonic/gin"
)

var config *models.Config

func Init() {
	var err error
	config, err = utils.GetConfig()
	if err != nil {
		log.Fatal(err)
	}
}

func main() {
	Init()

	ctx := context.Background()
	appLogger := logger.NewLogger(config.LogLevel, config.LogFormat)
	appLogger.Infof("Starting %s v%s (%s)", config.AppName, config.AppVersion, config.AppEnv)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	c := controller.NewController(ctx, config, appLogger)

	// Server loop is blocking, run it off the main goroutine
	go func() {
		if err := c.RegisterRoutes(ctx, config, r, config.BasePath); err != nil {
			appLogger.Fatalf("Server failed: %v", err)
		}
	}()

	// Table bootstrap runs alongside the server
	infraWorker, err := worker.NewService(ctx, config, appLogger)
	if err != nil {
		appLogger.Fatalf("Failed to create infrastructure worker: %v", err)
	}
	if err := infraWorker.StartInBackground(); err != nil {
		appLogger.Fatalf("Failed to start infrastructure worker: %v", err)
	}

	// Keep main goroutine alive
	select {}
}
