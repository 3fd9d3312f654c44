package main

import (
	"context"
	"log"

	"ai-chatbot-be/internal/bootstrap"
	"ai-chatbot-be/internal/config"
	"ai-chatbot-be/internal/server"
	"ai-chatbot-be/internal/tracer"
	"ai-chatbot-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.SysLogger.Sync()
	if container.NatsPub != nil {
		defer container.NatsPub.Close()
	}

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Activity Consumer...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
