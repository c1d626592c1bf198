package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"ai-bookchat-be/internal/bootstrap"
	"ai-bookchat-be/internal/config"
	"ai-bookchat-be/internal/server"
	"ai-bookchat-be/internal/tracer"
	"ai-bookchat-be/pkg/database"
)

func main() {
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	cfg := config.Load()

	gormDB, err := database.NewGormDB(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Shutdown()

	if container.ConsumerService != nil {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Start(); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}

	srv := server.New(cfg, container)

	go func() {
		if err := srv.Run(); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	if err := srv.Shutdown(); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
