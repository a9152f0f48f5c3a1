package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/openedu/crooms/internal/api"
	"github.com/openedu/crooms/internal/catalog"
	"github.com/openedu/crooms/internal/config"
	"github.com/openedu/crooms/internal/repository"
	"github.com/openedu/crooms/internal/service"
	"github.com/openedu/crooms/internal/web"
)

func main() {
	// Load optional .env file; environment variables win when both are set
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Skipping .env file: %v", err)
	}

	// Initialize the booking store using the factory
	redisConfig := config.GetRedisConfig()
	repo, err := repository.NewRepository(redisConfig)
	if err != nil {
		log.Fatalf("Failed to initialize repository: %v", err)
	}

	// Check if we're using a Redis repository, and if so, close it properly on exit
	if redisRepo, ok := repo.(interface{ Close() error }); ok {
		defer func() {
			if err := redisRepo.Close(); err != nil {
				log.Printf("Error closing Redis connection: %v", err)
			}
		}()
	}

	// Seed the room catalog and weekly schedule
	cat, err := catalog.Seed()
	if err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}

	// Initialize the service layer
	roomService := service.NewRoomService(cat, repo)
	bookingService := service.NewBookingService(cat, repo)

	// Set up the SSE stream and let booking changes feed it
	sseManager := web.NewSSEManager()
	bookingService.RegisterUpdateCallback(sseManager.NotifyBookingUpdate)

	// Set up API routes
	mux := api.SetupRoutes(roomService, bookingService)
	mux.Handle("/events", sseManager)

	serverConfig := config.GetServerConfig()

	// Configure the HTTP server
	server := &http.Server{
		Addr:        ":" + serverConfig.Port,
		Handler:     mux,
		ReadTimeout: serverConfig.ReadTimeout,
		// Write timeout stays disabled so SSE connections are not cut off
		WriteTimeout: 0,
		IdleTimeout:  serverConfig.IdleTimeout,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Printf("Starting crooms server on port %s", serverConfig.Port)
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until a signal is received or an error occurs
	select {
	case err := <-serverErrors:
		log.Fatalf("Error starting server: %v", err)

	case <-shutdown:
		log.Println("Shutting down server...")

		// Close SSE connections first so Shutdown doesn't wait on them
		sseManager.Shutdown()

		ctx, cancel := context.WithTimeout(context.Background(), serverConfig.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			server.Close()
			log.Fatalf("Error shutting down server: %v", err)
		}

		log.Println("Server gracefully stopped")
	}
}
