package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"guestlist/internal/app"
	"guestlist/internal/handlers"
	"guestlist/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	log := logger.New("main")

	application, err := app.New()
	if err != nil {
		log.Er("failed to initialize application", err)
		os.Exit(1)
	}
	defer func() {
		if err := application.Close(); err != nil {
			log.Er("failed to close application", err)
		}
	}()

	if err := application.Database.Migrate(); err != nil {
		log.Er("failed to run migrations", err)
		os.Exit(1)
	}

	server := fiber.New(fiber.Config{
		AppName: "guestlist",
	})
	server.Use(recover.New())

	if err := handlers.Router(server, application); err != nil {
		log.Er("failed to register routes", err)
		os.Exit(1)
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info("shutting down")
		_ = server.Shutdown()
	}()

	address := fmt.Sprintf(":%d", application.Config.ServerPort)
	log.Info("server listening", "address", address)
	if err := server.Listen(address); err != nil {
		log.Er("server stopped", err)
		os.Exit(1)
	}
}
