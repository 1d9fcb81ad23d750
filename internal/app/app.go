package app

import (
	"guestlist/config"
	"guestlist/internal/database"
	"guestlist/internal/handlers/middleware"
	"guestlist/internal/logger"
	"guestlist/internal/repositories"
	"guestlist/internal/services"
	"guestlist/internal/websockets"

	guestController "guestlist/internal/controllers/guests"
	importController "guestlist/internal/controllers/imports"
	rsvpController "guestlist/internal/controllers/rsvp"
)

type App struct {
	Database   database.DB
	Middleware middleware.Middleware
	Websocket  *websockets.Manager
	Config     config.Config

	// Services
	TransactionService *services.TransactionService

	// Repositories
	GuestRepo     repositories.GuestRepository
	ImportRunRepo repositories.ImportRunRepository

	// Controllers
	GuestController  *guestController.GuestController
	ImportController *importController.ImportController
	RSVPController   *rsvpController.RSVPController
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.InitConfig()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	logger.Setup(logger.ParseLevel(config.LogLevel))

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	// Initialize services
	transactionService := services.NewTransactionService(db)

	// Initialize repositories
	guestRepo := repositories.NewGuest(db)
	importRunRepo := repositories.NewImportRun(db)

	// Initialize controllers with repositories and services
	middleware := middleware.New(db, config)
	websocket := websockets.New()

	guestController := guestController.New(guestRepo)
	importController := importController.New(guestRepo, importRunRepo, transactionService, websocket, config)
	rsvpController := rsvpController.New(guestRepo, transactionService)

	app := &App{
		Database:           db,
		Config:             config,
		Middleware:         middleware,
		Websocket:          websocket,
		TransactionService: transactionService,
		GuestRepo:          guestRepo,
		ImportRunRepo:      importRunRepo,
		GuestController:    guestController,
		ImportController:   importController,
		RSVPController:     rsvpController,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.Websocket,
		a.TransactionService,
		a.GuestRepo,
		a.ImportRunRepo,
		a.GuestController,
		a.ImportController,
		a.RSVPController,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() error {
	return a.Database.Close()
}
