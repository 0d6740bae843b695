package main

import (
	"context"
	"log"
	"time"

	"walle.finance/internal/api"
	"walle.finance/internal/auth"
	"walle.finance/internal/config"
	"walle.finance/internal/infra"
	"walle.finance/internal/service"
	"walle.finance/internal/store"
)

func main() {
	cfg := config.LoadConfig()

	// Infrastructure
	pg, err := infra.NewPostgresClient(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	rdb := infra.NewRedisClient(cfg.Redis)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Mail delivery: requests enqueue, the worker delivers over SMTP.
	mailer := infra.NewMailer(cfg.Mail, cfg.App.FrontendURL)
	notifier := infra.NewQueueNotifier(rdb)
	worker := infra.NewMailWorker(rdb, mailer)
	go worker.Run(context.Background())

	// Core services
	hasher := auth.NewPasswordHasher(cfg.App.BcryptCost)
	tokens := auth.NewTokenService(cfg.JWT.Secret)

	userService := service.NewUserService(
		store.NewUserStore(pg.DB),
		hasher,
		tokens,
		notifier,
		time.Duration(cfg.JWT.SessionTTLHours)*time.Hour,
		time.Duration(cfg.JWT.LinkTTLMinutes)*time.Minute,
	)
	transactionService := service.NewTransactionService(store.NewTransactionStore(pg.DB))

	// HTTP server
	app := api.NewServer(cfg)
	router := api.NewRouter(app, tokens, userService, transactionService)
	router.RegisterRoutes()

	log.Printf("Server starting on port %s", cfg.Server.Port)
	if err := app.Listen(cfg.Server.Port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
