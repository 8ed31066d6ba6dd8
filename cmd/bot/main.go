package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"summy-bot/internal/bot"
	"summy-bot/internal/config"
	"summy-bot/internal/handler"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Wiring
	container, err := config.NewContainer(ctx)
	if err != nil {
		log.Fatalf("Failed to build container: %v", err)
	}
	defer container.Close()

	api, err := tgbotapi.NewBotAPI(container.TelegramToken)
	if err != nil {
		container.Logger.Error("Failed to connect to Telegram", err)
		os.Exit(1)
	}
	container.Logger.Info("Authorized on Telegram", "account", api.Self.UserName)

	b := bot.New(api, bot.Options{
		AllowedUsers: container.AllowedUsers,
		Configs:      container.ConfigService,
		Extractor:    container.Extractor,
		PDF:          container.PDFProcessor,
		Summarizer:   container.Summarizer,
		State:        container.StateRepository,
		Logger:       container.Logger,
		MaxPDFSize:   container.Config.GetMaxPDFSize(),
		Shutdown:     cancel,
	})

	// Ops server for liveness probes
	server := &http.Server{
		Addr:    ":" + container.Config.GetServerPort(),
		Handler: handler.NewRouter(),
	}
	go func() {
		container.Logger.Info("Ops server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			container.Logger.Error("Ops server failed to start", err)
			os.Exit(1)
		}
	}()

	go b.Run(ctx)

	// Exit on SIGINT/SIGTERM or when /shut cancels the context.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
		cancel()
	case <-ctx.Done():
	}

	container.Logger.Info("Shutting down bot...")
	_ = server.Close()

	container.Logger.Info("Bot exited")
}
