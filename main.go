package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Kotlang/eventsGo/config"
	"github.com/Kotlang/eventsGo/logger"
	"github.com/Kotlang/eventsGo/web"
	"github.com/gofiber/template/html/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() {
	err := godotenv.Load()
	if err != nil {
		logger.Error("Error loading .env file", zap.Error(err))
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}
	logger.Init(cfg.Env)
	defer logger.Sync()

	inject, err := NewInject(context.Background(), cfg)
	if err != nil {
		logger.Fatal("Failed connecting to the store", zap.Error(err), zap.String("driver", cfg.StoreDriver))
	}

	engine := html.New(cfg.ViewsDir, ".html")
	engine.Reload(cfg.Env == "development")

	app := web.NewApp(inject.Server, web.Options{
		Views:     engine,
		PublicDir: cfg.PublicDir,
	})

	go func() {
		logger.Info("Listening", zap.String("port", cfg.Port))
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Error("Server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := inject.EventsDb.Close(ctx); err != nil {
		logger.Error("Error closing store", zap.Error(err))
	}
}
