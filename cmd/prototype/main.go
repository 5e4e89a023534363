package main

import (
	"os"
	"os/signal"
	"syscall"

	"deenha/internal/config"
	"deenha/internal/database"
	"deenha/internal/prototype"
	"deenha/pkg/imagestore"
	"deenha/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	log := logger.Must(cfg.AppEnv)
	defer log.Sync()

	db, err := database.Open("sqlite", cfg.PrototypeDB, log)
	if err != nil {
		log.Fatal("Failed to open prototype database", zap.Error(err))
	}
	if err := prototype.Migrate(db); err != nil {
		log.Fatal("Failed to migrate prototype database", zap.Error(err))
	}

	images, err := imagestore.NewLocalStore(cfg.ImageDir, "/images")
	if err != nil {
		log.Fatal("Failed to prepare image directory", zap.Error(err))
	}

	app := prototype.NewApp(db, images, log)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("Prototype backend running", zap.String("addr", cfg.PrototypePort))
		if err := app.Listen(cfg.PrototypePort); err != nil {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	<-quit
	log.Info("Shutting down prototype server...")
	if err := app.Shutdown(); err != nil {
		log.Error("Error during Fiber shutdown", zap.Error(err))
	}
}
