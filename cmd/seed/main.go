package main

import (
	"context"
	"os"
	"time"

	"deenha/internal/app"
	"deenha/internal/config"
	"deenha/internal/database"
	"deenha/internal/repositories"
	"deenha/internal/seed"
	"deenha/internal/services"
	"deenha/pkg/logger"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	v := viper.New()
	config.SetDefaults(v)
	v.SetDefault("ADMIN_EMAIL", "")
	v.SetDefault("ADMIN_PASSWORD", "")
	v.AutomaticEnv()

	flags := pflag.NewFlagSet("seed", pflag.ExitOnError)
	flags.String("admin-email", "", "email of the admin account to create (env ADMIN_EMAIL)")
	flags.String("admin-password", "", "password for a new admin account (env ADMIN_PASSWORD)")
	_ = flags.Parse(os.Args[1:])
	_ = v.BindPFlag("ADMIN_EMAIL", flags.Lookup("admin-email"))
	_ = v.BindPFlag("ADMIN_PASSWORD", flags.Lookup("admin-password"))

	cfg := config.FromViper(v)
	log := logger.Must(cfg.AppEnv)
	defer log.Sync()

	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN, log)
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	if err := app.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	products := repositories.NewGORMProductRepository(db)
	posts := repositories.NewGORMPostRepository(db)
	if err := seed.Apply(ctx, products, posts); err != nil {
		log.Fatal("Failed to seed catalog", zap.Error(err))
	}
	log.Info("Catalog seeded",
		zap.Int("products", len(seed.Products())),
		zap.Int("posts", len(seed.Posts())),
	)

	email := v.GetString("ADMIN_EMAIL")
	if email == "" {
		log.Info("No admin email given, skipping admin account")
		return
	}

	users := repositories.NewGORMUserRepository(db)
	auth := services.NewAuthService(users, nil, cfg.JWTSecret, cfg.TokenDuration, log.Named("auth"))
	admin, err := seed.EnsureAdmin(ctx, auth, users, email, v.GetString("ADMIN_PASSWORD"))
	if err != nil {
		log.Fatal("Failed to create admin account", zap.Error(err))
	}
	log.Info("Admin account ready", zap.String("id", admin.ID), zap.String("email", admin.Email))
}
