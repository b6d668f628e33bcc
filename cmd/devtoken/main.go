package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/neardukaan/backend/internal/infrastructure/auth"
	"github.com/neardukaan/backend/internal/infrastructure/config"
	"github.com/neardukaan/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

func main() {
	var (
		shopID string
		email  string
		ttl    time.Duration
	)
	flag.StringVar(&shopID, "shop", "", "Shop id to put in the token subject (required)")
	flag.StringVar(&email, "email", "", "Optional email claim")
	flag.DurationVar(&ttl, "ttl", 0, "Token lifetime; defaults to the configured access token expiration")
	flag.Parse()

	if shopID == "" {
		fmt.Fprintln(os.Stderr, "Usage: devtoken -shop <shop-id> [-email <email>] [-ttl 1h]")
		os.Exit(2)
	}

	log := logger.New(logger.Config{Level: "warn", Format: "console", Output: "stderr"})
	defer func() {
		_ = log.Sync()
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}
	if cfg.IsProduction() {
		log.Fatal("Refusing to mint development tokens in production")
	}
	if ttl > 0 {
		cfg.JWT.AccessTokenExpiration = ttl
	}

	token, expiresAt, err := auth.NewJWTService(cfg.JWT, nil).Issue(shopID, email)
	if err != nil {
		log.Fatal("Failed to issue token", zap.Error(err))
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "expires %s\n", expiresAt.Format(time.RFC3339))
}
