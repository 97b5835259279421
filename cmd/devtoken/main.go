// Command devtoken prints a signed access token for local development.
//
//	go run ./cmd/devtoken -user 6f1c... -role student
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"campusevents/config"
	"campusevents/internal/adapters/auth"
)

func main() {
	userID := flag.String("user", "", "user ID to put in the token subject")
	userEmail := flag.String("email", "", "email claim")
	roles := flag.String("role", "student", "comma separated roles")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	logger := config.NewLogger()
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	if cfg.JWTSecret == "" || *userID == "" {
		logger.Error("JWT_SECRET and -user are required")
		os.Exit(2)
	}

	token, err := auth.NewJWTIssuer(cfg.JWTSecret).Issue(*userID, *userEmail, strings.Split(*roles, ","), *ttl)
	if err != nil {
		logger.Error("failed to issue token", "err", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
