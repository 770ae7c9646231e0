package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spec-kit/hospital-analytics/internal/auth"
	"github.com/spec-kit/hospital-analytics/internal/config"
)

// tokengen mints a dashboard bearer token signed with AUTH_JWT_SECRET.
func main() {
	subject := flag.String("subject", "", "token subject, e.g. an operator email")
	role := flag.String("role", string(auth.RoleAnalyst), "ADMIN, ANALYST or CLERK")
	ttl := flag.Int("ttl", 0, "lifetime in minutes, defaults to AUTH_ACCESS_TOKEN_TTL_MINUTES")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	minutes := cfg.Auth.AccessTokenTTLMinutes
	if *ttl > 0 {
		minutes = *ttl
	}

	token, expiresAt, err := auth.NewTokenManager(cfg.Auth.JWTSecret, minutes).GenerateToken(*subject, auth.Role(*role))
	if err != nil {
		fmt.Fprintf(os.Stderr, "tokengen: %v\n", err)
		flag.Usage()
		os.Exit(2)
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "expires %s\n", expiresAt.Format(time.RFC3339))
}
