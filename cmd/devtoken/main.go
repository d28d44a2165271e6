// Command devtoken mints bearer tokens for local development, standing in
// for the identity provider.
//
//	go run ./cmd/devtoken -sub 7 -role member
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/BruksfildServices01/gym-scheduler/internal/config"
	"github.com/BruksfildServices01/gym-scheduler/internal/middleware"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
)

func main() {
	sub := flag.Uint("sub", 1, "user id placed in the sub claim")
	role := flag.String("role", string(models.RoleMember), "admin, trainer or member")
	ttl := flag.Duration("ttl", 0, "token lifetime (defaults to jwt.expiration)")
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	r := models.Role(*role)
	if !r.Valid() || *sub == 0 {
		fmt.Fprintln(os.Stderr, "usage: devtoken -sub <id> -role admin|trainer|member")
		os.Exit(2)
	}

	lifetime := *ttl
	if lifetime <= 0 {
		lifetime = cfg.JWT.Expiration
	}

	token, err := middleware.IssueToken(cfg.JWT.Secret, *sub, r, lifetime)
	if err != nil {
		log.Fatalf("failed to sign token: %v", err)
	}
	fmt.Println(token)
}
