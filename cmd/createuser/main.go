package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/sasazame/todo-app-backend/internal/db"
	"github.com/sasazame/todo-app-backend/internal/domain"
	"github.com/sasazame/todo-app-backend/internal/repository"
	"github.com/sasazame/todo-app-backend/internal/service"
)

// Dev helper: seeds a user and prints a bearer token for it.
func main() {
	email := flag.String("email", "dev@example.com", "user email")
	username := flag.String("username", "dev", "username")
	password := flag.String("password", "Password123!", "password")
	flag.Parse()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET not set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	repo := repository.NewUserRepository(pool)
	ctx := context.Background()

	u, err := repo.GetByEmail(ctx, *email)
	if err == nil {
		log.Printf("user already exists id=%d", u.ID)
	} else {
		hash, err := service.HashPassword(*password)
		if err != nil {
			log.Fatalf("hash password: %v", err)
		}

		u = &domain.User{
			Email:        *email,
			Username:     *username,
			PasswordHash: hash,
			Enabled:      true,
		}
		if err := repo.Create(ctx, u); err != nil {
			log.Fatalf("create user failed: %v", err)
		}
		log.Printf("user created id=%d", u.ID)
	}

	tokens := service.NewTokenService(secret, 24*time.Hour, 7*24*time.Hour)
	token, err := tokens.Issue(u.Email, nil)
	if err != nil {
		log.Fatalf("failed to generate token: %v", err)
	}
	log.Printf("token=%s", token)
}
