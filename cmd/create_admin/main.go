// Command create_admin provisions an admin account. Usage:
//
//	create_admin [email] [password] [name]
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/horolog/horolog/domain/entity"
	"github.com/horolog/horolog/infrastructure/config"
	"github.com/horolog/horolog/infrastructure/persistence/postgres"
	"github.com/horolog/horolog/infrastructure/service/password"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	userRepo := postgres.NewUserRepository(db)

	email := "admin@horolog.local"
	userPassword := "admin123"
	name := "Administrator"

	if len(os.Args) > 1 {
		email = os.Args[1]
	}
	if len(os.Args) > 2 {
		userPassword = os.Args[2]
	}
	if len(os.Args) > 3 {
		name = os.Args[3]
	}

	passwordService := password.NewBcryptPasswordService(10)
	hashedPassword, err := passwordService.HashPassword(userPassword)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	adminUser := &entity.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         "admin",
		CreatedAt:    time.Now().UTC(),
	}

	if err := userRepo.Create(ctx, adminUser); err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}

	fmt.Printf("Admin user created\n")
	fmt.Printf("  Email: %s\n", email)
	fmt.Printf("  Name:  %s\n", name)
	fmt.Printf("  ID:    %s\n", adminUser.ID)
}
