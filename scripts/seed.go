//go:build ignore

package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ezzcrafts/testimania/internal/auth"
	"github.com/ezzcrafts/testimania/internal/database"
	"github.com/ezzcrafts/testimania/internal/database/models"
	"github.com/ezzcrafts/testimania/pkg/config"
	"github.com/ezzcrafts/testimania/pkg/util"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.NewLogger(cfg.Server.Env)

	db, err := database.Connect(&cfg.Database, logger)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	email := os.Getenv("DEMO_EMAIL")
	username := os.Getenv("DEMO_USERNAME")
	password := os.Getenv("DEMO_PASSWORD")

	if email == "" {
		email = "demo@example.com"
	}
	if username == "" {
		username = "demo"
	}
	if password == "" {
		password = "demo123!"
	}

	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		fmt.Printf("Demo user already exists: %s\n", email)
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	user := models.User{
		Username:         username,
		Email:            email,
		PasswordHash:     hash,
		IsVerified:       true,
		VerifyCode:       "000000",
		VerifyCodeExpiry: time.Now(),
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("failed to create demo user: %v", err)
	}

	space := models.Space{
		UserID:       user.ID,
		Name:         "demo space",
		Header:       "How was your experience?",
		Description:  "We would love to hear what you think of Testimania",
		CollectName:  true,
		CollectEmail: true,
	}
	if err := db.Create(&space).Error; err != nil {
		log.Fatalf("failed to create demo space: %v", err)
	}

	questions := []string{
		"What problem were you trying to solve?",
		"What did you like most about the product?",
		"Would you recommend us to a friend?",
	}
	for _, q := range questions {
		question := models.Question{
			UserID:  user.ID,
			SpaceID: space.ID,
			Message: q,
		}
		if err := db.Create(&question).Error; err != nil {
			log.Fatalf("failed to create demo question: %v", err)
		}
	}

	fmt.Printf("Demo user created successfully!\n")
	fmt.Printf("Email: %s\n", email)
	fmt.Printf("Username: %s\n", username)
	fmt.Printf("Space: %s (%s)\n", space.Name, space.ID)
}
