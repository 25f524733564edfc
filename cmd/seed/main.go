package main

import (
	"log"
	"time"

	"github.com/learnfx/academy-api/config"
	"github.com/learnfx/academy-api/database"
	"github.com/learnfx/academy-api/model"
	"github.com/learnfx/academy-api/utils/auth"
	"gorm.io/gorm"
)

// Seeds demo users, categories and courses for local development, then
// prints access tokens for the demo users so the API can be exercised
// with curl right away.
func main() {
	if err := config.LoadENV(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	getEnv, err := config.Get()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	store, err := database.StartGORM()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	db := store.GetDB().(*gorm.DB)

	if err := database.RunSeeds(db); err != nil {
		log.Fatal("Seeding failed:", err)
	}

	if getEnv.JWT_SECRET == "" {
		log.Println("JWT_SECRET not set, skipping demo token generation")
		return
	}

	jwtIssuer := getEnv.JWT_ISSUER
	if jwtIssuer == "" {
		jwtIssuer = "learnfx-academy-api"
	}
	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		Secret: getEnv.JWT_SECRET,
		Expiry: 24 * time.Hour,
		Issuer: jwtIssuer,
	})

	var users []model.User
	if err := db.Order("id").Find(&users).Error; err != nil {
		log.Fatal("Failed to load seeded users:", err)
	}

	log.Println("Demo access tokens (valid 24h):")
	for _, u := range users {
		token, _, err := jwtManager.GenerateAccessToken(u.ID, u.Email, u.Role)
		if err != nil {
			log.Printf("  %s: failed to generate token: %v", u.Email, err)
			continue
		}
		log.Printf("  %s (%s):", u.Email, u.Role)
		log.Printf("    %s", token)
	}
}
