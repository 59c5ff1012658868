package main

import (
	"log"

	"go-pos-api/internal/model"
	"go-pos-api/pkg/config"
	"go-pos-api/pkg/database"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 1. Load Config
	cfg := config.Load()

	// 2. Setup Database
	db := database.ConnectDB(cfg)

	// 3. Find Admin
	username := "admin"
	var user model.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		log.Fatalf("❌ User %s not found in database: %v", username, err)
	}

	// 4. Hash new password
	newPassword := "admin123"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("❌ Failed to hash password: %v", err)
	}

	// 5. Update
	if err := db.Model(&user).Update("password", string(hashedPassword)).Error; err != nil {
		log.Fatalf("❌ Failed to update password in DB: %v", err)
	}

	log.Printf("✅ Success! Password for %s has been reset to: %s", username, newPassword)
}
