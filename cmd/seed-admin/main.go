// Seeds (or resets) a faculty admin account.
// cmd/seed-admin/main.go
package main

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/amansgnr3001/studenthub/config"
	"github.com/amansgnr3001/studenthub/controllers"
	"github.com/amansgnr3001/studenthub/models"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD are required")
	}

	// Initialize database
	config.InitDB()

	hashed, err := controllers.HashPassword(password)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	now := time.Now()

	var faculty models.Faculty
	err = config.DB.Where("email = ? AND delete_at IS NULL", email).First(&faculty).Error
	if err == nil {
		faculty.Password = hashed
		faculty.UpdateAt = &now
		if err := config.DB.Save(&faculty).Error; err != nil {
			log.Fatal("Failed to update admin account:", err)
		}
		log.Printf("Password reset for existing admin %s\n", email)
		return
	}

	faculty = models.Faculty{
		Name:     "Administrator",
		Email:    email,
		Password: hashed,
		CreateAt: &now,
		UpdateAt: &now,
	}
	if err := config.DB.Create(&faculty).Error; err != nil {
		log.Fatal("Failed to create admin account:", err)
	}

	log.Printf("Created admin account %s\n", email)
}
