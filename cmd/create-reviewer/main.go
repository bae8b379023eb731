// cmd/create-reviewer/main.go - Seed a reviewer account
package main

import (
	"flag"
	"fmt"
	"log"

	"biasboard/config"
	"biasboard/database"
	"biasboard/models"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	email := flag.String("email", "", "reviewer email (required)")
	name := flag.String("name", "", "reviewer display name")
	password := flag.String("password", "", "reviewer password (required)")
	flag.Parse()

	if *email == "" || *password == "" {
		flag.Usage()
		log.Fatal("both -email and -password are required")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	cfg := config.Load()
	database.InitDB(cfg.DatabaseURL)
	defer database.CloseDB()

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	db := database.GetDB()

	var reviewer models.Reviewer
	err = db.Where("email = ?", *email).First(&reviewer).Error
	if err == nil {
		reviewer.Name = *name
		reviewer.Password = string(hash)
		if err := db.Save(&reviewer).Error; err != nil {
			log.Fatalf("Failed to update reviewer: %v", err)
		}
		fmt.Printf("Updated reviewer %s\n", *email)
		return
	}

	reviewer = models.Reviewer{
		Email:    *email,
		Name:     *name,
		Password: string(hash),
	}
	if err := db.Create(&reviewer).Error; err != nil {
		log.Fatalf("Failed to create reviewer: %v", err)
	}
	fmt.Printf("Created reviewer %s\n", *email)
}
