package main

import (
	"log"
	"os"
	"time"

	"freelance-marketplace-backend/internal/config"
	"freelance-marketplace-backend/internal/models"
	"freelance-marketplace-backend/internal/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system env")
	}

	db := config.InitDB()

	if err := db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Proposal{},
		&models.Transaction{},
		&models.CommissionRecord{},
		&models.Event{},
	); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	// At most one payout per project, enforced in the schema. Backs up the
	// row-lock check inside the release transaction.
	if err := db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_transactions_one_payout_per_project
		 ON transactions (project_id) WHERE payment_type = 'payout'`,
	).Error; err != nil {
		log.Fatalf("payout index migration failed: %v", err)
	}

	r := gin.Default()
	// CORS config
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
