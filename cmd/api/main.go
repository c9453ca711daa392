// cmd/api/main.go
package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/abhinav21769/abros-healthcare-backend/config"
	"github.com/abhinav21769/abros-healthcare-backend/internal/api/routes"
	"github.com/abhinav21769/abros-healthcare-backend/internal/database"
	"github.com/abhinav21769/abros-healthcare-backend/internal/repository"
)

func main() {
	// 1. Load .env if present, then configuration
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}

	// 2. Connect to MongoDB and create indexes
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	if err := database.EnsureIndexes(db); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	// 3. Build repositories and router
	medicineRepo := repository.NewMongoMedicineRepository(db)
	customerRepo := repository.NewMongoCustomerRepository(db)

	router := routes.SetupRouter(medicineRepo, customerRepo)

	// 4. Start server
	log.Printf("Starting API server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
