package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/hnqbao/carhive-api/internal/router"
	"github.com/hnqbao/carhive-api/pkg/global"
	"github.com/hnqbao/carhive-api/pkg/mongo"
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	// Fail at boot, not on the first login, when the signing secret is
	// missing.
	global.GetJWTSecret()

	mongo.InitMongoDB()
	mongo.EnsureIndexesOnStartup()
	router.InitEngine()
	router.InitializeRoutes()

	port := global.GetEnvOrDefault("PORT", "8000")
	log.Printf("Server is running on port %s", port)

	if err := router.Router.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
