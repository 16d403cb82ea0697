package main

import (
	"context"
	"log"
	"os"

	"bodrum_back_end/internal/config"
	"bodrum_back_end/internal/database"
	"bodrum_back_end/internal/routes"
	"bodrum_back_end/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"
)

func main() {
	config.Load()

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	if stripe.Key == "" {
		log.Println("⚠️ STRIPE_SECRET_KEY manquant : paiement carte désactivé")
	} else {
		log.Println("✅ Stripe initialisé")
	}

	database.ConnectDatabases()
	defer database.CloseScylla()

	// Services optionnels : le serveur démarre sans eux
	services.ConnectElastic()
	services.ConnectMinio()

	warmupRedisCache()

	r := gin.Default()
	routes.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Serveur BODRUM lancé sur le port", port)
	r.Run(":" + port)
}

// warmupRedisCache pré-chauffe la connexion Redis pour éviter la latence
// du premier appel
func warmupRedisCache() {
	ctx := context.Background()
	if err := database.Redis.Ping(ctx).Err(); err == nil {
		log.Println("✅ Cache Redis pré-chauffé")
	}
}
