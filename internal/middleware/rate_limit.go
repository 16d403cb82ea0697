package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"bodrum_back_end/internal/database"

	"github.com/gin-gonic/gin"
)

const (
	// Limites par endpoint
	OrderMaxPerWindow = 5 // commandes par téléphone et par fenêtre
	LoginMaxAttempts  = 5

	// Durées de cooldown
	OrderWindow   = 10 * time.Minute
	LoginCooldown = 15 * time.Minute
)

// OrderRateLimit limite les soumissions de commandes par numéro de
// téléphone, pour absorber les double-clics et le spam.
func OrderRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Lire le body sans le consommer
		bodyBytes, _ := io.ReadAll(c.Request.Body)

		var input struct {
			Phone string `json:"phone"`
		}

		if err := json.Unmarshal(bodyBytes, &input); err != nil || input.Phone == "" {
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
			c.Next()
			return
		}

		// Remettre le body pour les handlers suivants
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		ctx := context.Background()
		key := "order_attempts:" + input.Phone

		count, err := database.Redis.Incr(ctx, key).Result()
		if err != nil {
			// Redis indisponible : on laisse passer plutôt que de bloquer
			c.Next()
			return
		}
		if count == 1 {
			database.Redis.Expire(ctx, key, OrderWindow)
		}

		if count > OrderMaxPerWindow {
			ttl := database.Redis.TTL(ctx, key).Val()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Trop de commandes. Réessayez dans %d minutes", int(ttl.Minutes())+1),
				"retry_after": int(ttl.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// LoginRateLimit protège le login admin contre le brute-force.
func LoginRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		key := "admin_login_attempts:" + c.ClientIP()

		cooldownKey := "admin_login_cooldown:" + c.ClientIP()
		if database.Redis.Exists(ctx, cooldownKey).Val() > 0 {
			ttl := database.Redis.TTL(ctx, cooldownKey).Val()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Trop de tentatives échouées. Réessayez dans %d minutes", int(ttl.Minutes())+1),
				"retry_after": int(ttl.Seconds()),
			})
			c.Abort()
			return
		}

		count, err := database.Redis.Incr(ctx, key).Result()
		if err == nil && count == 1 {
			database.Redis.Expire(ctx, key, LoginCooldown)
		}
		if count > LoginMaxAttempts {
			database.Redis.Set(ctx, cooldownKey, "1", LoginCooldown)
			database.Redis.Del(ctx, key)
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Trop de tentatives, compte temporairement bloqué"})
			c.Abort()
			return
		}

		c.Next()
	}
}
