package middleware

import (
	"net/http"
	"os"

	"bodrum_back_end/internal/telegram"

	"github.com/gin-gonic/gin"
)

// DeviceRequired identifie l'appareil qui parle à l'API. Le panier, le
// profil et le miroir des commandes vues sont tous scopés par appareil.
// L'identité Telegram est extraite en best-effort depuis le initData :
// son absence n'est jamais bloquante.
func DeviceRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID := c.GetHeader("X-Device-ID")
		if deviceID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Header X-Device-ID manquant"})
			c.Abort()
			return
		}

		c.Set("device_id", deviceID)
		c.Set("tg_id", telegram.UserIDFromInitData(
			c.GetHeader("X-Telegram-Init-Data"),
			os.Getenv("TELEGRAM_BOT_TOKEN"),
		))

		c.Next()
	}
}
