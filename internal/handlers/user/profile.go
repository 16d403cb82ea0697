package user

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"bodrum_back_end/internal/database"
	"bodrum_back_end/internal/models"

	"github.com/gin-gonic/gin"
)

const profileTTL = 365 * 24 * time.Hour

type Profile struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address,omitempty"`
}

func profileKey(deviceID string) string {
	return "profile:" + deviceID
}

// loadProfile : clé absente ⇒ nil, jamais une erreur.
func loadProfile(ctx context.Context, deviceID string) (*Profile, error) {
	data, err := database.Redis.Get(ctx, profileKey(deviceID)).Result()
	if err != nil || data == "" {
		return nil, nil
	}
	var p Profile
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

//
// 🟢 GET /api/profile
//
func GetProfile(c *gin.Context) {
	deviceID := c.GetString("device_id")

	profile, err := loadProfile(context.Background(), deviceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture profil"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

//
// 💾 POST /api/profile
//
func SaveProfile(c *gin.Context) {
	deviceID := c.GetString("device_id")

	var input Profile
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	input.Name = strings.TrimSpace(input.Name)
	if !models.ValidateName(input.Name) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ism kamida 2 harfdan iborat bo'lishi kerak"})
		return
	}
	if !models.ValidatePhone(input.Phone) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Telefon raqam 9 ta raqamdan iborat bo'lishi kerak"})
		return
	}

	data, _ := json.Marshal(input)
	if err := database.Redis.Set(context.Background(), profileKey(deviceID), data, profileTTL).Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde profil"})
		return
	}

	log.Printf("✅ Profil sauvegardé pour l'appareil %s", deviceID)
	c.JSON(http.StatusOK, gin.H{
		"message": "Profil sauvegardé",
		"profile": input,
	})
}

//
// 🧹 DELETE /api/profile — déconnexion : le panier part avec le profil
//
func DeleteProfile(c *gin.Context) {
	deviceID := c.GetString("device_id")
	ctx := context.Background()

	if err := database.Redis.Del(ctx, profileKey(deviceID)).Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression profil"})
		return
	}
	if err := clearCart(ctx, deviceID); err != nil {
		log.Printf("⚠️ Panier non vidé pour %s: %v", deviceID, err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profil supprimé"})
}
