package admin

import (
	"log"
	"net/http"
	"os"

	"bodrum_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

//
// 🔐 POST /api/admin/login — identifiants fixes du restaurant, hash
// argon2id côté env. Même message d'erreur quel que soit le champ faux.
//
func Login(c *gin.Context) {
	var input struct {
		Login    string `json:"login"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	adminLogin := os.Getenv("ADMIN_LOGIN")
	adminHash := os.Getenv("ADMIN_PASSWORD_HASH")
	if adminLogin == "" || adminHash == "" {
		log.Println("❌ ADMIN_LOGIN / ADMIN_PASSWORD_HASH manquants")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Connexion admin non configurée"})
		return
	}

	ok, err := utils.VerifyPassword(input.Password, adminHash)
	if err != nil || !ok || input.Login != adminLogin {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Login yoki parol noto'g'ri!"})
		return
	}

	token, err := utils.GenerateAdminJWT(input.Login)
	if err != nil {
		log.Printf("❌ Erreur génération JWT: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	log.Printf("✅ Connexion admin: %s", input.Login)
	c.JSON(http.StatusOK, gin.H{"token": token})
}
