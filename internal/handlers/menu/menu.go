package menu

import (
	"log"
	"net/http"
	"strings"

	"bodrum_back_end/internal/database"
	"bodrum_back_end/internal/models"
	"bodrum_back_end/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

//
// 🟢 GET /api/menu?category=&q= — carte du restaurant, plats disponibles
// uniquement. La recherche passe par Elasticsearch quand il est là,
// sinon filtrage en mémoire.
//
func GetMenu(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	category := strings.TrimSpace(c.Query("category"))

	var items []models.MenuItem
	var err error
	usedElastic := false

	if query != "" && services.ElasticClient != nil {
		items, err = services.SearchMenu(query)
		if err != nil {
			log.Printf("⚠️ Recherche Elastic ratée, repli sur la base: %v", err)
		} else {
			usedElastic = true
		}
	}

	if !usedElastic {
		items, err = database.ListMenuItems()
		if err != nil {
			log.Printf("❌ Erreur lecture menu: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération du menu"})
			return
		}
	}

	filtered := []models.MenuItem{}
	lowered := strings.ToLower(query)
	for _, it := range items {
		if !it.Available {
			continue
		}
		if category != "" && it.Category != category {
			continue
		}
		if lowered != "" && !usedElastic &&
			!strings.Contains(strings.ToLower(it.Name), lowered) &&
			!strings.Contains(strings.ToLower(it.Description), lowered) {
			continue
		}
		filtered = append(filtered, it)
	}

	c.JSON(http.StatusOK, gin.H{"items": filtered})
}

//
// 🟢 GET /api/menu/:id
//
func GetMenuItem(c *gin.Context) {
	item, err := database.GetMenuItem(c.Param("id"))
	if err != nil {
		if err == models.ErrMenuItemNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Plat introuvable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

//
// 💾 POST /api/admin/menu — création / remplacement d'un plat, puis
// indexation Elastic en best-effort.
//
func UpsertMenuItem(c *gin.Context) {
	var input models.MenuItem
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	if strings.TrimSpace(input.Name) == "" || input.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nom ou prix invalide"})
		return
	}
	if input.ID == "" {
		input.ID = uuid.New().String()
	}

	if err := database.UpsertMenuItem(input); err != nil {
		log.Printf("❌ Erreur écriture plat: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur enregistrement du plat"})
		return
	}

	services.IndexMenuItem(input)

	log.Printf("✅ Plat enregistré: %s (%s)", input.Name, input.ID)
	c.JSON(http.StatusOK, gin.H{"item": input})
}

//
// 📤 POST /api/admin/menu/:id/image — l'image part sur MinIO, l'URL
// revient sur la fiche du plat.
//
func UploadMenuImage(c *gin.Context) {
	item, err := database.GetMenuItem(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plat introuvable"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fichier image manquant"})
		return
	}

	url, err := services.UploadMenuImage(file)
	if err != nil {
		log.Printf("❌ Erreur upload image: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur envoi de l'image"})
		return
	}

	item.Image = url
	if err := database.UpsertMenuItem(*item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur enregistrement du plat"})
		return
	}

	services.IndexMenuItem(*item)

	c.JSON(http.StatusOK, gin.H{"item": item})
}
