package user

import (
	"context"
	"errors"
	"net/http"
	"time"

	"bodrum_back_end/internal/database"
	"bodrum_back_end/internal/models"

	"github.com/gin-gonic/gin"
)

const cartTTL = 30 * 24 * time.Hour

func cartKey(deviceID string) string {
	return "cart:" + deviceID
}

// loadCart relit le panier Redis de l'appareil. Clé absente ⇒ panier
// vide, jamais une erreur.
func loadCart(ctx context.Context, deviceID string) ([]models.CartItem, error) {
	data, err := database.Redis.Get(ctx, cartKey(deviceID)).Result()
	if err != nil || data == "" {
		return []models.CartItem{}, nil
	}
	return models.DecodeCart([]byte(data))
}

func saveCart(ctx context.Context, deviceID string, items []models.CartItem) error {
	data, err := models.EncodeCart(items)
	if err != nil {
		return err
	}
	return database.Redis.Set(ctx, cartKey(deviceID), data, cartTTL).Err()
}

func clearCart(ctx context.Context, deviceID string) error {
	return database.Redis.Del(ctx, cartKey(deviceID)).Err()
}

//
// 🟢 GET /api/cart
//
func GetCart(c *gin.Context) {
	deviceID := c.GetString("device_id")

	cart, err := loadCart(context.Background(), deviceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": cart,
		"total": models.CartTotal(cart),
	})
}

//
// 🟢 POST /api/cart/add
//
func AddToCart(c *gin.Context) {
	deviceID := c.GetString("device_id")

	var input struct {
		ItemID   string `json:"itemId"`
		Quantity int    `json:"quantity"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	if input.Quantity <= 0 {
		input.Quantity = 1
	}

	// 🧩 Prix et nom relus depuis le menu, jamais depuis le client
	menuItem, err := database.GetMenuItem(input.ItemID)
	if err != nil {
		if errors.Is(err, models.ErrMenuItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Plat introuvable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}
	if !menuItem.Available {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Plat indisponible"})
		return
	}

	ctx := context.Background()
	cart, err := loadCart(ctx, deviceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage panier"})
		return
	}

	// 🔁 Met à jour ou ajoute l'item
	found := false
	for i := range cart {
		if cart[i].ItemID == input.ItemID {
			cart[i].Quantity += input.Quantity
			cart[i].Name = menuItem.Name
			cart[i].Price = menuItem.Price
			found = true
			break
		}
	}
	if !found {
		cart = append(cart, models.CartItem{
			ItemID:   input.ItemID,
			Name:     menuItem.Name,
			Price:    menuItem.Price,
			Quantity: input.Quantity,
		})
	}

	if err := saveCart(ctx, deviceID, cart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Plat ajouté au panier",
		"items":   cart,
		"total":   models.CartTotal(cart),
	})
}

//
// 🔁 POST /api/cart/update — delta de quantité, comme les boutons −/+
//
func UpdateCartQuantity(c *gin.Context) {
	deviceID := c.GetString("device_id")

	var input struct {
		ItemID string `json:"itemId"`
		Delta  int    `json:"delta"`
	}

	if err := c.ShouldBindJSON(&input); err != nil || input.ItemID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	ctx := context.Background()
	cart, err := loadCart(ctx, deviceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage panier"})
		return
	}

	newCart := make([]models.CartItem, 0, len(cart))
	for _, item := range cart {
		if item.ItemID == input.ItemID {
			item.Quantity += input.Delta
			if item.Quantity < 1 {
				continue // quantité tombée à zéro : l'item sort du panier
			}
		}
		newCart = append(newCart, item)
	}

	if err := saveCart(ctx, deviceID, newCart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": newCart,
		"total": models.CartTotal(newCart),
	})
}

//
// ❌ DELETE /api/cart/:itemId
//
func RemoveFromCart(c *gin.Context) {
	deviceID := c.GetString("device_id")
	itemID := c.Param("itemId")

	ctx := context.Background()
	cart, err := loadCart(ctx, deviceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage panier"})
		return
	}

	newCart := []models.CartItem{}
	for _, item := range cart {
		if item.ItemID != itemID {
			newCart = append(newCart, item)
		}
	}

	if err := saveCart(ctx, deviceID, newCart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Plat supprimé du panier",
		"items":   newCart,
		"total":   models.CartTotal(newCart),
	})
}

//
// 🧹 DELETE /api/cart
//
func ClearCart(c *gin.Context) {
	deviceID := c.GetString("device_id")

	if err := clearCart(context.Background(), deviceID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du vidage du panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Panier vidé avec succès",
	})
}
