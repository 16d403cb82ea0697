package user

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"bodrum_back_end/internal/database"
	"bodrum_back_end/internal/models"
	"bodrum_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

// OrderInput est le corps commun des soumissions de commande (directe ou
// routée paiement). Nom/téléphone absents ⇒ repris du profil de
// l'appareil. La localisation est best-effort, jamais requise.
type OrderInput struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

var (
	ErrEmptyCart      = errors.New("panier vide")
	ErrInvalidProfile = errors.New("profil incomplet")
)

// AssembleOrder construit une commande à partir du panier Redis de
// l'appareil : identité validée, prix et noms relus depuis le menu,
// total recalculé côté serveur. Le statut reste à poser par l'appelant.
func AssembleOrder(ctx context.Context, deviceID string, tgID int64, input OrderInput) (*models.Order, error) {
	name := strings.TrimSpace(input.Name)
	phone := strings.TrimSpace(input.Phone)

	if name == "" || phone == "" {
		profile, err := loadProfile(ctx, deviceID)
		if err != nil || profile == nil {
			return nil, ErrInvalidProfile
		}
		if name == "" {
			name = profile.Name
		}
		if phone == "" {
			phone = profile.Phone
		}
	}

	if !models.ValidateName(name) || !models.ValidatePhone(phone) {
		return nil, ErrInvalidProfile
	}

	cart, err := loadCart(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if len(cart) == 0 {
		return nil, ErrEmptyCart
	}

	// 🧩 Prix relus depuis le menu au moment de la commande
	items := make([]models.OrderItem, 0, len(cart))
	for _, ci := range cart {
		price, itemName := ci.Price, ci.Name
		if menuItem, err := database.GetMenuItem(ci.ItemID); err == nil {
			price, itemName = menuItem.Price, menuItem.Name
		}
		items = append(items, models.OrderItem{
			Name:  itemName,
			Price: price,
			Qty:   ci.Quantity,
		})
	}

	if !models.ValidateItems(items) {
		return nil, ErrEmptyCart
	}

	return &models.Order{
		Name:       name,
		Phone:      phone,
		Items:      items,
		Total:      models.ComputeTotal(items),
		Location:   models.NormalizeLocation(input.Location),
		TelegramID: tgID,
	}, nil
}

// FinishOrderCreation publie le changement, vide le panier et prévient le
// restaurant. Tout est best-effort : la commande est déjà écrite.
func FinishOrderCreation(ctx context.Context, deviceID string, order *models.Order) {
	database.PublishOrdersChanged(ctx)

	if err := clearCart(ctx, deviceID); err != nil {
		log.Printf("⚠️ Panier non vidé après commande %s: %v", order.Key, err)
	}

	go func(o models.Order) {
		if err := utils.SendNewOrderEmail(o); err != nil {
			log.Printf("⚠️ E-mail nouvelle commande raté: %v", err)
		}
	}(*order)
}

//
// 🟢 POST /api/orders — commande directe (paiement à la livraison)
//
func CreateOrder(c *gin.Context) {
	deviceID := c.GetString("device_id")
	tgID := c.GetInt64("tg_id")

	var input OrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	ctx := context.Background()
	order, err := AssembleOrder(ctx, deviceID, tgID, input)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Savat bo'sh!"})
		case errors.Is(err, ErrInvalidProfile):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Iltimos avval profilni to'ldiring!"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur préparation commande"})
		}
		return
	}

	order.Status = models.StatusPending

	if err := database.InsertOrder(order); err != nil {
		log.Printf("❌ Erreur écriture commande: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur enregistrement commande, réessayez"})
		return
	}

	FinishOrderCreation(ctx, deviceID, order)

	log.Printf("✅ Commande %s créée (%d so'm) pour %s", order.Key, order.Total, order.Phone)
	c.JSON(http.StatusCreated, gin.H{"order": order})
}

//
// 🟢 GET /api/orders/my — historique de l'appareil, plus récent d'abord
//
func GetMyOrders(c *gin.Context) {
	deviceID := c.GetString("device_id")
	tgID := c.GetInt64("tg_id")

	profile, err := loadProfile(context.Background(), deviceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture profil"})
		return
	}

	orders, err := database.ListOrders()
	if err != nil {
		log.Printf("❌ Erreur lecture commandes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}

	// Le snapshot arrive created_at décroissant : on filtre sans retrier.
	var mine []models.Order
	for _, o := range orders {
		if (profile != nil && o.Phone == profile.Phone) || (tgID != 0 && o.TelegramID == tgID) {
			mine = append(mine, o)
		}
		if len(mine) >= 50 {
			break
		}
	}

	c.JSON(http.StatusOK, gin.H{"orders": mine})
}
