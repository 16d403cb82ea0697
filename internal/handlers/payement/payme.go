package payement

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"net/url"
	"os"
	"time"

	"bodrum_back_end/internal/database"
	"bodrum_back_end/internal/handlers/user"
	"bodrum_back_end/internal/models"
	"bodrum_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

const paymeCheckoutBase = "https://checkout.paycom.uz"

// NewExternalOrderID génère l'identifiant passé au prestataire de
// paiement : ORD_<horodatage ms>_<9 chiffres aléatoires>.
func NewExternalOrderID(now time.Time) string {
	return fmt.Sprintf("ORD_%d_%09d", now.UnixMilli(), rand.Intn(1_000_000_000))
}

// BuildPaymeURL assemble l'URL de redirection Payme. Le montant part en
// unités mineures : 1 so'm = 100 tiyin.
func BuildPaymeURL(merchantID string, order *models.Order, callbackURL string) string {
	params := url.Values{}
	params.Set("merchant", merchantID)
	params.Set("amount", fmt.Sprintf("%d", order.Total*100))
	params.Set("order_id", order.ExternalOrderID)
	params.Set("detail", fmt.Sprintf("%d ta mahsulot", len(order.Items)))
	params.Set("description", fmt.Sprintf("BODRUM buyurtma %s", order.ExternalOrderID))
	params.Set("callback_url", callbackURL)
	params.Set("lang", "uz")

	return fmt.Sprintf("%s/%s?%s", paymeCheckoutBase, merchantID, params.Encode())
}

func callbackURL(externalID string) string {
	base := os.Getenv("PUBLIC_BASE_URL")
	if base == "" {
		base = "http://localhost:8080"
	}
	return fmt.Sprintf("%s/api/pay/callback?order_id=%s", base, url.QueryEscape(externalID))
}

//
// 💳 POST /api/pay/payme — la commande est écrite AVANT de rendre l'URL :
// si le client ferme la WebApp pendant la redirection, la commande
// pending_payment existe déjà côté restaurant.
//
func PaymePay(c *gin.Context) {
	deviceID := c.GetString("device_id")
	tgID := c.GetInt64("tg_id")

	var input user.OrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	ctx := context.Background()
	order, err := user.AssembleOrder(ctx, deviceID, tgID, input)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Savat bo'sh!"})
		case errors.Is(err, user.ErrInvalidProfile):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Iltimos avval profilni to'ldiring!"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur préparation commande"})
		}
		return
	}

	order.Status = models.StatusPendingPayment
	order.PaymentMethod = "payme"
	order.PaymentStatus = "pending"
	order.ExternalOrderID = NewExternalOrderID(time.Now())

	if err := database.InsertOrder(order); err != nil {
		log.Printf("❌ Erreur écriture commande Payme: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur enregistrement commande, réessayez"})
		return
	}

	user.FinishOrderCreation(ctx, deviceID, order)

	merchantID := os.Getenv("PAYME_MERCHANT_ID")
	payURL := BuildPaymeURL(merchantID, order, callbackURL(order.ExternalOrderID))

	log.Printf("💳 Redirection Payme pour %s (%d so'm)", order.ExternalOrderID, order.Total)
	c.JSON(http.StatusOK, gin.H{
		"orderId": order.ExternalOrderID,
		"url":     payURL,
	})
}

//
// 📱 GET /api/pay/payme/qr/:orderId — le QR encode la même URL de
// checkout, pour payer depuis un autre téléphone.
//
func PaymeQR(c *gin.Context) {
	externalID := c.Param("orderId")

	orders, err := database.ListOrders()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}

	for _, o := range orders {
		if o.ExternalOrderID != externalID {
			continue
		}
		payURL := BuildPaymeURL(os.Getenv("PAYME_MERCHANT_ID"), &o, callbackURL(externalID))
		qr, err := utils.GeneratePaymentQRBase64(payURL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération QR"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"orderId": externalID, "qr": qr, "url": payURL})
		return
	}

	c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
}

//
// 🛎️ GET /api/pay/callback — retour du prestataire : la commande passe
// pending_payment → pending et entre dans la file du restaurant.
//
func PaymeCallback(c *gin.Context) {
	externalID := c.Query("order_id")
	if externalID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order_id manquant"})
		return
	}

	if err := ConfirmPayment(externalID); err != nil {
		switch {
		case errors.Is(err, models.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		case errors.Is(err, models.ErrInvalidTransition):
			// Rappel du prestataire : déjà confirmée, rien à refaire.
			c.JSON(http.StatusOK, gin.H{"message": "To'lov allaqachon tasdiqlangan"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur confirmation paiement"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "To'lov tasdiqlandi! Buyurtmangiz qabul qilindi."})
}

// ConfirmPayment fait basculer la commande dans la file des nouvelles
// commandes. Idempotent côté appelant : un second passage rend
// ErrInvalidTransition sans toucher la ligne.
func ConfirmPayment(externalID string) error {
	key, err := database.GetOrderKeyByExternalID(externalID)
	if err != nil {
		return err
	}

	if err := database.TransitionOrder(key, models.StatusPendingPayment,
		models.StatusPending, time.Now()); err != nil {
		return err
	}

	database.PublishOrdersChanged(context.Background())
	log.Printf("✅ Paiement confirmé pour %s", externalID)
	return nil
}
