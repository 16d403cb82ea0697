package payement

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"bodrum_back_end/internal/database"
	"bodrum_back_end/internal/handlers/user"
	"bodrum_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"
	"github.com/stripe/stripe-go/v83/webhook"
)

//
// 💳 POST /api/pay/card — paiement carte via Stripe. Même contrat que
// Payme : la commande pending_payment est écrite avant de rendre le
// client_secret.
//
func CreateCardPayment(c *gin.Context) {
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
	order.PaymentMethod = "card"
	order.PaymentStatus = "pending"
	order.ExternalOrderID = NewExternalOrderID(time.Now())

	if err := database.InsertOrder(order); err != nil {
		log.Printf("❌ Erreur écriture commande carte: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur enregistrement commande, réessayez"})
		return
	}

	user.FinishOrderCreation(ctx, deviceID, order)

	// Stripe attend les unités mineures : so'm × 100
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(order.Total * 100),
		Currency: stripe.String("uzs"),
	}
	params.AddMetadata("order_id", order.ExternalOrderID)
	params.AddMetadata("phone", order.Phone)
	if itemsJSON, err := json.Marshal(order.Items); err == nil {
		params.AddMetadata("items", string(itemsJSON))
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		log.Printf("❌ Erreur création PaymentIntent: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur initialisation paiement"})
		return
	}

	log.Printf("💳 PaymentIntent %s créé pour %s (%d so'm)", pi.ID, order.ExternalOrderID, order.Total)
	c.JSON(http.StatusOK, gin.H{
		"orderId":      order.ExternalOrderID,
		"clientSecret": pi.ClientSecret,
	})
}

//
// 🛎️ POST /api/pay/stripe/webhook — seul payment_intent.succeeded nous
// intéresse : il déclenche la même confirmation que le retour Payme.
//
func StripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Corps illisible"})
		return
	}

	event, err := webhook.ConstructEvent(payload,
		c.GetHeader("Stripe-Signature"), os.Getenv("STRIPE_WEBHOOK_SECRET"))
	if err != nil {
		log.Printf("⚠️ Signature webhook Stripe invalide: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Signature invalide"})
		return
	}

	if event.Type != "payment_intent.succeeded" {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		log.Printf("⚠️ PaymentIntent illisible: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Événement illisible"})
		return
	}

	externalID := pi.Metadata["order_id"]
	if externalID == "" {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	if err := ConfirmPayment(externalID); err != nil && !errors.Is(err, models.ErrInvalidTransition) {
		log.Printf("❌ Confirmation paiement %s ratée: %v", externalID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur confirmation paiement"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
