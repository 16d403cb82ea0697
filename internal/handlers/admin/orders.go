package admin

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"bodrum_back_end/internal/database"
	"bodrum_back_end/internal/models"
	"bodrum_back_end/internal/stats"

	"github.com/gin-gonic/gin"
)

//
// 🟢 GET /api/admin/orders?view=new|accepted — les deux onglets du
// dashboard, recalculés depuis le snapshot complet à chaque appel.
//
func GetOrders(c *gin.Context) {
	orders, err := database.ListOrders()
	if err != nil {
		log.Printf("❌ Erreur lecture commandes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}

	view := c.DefaultQuery("view", "new")

	var filtered []models.Order
	pendingCount := 0
	for _, o := range orders {
		switch o.Status {
		case models.StatusPending:
			pendingCount++
			if view == "new" {
				filtered = append(filtered, o)
			}
		case models.StatusAccepted:
			if view == "accepted" {
				filtered = append(filtered, o)
			}
		}
	}
	if filtered == nil {
		filtered = []models.Order{}
	}

	// Chiffre du bandeau : commandes acceptées depuis minuit
	now := time.Now()
	today := stats.FilterAccepted(orders, stats.PeriodStart("day", now), now)

	c.JSON(http.StatusOK, gin.H{
		"orders":        filtered,
		"pending_count": pendingCount,
		"today_revenue": stats.Revenue(today),
		"today_orders":  len(today),
	})
}

//
// ✅ POST /api/admin/orders/:id/accept
//
func AcceptOrder(c *gin.Context) {
	decideOrder(c, models.StatusAccepted, "Commande acceptée")
}

//
// ❌ POST /api/admin/orders/:id/reject
//
func RejectOrder(c *gin.Context) {
	decideOrder(c, models.StatusRejected, "Commande rejetée")
}

// decideOrder applique la décision admin en écriture conditionnelle :
// si un autre admin est passé avant, la transition échoue en 409 et la
// commande garde sa première décision.
func decideOrder(c *gin.Context, to models.Status, message string) {
	key := c.Param("id")

	err := database.TransitionOrder(key, models.StatusPending, to, time.Now())
	switch {
	case errors.Is(err, models.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	case errors.Is(err, models.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": "Commande déjà traitée"})
		return
	case err != nil:
		log.Printf("❌ Erreur transition %s → %s: %v", key, to, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour commande"})
		return
	}

	database.PublishOrdersChanged(context.Background())

	log.Printf("✅ %s: %s (par %s)", message, key, c.GetString("admin_login"))
	c.JSON(http.StatusOK, gin.H{"message": message, "status": to})
}
