package admin

import (
	"log"
	"net/http"
	"time"

	"bodrum_back_end/internal/database"
	"bodrum_back_end/internal/models"
	"bodrum_back_end/internal/stats"

	"github.com/gin-gonic/gin"
)

//
// 🟢 GET /api/admin/customers?q= — fiche clients dérivée du snapshot :
// regroupement par téléphone, total dépensé, badge VIP à partir de 5
// commandes.
//
func GetCustomers(c *gin.Context) {
	orders, err := database.ListOrders()
	if err != nil {
		log.Printf("❌ Erreur lecture commandes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}

	customers := stats.BuildCustomers(orders)
	filtered := stats.SearchCustomers(customers, c.Query("q"))

	midnight := stats.PeriodStart("day", time.Now())
	vipCount, activeToday := 0, 0
	for _, cust := range customers {
		if cust.VIP() {
			vipCount++
		}
		if !cust.LastOrder.Before(midnight) {
			activeToday++
		}
	}

	type customerView struct {
		models.Customer
		VIP bool `json:"vip"`
	}
	views := make([]customerView, 0, len(filtered))
	for _, cust := range filtered {
		views = append(views, customerView{Customer: cust, VIP: cust.VIP()})
	}

	c.JSON(http.StatusOK, gin.H{
		"customers":    views,
		"total":        len(customers),
		"vip":          vipCount,
		"active_today": activeToday,
	})
}
