package admin

import (
	"log"
	"net/http"
	"time"

	"bodrum_back_end/internal/database"
	"bodrum_back_end/internal/stats"

	"github.com/gin-gonic/gin"
)

//
// 📊 GET /api/admin/stats?period=day|week|month — la vue statistique est
// intégralement recalculée depuis le snapshot, période inconnue ⇒ day.
//
func GetStats(c *gin.Context) {
	orders, err := database.ListOrders()
	if err != nil {
		log.Printf("❌ Erreur lecture commandes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}

	period := c.DefaultQuery("period", "day")
	overview := stats.BuildOverview(orders, period, time.Now())

	c.JSON(http.StatusOK, gin.H{
		"period": period,
		"stats":  overview,
	})
}
