package admin

import (
	"context"
	"log"
	"net/http"
	"time"

	"bodrum_back_end/internal/database"
	"bodrum_back_end/internal/models"
	"bodrum_back_end/internal/stats"
	"bodrum_back_end/internal/telegram"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Autoriser toutes les origines (à ajuster en production)
		return true
	},
}

// OrdersWebSocket pousse le snapshot COMPLET des commandes au dashboard
// à chaque changement publié sur Redis : jamais de delta, le client
// remplace tout son état. Au plus une notification "nouvelle commande"
// par push, portée par le détecteur à miroir de l'appareil.
func OrdersWebSocket(c *gin.Context) {
	deviceID := c.GetString("device_id")
	if deviceID == "" {
		deviceID = c.Query("device_id")
	}
	if deviceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "device_id manquant"})
		return
	}

	notifyMethod := telegram.NotificationMethod(c.Query("tg_version"))

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Erreur upgrade WebSocket: %v", err)
		return
	}
	defer conn.Close()

	ctx := context.Background()

	pubsub := database.Redis.Subscribe(ctx, database.OrdersChannel)
	defer pubsub.Close()
	ch := pubsub.Channel()

	detector := &stats.Detector{Mirror: database.SnapshotMirror{DeviceID: deviceID}}

	conn.WriteJSON(map[string]interface{}{
		"type":    "connected",
		"message": "Flux commandes activé",
	})

	// Premier push immédiat : le dashboard part toujours d'un snapshot
	// frais, pas d'un cache.
	if err := pushSnapshot(conn, detector, notifyMethod); err != nil {
		return
	}

	for {
		select {
		case msg := <-ch:
			if msg.Payload != "updated" {
				continue
			}
			if err := pushSnapshot(conn, detector, notifyMethod); err != nil {
				log.Printf("❌ Erreur envoi WebSocket: %v", err)
				return
			}
		case <-time.After(30 * time.Second):
			// Ping pour garder la connexion active
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// pushSnapshot relit la collection entière et l'envoie avec les
// compteurs dérivés. L'échec de détection ne bloque jamais le push.
func pushSnapshot(conn *websocket.Conn, detector *stats.Detector, method telegram.NotifyMethod) error {
	orders, err := database.ListOrders()
	if err != nil {
		log.Printf("❌ Erreur lecture commandes: %v", err)
		return conn.WriteJSON(map[string]interface{}{
			"type":  "error",
			"error": "Erreur récupération commandes",
		})
	}

	pendingCount := 0
	for _, o := range orders {
		if o.Status == models.StatusPending {
			pendingCount++
		}
	}

	response := map[string]interface{}{
		"type":          "orders_snapshot",
		"orders":        orders,
		"count":         len(orders),
		"pending_count": pendingCount,
	}

	event, err := detector.Check(orders)
	if err != nil {
		log.Printf("⚠️ Détection nouvelles commandes ratée: %v", err)
	} else if event != nil {
		response["notification"] = map[string]interface{}{
			"method": method,
			"order":  event.Order,
			"count":  event.Count,
		}
	}

	return conn.WriteJSON(response)
}
