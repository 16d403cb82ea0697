package routes

import (
	"time"

	"bodrum_back_end/internal/handlers/admin"
	"bodrum_back_end/internal/handlers/menu"
	"bodrum_back_end/internal/handlers/payement"
	"bodrum_back_end/internal/handlers/user"
	"bodrum_back_end/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// La WebApp tourne sur le domaine Telegram : CORS ouvert, mais les
	// en-têtes d'identité appareil doivent passer.
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization",
			"X-Device-ID", "X-Telegram-Init-Data"},
		MaxAge: 12 * time.Hour,
	}))

	// Menu public
	r.GET("/api/menu", menu.GetMenu)
	r.GET("/api/menu/:id", menu.GetMenuItem)

	// Côté client : tout est rattaché à l'appareil
	api := r.Group("/api", middleware.DeviceRequired())
	{
		api.GET("/cart", user.GetCart)
		api.POST("/cart/add", user.AddToCart)
		api.POST("/cart/update", user.UpdateCartQuantity)
		api.DELETE("/cart/:itemId", user.RemoveFromCart)
		api.DELETE("/cart", user.ClearCart)

		api.GET("/profile", user.GetProfile)
		api.POST("/profile", user.SaveProfile)
		api.DELETE("/profile", user.DeleteProfile)

		api.POST("/orders", middleware.OrderRateLimit(), user.CreateOrder)
		api.GET("/orders/my", user.GetMyOrders)

		api.POST("/pay/payme", middleware.OrderRateLimit(), payement.PaymePay)
		api.POST("/pay/card", middleware.OrderRateLimit(), payement.CreateCardPayment)
		api.GET("/pay/payme/qr/:orderId", payement.PaymeQR)
	}

	// Retours des prestataires de paiement : pas d'identité appareil
	r.GET("/api/pay/callback", payement.PaymeCallback)
	r.POST("/api/pay/stripe/webhook", payement.StripeWebhook)

	// Dashboard admin
	r.POST("/api/admin/login", middleware.LoginRateLimit(), admin.Login)

	adminAPI := r.Group("/api/admin", middleware.AdminRequired())
	{
		adminAPI.GET("/orders", admin.GetOrders)
		adminAPI.POST("/orders/:id/accept", admin.AcceptOrder)
		adminAPI.POST("/orders/:id/reject", admin.RejectOrder)
		adminAPI.GET("/customers", admin.GetCustomers)
		adminAPI.GET("/stats", admin.GetStats)

		adminAPI.POST("/menu", menu.UpsertMenuItem)
		adminAPI.POST("/menu/:id/image", menu.UploadMenuImage)
	}

	// WebSocket : hors du groupe JWT, la webview ne pose pas de headers
	// sur l'upgrade ; l'identité passe en query
	r.GET("/api/admin/orders/ws", admin.OrdersWebSocket)
}
