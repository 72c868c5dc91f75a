package routes

import (
	"net/http"
	"time"

	"medibook/handlers"
	"medibook/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterSubjectRoutes registers subject-facing endpoints.
func RegisterSubjectRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/subject")
	{
		api.POST("/register", hb.RegisterSubjectHandler)
		api.POST("/login", hb.LoginSubjectHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthSubjectMiddleware())
		api.GET("/profile", hb.GetSubjectProfileHandler)
		api.POST("/update-profile", hb.UpdateSubjectProfileHandler)
		api.POST("/book-appointment", hb.BookAppointmentHandler)
		api.POST("/cancel-appointment", hb.CancelAppointmentSubjectHandler)
		api.GET("/appointments", hb.ListSubjectAppointmentsHandler)
		api.POST("/payment/order", hb.CreatePaymentOrderHandler)
		api.POST("/payment/verify", hb.VerifyPaymentHandler)
		api.POST("/payment/checkout", hb.CreateCheckoutSessionHandler)
	}
}

// RegisterProviderRoutes registers provider-facing endpoints.
func RegisterProviderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/provider")
	{
		api.POST("/login", hb.LoginProviderHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthProviderMiddleware())
		api.GET("/profile", hb.GetProviderProfileHandler)
		api.POST("/update-profile", hb.UpdateProviderProfileHandler)
		api.POST("/toggle-availability", hb.ToggleProviderAvailabilityHandler)
		api.GET("/appointments", hb.ListProviderAppointmentsHandler)
		api.POST("/cancel-appointment", hb.CancelAppointmentProviderHandler)
		api.POST("/complete-appointment", hb.CompleteAppointmentHandler)
		api.GET("/dashboard", hb.ProviderDashboardHandler)
	}
}

// RegisterPublicRoutes registers endpoints that need no credential: the
// provider directory, per-provider availability, and the payment webhook.
func RegisterPublicRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/providers", hb.ListProvidersHandler)
	r.GET("/api/providers/:providerId/slots", hb.AvailableSlotsHandler)
	r.POST("/api/payment/webhook", hb.PaymentWebhookHandler)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterSubjectRoutes(r, hb)
	RegisterProviderRoutes(r, hb)
	RegisterPublicRoutes(r, hb)
	RegisterHealthRoute(r)
}
