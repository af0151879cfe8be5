package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MichaelBawol/EK-BOOKING/internal/middlewares"
	"github.com/MichaelBawol/EK-BOOKING/internal/service"
)

// NewRouter assembles the full HTTP surface: the booking resource under /api,
// a health probe, and the 405 fallback for unsupported methods.
func NewRouter(svc *service.BookingSvc, adminToken string) *gin.Engine {
	r := gin.Default()
	r.HandleMethodNotAllowed = true
	r.Use(middlewares.RequestID(), middlewares.CORS())
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method_not_allowed"})
	})

	h := NewBookingHandler(svc)
	api := r.Group("/api")
	{
		api.POST("/bookings", h.Submit)
		api.GET("/bookings", middlewares.AdminAuth(adminToken), h.List)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}
