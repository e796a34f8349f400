package holds

import (
	"stepperslife/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupHoldRoutes registers the checkout hold endpoints. Shoppers are
// identified by the opaque session id the checkout UI generates, so holds
// need no login.
func SetupHoldRoutes(rg *gin.RouterGroup, controller *Controller, auth gin.HandlerFunc) {
	events := rg.Group("/events/:eventId/holds")
	{
		events.POST("", controller.HoldSeats)            // POST /api/v1/events/:eventId/holds
		events.POST("/release", controller.ReleaseHolds) // POST /api/v1/events/:eventId/holds/release
	}

	admin := rg.Group("/admin/events/:eventId/holds")
	admin.Use(auth, middleware.RequireAdmin())
	{
		admin.POST("/cleanup", controller.CleanupExpiredHolds) // POST /api/v1/admin/events/:eventId/holds/cleanup
	}
}
