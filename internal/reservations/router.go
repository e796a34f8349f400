package reservations

import (
	"stepperslife/internal/shared/identity"
	"stepperslife/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupReservationRoutes registers the ledger endpoints called by the
// order/ticket backend.
func SetupReservationRoutes(rg *gin.RouterGroup, controller *Controller, auth gin.HandlerFunc) {
	internal := rg.Group("/internal")
	internal.Use(auth, middleware.RequireRoles(identity.RoleService, identity.RoleAdmin))
	{
		internal.POST("/seating-charts/:chartId/reservations", controller.ReserveSeats) // POST /api/v1/internal/seating-charts/:chartId/reservations
		internal.POST("/tickets/:ticketId/release", controller.ReleaseSeats)            // POST /api/v1/internal/tickets/:ticketId/release
		internal.GET("/tickets/:ticketId/reservations", controller.ListReservations)    // GET /api/v1/internal/tickets/:ticketId/reservations
	}
}

// Route definitions for reference:
//
// RESERVE (after payment)
// POST   /api/v1/internal/seating-charts/:chartId/reservations
// Request body: { "ticket_id": "tk1", "order_id": "ord1", "session_id": "sess-1",
//                 "seats": [{ "sectionId": "s1", "seatId": "t1-seat-2" }] }
//
// RELEASE (ticket cancelled)
// POST   /api/v1/internal/tickets/:ticketId/release
//
// HISTORY
// GET    /api/v1/internal/tickets/:ticketId/reservations
