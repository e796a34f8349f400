package seatingcharts

import (
	"stepperslife/internal/shared/identity"
	"stepperslife/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupSeatingChartRoutes(router *gin.RouterGroup, controller Controller, auth gin.HandlerFunc) {
	// Public reads for the seat picker
	router.GET("/seating-charts/:chartId", controller.GetSeatingChart)              // GET /api/v1/seating-charts/:chartId
	router.GET("/seating-charts/:chartId/availability", controller.GetAvailability) // GET /api/v1/seating-charts/:chartId/availability
	router.GET("/events/:eventId/seating-chart", controller.GetSeatingChartByEvent) // GET /api/v1/events/:eventId/seating-chart

	// Organizer layout management; ownership is checked per event in the service
	organizer := router.Group("/organizer/seating-charts")
	organizer.Use(auth, middleware.RequireRoles(identity.RoleOrganizer, identity.RoleAdmin))
	{
		organizer.POST("", controller.CreateSeatingChart)            // POST /api/v1/organizer/seating-charts
		organizer.PATCH("/:chartId", controller.UpdateSeatingChart)  // PATCH /api/v1/organizer/seating-charts/:chartId
		organizer.DELETE("/:chartId", controller.DeleteSeatingChart) // DELETE /api/v1/organizer/seating-charts/:chartId
	}
}
