package events

import (
	"stepperslife/internal/shared/identity"
	"stepperslife/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupEventRoutes(router *gin.RouterGroup, controller Controller, auth gin.HandlerFunc) {
	publicEvents := router.Group("/events")
	{
		publicEvents.GET("/:eventId", controller.GetEvent) // GET /api/v1/events/:eventId
	}

	organizerEvents := router.Group("/organizer/events")
	organizerEvents.Use(auth, middleware.RequireRoles(identity.RoleOrganizer, identity.RoleAdmin))
	{
		organizerEvents.POST("", controller.CreateEvent) // POST /api/v1/organizer/events
	}
}
