package holds

import (
	"net/http"

	"stepperslife/internal/seatingcharts"
	"stepperslife/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// HoldSeats godoc
// @Summary  Hold seats for a checkout session
// @Tags     holds
// @Accept   json
// @Produce  json
// @Param    eventId path string true "Event ID"
// @Param    request body HoldSeatsRequest true "Session and seats"
// @Success  200 {object} response.StandardApiResponse
// @Failure  404 {object} response.StandardApiResponse
// @Failure  409 {object} response.StandardApiResponse
// @Router   /events/{eventId}/holds [post]
func (ctrl *Controller) HoldSeats(c *gin.Context) {
	eventID, ok := parseEventID(c)
	if !ok {
		return
	}

	var req HoldSeatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBindError(c, err)
		return
	}

	result, err := ctrl.service.HoldSeatsForSession(c.Request.Context(), eventID, req)
	if err != nil {
		seatingcharts.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Seats held successfully", result, nil)
}

// ReleaseHolds godoc
// @Summary  Release a session's seat holds
// @Tags     holds
// @Accept   json
// @Produce  json
// @Param    eventId path string true "Event ID"
// @Param    request body ReleaseHoldsRequest true "Session and optional seats"
// @Success  200 {object} response.StandardApiResponse
// @Router   /events/{eventId}/holds/release [post]
func (ctrl *Controller) ReleaseHolds(c *gin.Context) {
	eventID, ok := parseEventID(c)
	if !ok {
		return
	}

	var req ReleaseHoldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBindError(c, err)
		return
	}

	result, err := ctrl.service.ReleaseSessionHolds(c.Request.Context(), eventID, req)
	if err != nil {
		seatingcharts.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Holds released successfully", result, nil)
}

// CleanupExpiredHolds godoc
// @Summary  Free every lapsed hold on an event's chart
// @Tags     holds
// @Produce  json
// @Param    eventId path string true "Event ID"
// @Success  200 {object} response.StandardApiResponse
// @Router   /admin/events/{eventId}/holds/cleanup [post]
func (ctrl *Controller) CleanupExpiredHolds(c *gin.Context) {
	eventID, ok := parseEventID(c)
	if !ok {
		return
	}

	result, err := ctrl.service.CleanupExpiredSessionHolds(c.Request.Context(), eventID)
	if err != nil {
		seatingcharts.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Expired holds cleaned up", result, nil)
}

func parseEventID(c *gin.Context) (uuid.UUID, bool) {
	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, err.Error())
		return uuid.Nil, false
	}
	return eventID, true
}
