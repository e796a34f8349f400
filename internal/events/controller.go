package events

import (
	"errors"
	"net/http"

	"stepperslife/internal/shared/identity"
	"stepperslife/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller interface {
	CreateEvent(c *gin.Context)
	GetEvent(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// CreateEvent godoc
// @Summary  Create an event owned by the caller
// @Tags     events
// @Accept   json
// @Produce  json
// @Param    request body CreateEventRequest true "Event"
// @Success  201 {object} response.StandardApiResponse
// @Router   /organizer/events [post]
func (ctrl *controller) CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBindError(c, err)
		return
	}

	event, err := ctrl.service.CreateEvent(c.Request.Context(), identity.FromContext(c), req)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			response.RespondJSON(c, "error", http.StatusUnauthorized, err.Error(), nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to create event", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Event created successfully", event, nil)
}

// GetEvent godoc
// @Summary  Get an event
// @Tags     events
// @Produce  json
// @Param    eventId path string true "Event ID"
// @Success  200 {object} response.StandardApiResponse
// @Router   /events/{eventId} [get]
func (ctrl *controller) GetEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, err.Error())
		return
	}

	event, err := ctrl.service.GetEventByID(c.Request.Context(), eventID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrEventNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Event retrieved successfully", event, nil)
}
