package seatingcharts

import (
	"net/http"

	"stepperslife/internal/shared/identity"
	"stepperslife/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller interface {
	CreateSeatingChart(c *gin.Context)
	UpdateSeatingChart(c *gin.Context)
	DeleteSeatingChart(c *gin.Context)
	GetSeatingChart(c *gin.Context)
	GetSeatingChartByEvent(c *gin.Context)
	GetAvailability(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// CreateSeatingChart godoc
// @Summary  Create a seating chart for an owned event
// @Tags     seating-charts
// @Accept   json
// @Produce  json
// @Param    request body CreateSeatingChartRequest true "Chart layout"
// @Success  201 {object} response.StandardApiResponse
// @Failure  400 {object} response.StandardApiResponse
// @Failure  403 {object} response.StandardApiResponse
// @Router   /organizer/seating-charts [post]
func (ctrl *controller) CreateSeatingChart(c *gin.Context) {
	var req CreateSeatingChartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBindError(c, err)
		return
	}

	chart, err := ctrl.service.CreateSeatingChart(c.Request.Context(), identity.FromContext(c), req)
	if err != nil {
		RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Seating chart created successfully", chart, nil)
}

// UpdateSeatingChart godoc
// @Summary  Patch a seating chart
// @Tags     seating-charts
// @Accept   json
// @Produce  json
// @Param    chartId path string true "Chart ID"
// @Param    request body UpdateSeatingChartRequest true "Fields to change"
// @Success  200 {object} response.StandardApiResponse
// @Router   /organizer/seating-charts/{chartId} [patch]
func (ctrl *controller) UpdateSeatingChart(c *gin.Context) {
	chartID, ok := parseChartID(c)
	if !ok {
		return
	}

	var req UpdateSeatingChartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBindError(c, err)
		return
	}

	chart, err := ctrl.service.UpdateSeatingChart(c.Request.Context(), identity.FromContext(c), chartID, req)
	if err != nil {
		RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Seating chart updated successfully", chart, nil)
}

// DeleteSeatingChart godoc
// @Summary  Delete a seating chart with no active reservations
// @Tags     seating-charts
// @Produce  json
// @Param    chartId path string true "Chart ID"
// @Success  200 {object} response.StandardApiResponse
// @Failure  409 {object} response.StandardApiResponse
// @Router   /organizer/seating-charts/{chartId} [delete]
func (ctrl *controller) DeleteSeatingChart(c *gin.Context) {
	chartID, ok := parseChartID(c)
	if !ok {
		return
	}

	if err := ctrl.service.DeleteSeatingChart(c.Request.Context(), identity.FromContext(c), chartID); err != nil {
		RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Seating chart deleted successfully", nil, nil)
}

// GetSeatingChart godoc
// @Summary  Get a seating chart
// @Tags     seating-charts
// @Produce  json
// @Param    chartId path string true "Chart ID"
// @Success  200 {object} response.StandardApiResponse
// @Router   /seating-charts/{chartId} [get]
func (ctrl *controller) GetSeatingChart(c *gin.Context) {
	chartID, ok := parseChartID(c)
	if !ok {
		return
	}

	chart, err := ctrl.service.GetSeatingChart(c.Request.Context(), chartID)
	if err != nil {
		RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Seating chart retrieved successfully", chart, nil)
}

// GetSeatingChartByEvent godoc
// @Summary  Get the active seating chart of an event
// @Tags     seating-charts
// @Produce  json
// @Param    eventId path string true "Event ID"
// @Success  200 {object} response.StandardApiResponse
// @Router   /events/{eventId}/seating-chart [get]
func (ctrl *controller) GetSeatingChartByEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, err.Error())
		return
	}

	chart, err := ctrl.service.GetSeatingChartByEvent(c.Request.Context(), eventID)
	if err != nil {
		RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Seating chart retrieved successfully", chart, nil)
}

// GetAvailability godoc
// @Summary  Per-seat availability merged from holds and reservations
// @Tags     seating-charts
// @Produce  json
// @Param    chartId path string true "Chart ID"
// @Success  200 {object} response.StandardApiResponse
// @Router   /seating-charts/{chartId}/availability [get]
func (ctrl *controller) GetAvailability(c *gin.Context) {
	chartID, ok := parseChartID(c)
	if !ok {
		return
	}

	availability, err := ctrl.service.GetAvailability(c.Request.Context(), chartID)
	if err != nil {
		RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Seat availability retrieved successfully", availability, nil)
}

func parseChartID(c *gin.Context) (uuid.UUID, bool) {
	chartID, err := uuid.Parse(c.Param("chartId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid chart ID", nil, err.Error())
		return uuid.Nil, false
	}
	return chartID, true
}
