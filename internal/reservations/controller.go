package reservations

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

// ReserveSeats godoc
// @Summary  Record purchased seats in the reservation ledger
// @Tags     reservations
// @Accept   json
// @Produce  json
// @Param    chartId path string true "Chart ID"
// @Param    request body ReserveSeatsRequest true "Ticket, order and seats"
// @Success  201 {object} response.StandardApiResponse
// @Failure  404 {object} response.StandardApiResponse
// @Failure  409 {object} response.StandardApiResponse
// @Router   /internal/seating-charts/{chartId}/reservations [post]
func (ctrl *Controller) ReserveSeats(c *gin.Context) {
	chartID, err := uuid.Parse(c.Param("chartId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid chart ID", nil, err.Error())
		return
	}

	var req ReserveSeatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBindError(c, err)
		return
	}

	result, err := ctrl.service.ReserveSeats(c.Request.Context(), chartID, req)
	if err != nil {
		seatingcharts.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Seats reserved successfully", result, nil)
}

// ReleaseSeats godoc
// @Summary  Release every seat reserved for a ticket
// @Tags     reservations
// @Produce  json
// @Param    ticketId path string true "Ticket ID"
// @Success  200 {object} response.StandardApiResponse
// @Router   /internal/tickets/{ticketId}/release [post]
func (ctrl *Controller) ReleaseSeats(c *gin.Context) {
	result, err := ctrl.service.ReleaseSeats(c.Request.Context(), c.Param("ticketId"))
	if err != nil {
		seatingcharts.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Seats released successfully", result, nil)
}

// ListReservations godoc
// @Summary  Reservation history of a ticket
// @Tags     reservations
// @Produce  json
// @Param    ticketId path string true "Ticket ID"
// @Success  200 {object} response.StandardApiResponse
// @Router   /internal/tickets/{ticketId}/reservations [get]
func (ctrl *Controller) ListReservations(c *gin.Context) {
	rows, err := ctrl.service.ListReservations(c.Request.Context(), c.Param("ticketId"))
	if err != nil {
		seatingcharts.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Reservations retrieved successfully", rows, nil)
}
