package reservations

// SeatClaim names one seat to reserve. SeatID alone is enough; otherwise
// SeatNumber together with RowID or TableID locates the seat.
type SeatClaim struct {
	SectionID  string `json:"sectionId" binding:"required,max=100"`
	RowID      string `json:"rowId" binding:"max=100"`
	TableID    string `json:"tableId" binding:"max=100"`
	SeatID     string `json:"seatId" binding:"required_without=SeatNumber,max=100"`
	SeatNumber string `json:"seatNumber" binding:"max=20"`
}

type ReserveSeatsRequest struct {
	TicketID string `json:"ticket_id" binding:"required,max=100"`
	OrderID  string `json:"order_id" binding:"required,max=100"`
	// SessionID, when set, converts that session's holds. Every claimed
	// seat must then be held by it.
	SessionID string      `json:"session_id" binding:"max=200"`
	Seats     []SeatClaim `json:"seats" binding:"required,min=1,max=50,dive"`
}
