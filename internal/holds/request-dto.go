package holds

// SeatRequest names a seat by its number at a table or in a row. SectionID
// narrows the lookup when table or row ids repeat across sections.
type SeatRequest struct {
	SectionID  string `json:"sectionId" binding:"max=100"`
	TableID    string `json:"tableId" binding:"required_without=RowID,max=100"`
	RowID      string `json:"rowId" binding:"max=100"`
	SeatNumber string `json:"seatNumber" binding:"required,max=20"`
}

type HoldSeatsRequest struct {
	SessionID string        `json:"session_id" binding:"required,max=200"`
	Seats     []SeatRequest `json:"seats" binding:"required,min=1,max=20,dive"`
}

// ReleaseHoldsRequest releases every seat the session holds when Seats is
// empty.
type ReleaseHoldsRequest struct {
	SessionID string        `json:"session_id" binding:"required,max=200"`
	Seats     []SeatRequest `json:"seats" binding:"max=50,dive"`
}
