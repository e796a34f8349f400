package seatingcharts

type CreateSeatingChartRequest struct {
	EventID            string       `json:"event_id" binding:"required,uuid"`
	Name               string       `json:"name" binding:"required,min=1,max=255"`
	SeatingStyle       SeatingStyle `json:"seating_style" binding:"required,oneof=ROW_BASED TABLE_BASED MIXED"`
	VenueImageID       string       `json:"venue_image_id" binding:"max=255"`
	VenueImageURL      string       `json:"venue_image_url" binding:"omitempty,url,max=1000"`
	VenueImageScale    *float64     `json:"venue_image_scale" binding:"omitempty,gt=0"`
	VenueImageRotation *float64     `json:"venue_image_rotation"`
	Sections           []Section    `json:"sections"`
}

// UpdateSeatingChartRequest is a sparse patch: nil fields are left alone.
// Sections, when present, replaces the whole tree.
type UpdateSeatingChartRequest struct {
	Name               *string       `json:"name" binding:"omitempty,min=1,max=255"`
	SeatingStyle       *SeatingStyle `json:"seating_style" binding:"omitempty,oneof=ROW_BASED TABLE_BASED MIXED"`
	VenueImageID       *string       `json:"venue_image_id" binding:"omitempty,max=255"`
	VenueImageURL      *string       `json:"venue_image_url" binding:"omitempty,max=1000"`
	VenueImageScale    *float64      `json:"venue_image_scale" binding:"omitempty,gt=0"`
	VenueImageRotation *float64      `json:"venue_image_rotation"`
	Sections           *[]Section    `json:"sections"`
	IsActive           *bool         `json:"is_active"`
}
