package seatingcharts

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SeatingStyle string

const (
	StyleRowBased   SeatingStyle = "ROW_BASED"
	StyleTableBased SeatingStyle = "TABLE_BASED"
	StyleMixed      SeatingStyle = "MIXED"
)

type ContainerType string

const (
	ContainerRows   ContainerType = "ROWS"
	ContainerTables ContainerType = "TABLES"
)

type TableShape string

const (
	ShapeRound       TableShape = "ROUND"
	ShapeRectangular TableShape = "RECTANGULAR"
	ShapeSquare      TableShape = "SQUARE"
	ShapeCustom      TableShape = "CUSTOM"
)

type SeatType string

const (
	SeatStandard   SeatType = "STANDARD"
	SeatWheelchair SeatType = "WHEELCHAIR"
	SeatCompanion  SeatType = "COMPANION"
	SeatVIP        SeatType = "VIP"
	SeatBlocked    SeatType = "BLOCKED"
	SeatStanding   SeatType = "STANDING"
	SeatParking    SeatType = "PARKING"
	SeatTent       SeatType = "TENT"
)

type SeatStatus string

const (
	SeatAvailable   SeatStatus = "AVAILABLE"
	SeatReserved    SeatStatus = "RESERVED"
	SeatUnavailable SeatStatus = "UNAVAILABLE"
)

// SeatPosition places a seat around its table
type SeatPosition struct {
	Angle  *float64 `json:"angle,omitempty"`
	Side   string   `json:"side,omitempty"`
	Offset *float64 `json:"offset,omitempty"`
}

// Seat is stored embedded in its row or table. SessionID and SessionExpiry
// are only present while a shopping session holds the seat, and then Status
// is always RESERVED.
type Seat struct {
	ID            string        `json:"id"`
	Number        string        `json:"number"`
	Type          SeatType      `json:"type"`
	Status        SeatStatus    `json:"status"`
	Position      *SeatPosition `json:"position,omitempty"`
	SessionID     string        `json:"sessionId,omitempty"`
	SessionExpiry int64         `json:"sessionExpiry,omitempty"` // epoch millis
}

// HasSession reports whether the seat carries session hold fields,
// expired or not.
func (s *Seat) HasSession() bool {
	return s.SessionID != ""
}

// HeldAt reports whether a live session hold covers the seat at now.
// A hold expiring exactly at now is still live.
func (s *Seat) HeldAt(now time.Time) bool {
	return s.HasSession() && s.SessionExpiry >= now.UnixMilli()
}

// HoldExpiredAt reports whether the seat carries a hold that lapsed before now.
func (s *Seat) HoldExpiredAt(now time.Time) bool {
	return s.HasSession() && s.SessionExpiry < now.UnixMilli()
}

// Hold marks the seat as held by sessionID until expiresAt.
func (s *Seat) Hold(sessionID string, expiresAt time.Time) {
	s.Status = SeatReserved
	s.SessionID = sessionID
	s.SessionExpiry = expiresAt.UnixMilli()
}

// Free clears any hold and makes the seat available again.
func (s *Seat) Free() {
	s.Status = SeatAvailable
	s.SessionID = ""
	s.SessionExpiry = 0
}

// Confirm turns the seat into a purchased seat: reserved with no session.
func (s *Seat) Confirm() {
	s.Status = SeatReserved
	s.SessionID = ""
	s.SessionExpiry = 0
}

type Row struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Curved bool   `json:"curved"`
	Seats  []Seat `json:"seats"`
}

type Table struct {
	ID         string     `json:"id"`
	Number     string     `json:"number"`
	Shape      TableShape `json:"shape"`
	X          float64    `json:"x"`
	Y          float64    `json:"y"`
	Width      float64    `json:"width"`
	Height     float64    `json:"height"`
	Rotation   float64    `json:"rotation"`
	CustomPath string     `json:"customPath,omitempty"`
	Capacity   int        `json:"capacity"`
	Seats      []Seat     `json:"seats"`
}

type Section struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Color         string        `json:"color,omitempty"`
	X             *float64      `json:"x,omitempty"`
	Y             *float64      `json:"y,omitempty"`
	Rotation      *float64      `json:"rotation,omitempty"`
	ContainerType ContainerType `json:"containerType"`
	Rows          []Row         `json:"rows,omitempty"`
	Tables        []Table       `json:"tables,omitempty"`
	TicketTierID  string        `json:"ticketTierId,omitempty"`
}

// SeatingChart is the layout of one event. Sections are kept as a single
// JSON document and every write rewrites it whole; Version guards those
// writes against lost updates.
type SeatingChart struct {
	ID                 uuid.UUID                     `json:"id" gorm:"type:uuid;primaryKey"`
	EventID            uuid.UUID                     `json:"event_id" gorm:"type:uuid;not null;index"`
	Name               string                        `json:"name" gorm:"not null;size:255"`
	SeatingStyle       SeatingStyle                  `json:"seating_style" gorm:"type:varchar(20);not null"`
	VenueImageID       string                        `json:"venue_image_id,omitempty" gorm:"size:255"`
	VenueImageURL      string                        `json:"venue_image_url,omitempty" gorm:"size:1000"`
	VenueImageScale    float64                       `json:"venue_image_scale" gorm:"default:1"`
	VenueImageRotation float64                       `json:"venue_image_rotation" gorm:"default:0"`
	Sections           datatypes.JSONType[[]Section] `json:"sections"`
	TotalSeats         int                           `json:"total_seats" gorm:"not null;default:0"`
	ReservedSeats      int                           `json:"reserved_seats" gorm:"not null;default:0"`
	IsActive           bool                          `json:"is_active" gorm:"not null;default:true;index"`
	Version            int                           `json:"version" gorm:"not null;default:1"`
	CreatedAt          time.Time                     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt          time.Time                     `json:"updated_at" gorm:"autoUpdateTime"`
}

func (SeatingChart) TableName() string {
	return "seating_charts"
}

func (c *SeatingChart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Version == 0 {
		c.Version = 1
	}
	return nil
}

// SectionList returns the embedded sections.
func (c *SeatingChart) SectionList() []Section {
	return c.Sections.Data()
}

// SetSections replaces the embedded sections and recomputes TotalSeats.
func (c *SeatingChart) SetSections(sections []Section) {
	c.Sections = datatypes.NewJSONType(sections)
	c.TotalSeats = CountSeats(sections)
}
