package reservations

type Status string

const (
	StatusReserved Status = "RESERVED"
	StatusReleased Status = "RELEASED"
)

// IsValid checks if the reservation status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusReserved, StatusReleased:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// IsActive reports whether the reservation still holds its seat
func (s Status) IsActive() bool {
	return s == StatusReserved
}
