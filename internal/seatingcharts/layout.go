package seatingcharts

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// layoutSeat, layoutTable and layoutSection carry the per-field rules run by
// the validator ahead of the cross-field checks in ValidateLayout.
type layoutSeat struct {
	ID     string `validate:"required,max=100"`
	Number string `validate:"required,max=20"`
	Type   string `validate:"oneof=STANDARD WHEELCHAIR COMPANION VIP BLOCKED STANDING PARKING TENT"`
	Status string `validate:"oneof=AVAILABLE RESERVED UNAVAILABLE"`
}

type layoutTable struct {
	ID       string `validate:"required,max=100"`
	Shape    string `validate:"omitempty,oneof=ROUND RECTANGULAR SQUARE CUSTOM"`
	Capacity int    `validate:"gte=0,lte=100"`
}

type layoutSection struct {
	ID            string `validate:"required,max=100"`
	Name          string `validate:"required,max=255"`
	ContainerType string `validate:"required,oneof=ROWS TABLES"`
}

// SeatLocation names where a seat sits in the chart. Exactly one of RowID
// and TableID is set.
type SeatLocation struct {
	SectionID  string `json:"sectionId"`
	RowID      string `json:"rowId,omitempty"`
	TableID    string `json:"tableId,omitempty"`
	SeatID     string `json:"seatId"`
	SeatNumber string `json:"seatNumber"`
}

// SeatSelector picks seats out of a chart. Empty fields match anything, but
// a selector must name SeatID or SeatNumber.
type SeatSelector struct {
	SectionID  string
	RowID      string
	TableID    string
	SeatID     string
	SeatNumber string
}

func (sel SeatSelector) matches(loc SeatLocation) bool {
	if sel.SeatID == "" && sel.SeatNumber == "" {
		return false
	}
	return (sel.SectionID == "" || sel.SectionID == loc.SectionID) &&
		(sel.RowID == "" || sel.RowID == loc.RowID) &&
		(sel.TableID == "" || sel.TableID == loc.TableID) &&
		(sel.SeatID == "" || sel.SeatID == loc.SeatID) &&
		(sel.SeatNumber == "" || sel.SeatNumber == loc.SeatNumber)
}

func (sel SeatSelector) String() string {
	parts := make([]string, 0, 4)
	if sel.SectionID != "" {
		parts = append(parts, "section "+sel.SectionID)
	}
	if sel.TableID != "" {
		parts = append(parts, "table "+sel.TableID)
	}
	if sel.RowID != "" {
		parts = append(parts, "row "+sel.RowID)
	}
	if sel.SeatID != "" {
		parts = append(parts, "seat "+sel.SeatID)
	} else {
		parts = append(parts, "seat "+sel.SeatNumber)
	}
	return strings.Join(parts, ", ")
}

// CountSeats sums the seats of every row and every table of every section.
func CountSeats(sections []Section) int {
	total := 0
	for _, section := range sections {
		for _, row := range section.Rows {
			total += len(row.Seats)
		}
		for _, table := range section.Tables {
			total += len(table.Seats)
		}
	}
	return total
}

// WalkSeats calls fn for every seat in chart order with a pointer into
// sections, so fn may modify the seat in place. Walking stops when fn
// returns false.
func WalkSeats(sections []Section, fn func(loc SeatLocation, seat *Seat) bool) {
	for i := range sections {
		section := &sections[i]
		for j := range section.Rows {
			row := &section.Rows[j]
			for k := range row.Seats {
				seat := &row.Seats[k]
				loc := SeatLocation{SectionID: section.ID, RowID: row.ID, SeatID: seat.ID, SeatNumber: seat.Number}
				if !fn(loc, seat) {
					return
				}
			}
		}
		for j := range section.Tables {
			table := &section.Tables[j]
			for k := range table.Seats {
				seat := &table.Seats[k]
				loc := SeatLocation{SectionID: section.ID, TableID: table.ID, SeatID: seat.ID, SeatNumber: seat.Number}
				if !fn(loc, seat) {
					return
				}
			}
		}
	}
}

// SeatMatch is a seat found by FindSeats
type SeatMatch struct {
	Location SeatLocation
	Seat     *Seat
}

// FindSeats returns every seat matched by sel.
func FindSeats(sections []Section, sel SeatSelector) []SeatMatch {
	var out []SeatMatch
	WalkSeats(sections, func(loc SeatLocation, seat *Seat) bool {
		if sel.matches(loc) {
			out = append(out, SeatMatch{Location: loc, Seat: seat})
		}
		return true
	})
	return out
}

// CloneSections deep-copies sections so that a failed transform leaves the
// original untouched.
func CloneSections(sections []Section) []Section {
	if sections == nil {
		return nil
	}
	raw, err := json.Marshal(sections)
	if err != nil {
		panic(fmt.Sprintf("seatingcharts: clone sections: %v", err))
	}
	var out []Section
	if err := json.Unmarshal(raw, &out); err != nil {
		panic(fmt.Sprintf("seatingcharts: clone sections: %v", err))
	}
	return out
}

// NormalizeSections fills defaults a client may omit: seat type STANDARD,
// seat status AVAILABLE and, for tables, the table number from its id.
func NormalizeSections(sections []Section) {
	for i := range sections {
		for j := range sections[i].Tables {
			if sections[i].Tables[j].Number == "" {
				sections[i].Tables[j].Number = sections[i].Tables[j].ID
			}
		}
	}
	WalkSeats(sections, func(_ SeatLocation, seat *Seat) bool {
		if seat.Type == "" {
			seat.Type = SeatStandard
		}
		if seat.Status == "" {
			seat.Status = SeatAvailable
		}
		return true
	})
}

// ValidateLayout checks a section tree before it is stored:
//   - section ids are unique within the chart
//   - seat ids are unique within their section
//   - a section only carries the container list its containerType names,
//     unless the chart style is MIXED
//   - a table with a capacity has exactly that many seats
//   - a seat carrying session fields is RESERVED
func ValidateLayout(style SeatingStyle, sections []Section) error {
	var problems []string
	add := func(format string, args ...interface{}) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	switch style {
	case StyleRowBased, StyleTableBased, StyleMixed:
	default:
		add("unknown seating style %q", style)
	}

	sectionIDs := make(map[string]bool, len(sections))
	for _, section := range sections {
		if err := validate.Struct(layoutSection{ID: section.ID, Name: section.Name, ContainerType: string(section.ContainerType)}); err != nil {
			add("section %q: %s", section.ID, fieldErrors(err))
		}
		if sectionIDs[section.ID] {
			add("duplicate section id %q", section.ID)
		}
		sectionIDs[section.ID] = true

		if style != StyleMixed {
			if section.ContainerType == ContainerRows && len(section.Tables) > 0 {
				add("section %q is row based but carries tables", section.ID)
			}
			if section.ContainerType == ContainerTables && len(section.Rows) > 0 {
				add("section %q is table based but carries rows", section.ID)
			}
		}

		seatIDs := make(map[string]bool)
		checkSeat := func(container string, seat Seat) {
			if err := validate.Struct(layoutSeat{ID: seat.ID, Number: seat.Number, Type: string(seat.Type), Status: string(seat.Status)}); err != nil {
				add("section %q %s seat %q: %s", section.ID, container, seat.ID, fieldErrors(err))
			}
			if seatIDs[seat.ID] {
				add("section %q has duplicate seat id %q", section.ID, seat.ID)
			}
			seatIDs[seat.ID] = true
			if seat.HasSession() && seat.Status != SeatReserved {
				add("section %q seat %q carries a session hold but is %s", section.ID, seat.ID, seat.Status)
			}
		}

		for _, row := range section.Rows {
			if row.ID == "" {
				add("section %q has a row without id", section.ID)
			}
			for _, seat := range row.Seats {
				checkSeat("row "+row.ID, seat)
			}
		}
		for _, table := range section.Tables {
			if err := validate.Struct(layoutTable{ID: table.ID, Shape: string(table.Shape), Capacity: table.Capacity}); err != nil {
				add("section %q table %q: %s", section.ID, table.ID, fieldErrors(err))
			}
			if table.Capacity > 0 && len(table.Seats) != table.Capacity {
				add("section %q table %q has capacity %d but %d seats", section.ID, table.ID, table.Capacity, len(table.Seats))
			}
			for _, seat := range table.Seats {
				checkSeat("table "+table.ID, seat)
			}
		}
	}

	if len(problems) > 0 {
		return &LayoutError{Problems: problems}
	}
	return nil
}

func fieldErrors(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
