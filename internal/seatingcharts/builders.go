package seatingcharts

import (
	"fmt"
	"math"
)

// TableSection builds a table-based section with round tables of
// seatsPerTable seats. Seat ids are "<tableId>-seat-<n>" and seat numbers
// "<n>", counting from 1 at every table.
func TableSection(sectionID, name string, tableIDs []string, seatsPerTable int) Section {
	section := Section{
		ID:            sectionID,
		Name:          name,
		ContainerType: ContainerTables,
		Tables:        make([]Table, 0, len(tableIDs)),
	}
	for i, tableID := range tableIDs {
		table := Table{
			ID:       tableID,
			Number:   fmt.Sprintf("%d", i+1),
			Shape:    ShapeRound,
			X:        float64(i%6) * 120,
			Y:        float64(i/6) * 120,
			Width:    90,
			Height:   90,
			Capacity: seatsPerTable,
			Seats:    make([]Seat, 0, seatsPerTable),
		}
		for n := 1; n <= seatsPerTable; n++ {
			angle := 360 * float64(n-1) / float64(seatsPerTable)
			angle = math.Round(angle*100) / 100
			table.Seats = append(table.Seats, Seat{
				ID:       fmt.Sprintf("%s-seat-%d", tableID, n),
				Number:   fmt.Sprintf("%d", n),
				Type:     SeatStandard,
				Status:   SeatAvailable,
				Position: &SeatPosition{Angle: &angle},
			})
		}
		section.Tables = append(section.Tables, table)
	}
	return section
}

// RowSection builds a row-based section. Seat ids are "<rowLabel><n>" and
// seat numbers "<n>".
func RowSection(sectionID, name string, rowLabels []string, seatsPerRow int) Section {
	section := Section{
		ID:            sectionID,
		Name:          name,
		ContainerType: ContainerRows,
		Rows:          make([]Row, 0, len(rowLabels)),
	}
	for _, label := range rowLabels {
		row := Row{ID: sectionID + "-row-" + label, Label: label, Seats: make([]Seat, 0, seatsPerRow)}
		for n := 1; n <= seatsPerRow; n++ {
			row.Seats = append(row.Seats, Seat{
				ID:     fmt.Sprintf("%s%d", label, n),
				Number: fmt.Sprintf("%d", n),
				Type:   SeatStandard,
				Status: SeatAvailable,
			})
		}
		section.Rows = append(section.Rows, row)
	}
	return section
}
