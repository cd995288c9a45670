package parsers

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	RiderColName = "Rider"
	clockLayout  = "15:04:05"
)

var numberRegex = regexp.MustCompile(`[0-9]+`)

// Table is a checkpoint sheet: one row per rider holding the start time, one crossing
// time per segment in route order and the finish time.
type Table struct {
	Columns []string
	Rows    []Row
}

type Row struct {
	RiderID     int
	Checkpoints []time.Time
}

func parseRiderCell(cell string) (int, error) {
	id, err := strconv.Atoi(numberRegex.FindString(cell))
	if err != nil {
		return 0, fmt.Errorf("rider cell %q has no rider id", cell)
	}
	return id, nil
}

func parseClockCell(cell string) (time.Time, error) {
	t, err := time.Parse(clockLayout, strings.TrimSpace(cell))
	if err != nil {
		return time.Time{}, fmt.Errorf("checkpoint %q: %w", cell, err)
	}
	return t, nil
}

// parseRow turns the cells of one row into a Row; the first cell identifies the rider.
func parseRow(cells []string, columnCount int) (Row, error) {
	if len(cells) != columnCount {
		return Row{}, fmt.Errorf("row has different amount of cells than the number of expected column headers: %v", len(cells))
	}
	riderID, err := parseRiderCell(cells[0])
	if err != nil {
		return Row{}, err
	}
	row := Row{RiderID: riderID, Checkpoints: make([]time.Time, 0, len(cells)-1)}
	for _, cell := range cells[1:] {
		t, err := parseClockCell(cell)
		if err != nil {
			return Row{}, fmt.Errorf("rider %d: %w", riderID, err)
		}
		row.Checkpoints = append(row.Checkpoints, t)
	}
	return row, nil
}
