package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	generalSheet  = "General"
	pointsSheet   = "Points"
	mountainSheet = "Mountain"
)

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// Protocol builds a workbook with the three race classifications followed by one
// sheet per stage.
func Protocol(r *Report) (*excelize.File, error) {
	protocol := excelize.NewFile()

	if err := writeStandings(protocol, generalSheet, "Time", r.General); err != nil {
		return nil, err
	}
	if err := writeStandings(protocol, pointsSheet, "Points", r.Points); err != nil {
		return nil, err
	}
	if err := writeStandings(protocol, mountainSheet, "Mountain points", r.Mountain); err != nil {
		return nil, err
	}
	for i, stage := range r.Stages {
		if err := writeStage(protocol, fmt.Sprintf("Stage %d", i+1), stage); err != nil {
			return nil, err
		}
	}

	if err := protocol.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	return protocol, nil
}

func WriteXLSX(w io.Writer, r *Report) error {
	protocol, err := Protocol(r)
	if err != nil {
		return err
	}
	defer protocol.Close()
	return protocol.Write(w)
}

func writeStandings(f *excelize.File, sheet, valueTitle string, standings []Standing) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := writeRow(f, sheet, 1, "Rank", "Rider", "Name", "Team", valueTitle); err != nil {
		return err
	}
	for i, st := range standings {
		var value any = st.Time
		if st.Points != nil {
			value = *st.Points
		}
		if err := writeRow(f, sheet, i+2, st.Rank, st.RiderID, st.Rider, st.Team, value); err != nil {
			return err
		}
	}
	return nil
}

func writeStage(f *excelize.File, sheet string, stage StageTable) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, "A1", stage.Name); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, "B1", stage.Type); err != nil {
		return err
	}
	if err := writeRow(f, sheet, 2, "Rank", "Rider", "Name", "Team", "Time", "Points", "Mountain points"); err != nil {
		return err
	}
	for i, st := range stage.Standings {
		if err := writeRow(f, sheet, i+3, st.Rank, st.RiderID, st.Rider, st.Team, st.Time, st.Points, st.MountainPoints); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values ...any) error {
	for col, v := range values {
		if err := f.SetCellValue(sheet, cell(col+1, row), v); err != nil {
			return err
		}
	}
	return nil
}
