package parsers

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ParseCSV reads a checkpoint sheet whose header starts with the Rider column.
func ParseCSV(r io.Reader) (*Table, error) {
	buf := bufio.NewReader(r)
	columnStr, err := buf.ReadString('\n')
	if err != nil && (err != io.EOF || columnStr == "") {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	columns := splitCells(columnStr)
	if len(columns) < 3 || !strings.EqualFold(columns[0], RiderColName) {
		return nil, fmt.Errorf("header must be %q followed by at least start and finish columns", RiderColName)
	}

	table := Table{Columns: columns}
	for err != io.EOF {
		var line string
		line, err = buf.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		row, rowErr := parseRow(splitCells(line), len(columns))
		if rowErr != nil {
			return nil, rowErr
		}
		table.Rows = append(table.Rows, row)
	}
	return &table, nil
}

func splitCells(line string) []string {
	cells := strings.Split(strings.TrimRight(line, "\r\n"), ",")
	for i := range cells {
		cells[i] = strings.Trim(cells[i], " ")
	}
	return cells
}
