package parsers

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var resultsTableClass = regexp.MustCompile(`\bresults-table\b`)

// ParseHTML reads the first <table class="results-table"> of a page. Header cells
// (<th>) name the columns, data cells (<td>) hold the rider and the checkpoints.
func ParseHTML(r io.Reader) (*Table, error) {
	z := html.NewTokenizer(r)
	table := Table{}
	isTable := false
	isTableCell := false
	isHeaderCell := false
	foundTable := false

	var cellText strings.Builder
	var rowCells []string
	var headerCells []string

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != nil && err != io.EOF {
				return nil, err
			}
			if !foundTable {
				return nil, fmt.Errorf("no results-table found")
			}
			return &table, nil
		case html.StartTagToken:
			t := z.Token()
			switch t.Data {
			case "table":
				if foundTable {
					continue
				}
				for _, attr := range t.Attr {
					if attr.Key == "class" && resultsTableClass.MatchString(attr.Val) {
						isTable = true
						foundTable = true
					}
				}
			case "tr":
				if isTable {
					rowCells = rowCells[:0]
					headerCells = headerCells[:0]
				}
			case "th", "td":
				if isTable {
					isTableCell = true
					isHeaderCell = t.Data == "th"
					cellText.Reset()
				}
			}
		case html.TextToken:
			if isTableCell {
				cellText.Write(z.Text())
			}
		case html.EndTagToken:
			t := z.Token()
			if !isTable {
				continue
			}
			switch t.Data {
			case "th", "td":
				if !isTableCell {
					continue
				}
				cell := strings.TrimSpace(cellText.String())
				if isHeaderCell {
					headerCells = append(headerCells, cell)
				} else {
					rowCells = append(rowCells, cell)
				}
				isTableCell = false
			case "tr":
				if len(headerCells) > 0 && table.Columns == nil {
					table.Columns = append([]string{}, headerCells...)
				}
				if len(rowCells) == 0 {
					continue
				}
				if table.Columns == nil {
					return nil, fmt.Errorf("results-table has data before its header row")
				}
				row, err := parseRow(rowCells, len(table.Columns))
				if err != nil {
					return nil, err
				}
				table.Rows = append(table.Rows, row)
			case "table":
				isTable = false
			}
		}
	}
}
