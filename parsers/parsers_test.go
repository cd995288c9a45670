package parsers

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clock(h, m, s int) time.Time {
	return time.Date(0, time.January, 1, h, m, s, 0, time.UTC)
}

func TestParseCSV(t *testing.T) {
	input := "Rider, Start, Sprint 1, Finish\r\n" +
		"#12 Pogacar, 10:00:00, 11:15:20, 14:02:11\r\n" +
		"\r\n" +
		"7,10:00:00,11:15:21,14:02:12"

	table, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"Rider", "Start", "Sprint 1", "Finish"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, Row{
		RiderID:     12,
		Checkpoints: []time.Time{clock(10, 0, 0), clock(11, 15, 20), clock(14, 2, 11)},
	}, table.Rows[0])
	assert.Equal(t, 7, table.Rows[1].RiderID)
}

func TestParseCSVErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		msg   string
	}{
		{"empty", "", "reading header"},
		{"wrong first column", "Name,Start,Finish\n", "header must be"},
		{"too few columns", "Rider,Finish\n", "header must be"},
		{"missing cell", "Rider,Start,Finish\n1,10:00:00\n", "different amount of cells"},
		{"no rider id", "Rider,Start,Finish\nabc,10:00:00,11:00:00\n", "no rider id"},
		{"bad clock", "Rider,Start,Finish\n1,10:00,11:00:00\n", "checkpoint"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCSV(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

const resultsPage = `<html><body>
<table class="menu"><tr><td>ignored</td></tr></table>
<table class="table results-table">
  <thead><tr><th>Rider</th><th>Start</th><th>KOM</th><th>Finish</th></tr></thead>
  <tbody>
    <tr><td><a href="/riders/3">3 - Vingegaard</a></td><td>09:30:00</td><td>12:01:00</td><td>13:00:00</td></tr>
    <tr><td>5</td><td> 09:30:00 </td><td>12:00:59</td><td>13:00:01</td></tr>
  </tbody>
</table>
<table class="results-table"><tr><td>99</td></tr></table>
</body></html>`

func TestParseHTML(t *testing.T) {
	table, err := ParseHTML(strings.NewReader(resultsPage))
	require.NoError(t, err)
	assert.Equal(t, []string{"Rider", "Start", "KOM", "Finish"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, 3, table.Rows[0].RiderID)
	assert.Equal(t, []time.Time{clock(9, 30, 0), clock(12, 0, 59), clock(13, 0, 1)}, table.Rows[1].Checkpoints)
}

func TestParseHTMLErrors(t *testing.T) {
	_, err := ParseHTML(strings.NewReader(`<table class="menu"><tr><td>1</td></tr></table>`))
	assert.ErrorContains(t, err, "no results-table found")

	_, err = ParseHTML(strings.NewReader(`<table class="results-table"><tr><td>1</td><td>10:00:00</td></tr></table>`))
	assert.ErrorContains(t, err, "before its header")

	_, err = ParseHTML(strings.NewReader(`<table class="results-table">
<tr><th>Rider</th><th>Start</th><th>Finish</th></tr>
<tr><td>1</td><td>10:00:00</td></tr></table>`))
	assert.ErrorContains(t, err, "different amount of cells")
}
