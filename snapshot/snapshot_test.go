package snapshot

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *Portal {
	return &Portal{
		NextID: 6,
		Teams: []Team{{
			ID:     0,
			Name:   "Jumbo",
			Riders: []Rider{{ID: 1, TeamID: 0, Name: "Wout", YearOfBirth: 1994}},
		}},
		Races: []Race{{
			ID:   2,
			Name: "Paris-Nice",
			Stages: []Stage{{
				ID:        3,
				RaceID:    2,
				Name:      "Nice",
				Length:    118.5,
				StartTime: time.Date(2024, time.March, 10, 13, 0, 0, 0, time.UTC),
				Type:      "HIGH_MOUNTAIN",
				State:     "AWAITING_RESULTS",
				Segments:  []Segment{{ID: 4, StageID: 3, Location: 100, Category: "C1", Length: 7, AverageGradient: 6.2}},
				Results:   []Result{{RiderID: 1, Checkpoints: []string{"13:00:00", "15:40:00.5", "16:01:02"}}},
			}},
		}},
	}
}

func TestEncodeDecode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sample()))
	assert.True(t, strings.HasPrefix(buf.String(), "next id: 6\n"))

	decoded, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, sample(), decoded)
}

func TestDecodeEmptyInput(t *testing.T) {
	p, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, &Portal{}, p)

	_, err = Decode(strings.NewReader("Teams: [unterminated"))
	assert.Error(t, err)
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "portal.yaml")
	require.NoError(t, Save(path, sample()))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, sample(), loaded)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files are left behind")

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCheckpointFormat(t *testing.T) {
	tm := time.Date(0, time.January, 1, 23, 59, 59, 250_000_000, time.UTC)
	assert.Equal(t, "23:59:59.25", FormatCheckpoint(tm))

	parsed, err := ParseCheckpoint("23:59:59.25")
	require.NoError(t, err)
	assert.True(t, tm.Equal(parsed))

	parsed, err = ParseCheckpoint("07:05:00")
	require.NoError(t, err)
	assert.Equal(t, 7, parsed.Hour())

	_, err = ParseCheckpoint("7pm")
	assert.Error(t, err)
}
