package portal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func at(h, m, s int) time.Time {
	return time.Date(0, time.January, 1, h, m, s, 0, time.UTC)
}

// openStage returns a stage with the given segments that is already awaiting results.
func openStage(t *testing.T, stageType StageType, segments ...*Segment) *Stage {
	t.Helper()
	s := NewStage(1, 0, "stage", "", 200, time.Time{}, stageType)
	for _, seg := range segments {
		s.AddSegment(seg)
	}
	require.NoError(t, s.ConcludePreparation())
	return s
}

// finishIn registers a rider starting at 10:00:00 and finishing after d, with no
// segment crossings.
func finishIn(t *testing.T, s *Stage, riderID int, d time.Duration) {
	t.Helper()
	start := at(10, 0, 0)
	require.NoError(t, s.RegisterResults(riderID, []time.Time{start, start.Add(d)}))
}
