package portal

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nydauron/cyclingportal/snapshot"
)

// seededPortal builds a race with one climbing stage, results registered out of finish
// order, and a second stage still in preparation.
func seededPortal(t *testing.T) (*Portal, int, int) {
	t.Helper()
	f := newRaceFixture(t, 3)
	start := time.Date(2024, time.July, 6, 12, 30, 0, 0, time.UTC)
	stageID, err := f.p.AddStageToRace(f.raceID, "Col", "summit finish", 160, start, HighMountain)
	require.NoError(t, err)
	_, err = f.p.AddCategorizedClimbToStage(stageID, 150, C2, 6.1, 9)
	require.NoError(t, err)
	_, err = f.p.AddIntermediateSprintToStage(stageID, 80)
	require.NoError(t, err)
	require.NoError(t, f.p.ConcludeStagePreparation(stageID))

	register := func(rider int, times ...time.Time) {
		require.NoError(t, f.p.RegisterRiderResultsInStage(stageID, rider, times...))
	}
	register(f.riders[2], at(12, 30, 0), at(14, 0, 0), at(16, 0, 0), at(16, 30, 0))
	register(f.riders[0], at(12, 30, 0), at(14, 1, 0), at(15, 59, 0), at(16, 30, 1))
	register(f.riders[1], at(12, 30, 0), at(13, 59, 0), at(16, 2, 0), at(16, 40, 0))

	_, err = f.p.AddStageToRace(f.raceID, "Finale", "", 90, time.Time{}, Flat)
	require.NoError(t, err)
	return f.p, f.raceID, stageID
}

func TestExportImportPreservesResults(t *testing.T) {
	p, raceID, stageID := seededPortal(t)

	restored, err := Import(p.Export())
	require.NoError(t, err)
	assert.Equal(t, p.Export(), restored.Export())

	for _, q := range []*Portal{p, restored} {
		stage, err := q.Stage(stageID)
		require.NoError(t, err)
		assert.Equal(t, AwaitingResults, stage.State())
	}

	wantRanks, _ := p.RidersRankInStage(stageID)
	gotRanks, _ := restored.RidersRankInStage(stageID)
	assert.Equal(t, wantRanks, gotRanks)

	origStage, _ := p.Stage(stageID)
	restoredStage, _ := restored.Stage(stageID)
	assert.Equal(t, origStage.RegisteredRiders(), restoredStage.RegisteredRiders(),
		"registration order survives a round trip")

	wantMountain, _ := p.RidersMountainPointClassificationRank(raceID)
	gotMountain, _ := restored.RidersMountainPointClassificationRank(raceID)
	assert.Equal(t, wantMountain, gotMountain)

	// the id sequence continues where it stopped
	nextOrig, _ := p.CreateTeam("Next", "")
	nextRestored, _ := restored.CreateTeam("Next", "")
	assert.Equal(t, nextOrig, nextRestored)
}

func TestSaveAndLoad(t *testing.T) {
	p, raceID, _ := seededPortal(t)
	path := filepath.Join(t.TempDir(), "portal.yaml")
	require.NoError(t, p.Save(path))

	loaded := New()
	require.NoError(t, loaded.Load(path))
	assert.Equal(t, p.Export(), loaded.Export())

	want, _ := p.GeneralClassificationTimesInRace(raceID)
	got, _ := loaded.GeneralClassificationTimesInRace(raceID)
	assert.Equal(t, want, got)

	err := loaded.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	assert.Equal(t, p.Export(), loaded.Export(), "a failed load leaves the portal untouched")
}

func TestImportRejectsInconsistentSnapshots(t *testing.T) {
	base := func() *snapshot.Portal {
		p, _, _ := seededPortal(t)
		return p.Export()
	}

	tests := []struct {
		name   string
		mutate func(*snapshot.Portal)
		want   error
	}{
		{
			name:   "unknown stage type",
			mutate: func(s *snapshot.Portal) { s.Races[0].Stages[0].Type = "UPHILL" },
			want:   ErrInvalidArgument,
		},
		{
			name:   "unknown segment category",
			mutate: func(s *snapshot.Portal) { s.Races[0].Stages[0].Segments[0].Category = "C5" },
			want:   ErrInvalidArgument,
		},
		{
			name: "short checkpoint sequence",
			mutate: func(s *snapshot.Portal) {
				res := &s.Races[0].Stages[0].Results[0]
				res.Checkpoints = res.Checkpoints[:2]
			},
			want: ErrInvalidCheckpoints,
		},
		{
			name: "duplicated result",
			mutate: func(s *snapshot.Portal) {
				results := s.Races[0].Stages[0].Results
				s.Races[0].Stages[0].Results = append(results, results[0])
			},
			want: ErrDuplicatedResult,
		},
		{
			name:   "results in preparation",
			mutate: func(s *snapshot.Portal) { s.Races[0].Stages[0].State = Preparation.String() },
			want:   ErrInvalidStageState,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := base()
			tt.mutate(snap)
			_, err := Import(snap)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("malformed checkpoint", func(t *testing.T) {
		snap := base()
		snap.Races[0].Stages[0].Results[0].Checkpoints[1] = "25:99"
		_, err := Import(snap)
		assert.Error(t, err)
	})
}

func TestSnapshotYAMLLayout(t *testing.T) {
	p, _, _ := seededPortal(t)
	var buf bytes.Buffer
	require.NoError(t, snapshot.Encode(&buf, p.Export()))

	out := buf.String()
	assert.Contains(t, out, "next id: ")
	assert.Contains(t, out, "type: HIGH_MOUNTAIN")
	assert.Contains(t, out, "state: AWAITING_RESULTS")
	assert.Contains(t, out, "category: C2")
	assert.Contains(t, out, "16:30:01")
}
