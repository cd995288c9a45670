package portal

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameValidation(t *testing.T) {
	p := New()
	_, err := p.CreateRace("Giro", "")
	require.NoError(t, err)

	tests := []struct {
		name string
		want error
	}{
		{"Giro", ErrIllegalName},
		{"", ErrInvalidName},
		{strings.Repeat("x", 31), ErrInvalidName},
		{"Tour de France", ErrInvalidName},
		{"tab\tname", ErrInvalidName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.CreateRace(tt.name, "")
			assert.ErrorIs(t, err, tt.want)
			_, err = p.CreateTeam(tt.name, "")
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err = p.CreateTeam(strings.Repeat("x", 30), "")
	assert.NoError(t, err)
}

func TestNamesAreUniqueAcrossEntityKinds(t *testing.T) {
	p := New()
	raceID, err := p.CreateRace("Vuelta", "")
	require.NoError(t, err)
	_, err = p.AddStageToRace(raceID, "Madrid", "", 100, time.Time{}, Flat)
	require.NoError(t, err)

	_, err = p.CreateTeam("Madrid", "")
	assert.ErrorIs(t, err, ErrIllegalName)
	_, err = p.AddStageToRace(raceID, "Vuelta", "", 100, time.Time{}, Flat)
	assert.ErrorIs(t, err, ErrIllegalName)
}

func TestIDsShareOneSequence(t *testing.T) {
	p := New()
	raceID, _ := p.CreateRace("Race", "")
	teamID, _ := p.CreateTeam("Team", "")
	stageID, _ := p.AddStageToRace(raceID, "Stage", "", 100, time.Time{}, Flat)
	segmentID, _ := p.AddIntermediateSprintToStage(stageID, 50)
	riderID, _ := p.CreateRider(teamID, "Rider", 2000)

	assert.Equal(t, []int{0, 1, 2, 3, 4}, []int{raceID, teamID, stageID, segmentID, riderID})

	require.NoError(t, p.RemoveRaceByID(raceID))
	next, _ := p.CreateRace("Other", "")
	assert.Equal(t, 5, next, "ids are never reused")

	p.Erase()
	assert.Empty(t, p.RaceIDs())
	assert.Empty(t, p.Teams())
	first, _ := p.CreateTeam("Fresh", "")
	assert.Equal(t, 0, first)
}

func TestStageCreation(t *testing.T) {
	p := New()
	raceID, _ := p.CreateRace("Race", "")

	_, err := p.AddStageToRace(raceID+99, "Stage", "", 100, time.Time{}, Flat)
	assert.ErrorIs(t, err, ErrIDNotRecognised)
	_, err = p.AddStageToRace(raceID, "Short", "", 4.99, time.Time{}, Flat)
	assert.ErrorIs(t, err, ErrInvalidLength)

	a, err := p.AddStageToRace(raceID, "A", "", 5, time.Time{}, Flat)
	require.NoError(t, err)
	b, err := p.AddStageToRace(raceID, "B", "", 120.5, time.Time{}, TimeTrial)
	require.NoError(t, err)

	stages, err := p.RaceStages(raceID)
	require.NoError(t, err)
	assert.Equal(t, []int{a, b}, stages)
	n, _ := p.NumberOfStages(raceID)
	assert.Equal(t, 2, n)
	length, _ := p.StageLength(b)
	assert.Equal(t, 120.5, length)

	require.NoError(t, p.RemoveStageByID(a))
	stages, _ = p.RaceStages(raceID)
	assert.Equal(t, []int{b}, stages)
	assert.ErrorIs(t, p.RemoveStageByID(a), ErrIDNotRecognised)
}

func TestSegmentValidation(t *testing.T) {
	p := New()
	raceID, _ := p.CreateRace("Race", "")
	flat, _ := p.AddStageToRace(raceID, "Flat", "", 100, time.Time{}, Flat)
	tt, _ := p.AddStageToRace(raceID, "TT", "", 30, time.Time{}, TimeTrial)

	_, err := p.AddIntermediateSprintToStage(flat, 100.5)
	assert.ErrorIs(t, err, ErrInvalidLocation)
	_, err = p.AddCategorizedClimbToStage(flat, 5, C3, 6, 10)
	assert.ErrorIs(t, err, ErrInvalidLocation, "climb would start before the stage")
	_, err = p.AddCategorizedClimbToStage(flat, 50, Sprint, 6, 10)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = p.AddIntermediateSprintToStage(tt, 10)
	assert.ErrorIs(t, err, ErrInvalidStageType)
	_, err = p.AddIntermediateSprintToStage(flat+tt+99, 10)
	assert.ErrorIs(t, err, ErrIDNotRecognised)

	climb, err := p.AddCategorizedClimbToStage(flat, 100, HC, 7.5, 100)
	require.NoError(t, err)
	sprint, err := p.AddIntermediateSprintToStage(flat, 0)
	require.NoError(t, err)
	segments, _ := p.StageSegments(flat)
	assert.Equal(t, []int{sprint, climb}, segments)

	seg, err := p.Segment(climb)
	require.NoError(t, err)
	assert.Equal(t, HC, seg.Category)
	assert.Equal(t, 7.5, seg.AverageGradient)

	require.NoError(t, p.ConcludeStagePreparation(flat))
	_, err = p.AddIntermediateSprintToStage(flat, 20)
	assert.ErrorIs(t, err, ErrInvalidStageState)
	assert.ErrorIs(t, p.RemoveSegment(sprint), ErrInvalidStageState)
	assert.ErrorIs(t, p.ConcludeStagePreparation(flat), ErrInvalidStageState)
	assert.ErrorIs(t, p.RemoveSegment(climb+sprint+99), ErrIDNotRecognised)
}

func TestRiderCreation(t *testing.T) {
	p := New()
	teamID, _ := p.CreateTeam("Team", "")

	_, err := p.CreateRider(teamID, "", 1990)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = p.CreateRider(teamID, "Old", 1899)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = p.CreateRider(teamID+1, "Lost", 1990)
	assert.ErrorIs(t, err, ErrIDNotRecognised)

	a, err := p.CreateRider(teamID, "Eddy Merckx", 1945)
	require.NoError(t, err)
	b, err := p.CreateRider(teamID, "Eddy Merckx", 1900)
	require.NoError(t, err, "rider names need not be unique")

	riders, _ := p.TeamRiders(teamID)
	assert.Equal(t, []int{a, b}, riders)
	assert.Equal(t, "Eddy Merckx", p.RiderName(a))
	assert.Equal(t, "Team", p.RiderTeamName(b))
	assert.Empty(t, p.RiderName(b+1))
}

func TestRemovingRidersPurgesResults(t *testing.T) {
	f := newRaceFixture(t, 3)
	s := f.stage(t, "Stage1", Flat)
	for i, rider := range f.riders {
		f.finish(t, s, rider, time.Hour+time.Duration(i)*time.Minute)
	}

	require.NoError(t, f.p.RemoveRider(f.riders[0]))
	ranks, _ := f.p.RidersRankInStage(s)
	assert.Equal(t, f.riders[1:], ranks)
	_, err := f.p.RiderResultsInStage(s, f.riders[0])
	assert.ErrorIs(t, err, ErrIDNotRecognised)

	teams := f.p.Teams()
	require.Len(t, teams, 1)
	require.NoError(t, f.p.RemoveTeam(teams[0]))
	ranks, _ = f.p.RidersRankInStage(s)
	assert.Empty(t, ranks)
	assert.ErrorIs(t, f.p.RemoveTeam(teams[0]), ErrIDNotRecognised)
}

func TestResultsRequireKnownRiderAndStage(t *testing.T) {
	f := newRaceFixture(t, 1)
	s := f.stage(t, "Stage1", Flat)
	start := at(9, 0, 0)

	assert.ErrorIs(t, f.p.RegisterRiderResultsInStage(s, 999, start, start), ErrIDNotRecognised)
	assert.ErrorIs(t, f.p.RegisterRiderResultsInStage(999, f.riders[0], start, start), ErrIDNotRecognised)
	_, err := f.p.RidersRankInStage(999)
	assert.ErrorIs(t, err, ErrIDNotRecognised)
	_, err = f.p.RidersPointsInRace(999)
	assert.ErrorIs(t, err, ErrIDNotRecognised)

	results, err := f.p.RiderResultsInStage(s, f.riders[0])
	require.NoError(t, err)
	assert.Empty(t, results)
	_, ok, err := f.p.RiderAdjustedElapsedTimeInStage(s, f.riders[0])
	require.NoError(t, err)
	assert.False(t, ok)

	f.finish(t, s, f.riders[0], 90*time.Minute)
	elapsed, ok, err := f.p.RiderAdjustedElapsedTimeInStage(s, f.riders[0])
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 90*time.Minute, elapsed)

	require.NoError(t, f.p.DeleteRiderResultsInStage(s, f.riders[0]))
	results, _ = f.p.RiderResultsInStage(s, f.riders[0])
	assert.Empty(t, results)
}

func TestViewRaceDetails(t *testing.T) {
	p := New()
	raceID, _ := p.CreateRace("Tour", "July classic")
	_, _ = p.AddStageToRace(raceID, "One", "", 100.25, time.Time{}, Flat)
	_, _ = p.AddStageToRace(raceID, "Two", "", 50, time.Time{}, HighMountain)

	details, err := p.ViewRaceDetails(raceID)
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"Race ID : 0",
		"Race Name : Tour",
		"Description : July classic",
		"Num. of Stages : 2",
		"Total Length : 150.25",
	}, "\n"), details)
}

func TestRemoveRaceByName(t *testing.T) {
	p := New()
	raceID, _ := p.CreateRace("Tour", "")

	assert.ErrorIs(t, p.RemoveRaceByName("Giro"), ErrNameNotRecognised)
	require.NoError(t, p.RemoveRaceByName("Tour"))
	_, err := p.Race(raceID)
	assert.ErrorIs(t, err, ErrIDNotRecognised)

	_, err = p.CreateRace("Tour", "")
	assert.NoError(t, err, "the name is free again")
}
