// Package report lays the engine's stage and race classifications out as a results
// document, written as YAML or as an XLSX protocol.
package report

import (
	"fmt"
	"time"

	"github.com/Nydauron/cyclingportal/portal"
)

// FormatDuration prints a duration as h:mm:ss; hours are not wrapped at 24.
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

func Generate(p *portal.Portal, raceID int) (*Report, error) {
	race, err := p.Race(raceID)
	if err != nil {
		return nil, err
	}

	r := &Report{
		Race: RaceMetadata{
			ID:          race.ID,
			Name:        race.Name,
			Description: race.Description,
			StageCount:  len(race.Stages()),
			Length:      race.TotalLength(),
		},
	}

	for _, stage := range race.Stages() {
		r.Stages = append(r.Stages, stageTable(p, stage))
	}

	gcRiders := race.RidersGeneralClassificationRank()
	gcTimes := race.GeneralClassificationTimes()
	for i, riderID := range gcRiders {
		st := standing(p, i, riderID)
		st.Time = FormatDuration(gcTimes[i])
		r.General = append(r.General, st)
	}

	// points are reported in general classification order; key them by rider first
	points := zip(gcRiders, race.RidersPoints())
	mountain := zip(gcRiders, race.RidersMountainPoints())
	r.Points = pointsTable(p, race.RidersPointClassificationRank(), points)
	r.Mountain = pointsTable(p, race.RidersMountainPointClassificationRank(), mountain)
	return r, nil
}

func stageTable(p *portal.Portal, stage *portal.Stage) StageTable {
	t := StageTable{
		ID:    stage.ID,
		Name:  stage.Name,
		Type:  stage.Type.String(),
		State: stage.State().String(),
	}
	ranks := stage.RidersRank()
	times := stage.RankedAdjustedTimes()
	points := stage.RidersPoints()
	mountain := stage.RidersMountainPoints()
	for i, riderID := range ranks {
		t.Standings = append(t.Standings, StageStanding{
			Rank:           i + 1,
			RiderID:        riderID,
			Rider:          p.RiderName(riderID),
			Team:           p.RiderTeamName(riderID),
			Time:           FormatDuration(times[i]),
			Points:         points[i],
			MountainPoints: mountain[i],
		})
	}
	return t
}

func standing(p *portal.Portal, idx, riderID int) Standing {
	return Standing{
		Rank:    idx + 1,
		RiderID: riderID,
		Rider:   p.RiderName(riderID),
		Team:    p.RiderTeamName(riderID),
	}
}

func pointsTable(p *portal.Portal, order []int, points map[int]int) []Standing {
	table := make([]Standing, 0, len(order))
	for i, riderID := range order {
		st := standing(p, i, riderID)
		pts := points[riderID]
		st.Points = &pts
		table = append(table, st)
	}
	return table
}

func zip(riders, values []int) map[int]int {
	m := make(map[int]int, len(riders))
	for i, riderID := range riders {
		m[riderID] = values[i]
	}
	return m
}
