package portal

import (
	"fmt"
	"time"

	"github.com/Nydauron/cyclingportal/snapshot"
)

// Export copies the whole portal into a snapshot record tree. Teams and races are
// listed by ascending id.
func (p *Portal) Export() *snapshot.Portal {
	out := &snapshot.Portal{NextID: p.ids.Peek()}
	for _, id := range p.Teams() {
		team := p.teams[id]
		rec := snapshot.Team{ID: team.ID, Name: team.Name, Description: team.Description}
		for _, r := range team.riders {
			rec.Riders = append(rec.Riders, snapshot.Rider{
				ID:          r.ID,
				TeamID:      r.TeamID,
				Name:        r.Name,
				YearOfBirth: r.YearOfBirth,
			})
		}
		out.Teams = append(out.Teams, rec)
	}
	for _, id := range p.RaceIDs() {
		race := p.races[id]
		rec := snapshot.Race{ID: race.ID, Name: race.Name, Description: race.Description}
		for _, stage := range race.stages {
			rec.Stages = append(rec.Stages, exportStage(stage))
		}
		out.Races = append(out.Races, rec)
	}
	return out
}

func exportStage(s *Stage) snapshot.Stage {
	rec := snapshot.Stage{
		ID:          s.ID,
		RaceID:      s.RaceID,
		Name:        s.Name,
		Description: s.Description,
		Length:      s.Length,
		StartTime:   s.StartTime,
		Type:        s.Type.String(),
		State:       s.state.String(),
	}
	for _, seg := range s.segments {
		rec.Segments = append(rec.Segments, snapshot.Segment{
			ID:              seg.ID,
			StageID:         seg.StageID,
			Location:        seg.Location,
			Category:        seg.Category.String(),
			Length:          seg.Length,
			AverageGradient: seg.AverageGradient,
		})
	}
	for _, riderID := range s.riders {
		checkpoints := make([]string, len(s.results[riderID]))
		for i, t := range s.results[riderID] {
			checkpoints[i] = snapshot.FormatCheckpoint(t)
		}
		rec.Results = append(rec.Results, snapshot.Result{RiderID: riderID, Checkpoints: checkpoints})
	}
	return rec
}

// Import builds a portal from a snapshot. Enum names, checkpoint counts and duplicate
// results are checked again; the snapshot is otherwise trusted.
func Import(snap *snapshot.Portal) (*Portal, error) {
	p := New()
	p.ids.Reset(snap.NextID)
	for _, rec := range snap.Teams {
		team := NewTeam(rec.ID, rec.Name, rec.Description)
		for _, r := range rec.Riders {
			team.AddRider(&Rider{ID: r.ID, TeamID: rec.ID, Name: r.Name, YearOfBirth: r.YearOfBirth})
		}
		p.teams[team.ID] = team
	}
	for _, rec := range snap.Races {
		race := NewRace(rec.ID, rec.Name, rec.Description)
		for _, st := range rec.Stages {
			stage, err := importStage(rec.ID, st)
			if err != nil {
				return nil, fmt.Errorf("race %d: %w", rec.ID, err)
			}
			race.AddStage(stage)
		}
		p.races[race.ID] = race
	}
	return p, nil
}

func importStage(raceID int, rec snapshot.Stage) (*Stage, error) {
	stageType, err := ParseStageType(rec.Type)
	if err != nil {
		return nil, fmt.Errorf("stage %d: %w", rec.ID, err)
	}
	state, err := ParseStageState(rec.State)
	if err != nil {
		return nil, fmt.Errorf("stage %d: %w", rec.ID, err)
	}
	stage := NewStage(rec.ID, raceID, rec.Name, rec.Description, rec.Length, rec.StartTime, stageType)
	for _, seg := range rec.Segments {
		category, err := ParseSegmentCategory(seg.Category)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", seg.ID, err)
		}
		stage.AddSegment(&Segment{
			ID:              seg.ID,
			StageID:         rec.ID,
			Location:        seg.Location,
			Category:        category,
			Length:          seg.Length,
			AverageGradient: seg.AverageGradient,
		})
	}
	if len(rec.Results) == 0 {
		stage.state = state
		return stage, nil
	}
	// results are only ever accepted while awaiting them
	stage.state = AwaitingResults
	for _, res := range rec.Results {
		checkpoints := make([]time.Time, len(res.Checkpoints))
		for i, raw := range res.Checkpoints {
			t, err := snapshot.ParseCheckpoint(raw)
			if err != nil {
				return nil, fmt.Errorf("stage %d rider %d checkpoint %d: %w", rec.ID, res.RiderID, i, err)
			}
			checkpoints[i] = t
		}
		if err := stage.RegisterResults(res.RiderID, checkpoints); err != nil {
			return nil, err
		}
	}
	if state != AwaitingResults {
		return nil, fmt.Errorf("stage %d has results while in %v: %w", rec.ID, state, ErrInvalidStageState)
	}
	return stage, nil
}

// Restore replaces the portal's contents with the snapshot. The portal is left
// untouched when the snapshot is rejected.
func (p *Portal) Restore(snap *snapshot.Portal) error {
	restored, err := Import(snap)
	if err != nil {
		return err
	}
	p.ids = restored.ids
	p.races = restored.races
	p.teams = restored.teams
	return nil
}

func (p *Portal) Save(path string) error {
	if err := snapshot.Save(path, p.Export()); err != nil {
		return fmt.Errorf("saving portal to %s: %w", path, err)
	}
	p.log.Debug().Str("path", path).Msg("portal saved")
	return nil
}

func (p *Portal) Load(path string) error {
	snap, err := snapshot.Load(path)
	if err != nil {
		return fmt.Errorf("loading portal from %s: %w", path, err)
	}
	if err := p.Restore(snap); err != nil {
		return fmt.Errorf("loading portal from %s: %w", path, err)
	}
	p.log.Debug().Str("path", path).Int("races", len(p.races)).Int("teams", len(p.teams)).Msg("portal loaded")
	return nil
}

// RiderName is a convenience for reports; unknown riders yield an empty name.
func (p *Portal) RiderName(riderID int) string {
	if r, err := p.Rider(riderID); err == nil {
		return r.Name
	}
	return ""
}

func (p *Portal) RiderTeamName(riderID int) string {
	r, err := p.Rider(riderID)
	if err != nil {
		return ""
	}
	if t, ok := p.teams[r.TeamID]; ok {
		return t.Name
	}
	return ""
}
