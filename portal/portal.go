package portal

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog"
)

const (
	maxNameLength  = 30
	minStageLength = 5.0
	minBirthYear   = 1900
)

// Portal is the entity layer around the results engine: it creates and removes races,
// stages, segments, teams and riders, validates their invariants and routes results
// queries to the owning stage or race.
//
// A Portal is not safe for concurrent use.
type Portal struct {
	ids   IDAllocator
	races map[int]*Race
	teams map[int]*Team
	log   zerolog.Logger
}

func New() *Portal {
	return &Portal{
		races: map[int]*Race{},
		teams: map[int]*Team{},
		log:   zerolog.Nop(),
	}
}

func (p *Portal) SetLogger(l zerolog.Logger) {
	p.log = l
}

// Erase removes every entity and restarts id allocation.
func (p *Portal) Erase() {
	p.ids.Reset(0)
	p.races = map[int]*Race{}
	p.teams = map[int]*Team{}
	p.log.Debug().Msg("portal erased")
}

func (p *Portal) Race(id int) (*Race, error) {
	race, ok := p.races[id]
	if !ok {
		return nil, fmt.Errorf("race %d: %w", id, ErrIDNotRecognised)
	}
	return race, nil
}

func (p *Portal) Stage(id int) (*Stage, error) {
	for _, race := range p.races {
		for _, stage := range race.stages {
			if stage.ID == id {
				return stage, nil
			}
		}
	}
	return nil, fmt.Errorf("stage %d: %w", id, ErrIDNotRecognised)
}

func (p *Portal) Segment(id int) (*Segment, error) {
	for _, race := range p.races {
		for _, stage := range race.stages {
			if seg, ok := stage.Segment(id); ok {
				return seg, nil
			}
		}
	}
	return nil, fmt.Errorf("segment %d: %w", id, ErrIDNotRecognised)
}

func (p *Portal) Team(id int) (*Team, error) {
	team, ok := p.teams[id]
	if !ok {
		return nil, fmt.Errorf("team %d: %w", id, ErrIDNotRecognised)
	}
	return team, nil
}

func (p *Portal) Rider(id int) (*Rider, error) {
	for _, team := range p.teams {
		for _, rider := range team.riders {
			if rider.ID == id {
				return rider, nil
			}
		}
	}
	return nil, fmt.Errorf("rider %d: %w", id, ErrIDNotRecognised)
}

func (p *Portal) nameInUse(name string) bool {
	for _, race := range p.races {
		if race.Name == name {
			return true
		}
		for _, stage := range race.stages {
			if stage.Name == name {
				return true
			}
		}
	}
	for _, team := range p.teams {
		if team.Name == name {
			return true
		}
		for _, rider := range team.riders {
			if rider.Name == name {
				return true
			}
		}
	}
	return false
}

// validateName checks that a race, stage or team name is unused, non-empty, at most 30
// characters long and free of whitespace.
func (p *Portal) validateName(name string) error {
	if p.nameInUse(name) {
		return fmt.Errorf("%q: %w", name, ErrIllegalName)
	}
	if name == "" {
		return fmt.Errorf("empty name: %w", ErrInvalidName)
	}
	if len([]rune(name)) > maxNameLength {
		return fmt.Errorf("%q is longer than %d characters: %w", name, maxNameLength, ErrInvalidName)
	}
	if strings.ContainsFunc(name, unicode.IsSpace) {
		return fmt.Errorf("%q contains whitespace: %w", name, ErrInvalidName)
	}
	return nil
}

func (p *Portal) RaceIDs() []int {
	return slices.Sorted(maps.Keys(p.races))
}

func (p *Portal) CreateRace(name, description string) (int, error) {
	if err := p.validateName(name); err != nil {
		return 0, err
	}
	race := NewRace(p.ids.Next(), name, description)
	p.races[race.ID] = race
	p.log.Debug().Int("race", race.ID).Str("name", name).Msg("race created")
	return race.ID, nil
}

func (p *Portal) ViewRaceDetails(raceID int) (string, error) {
	race, err := p.Race(raceID)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Race ID : %d\n", race.ID)
	fmt.Fprintf(&b, "Race Name : %s\n", race.Name)
	fmt.Fprintf(&b, "Description : %s\n", race.Description)
	fmt.Fprintf(&b, "Num. of Stages : %d\n", len(race.stages))
	fmt.Fprintf(&b, "Total Length : %.2f", race.TotalLength())
	return b.String(), nil
}

func (p *Portal) RemoveRaceByID(raceID int) error {
	if _, err := p.Race(raceID); err != nil {
		return err
	}
	delete(p.races, raceID)
	p.log.Debug().Int("race", raceID).Msg("race removed")
	return nil
}

func (p *Portal) RemoveRaceByName(name string) error {
	for id, race := range p.races {
		if race.Name == name {
			return p.RemoveRaceByID(id)
		}
	}
	return fmt.Errorf("race %q: %w", name, ErrNameNotRecognised)
}

func (p *Portal) NumberOfStages(raceID int) (int, error) {
	race, err := p.Race(raceID)
	if err != nil {
		return 0, err
	}
	return len(race.stages), nil
}

func (p *Portal) AddStageToRace(raceID int, name, description string, length float64, startTime time.Time, stageType StageType) (int, error) {
	race, err := p.Race(raceID)
	if err != nil {
		return 0, err
	}
	if err := p.validateName(name); err != nil {
		return 0, err
	}
	if length < minStageLength {
		return 0, fmt.Errorf("stage of %.2fkm is shorter than %.0fkm: %w", length, minStageLength, ErrInvalidLength)
	}
	stage := NewStage(p.ids.Next(), raceID, name, description, length, startTime, stageType)
	race.AddStage(stage)
	p.log.Debug().Int("race", raceID).Int("stage", stage.ID).Stringer("type", stageType).Msg("stage added")
	return stage.ID, nil
}

func (p *Portal) RaceStages(raceID int) ([]int, error) {
	race, err := p.Race(raceID)
	if err != nil {
		return nil, err
	}
	return race.StageIDs(), nil
}

func (p *Portal) StageLength(stageID int) (float64, error) {
	stage, err := p.Stage(stageID)
	if err != nil {
		return 0, err
	}
	return stage.Length, nil
}

func (p *Portal) RemoveStageByID(stageID int) error {
	stage, err := p.Stage(stageID)
	if err != nil {
		return err
	}
	p.races[stage.RaceID].RemoveStage(stageID)
	p.log.Debug().Int("stage", stageID).Msg("stage removed")
	return nil
}

// validateSegment checks that the footprint [location-length, location] lies on the
// stage, that the stage is still in preparation and that it is not a time trial.
func (p *Portal) validateSegment(stage *Stage, location, length float64) error {
	if location > stage.Length || location-length < 0 {
		return fmt.Errorf("segment at %.2fkm (length %.2fkm) outside stage %d: %w",
			location, length, stage.ID, ErrInvalidLocation)
	}
	if stage.state == AwaitingResults {
		return fmt.Errorf("stage %d is awaiting results: %w", stage.ID, ErrInvalidStageState)
	}
	if stage.Type == TimeTrial {
		return fmt.Errorf("time trial stage %d cannot have segments: %w", stage.ID, ErrInvalidStageType)
	}
	return nil
}

func (p *Portal) AddCategorizedClimbToStage(stageID int, location float64, category SegmentCategory, averageGradient, length float64) (int, error) {
	stage, err := p.Stage(stageID)
	if err != nil {
		return 0, err
	}
	if !category.IsClimb() {
		return 0, fmt.Errorf("%v is not a climb category: %w", category, ErrInvalidArgument)
	}
	if err := p.validateSegment(stage, location, length); err != nil {
		return 0, err
	}
	seg := &Segment{
		ID:              p.ids.Next(),
		StageID:         stageID,
		Location:        location,
		Category:        category,
		Length:          length,
		AverageGradient: averageGradient,
	}
	stage.AddSegment(seg)
	p.log.Debug().Int("stage", stageID).Int("segment", seg.ID).Stringer("category", category).Msg("climb added")
	return seg.ID, nil
}

func (p *Portal) AddIntermediateSprintToStage(stageID int, location float64) (int, error) {
	stage, err := p.Stage(stageID)
	if err != nil {
		return 0, err
	}
	if err := p.validateSegment(stage, location, 0); err != nil {
		return 0, err
	}
	seg := &Segment{ID: p.ids.Next(), StageID: stageID, Location: location, Category: Sprint}
	stage.AddSegment(seg)
	p.log.Debug().Int("stage", stageID).Int("segment", seg.ID).Msg("sprint added")
	return seg.ID, nil
}

func (p *Portal) RemoveSegment(segmentID int) error {
	seg, err := p.Segment(segmentID)
	if err != nil {
		return err
	}
	stage, err := p.Stage(seg.StageID)
	if err != nil {
		return err
	}
	return stage.RemoveSegment(segmentID)
}

func (p *Portal) ConcludeStagePreparation(stageID int) error {
	stage, err := p.Stage(stageID)
	if err != nil {
		return err
	}
	if err := stage.ConcludePreparation(); err != nil {
		return err
	}
	p.log.Debug().Int("stage", stageID).Msg("stage awaiting results")
	return nil
}

func (p *Portal) StageSegments(stageID int) ([]int, error) {
	stage, err := p.Stage(stageID)
	if err != nil {
		return nil, err
	}
	return stage.SegmentIDs(), nil
}

func (p *Portal) CreateTeam(name, description string) (int, error) {
	if err := p.validateName(name); err != nil {
		return 0, err
	}
	team := NewTeam(p.ids.Next(), name, description)
	p.teams[team.ID] = team
	p.log.Debug().Int("team", team.ID).Str("name", name).Msg("team created")
	return team.ID, nil
}

// RemoveTeam removes the team together with its riders and their results.
func (p *Portal) RemoveTeam(teamID int) error {
	team, err := p.Team(teamID)
	if err != nil {
		return err
	}
	for _, rider := range team.riders {
		p.purgeResults(rider.ID)
	}
	delete(p.teams, teamID)
	p.log.Debug().Int("team", teamID).Msg("team removed")
	return nil
}

func (p *Portal) Teams() []int {
	return slices.Sorted(maps.Keys(p.teams))
}

func (p *Portal) TeamRiders(teamID int) ([]int, error) {
	team, err := p.Team(teamID)
	if err != nil {
		return nil, err
	}
	return team.RiderIDs(), nil
}

func (p *Portal) CreateRider(teamID int, name string, yearOfBirth int) (int, error) {
	if name == "" {
		return 0, fmt.Errorf("empty rider name: %w", ErrInvalidArgument)
	}
	if yearOfBirth < minBirthYear {
		return 0, fmt.Errorf("year of birth %d before %d: %w", yearOfBirth, minBirthYear, ErrInvalidArgument)
	}
	team, err := p.Team(teamID)
	if err != nil {
		return 0, err
	}
	rider := &Rider{ID: p.ids.Next(), TeamID: teamID, Name: name, YearOfBirth: yearOfBirth}
	team.AddRider(rider)
	p.log.Debug().Int("team", teamID).Int("rider", rider.ID).Msg("rider created")
	return rider.ID, nil
}

// RemoveRider removes the rider and their results in every stage.
func (p *Portal) RemoveRider(riderID int) error {
	rider, err := p.Rider(riderID)
	if err != nil {
		return err
	}
	p.purgeResults(riderID)
	p.teams[rider.TeamID].RemoveRider(riderID)
	p.log.Debug().Int("rider", riderID).Msg("rider removed")
	return nil
}

func (p *Portal) purgeResults(riderID int) {
	for _, race := range p.races {
		for _, stage := range race.stages {
			stage.DeleteResults(riderID)
		}
	}
}
