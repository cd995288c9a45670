package portal

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

type StageType int

const (
	Flat StageType = iota
	MediumMountain
	HighMountain
	TimeTrial
)

var stageTypeNames = [...]string{
	Flat:           "FLAT",
	MediumMountain: "MEDIUM_MOUNTAIN",
	HighMountain:   "HIGH_MOUNTAIN",
	TimeTrial:      "TIME_TRIAL",
}

func (t StageType) String() string {
	if t < 0 || int(t) >= len(stageTypeNames) {
		return fmt.Sprintf("StageType(%d)", int(t))
	}
	return stageTypeNames[t]
}

func ParseStageType(s string) (StageType, error) {
	for i, name := range stageTypeNames {
		if strings.EqualFold(name, s) {
			return StageType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown stage type %q: %w", s, ErrInvalidArgument)
}

type StageState int

const (
	Preparation StageState = iota
	AwaitingResults
)

func (s StageState) String() string {
	switch s {
	case Preparation:
		return "PREPARATION"
	case AwaitingResults:
		return "AWAITING_RESULTS"
	default:
		return fmt.Sprintf("StageState(%d)", int(s))
	}
}

func ParseStageState(s string) (StageState, error) {
	switch strings.ToUpper(s) {
	case "PREPARATION":
		return Preparation, nil
	case "AWAITING_RESULTS":
		return AwaitingResults, nil
	}
	return 0, fmt.Errorf("unknown stage state %q: %w", s, ErrInvalidArgument)
}

// Stage owns its segments, kept in ascending location order, and the checkpoint
// sequences registered for each rider, kept in registration order.
//
// A registered sequence for a stage with k segments holds k+2 timestamps: the start,
// one crossing time per segment in segment order, and the finish. Only the time-of-day
// part of each timestamp is significant.
type Stage struct {
	ID          int
	RaceID      int
	Name        string
	Description string
	Length      float64
	StartTime   time.Time
	Type        StageType

	state    StageState
	segments []*Segment
	riders   []int
	results  map[int][]time.Time
}

func NewStage(id, raceID int, name, description string, length float64, startTime time.Time, stageType StageType) *Stage {
	return &Stage{
		ID:          id,
		RaceID:      raceID,
		Name:        name,
		Description: description,
		Length:      length,
		StartTime:   startTime,
		Type:        stageType,
		state:       Preparation,
		results:     map[int][]time.Time{},
	}
}

func (s *Stage) State() StageState {
	return s.state
}

// AddSegment inserts the segment before the first existing segment located further
// along the route, so segments sharing a location keep their insertion order.
func (s *Stage) AddSegment(segment *Segment) {
	idx := len(s.segments)
	for i, existing := range s.segments {
		if existing.Location > segment.Location {
			idx = i
			break
		}
	}
	s.segments = slices.Insert(s.segments, idx, segment)
}

func (s *Stage) RemoveSegment(segmentID int) error {
	if s.state == AwaitingResults {
		return fmt.Errorf("stage %d is awaiting results: %w", s.ID, ErrInvalidStageState)
	}
	idx := slices.IndexFunc(s.segments, func(seg *Segment) bool { return seg.ID == segmentID })
	if idx == -1 {
		return fmt.Errorf("segment %d in stage %d: %w", segmentID, s.ID, ErrIDNotRecognised)
	}
	s.segments = slices.Delete(s.segments, idx, idx+1)
	return nil
}

func (s *Stage) Segments() []*Segment {
	return slices.Clone(s.segments)
}

func (s *Stage) Segment(segmentID int) (*Segment, bool) {
	for _, seg := range s.segments {
		if seg.ID == segmentID {
			return seg, true
		}
	}
	return nil, false
}

func (s *Stage) SegmentIDs() []int {
	ids := make([]int, len(s.segments))
	for i, seg := range s.segments {
		ids[i] = seg.ID
	}
	return ids
}

// ConcludePreparation freezes the segments and opens the stage for results. There is
// no way back to preparation.
func (s *Stage) ConcludePreparation() error {
	if s.state == AwaitingResults {
		return fmt.Errorf("stage %d is already awaiting results: %w", s.ID, ErrInvalidStageState)
	}
	s.state = AwaitingResults
	return nil
}

func (s *Stage) RegisterResults(riderID int, checkpoints []time.Time) error {
	if len(checkpoints) != len(s.segments)+2 {
		return fmt.Errorf("stage %d expects %d checkpoints, got %d: %w",
			s.ID, len(s.segments)+2, len(checkpoints), ErrInvalidCheckpoints)
	}
	if _, ok := s.results[riderID]; ok {
		return fmt.Errorf("rider %d in stage %d: %w", riderID, s.ID, ErrDuplicatedResult)
	}
	if s.state != AwaitingResults {
		return fmt.Errorf("stage %d is not awaiting results: %w", s.ID, ErrInvalidStageState)
	}
	s.results[riderID] = slices.Clone(checkpoints)
	s.riders = append(s.riders, riderID)
	return nil
}

func (s *Stage) DeleteResults(riderID int) {
	if _, ok := s.results[riderID]; !ok {
		return
	}
	delete(s.results, riderID)
	s.riders = slices.DeleteFunc(s.riders, func(id int) bool { return id == riderID })
}

func (s *Stage) HasResults(riderID int) bool {
	_, ok := s.results[riderID]
	return ok
}

// RegisteredRiders returns the riders with results in registration order.
func (s *Stage) RegisteredRiders() []int {
	return slices.Clone(s.riders)
}

// Checkpoints returns the sequence stored for the rider, exactly as registered.
func (s *Stage) Checkpoints(riderID int) []time.Time {
	return slices.Clone(s.results[riderID])
}

// RiderResults returns the rider's intermediate checkpoints followed by the elapsed
// time of the stage, expressed as a time of day. The result is empty when the rider
// has no results.
func (s *Stage) RiderResults(riderID int) []time.Time {
	checkpoints, ok := s.results[riderID]
	if !ok {
		return []time.Time{}
	}
	out := make([]time.Time, 0, len(checkpoints)-1)
	out = append(out, checkpoints[1:len(checkpoints)-1]...)
	elapsed, _ := s.RawElapsed(riderID)
	return append(out, TimeOfDay(elapsed))
}
