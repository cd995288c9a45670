package portal

import (
	"cmp"
	"slices"
	"time"
)

// Race owns an ordered list of stages. The first stage in that list anchors every
// race-wide classification: its finishers are the riders that get classified.
type Race struct {
	ID          int
	Name        string
	Description string

	stages []*Stage
}

func NewRace(id int, name, description string) *Race {
	return &Race{ID: id, Name: name, Description: description}
}

func (r *Race) AddStage(stage *Stage) {
	r.stages = append(r.stages, stage)
}

func (r *Race) RemoveStage(stageID int) bool {
	n := len(r.stages)
	r.stages = slices.DeleteFunc(r.stages, func(s *Stage) bool { return s.ID == stageID })
	return len(r.stages) != n
}

func (r *Race) Stages() []*Stage {
	return slices.Clone(r.stages)
}

func (r *Race) StageIDs() []int {
	ids := make([]int, len(r.stages))
	for i, s := range r.stages {
		ids[i] = s.ID
	}
	return ids
}

func (r *Race) TotalLength() float64 {
	total := 0.0
	for _, s := range r.stages {
		total += s.Length
	}
	return total
}

type standing struct {
	riderID  int
	time     time.Duration
	points   int
	mountain int
}

type stageTotals struct {
	times    map[int]time.Duration
	points   map[int]int
	mountain map[int]int
}

func totalsOf(s *Stage) stageTotals {
	ranks := s.RidersRank()
	times := s.RankedAdjustedTimes()
	points := s.RidersPoints()
	mountain := s.RidersMountainPoints()
	t := stageTotals{
		times:    make(map[int]time.Duration, len(ranks)),
		points:   make(map[int]int, len(ranks)),
		mountain: make(map[int]int, len(ranks)),
	}
	for i, riderID := range ranks {
		t.times[riderID] = times[i]
		t.points[riderID] = points[i]
		t.mountain[riderID] = mountain[i]
	}
	return t
}

// generalClassification sums every stage for each finisher of the first stage and
// orders them by cumulative adjusted time. A rider missing from a later stage simply
// collects nothing for it.
func (r *Race) generalClassification() []standing {
	if len(r.stages) == 0 {
		return nil
	}
	roster := r.stages[0].RidersRank()
	standings := make([]standing, len(roster))
	for i, riderID := range roster {
		standings[i].riderID = riderID
	}
	for _, s := range r.stages {
		totals := totalsOf(s)
		for i := range standings {
			id := standings[i].riderID
			standings[i].time += totals.times[id]
			standings[i].points += totals.points[id]
			standings[i].mountain += totals.mountain[id]
		}
	}
	slices.SortStableFunc(standings, func(a, b standing) int {
		return cmp.Compare(a.time, b.time)
	})
	return standings
}

func (r *Race) GeneralClassificationTimes() []time.Duration {
	gc := r.generalClassification()
	times := make([]time.Duration, len(gc))
	for i, st := range gc {
		times[i] = st.time
	}
	return times
}

// RidersPoints returns cumulative stage points in general classification order.
func (r *Race) RidersPoints() []int {
	gc := r.generalClassification()
	points := make([]int, len(gc))
	for i, st := range gc {
		points[i] = st.points
	}
	return points
}

// RidersMountainPoints returns cumulative mountain points in general classification order.
func (r *Race) RidersMountainPoints() []int {
	gc := r.generalClassification()
	points := make([]int, len(gc))
	for i, st := range gc {
		points[i] = st.mountain
	}
	return points
}

func (r *Race) RidersGeneralClassificationRank() []int {
	return riderIDs(r.generalClassification())
}

func (r *Race) RidersPointClassificationRank() []int {
	gc := r.generalClassification()
	slices.SortStableFunc(gc, func(a, b standing) int {
		return cmp.Compare(b.points, a.points)
	})
	return riderIDs(gc)
}

func (r *Race) RidersMountainPointClassificationRank() []int {
	gc := r.generalClassification()
	slices.SortStableFunc(gc, func(a, b standing) int {
		return cmp.Compare(b.mountain, a.mountain)
	})
	return riderIDs(gc)
}

func riderIDs(standings []standing) []int {
	ids := make([]int, len(standings))
	for i, st := range standings {
		ids[i] = st.riderID
	}
	return ids
}
