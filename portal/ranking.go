package portal

import (
	"cmp"
	"slices"
	"time"
)

type finisher struct {
	riderID int
	raw     time.Duration
}

// finishOrder sorts riders by raw elapsed time. Equal times keep registration order.
func (s *Stage) finishOrder() []finisher {
	order := make([]finisher, len(s.riders))
	for i, riderID := range s.riders {
		raw, _ := s.RawElapsed(riderID)
		order[i] = finisher{riderID: riderID, raw: raw}
	}
	slices.SortStableFunc(order, func(a, b finisher) int {
		return cmp.Compare(a.raw, b.raw)
	})
	return order
}

// RidersRank lists rider ids from fastest to slowest raw elapsed time.
func (s *Stage) RidersRank() []int {
	order := s.finishOrder()
	ids := make([]int, len(order))
	for i, f := range order {
		ids[i] = f.riderID
	}
	return ids
}

// RankedAdjustedTimes is index-aligned with RidersRank.
func (s *Stage) RankedAdjustedTimes() []time.Duration {
	order := s.finishOrder()
	times := make([]time.Duration, len(order))
	if s.Type == TimeTrial {
		for i, f := range order {
			times[i] = f.raw
		}
		return times
	}
	all := s.rawElapsedTimes()
	for i, f := range order {
		times[i] = bunch(f.raw, all)
	}
	return times
}

// SegmentRank counts the riders that crossed the segment strictly earlier than the
// given rider. Riders with equal crossing times share a rank. It returns false when the
// rider has no results or the segment is not part of the stage.
func (s *Stage) SegmentRank(riderID, segmentID int) (int, bool) {
	idx := slices.IndexFunc(s.segments, func(seg *Segment) bool { return seg.ID == segmentID })
	if idx == -1 {
		return 0, false
	}
	if _, ok := s.results[riderID]; !ok {
		return 0, false
	}
	return s.segmentRank(riderID, idx), true
}

func (s *Stage) segmentRank(riderID, segmentIdx int) int {
	checkpoint := segmentIdx + 1
	crossed := SinceMidnight(s.results[riderID][checkpoint])
	rank := 0
	for _, other := range s.riders {
		if SinceMidnight(s.results[other][checkpoint]) < crossed {
			rank++
		}
	}
	return rank
}

// RidersPoints returns, in RidersRank order, each rider's finish points plus the points
// won at every intermediate sprint.
func (s *Stage) RidersPoints() []int {
	order := s.finishOrder()
	points := make([]int, len(order))
	for rank, f := range order {
		points[rank] = FinishPoints(s.Type, rank)
		for idx, seg := range s.segments {
			if seg.Category == Sprint {
				points[rank] += SegmentPoints(Sprint, s.segmentRank(f.riderID, idx))
			}
		}
	}
	return points
}

// RidersMountainPoints returns, in RidersRank order, the points each rider won on the
// stage's categorized climbs.
func (s *Stage) RidersMountainPoints() []int {
	order := s.finishOrder()
	points := make([]int, len(order))
	for rank, f := range order {
		for idx, seg := range s.segments {
			if seg.Category.IsClimb() {
				points[rank] += SegmentPoints(seg.Category, s.segmentRank(f.riderID, idx))
			}
		}
	}
	return points
}

// RiderPoints looks up a single rider's stage points.
func (s *Stage) RiderPoints(riderID int) (int, bool) {
	return lookupByRank(s.RidersRank(), s.RidersPoints(), riderID)
}

func (s *Stage) RiderMountainPoints(riderID int) (int, bool) {
	return lookupByRank(s.RidersRank(), s.RidersMountainPoints(), riderID)
}

func lookupByRank(ranks, values []int, riderID int) (int, bool) {
	idx := slices.Index(ranks, riderID)
	if idx == -1 {
		return 0, false
	}
	return values[idx], true
}
