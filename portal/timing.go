package portal

import "time"

const (
	day         = 24 * time.Hour
	bunchWindow = time.Second
)

// SinceMidnight returns the time-of-day component of t.
func SinceMidnight(t time.Time) time.Duration {
	h, m, s := t.Clock()
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second + time.Duration(t.Nanosecond())
}

// TimeOfDay expresses a duration shorter than a day as a clock time on the zero date
// used by time.Parse for layouts without a date.
func TimeOfDay(d time.Duration) time.Time {
	return time.Date(0, time.January, 1, 0, 0, 0, 0, time.UTC).Add(d)
}

func elapsedBetween(start, finish time.Time) time.Duration {
	elapsed := SinceMidnight(finish) - SinceMidnight(start)
	if elapsed < 0 {
		elapsed += day
	}
	return elapsed
}

// RawElapsed is finish minus start for the rider, rolled over midnight when the finish
// clock reads earlier than the start clock.
func (s *Stage) RawElapsed(riderID int) (time.Duration, bool) {
	checkpoints, ok := s.results[riderID]
	if !ok {
		return 0, false
	}
	return elapsedBetween(checkpoints[0], checkpoints[len(checkpoints)-1]), true
}

// AdjustedElapsed applies the same-time rule: outside time trials a rider finishing
// within a second of a faster rider is credited with that rider's time, chaining
// through the whole bunch.
func (s *Stage) AdjustedElapsed(riderID int) (time.Duration, bool) {
	elapsed, ok := s.RawElapsed(riderID)
	if !ok {
		return 0, false
	}
	if s.Type == TimeTrial {
		return elapsed, true
	}
	return bunch(elapsed, s.rawElapsedTimes()), true
}

// rawElapsedTimes lists every registered rider's raw elapsed time in registration order.
func (s *Stage) rawElapsedTimes() []time.Duration {
	times := make([]time.Duration, len(s.riders))
	for i, riderID := range s.riders {
		times[i], _ = s.RawElapsed(riderID)
	}
	return times
}

// bunch rescans others until no rider within the window ahead of the candidate remains.
// Every change strictly lowers the candidate, so len(others) passes always suffice.
func bunch(candidate time.Duration, others []time.Duration) time.Duration {
	for pass := 0; pass < len(others); pass++ {
		changed := false
		for _, other := range others {
			gap := candidate - other
			if gap > 0 && gap <= bunchWindow {
				candidate = other
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return candidate
}
