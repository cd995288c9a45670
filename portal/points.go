package portal

var finishPoints = [...][]int{
	Flat:           {50, 30, 20, 18, 16, 14, 12, 10, 8, 7, 6, 5, 4, 3, 2},
	MediumMountain: {30, 25, 22, 19, 17, 15, 13, 11, 9, 7, 6, 5, 4, 3, 2},
	HighMountain:   {20, 17, 15, 13, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1},
	TimeTrial:      {20, 17, 15, 13, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1},
}

var segmentPoints = [...][]int{
	Sprint: {20, 17, 15, 13, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1},
	C4:     {1},
	C3:     {2, 1},
	C2:     {5, 3, 2, 1},
	C1:     {10, 8, 6, 4, 2, 1},
	HC:     {20, 15, 12, 10, 8, 6, 4, 2},
}

// pointsAt returns the table value for a 0-based rank, zero past the end of the table.
func pointsAt(table []int, rank int) int {
	if rank < 0 || rank >= len(table) {
		return 0
	}
	return table[rank]
}

func FinishPoints(t StageType, rank int) int {
	if t < 0 || int(t) >= len(finishPoints) {
		return 0
	}
	return pointsAt(finishPoints[t], rank)
}

func SegmentPoints(c SegmentCategory, rank int) int {
	if c < 0 || int(c) >= len(segmentPoints) {
		return 0
	}
	return pointsAt(segmentPoints[c], rank)
}
