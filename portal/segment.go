package portal

import (
	"fmt"
	"strings"
)

type SegmentCategory int

const (
	Sprint SegmentCategory = iota
	C4
	C3
	C2
	C1
	HC
)

var segmentCategoryNames = [...]string{
	Sprint: "SPRINT",
	C4:     "C4",
	C3:     "C3",
	C2:     "C2",
	C1:     "C1",
	HC:     "HC",
}

func (c SegmentCategory) String() string {
	if c < 0 || int(c) >= len(segmentCategoryNames) {
		return fmt.Sprintf("SegmentCategory(%d)", int(c))
	}
	return segmentCategoryNames[c]
}

func (c SegmentCategory) IsClimb() bool {
	return c >= C4 && c <= HC
}

func ParseSegmentCategory(s string) (SegmentCategory, error) {
	for i, name := range segmentCategoryNames {
		if strings.EqualFold(name, s) {
			return SegmentCategory(i), nil
		}
	}
	return 0, fmt.Errorf("unknown segment category %q: %w", s, ErrInvalidArgument)
}

// Segment is a point on a stage's route that awards points: an intermediate sprint or
// a categorized climb. Location is the distance from the stage start in kilometers and
// marks the end of the segment; Length is only meaningful for climbs.
type Segment struct {
	ID              int
	StageID         int
	Location        float64
	Category        SegmentCategory
	Length          float64
	AverageGradient float64
}
