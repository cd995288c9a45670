// Package snapshot holds the record tree a whole portal is saved as. Records carry
// plain values only: enums are stored by name and checkpoints as clock strings.
package snapshot

import "time"

// CheckpointLayout is the clock format checkpoints are written in.
const CheckpointLayout = "15:04:05.999999999"

type Portal struct {
	NextID int    `yaml:"next id" msgpack:"next_id"`
	Teams  []Team `yaml:"Teams" msgpack:"teams"`
	Races  []Race `yaml:"Races" msgpack:"races"`
}

type Team struct {
	ID          int     `yaml:"id" msgpack:"id"`
	Name        string  `yaml:"name" msgpack:"name"`
	Description string  `yaml:"description,omitempty" msgpack:"description"`
	Riders      []Rider `yaml:"riders,omitempty" msgpack:"riders"`
}

type Rider struct {
	ID          int    `yaml:"id" msgpack:"id"`
	TeamID      int    `yaml:"team" msgpack:"team"`
	Name        string `yaml:"name" msgpack:"name"`
	YearOfBirth int    `yaml:"year of birth" msgpack:"year_of_birth"`
}

type Race struct {
	ID          int     `yaml:"id" msgpack:"id"`
	Name        string  `yaml:"name" msgpack:"name"`
	Description string  `yaml:"description,omitempty" msgpack:"description"`
	Stages      []Stage `yaml:"stages,omitempty" msgpack:"stages"`
}

type Stage struct {
	ID          int       `yaml:"id" msgpack:"id"`
	RaceID      int       `yaml:"race" msgpack:"race"`
	Name        string    `yaml:"name" msgpack:"name"`
	Description string    `yaml:"description,omitempty" msgpack:"description"`
	Length      float64   `yaml:"length" msgpack:"length"`
	StartTime   time.Time `yaml:"start time" msgpack:"start_time"`
	Type        string    `yaml:"type" msgpack:"type"`
	State       string    `yaml:"state" msgpack:"state"`
	Segments    []Segment `yaml:"segments,omitempty" msgpack:"segments"`
	Results     []Result  `yaml:"results,omitempty" msgpack:"results"`
}

type Segment struct {
	ID              int     `yaml:"id" msgpack:"id"`
	StageID         int     `yaml:"stage" msgpack:"stage"`
	Location        float64 `yaml:"location" msgpack:"location"`
	Category        string  `yaml:"category" msgpack:"category"`
	Length          float64 `yaml:"length,omitempty" msgpack:"length"`
	AverageGradient float64 `yaml:"average gradient,omitempty" msgpack:"average_gradient"`
}

// Result is one rider's checkpoint sequence. Results of a stage are listed in
// registration order.
type Result struct {
	RiderID     int      `yaml:"rider" msgpack:"rider"`
	Checkpoints []string `yaml:"checkpoints" msgpack:"checkpoints"`
}

func FormatCheckpoint(t time.Time) string {
	return t.Format(CheckpointLayout)
}

func ParseCheckpoint(s string) (time.Time, error) {
	return time.Parse(CheckpointLayout, s)
}
