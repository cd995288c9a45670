package report

type Report struct {
	Race     RaceMetadata `yaml:"Race"`
	Stages   []StageTable `yaml:"Stages,omitempty"`
	General  []Standing   `yaml:"General classification"`
	Points   []Standing   `yaml:"Points classification"`
	Mountain []Standing   `yaml:"Mountain classification"`
}

type RaceMetadata struct {
	ID          int     `yaml:"id"`
	Name        string  `yaml:"name"`
	Description string  `yaml:"description,omitempty"`
	StageCount  int     `yaml:"stages"`
	Length      float64 `yaml:"length"`
}

type StageTable struct {
	ID        int             `yaml:"id"`
	Name      string          `yaml:"name"`
	Type      string          `yaml:"type"`
	State     string          `yaml:"state"`
	Standings []StageStanding `yaml:"standings,omitempty"`
}

type StageStanding struct {
	Rank           int    `yaml:"rank"`
	RiderID        int    `yaml:"rider"`
	Rider          string `yaml:"name"`
	Team           string `yaml:"team"`
	Time           string `yaml:"time"`
	Points         int    `yaml:"points"`
	MountainPoints int    `yaml:"mountain points"`
}

// Standing is one line of a race classification. Time is set on the general
// classification, Points on the points and mountain classifications.
type Standing struct {
	Rank    int    `yaml:"rank"`
	RiderID int    `yaml:"rider"`
	Rider   string `yaml:"name"`
	Team    string `yaml:"team"`
	Time    string `yaml:"time,omitempty"`
	Points  *int   `yaml:"points,omitempty"`
}
