package portal

import "slices"

type Rider struct {
	ID          int
	TeamID      int
	Name        string
	YearOfBirth int
}

type Team struct {
	ID          int
	Name        string
	Description string

	riders []*Rider
}

func NewTeam(id int, name, description string) *Team {
	return &Team{ID: id, Name: name, Description: description}
}

func (t *Team) AddRider(rider *Rider) {
	t.riders = append(t.riders, rider)
}

func (t *Team) RemoveRider(riderID int) {
	t.riders = slices.DeleteFunc(t.riders, func(r *Rider) bool { return r.ID == riderID })
}

func (t *Team) Riders() []*Rider {
	return slices.Clone(t.riders)
}

func (t *Team) RiderIDs() []int {
	ids := make([]int, len(t.riders))
	for i, r := range t.riders {
		ids[i] = r.ID
	}
	return ids
}
