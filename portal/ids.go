package portal

// IDAllocator hands out identities for every entity kind of a portal. Races, stages,
// segments, teams and riders all draw from the same sequence.
type IDAllocator struct {
	next int
}

func (a *IDAllocator) Next() int {
	id := a.next
	a.next++
	return id
}

// Peek returns the id the next call to Next will hand out.
func (a *IDAllocator) Peek() int {
	return a.next
}

func (a *IDAllocator) Reset(next int) {
	a.next = next
}
