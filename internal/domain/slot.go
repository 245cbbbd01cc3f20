package domain

import "time"

// DaySlots represents bookable start times of one day split into display buckets
type DaySlots struct {
	Morning   []time.Time
	Afternoon []time.Time
}

// Total returns the number of bookable slots
func (s *DaySlots) Total() int {
	return len(s.Morning) + len(s.Afternoon)
}

// IsEmpty returns true if nothing can be booked
func (s *DaySlots) IsEmpty() bool {
	return s.Total() == 0
}

// All returns every slot in chronological order
func (s *DaySlots) All() []time.Time {
	all := make([]time.Time, 0, s.Total())
	all = append(all, s.Morning...)
	return append(all, s.Afternoon...)
}

// Contains returns true if start is one of the bookable slots
func (s *DaySlots) Contains(start time.Time) bool {
	for _, slot := range s.All() {
		if slot.Equal(start) {
			return true
		}
	}
	return false
}
