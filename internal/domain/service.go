package domain

import "time"

// Service is a catalogue entry (haircut, beard, ...)
type Service struct {
	ID              int64
	Name            string
	Description     *string
	Price           float64
	DurationMinutes int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Duration returns the service duration
func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

// HasValidDuration returns true if the duration is within business limits
func (s *Service) HasValidDuration() bool {
	return s.DurationMinutes >= MinServiceDurationMinutes && s.DurationMinutes <= MaxServiceDurationMinutes
}
