package domain

import "time"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// IsValid returns true for known statuses
func (s AppointmentStatus) IsValid() bool {
	return s == StatusConfirmed || s == StatusCancelled
}

// Appointment represents a booked visit to the shop
type Appointment struct {
	ID          int64
	ServiceID   int64
	ClientName  string
	ClientPhone string
	Notes       *string
	StartTime   time.Time
	EndTime     time.Time
	Status      AppointmentStatus

	// Denormalized data for the dashboard
	ServiceName string

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsConfirmed returns true if the appointment occupies the chair
func (a *Appointment) IsConfirmed() bool {
	return a.Status == StatusConfirmed
}

// CanBeCancelled returns true if the appointment can be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusConfirmed
}

// AppointmentsFilter фильтр для выборки записей
type AppointmentsFilter struct {
	From   *time.Time         // Начало периода (включительно), nil - без ограничения
	To     *time.Time         // Конец периода (не включительно), nil - без ограничения
	Status *AppointmentStatus // Фильтр по статусу (опционально)

	// Overlapping: выбирать записи, пересекающие период (end > From и start < To),
	// а не только начинающиеся в нем
	Overlapping bool
}

// DayFilter возвращает фильтр подтвержденных записей, пересекающих указанный день.
// Запись, начавшаяся накануне и закончившаяся после полуночи, тоже попадает в выборку.
func DayFilter(day time.Time) AppointmentsFilter {
	from := StartOfDay(day)
	to := from.AddDate(0, 0, 1)
	status := StatusConfirmed
	return AppointmentsFilter{From: &from, To: &to, Status: &status, Overlapping: true}
}

// IsSingleDay returns true if the filter covers exactly one calendar day
func (f *AppointmentsFilter) IsSingleDay() bool {
	return f.From != nil && f.To != nil && f.To.Equal(f.From.AddDate(0, 0, 1))
}
