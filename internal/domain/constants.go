package domain

// Slot generation constants
const (
	// SlotStepMinutes шаг регулярной сетки кандидатов
	SlotStepMinutes = 30

	// AfternoonStartHour час, с которого слот попадает в "tarde"
	AfternoonStartHour = 12
)

// Default configuration values
const (
	DefaultMaxDaysInAdvance = 60
	DefaultRuleStartTime    = "09:00"
	DefaultRuleEndTime      = "19:00"
	DefaultTimezone         = "America/Bogota"
)

// Business validation constants
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 hours
	MaxClientNameLength       = 100
	ClientPhoneDigits         = 10
	MaxNotesLength            = 500
	MaxBlockReasonLength      = 200
	DaysPerWeek               = 7
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
