package domain

// Scheduling defaults
const (
	DefaultSlotIntervalMinutes    = 30
	ChainGranularityMinutes       = 30
	DefaultBufferMinutes          = 15
	DefaultArrivalMarginMinutes   = 15
	DefaultDepartureMarginMinutes = 15
	DefaultEarliestHour           = 6
	DefaultLatestHour             = 22
	DefaultSessionMinutes         = 60
)

// Business validation constants
const (
	MinSessionMinutes  = 30
	MaxSessionMinutes  = 180
	MaxChainSessions   = 6
	MaxExtraBufferMins = 240
	MaxAddressLength   = 300
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses статусы, которые не занимают время провайдера
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
}
