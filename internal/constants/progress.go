package constants

const (
	// SessionsPerDay is the number of fixed check-in slots in a day.
	SessionsPerDay = 4

	// PercentPerSession is the completion weight of a single session.
	PercentPerSession = 100 / SessionsPerDay

	// StreakThreshold is the minimum completion percentage that keeps a streak alive.
	// Three of four sessions counts as maintained.
	StreakThreshold = 75

	// Rating bounds for the 1..10 daily ratings.
	MinRating = 1
	MaxRating = 10

	// Severity ladder, in missed days. Boundaries belong to the higher tier.
	FirmMissedDays   = 3
	HarshMissedDays  = 5
	BrutalMissedDays = 7

	// AlertMinMissedDays suppresses accountability alerts below this count.
	AlertMinMissedDays = 2

	// Default API list size for recent history.
	DefaultHistoryLimit = 30
	MaxHistoryLimit     = 366
)
