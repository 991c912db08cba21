package domain

// Setting is one key/value pair of the administrative configuration store.
// It backs the weight table and the scheduling policy.
type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	AuditFields
}

// Setting keys understood by the application. Values are stored as text and
// parsed on read; absent keys fall back to the documented defaults.
const (
	SettingWeightSale              = "points.sale"
	SettingWeightReferralFocus     = "points.referral_focus"
	SettingWeightReferralSecondary = "points.referral_secondary"
	SettingWeightReferralOther     = "points.referral_other"
	SettingWeightPlaqueFocus       = "points.plaque_focus"
	SettingWeightPlaqueSecondary   = "points.plaque_secondary"
	SettingWeightPlaqueOther       = "points.plaque_other"

	SettingOpeningDay    = "schedule.opening_day"    // day of month next-month claims open (default 25)
	SettingOpeningHour   = "schedule.opening_hour"   // hour rank 1 may claim on the opening day (default 8)
	SettingStaggerLimit  = "schedule.stagger_limit"  // ranks above this face no hourly stagger (default 10)
	SettingRestWeekday   = "schedule.rest_weekday"   // weekday skipped by month generation, 0=Sunday (default 0)
	SettingShiftCapacity = "schedule.shift_capacity" // seats per generated shift (default 2)
)

// SchedulePolicy is the rank-gated claim window configuration.
type SchedulePolicy struct {
	OpeningDay    int `json:"openingDay"`
	OpeningHour   int `json:"openingHour"`
	StaggerLimit  int `json:"staggerLimit"`
	RestWeekday   int `json:"restWeekday"`
	ShiftCapacity int `json:"shiftCapacity"`
}

// UnrankedFallback is the rank assumed for workers who have never been
// ranked; it keeps them behind every staggered position without erroring.
const UnrankedFallback = 99

// DefaultSchedulePolicy returns the policy used when settings are absent.
func DefaultSchedulePolicy() SchedulePolicy {
	return SchedulePolicy{
		OpeningDay:    25,
		OpeningHour:   8,
		StaggerLimit:  10,
		RestWeekday:   0, // Sunday
		ShiftCapacity: 2,
	}
}
