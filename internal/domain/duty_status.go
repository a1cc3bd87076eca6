// Package domain holds the value types shared by the HOS timeline engine
// (internal/hos) and the day splitter (internal/logsheet): the duty-status
// enumeration, timeline/log-grid segments, daily logs, and the route and
// trip-request shapes that flow between them. Nothing in this package
// performs I/O; see internal/routeprovider and internal/api for that.
package domain

// DutyStatus is the closed four-value enumeration on the FMCSA grid.
type DutyStatus string

const (
	OffDuty           DutyStatus = "OFF_DUTY"
	SleeperBerth      DutyStatus = "SLEEPER_BERTH"
	Driving           DutyStatus = "DRIVING"
	OnDutyNotDriving  DutyStatus = "ON_DUTY_NOT_DRIVING"
)

// IsOnDuty reports whether the status counts toward on-duty time
// (DRIVING and ON_DUTY_NOT_DRIVING).
func (s DutyStatus) IsOnDuty() bool {
	return s == Driving || s == OnDutyNotDriving
}

// HOS constants from spec §4.2, in minutes (or miles for the fuel
// interval). Exact values required for timeline compatibility.
const (
	DriveLimitMin       = 11 * 60
	WindowLimitMin      = 14 * 60
	BreakAfterDriveMin  = 8 * 60
	BreakDurationMin    = 30
	RestDurationMin     = 10 * 60
	RestartDurationMin  = 34 * 60
	CycleLimitMin       = 70 * 60
	PickupDropoffMin    = 60
	FuelIntervalMiles   = 1000
	FuelStopDurationMin = 30
	SplitShortRestMin   = 2 * 60
	SplitLongSleeperMin = 7 * 60
)
