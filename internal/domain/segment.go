package domain

import "time"

// TimelineSegment is one contiguous interval of a single duty status.
//
// Invariants (enforced by internal/hos, not by this type): EndTime equals
// StartTime plus DurationMinutes to the minute; in a full timeline,
// segment i's EndTime equals segment i+1's StartTime; DurationMinutes > 0.
type TimelineSegment struct {
	Status           DutyStatus `json:"status"`
	StartTime        time.Time  `json:"start_time"`
	EndTime          time.Time  `json:"end_time"`
	DurationMinutes  float64    `json:"duration_minutes"`
	Description      string     `json:"description"`
}

// LogGridSegment has the same shape as TimelineSegment but is guaranteed
// never to cross a local-midnight boundary.
type LogGridSegment struct {
	Status          DutyStatus `json:"status"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         time.Time  `json:"end_time"`
	DurationMinutes float64    `json:"duration_minutes"`
	Description     string     `json:"description"`
}

// DailyLog is one calendar date's worth of log-grid segments and totals.
//
// Invariant: the four totals sum to <= 24.00 hours; for a day fully
// covered by the trip, they sum to 24.00 (within rounding).
type DailyLog struct {
	LogDate           time.Time        `json:"log_date"`
	FromPlace         string           `json:"from_place"`
	ToPlace           string           `json:"to_place"`
	Segments          []LogGridSegment `json:"segments"`
	TotalDrivingHours float64          `json:"total_driving_hours"`
	TotalOnDutyHours  float64          `json:"total_on_duty_hours"`
	TotalOffDutyHours float64          `json:"total_off_duty_hours"`
	TotalSleeperHours float64          `json:"total_sleeper_hours"`
}
