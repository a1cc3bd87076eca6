// Package logsheet implements the day splitter (spec §4.3): it partitions
// a timeline produced by internal/hos into one DailyLog per calendar day,
// slicing any segment that crosses local midnight and totaling each
// day's duty-status hours for the paper log-sheet view.
package logsheet

import (
	"math"
	"sort"
	"time"

	"github.com/draymaster/tripplanner/internal/domain"
)

func segmentToGrid(seg domain.TimelineSegment) domain.LogGridSegment {
	return domain.LogGridSegment{
		Status:          seg.Status,
		StartTime:       seg.StartTime,
		EndTime:         seg.EndTime,
		DurationMinutes: seg.DurationMinutes,
		Description:     seg.Description,
	}
}

// splitSegmentByDay slices seg at every local-midnight boundary it
// crosses, returning one grid segment per calendar date touched.
func splitSegmentByDay(seg domain.TimelineSegment) []dateSegment {
	var out []dateSegment
	loc := seg.StartTime.Location()
	current := seg.StartTime
	for current.Before(seg.EndTime) {
		year, month, day := current.Date()
		dayStart := time.Date(year, month, day, 0, 0, 0, 0, loc)
		dayEnd := dayStart.AddDate(0, 0, 1)
		segmentEnd := seg.EndTime
		if dayEnd.Before(segmentEnd) {
			segmentEnd = dayEnd
		}
		chunkMin := segmentEnd.Sub(current).Minutes()
		if chunkMin <= 0 {
			break
		}
		grid := segmentToGrid(seg)
		grid.StartTime = current
		grid.EndTime = segmentEnd
		grid.DurationMinutes = chunkMin
		out = append(out, dateSegment{date: dayStart, segment: grid})
		current = segmentEnd
	}
	return out
}

type dateSegment struct {
	date    time.Time
	segment domain.LogGridSegment
}

func totalsForSegments(segments []domain.LogGridSegment) (driving, onDuty, offDuty, sleeper float64) {
	for _, s := range segments {
		hrs := s.DurationMinutes / 60
		switch s.Status {
		case domain.Driving:
			driving += hrs
		case domain.OnDutyNotDriving:
			onDuty += hrs
		case domain.OffDuty:
			offDuty += hrs
		case domain.SleeperBerth:
			sleeper += hrs
		}
	}
	return
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// BuildLogSheets groups a timeline into one DailyLog per calendar day.
// The first day's from/to places are current location to pickup; every
// later day runs pickup to dropoff, matching the single-trip model in
// spec §3 (a trip has exactly one pickup and one dropoff).
func BuildLogSheets(timeline []domain.TimelineSegment, request domain.TripRequest) []domain.DailyLog {
	byDay := make(map[time.Time][]domain.LogGridSegment)
	var dates []time.Time

	for _, seg := range timeline {
		for _, ds := range splitSegmentByDay(seg) {
			if _, ok := byDay[ds.date]; !ok {
				dates = append(dates, ds.date)
			}
			byDay[ds.date] = append(byDay[ds.date], ds.segment)
		}
	}

	if len(dates) == 0 {
		return []domain.DailyLog{}
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	logs := make([]domain.DailyLog, 0, len(dates))
	for i, logDate := range dates {
		segments := byDay[logDate]
		sort.Slice(segments, func(a, b int) bool { return segments[a].StartTime.Before(segments[b].StartTime) })

		driving, onDutyND, offDuty, sleeper := totalsForSegments(segments)

		fromPlace, toPlace := request.PickupLocation, request.DropoffLocation
		if i == 0 {
			fromPlace, toPlace = request.CurrentLocation, request.PickupLocation
		}

		logs = append(logs, domain.DailyLog{
			LogDate:           logDate,
			FromPlace:         fromPlace,
			ToPlace:           toPlace,
			Segments:          segments,
			TotalDrivingHours: round2(driving),
			TotalOnDutyHours:  round2(driving + onDutyND),
			TotalOffDutyHours: round2(offDuty),
			TotalSleeperHours: round2(sleeper),
		})
	}
	return logs
}
