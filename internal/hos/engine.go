// Package hos implements the deterministic HOS timeline engine: the
// minute-accurate duty-status state machine described in spec §4. It is a
// pure function of its inputs — no I/O, no package-level mutable state —
// built the way the draymaster-tms domain services compute derived state
// from a request struct and return value objects.
package hos

import (
	"time"

	"github.com/draymaster/tripplanner/internal/domain"
)

// builder folds a counterBlock across segment emissions and accumulates
// the resulting timeline. It is the Go analogue of a mutable accumulator
// object, but scoped to a single BuildTimeline call, never shared.
type builder struct {
	cb       counterBlock
	segments []domain.TimelineSegment
}

// addSegment appends a segment of the given status and duration starting
// at the builder's current instant, then updates every counter exactly
// once per spec §4.1's "state updates per segment emitted" rule.
// countTowardWindow controls whether a non-driving segment consumes the
// 14-hour window (true for breaks and on-duty stops, false for off-duty
// rest, restarts and sleeper berth time).
func (b *builder) addSegment(status domain.DutyStatus, durationMin float64, description string, countTowardWindow bool) {
	if durationMin <= 0 {
		return
	}
	start := b.cb.currentInstant
	end := start.Add(time.Duration(durationMin * float64(time.Minute)))
	b.segments = append(b.segments, domain.TimelineSegment{
		Status:          status,
		StartTime:       start,
		EndTime:         end,
		DurationMinutes: durationMin,
		Description:     description,
	})
	b.cb.currentInstant = end

	var onDutyAdd float64
	if status.IsOnDuty() {
		onDutyAdd = durationMin
	}
	b.cb.advanceCycle(durationMin, onDutyAdd)

	if status == domain.Driving {
		b.cb.driveSinceReset += durationMin
		b.cb.windowSinceReset += durationMin
		b.cb.drivingSinceBreak += durationMin
		b.cb.nonDrivingStreak = 0
		return
	}

	b.cb.nonDrivingStreak += durationMin
	if countTowardWindow {
		b.cb.windowSinceReset += durationMin
	}
	if b.cb.nonDrivingStreak >= domain.BreakDurationMin {
		b.cb.drivingSinceBreak = 0
	}
}

func (b *builder) insert10HourReset(reason string) {
	b.addSegment(domain.SleeperBerth, domain.RestDurationMin, reason, false)
	b.cb.resetDaily(domain.RestDurationMin)
}

func (b *builder) insert34HourRestart() {
	b.addSegment(domain.SleeperBerth, domain.RestartDurationMin, "34-hour restart", false)
	b.cb.resetDaily(domain.RestartDurationMin)
	b.cb.rollingCycleMin = 0
	b.cb.cycleDecayPerMin = 0
}

func (b *builder) insertSplitShort() {
	b.addSegment(domain.OffDuty, domain.SplitShortRestMin, "Split sleeper break (2 hr off duty)", false)
	b.cb.splitStage = 1
}

// insertSplitLong inserts the 7-hour half of a split-sleeper pair and
// credits the combined 9 hours against the exhausted 14-hour window, per
// spec §4.2. If the window is still exhausted after the credit, the
// caller falls through to a full 10-hour reset.
func (b *builder) insertSplitLong() {
	b.addSegment(domain.SleeperBerth, domain.SplitLongSleeperMin, "Split sleeper berth (7 hr)", false)
	b.cb.windowSinceReset -= domain.SplitShortRestMin + domain.SplitLongSleeperMin
	if b.cb.windowSinceReset < 0 {
		b.cb.windowSinceReset = 0
	}
	b.cb.splitStage = 0
}

// ensureCycleCapacity inserts a 34-hour restart if requiredMin more
// on-duty minutes would push the rolling 70-hour/8-day cycle over its
// limit. Called before pickup, dropoff, and every fuel stop.
func (b *builder) ensureCycleCapacity(requiredMin float64) {
	for b.cb.rollingCycleMin+requiredMin > domain.CycleLimitMin {
		b.insert34HourRestart()
	}
}

// driveWithHOS drives totalMin minutes, inserting whatever rests, breaks,
// resets or restarts HOS regulations require along the way. The checks
// run in a fixed order: cycle capacity, mandatory break, daily drive
// limit, 14-hour window, then the largest legal chunk of driving.
func (b *builder) driveWithHOS(totalMin float64, description string) {
	remaining := totalMin
	for remaining > 0 {
		if b.cb.rollingCycleMin >= domain.CycleLimitMin {
			b.insert34HourRestart()
			continue
		}
		if b.cb.drivingSinceBreak >= domain.BreakAfterDriveMin {
			b.addSegment(domain.OffDuty, domain.BreakDurationMin, "30-minute break", true)
			continue
		}
		if b.cb.driveSinceReset >= domain.DriveLimitMin {
			b.insert10HourReset("10-hour rest (11hr drive limit)")
			continue
		}
		if b.cb.windowSinceReset >= domain.WindowLimitMin {
			if b.cb.splitStage == 0 {
				b.insertSplitShort()
				continue
			}
			b.insertSplitLong()
			if b.cb.windowSinceReset >= domain.WindowLimitMin {
				b.insert10HourReset("10-hour rest (14hr window)")
			}
			continue
		}

		driveLeft := domain.DriveLimitMin - b.cb.driveSinceReset
		windowLeft := domain.WindowLimitMin - b.cb.windowSinceReset
		breakLeft := domain.BreakAfterDriveMin - b.cb.drivingSinceBreak
		if breakLeft <= 0 {
			breakLeft = domain.BreakAfterDriveMin
		}

		chunk := remaining
		if driveLeft < chunk {
			chunk = driveLeft
		}
		if windowLeft < chunk {
			chunk = windowLeft
		}
		if breakLeft < chunk {
			chunk = breakLeft
		}
		if chunk <= 0 {
			// The checks above should always make forward progress
			// possible; this guards against an unexpected deadlock
			// rather than looping forever on bad input.
			break
		}
		b.addSegment(domain.Driving, chunk, description, true)
		remaining -= chunk
	}
}

type fuelSegment struct {
	miles float64
	hours float64
}

// splitLegByFuel divides a driving leg into sub-legs of at most
// FuelIntervalMiles each, consuming distance off the front so every
// sub-leg but the last is exactly FuelIntervalMiles, at the leg's
// average speed. A non-positive distance (the pathological input case
// in spec §4.2) is returned as a single zero-length sub-leg.
func splitLegByFuel(distanceMiles, durationHours float64) []fuelSegment {
	if distanceMiles <= 0 {
		return []fuelSegment{{miles: distanceMiles, hours: durationHours}}
	}

	var milesPerHour float64
	if durationHours > 0 {
		milesPerHour = distanceMiles / durationHours
	}

	var segs []fuelSegment
	milesLeft := distanceMiles
	for milesLeft > 0 {
		segMiles := milesLeft
		if segMiles > domain.FuelIntervalMiles {
			segMiles = domain.FuelIntervalMiles
		}
		var segHours float64
		if milesPerHour > 0 {
			segHours = segMiles / milesPerHour
		}
		segs = append(segs, fuelSegment{miles: segMiles, hours: segHours})
		milesLeft -= segMiles
	}
	return segs
}

// driveLeg drives one route leg, splitting it at the fuel interval and
// inserting a 30-minute fuel stop (guarded by the cycle-capacity check)
// between each pair of sub-legs. Per spec §4.2's failure semantics, no
// fuel stop is inserted between zero-duration (zero-hour) sub-legs.
func (b *builder) driveLeg(leg domain.RouteLeg, description string) {
	fuelSegs := splitLegByFuel(leg.DistanceMiles, leg.DurationHours)
	for i, fs := range fuelSegs {
		b.driveWithHOS(fs.hours*60, description)
		last := i == len(fuelSegs)-1
		if !last && fs.miles >= domain.FuelIntervalMiles && fs.hours > 0 {
			b.ensureCycleCapacity(domain.FuelStopDurationMin)
			b.addSegment(domain.OnDutyNotDriving, domain.FuelStopDurationMin, "Fuel stop", true)
		}
	}
}

// BuildTimeline computes the full duty-status timeline for a trip: drive
// to the pickup, an hour on duty loading, drive to the dropoff (possibly
// over several legs), an hour on duty unloading — with every HOS rule
// from spec §4.2 applied along the way. The route's first leg is treated
// as the drive to pickup; every subsequent leg is driven after the
// pickup stop, on the way to the dropoff.
func BuildTimeline(req domain.TripRequest, route domain.Route) []domain.TimelineSegment {
	b := &builder{cb: newCounterBlock(req)}

	legs := route.Legs
	if len(legs) == 0 {
		b.driveWithHOS(route.DurationHours*60, "Driving")
		if b.segments == nil {
			return []domain.TimelineSegment{}
		}
		return b.segments
	}

	b.driveLeg(legs[0], "Driving to pickup")

	b.ensureCycleCapacity(domain.PickupDropoffMin)
	b.addSegment(domain.OnDutyNotDriving, domain.PickupDropoffMin, "Pickup (1 hr)", true)

	if len(legs) > 1 {
		for _, leg := range legs[1:] {
			b.driveLeg(leg, "Driving to dropoff")
		}
	}

	b.ensureCycleCapacity(domain.PickupDropoffMin)
	b.addSegment(domain.OnDutyNotDriving, domain.PickupDropoffMin, "Dropoff (1 hr)", true)

	if b.segments == nil {
		return []domain.TimelineSegment{}
	}
	return b.segments
}
