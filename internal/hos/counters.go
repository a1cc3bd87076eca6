package hos

import (
	"time"

	"github.com/draymaster/tripplanner/internal/domain"
)

// counterBlock is the engine's single source of truth for whether the
// driver may legally continue driving at the current instant (spec §4.1).
// All duration fields are minutes. The engine folds over this block one
// segment emission at a time rather than mutating shared state across
// calls — each build_timeline invocation owns exactly one counterBlock.
type counterBlock struct {
	currentInstant    time.Time
	driveSinceReset   float64
	windowSinceReset  float64
	drivingSinceBreak float64
	nonDrivingStreak  float64
	rollingCycleMin   float64
	cycleDecayPerMin  float64
	splitStage        int // 0 none, 1 short break taken, waiting for the sleeper half
}

func newCounterBlock(req domain.TripRequest) counterBlock {
	rolling := req.CurrentCycleUsedHrs * 60
	if rolling < 0 {
		rolling = 0
	}
	var decay float64
	if rolling > 0 {
		decay = rolling / (8 * 24 * 60)
	}
	return counterBlock{
		currentInstant:   req.StartTime,
		rollingCycleMin:  rolling,
		cycleDecayPerMin: decay,
	}
}

// advanceCycle amortizes the pre-trip cycle hours out over elapsedMin and
// then adds onDutyAddMin (0 for off-duty/sleeper segments). Decay applies
// to every elapsed minute regardless of duty status.
func (c *counterBlock) advanceCycle(elapsedMin, onDutyAddMin float64) {
	if elapsedMin > 0 && c.cycleDecayPerMin > 0 {
		c.rollingCycleMin -= c.cycleDecayPerMin * elapsedMin
		if c.rollingCycleMin < 0 {
			c.rollingCycleMin = 0
		}
	}
	if onDutyAddMin > 0 {
		c.rollingCycleMin += onDutyAddMin
	}
}

// resetDaily zeroes the daily counters after a 10-hour reset or 34-hour
// restart (both "replace state" per spec §4.2).
func (c *counterBlock) resetDaily(nonDrivingStreak float64) {
	c.driveSinceReset = 0
	c.windowSinceReset = 0
	c.drivingSinceBreak = 0
	c.nonDrivingStreak = nonDrivingStreak
	c.splitStage = 0
}
