package api

import (
	"math"
	"strings"

	"github.com/draymaster/tripplanner/internal/domain"
)

// pointAlongGeometry walks geometry (a polyline of [lng, lat] points)
// using planar Euclidean distance and returns the point at fractional
// progress (0..1) along its total length. Ported from
// _point_along_geometry in the original trip planner's view layer: the
// accepted distortion from treating lng/lat as a flat plane is fine for
// visualization, not for real distance math.
func pointAlongGeometry(geometry []domain.Point, progress float64) *domain.Point {
	if len(geometry) == 0 {
		return nil
	}
	if len(geometry) == 1 {
		pt := geometry[0]
		return &pt
	}

	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}

	segLens := make([]float64, len(geometry)-1)
	var total float64
	for i := 1; i < len(geometry); i++ {
		dx := geometry[i][0] - geometry[i-1][0]
		dy := geometry[i][1] - geometry[i-1][1]
		segLen := math.Hypot(dx, dy)
		segLens[i-1] = segLen
		total += segLen
	}
	if total <= 0 {
		pt := geometry[len(geometry)-1]
		return &pt
	}

	target := total * progress
	var walked float64
	for i, segLen := range segLens {
		nextWalked := walked + segLen
		if nextWalked >= target {
			if segLen <= 0 {
				pt := geometry[i+1]
				return &pt
			}
			t := (target - walked) / segLen
			x0, y0 := geometry[i][0], geometry[i][1]
			x1, y1 := geometry[i+1][0], geometry[i+1][1]
			pt := domain.Point{x0 + (x1-x0)*t, y0 + (y1-y0)*t}
			return &pt
		}
		walked = nextWalked
	}

	pt := geometry[len(geometry)-1]
	return &pt
}

// buildStopsAndRests serializes every non-driving timeline segment with
// an attached coordinate, tracking how far into each leg driving has
// progressed so non-driving stops land at the right point along the
// route. Ported from _build_stops_and_rests: pickup and dropoff use the
// waypoint coordinates directly; every other stop (breaks, rests, fuel
// stops, restarts) is placed by linear interpolation along the active
// leg's geometry, falling back to the full-route geometry when the leg
// has none.
func buildStopsAndRests(timeline []domain.TimelineSegment, route domain.Route) []stopDTO {
	legDurationsMin := make([]float64, len(route.Legs))
	for i, leg := range route.Legs {
		legDurationsMin[i] = leg.DurationHours * 60
	}
	drivenLegMin := make([]float64, len(legDurationsMin))
	activeLeg := 0

	var totalDrivingMin float64
	for _, d := range legDurationsMin {
		totalDrivingMin += d
	}
	var cumulativeDrivingMin float64

	items := make([]stopDTO, 0, len(timeline))

	for _, seg := range timeline {
		desc := strings.ToLower(seg.Description)

		if seg.Status == domain.Driving {
			if strings.Contains(desc, "dropoff") && len(drivenLegMin) > 1 {
				activeLeg = 1
			}
			cumulativeDrivingMin += seg.DurationMinutes
			if len(drivenLegMin) > 0 {
				idx := activeLeg
				if idx > len(drivenLegMin)-1 {
					idx = len(drivenLegMin) - 1
				}
				drivenLegMin[idx] += seg.DurationMinutes
			}
			continue
		}

		var coord *domain.Point
		switch {
		case strings.Contains(desc, "pickup") && len(route.Waypoints) >= 2:
			pt := route.Waypoints[1]
			coord = &pt
			activeLeg = 1
		case strings.Contains(desc, "dropoff") && len(route.Waypoints) >= 3:
			pt := route.Waypoints[2]
			coord = &pt
		case len(route.Legs) > 0 && len(drivenLegMin) > 0:
			idx := activeLeg
			if idx > len(route.Legs)-1 {
				idx = len(route.Legs) - 1
			}
			leg := route.Legs[idx]
			legTotal := legDurationsMin[idx]
			if legTotal > 0 {
				legProgress := drivenLegMin[idx] / legTotal
				if legProgress < 0 {
					legProgress = 0
				}
				if legProgress > 1 {
					legProgress = 1
				}
				if len(leg.Geometry) > 0 {
					coord = pointAlongGeometry(leg.Geometry, legProgress)
				} else if len(route.Geometry) > 0 {
					var minsBeforeLeg float64
					for _, d := range legDurationsMin[:idx] {
						minsBeforeLeg += d
					}
					var globalProgress float64
					if totalDrivingMin > 0 {
						globalProgress = (minsBeforeLeg + drivenLegMin[idx]) / totalDrivingMin
					}
					coord = pointAlongGeometry(route.Geometry, globalProgress)
				}
			} else if len(route.Geometry) > 0 {
				var progress float64
				if totalDrivingMin > 0 {
					progress = cumulativeDrivingMin / totalDrivingMin
				}
				coord = pointAlongGeometry(route.Geometry, progress)
			}
		case len(route.Geometry) > 0:
			var progress float64
			if totalDrivingMin > 0 {
				progress = cumulativeDrivingMin / totalDrivingMin
			}
			coord = pointAlongGeometry(route.Geometry, progress)
		}

		items = append(items, stopDTO{
			Status:          seg.Status,
			StartTime:       seg.StartTime,
			EndTime:         seg.EndTime,
			DurationMinutes: seg.DurationMinutes,
			Description:     seg.Description,
			Coordinates:     coord,
		})
	}

	return items
}
