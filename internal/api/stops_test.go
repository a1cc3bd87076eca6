package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draymaster/tripplanner/internal/domain"
)

func TestPointAlongGeometry_Endpoints(t *testing.T) {
	geom := []domain.Point{{0, 0}, {10, 0}, {10, 10}}

	start := pointAlongGeometry(geom, 0)
	require.NotNil(t, start)
	assert.InDelta(t, 0, start[0], 1e-9)
	assert.InDelta(t, 0, start[1], 1e-9)

	end := pointAlongGeometry(geom, 1)
	require.NotNil(t, end)
	assert.InDelta(t, 10, end[0], 1e-9)
	assert.InDelta(t, 10, end[1], 1e-9)
}

func TestPointAlongGeometry_Midpoint(t *testing.T) {
	geom := []domain.Point{{0, 0}, {20, 0}}
	mid := pointAlongGeometry(geom, 0.5)
	require.NotNil(t, mid)
	assert.InDelta(t, 10, mid[0], 1e-9)
	assert.InDelta(t, 0, mid[1], 1e-9)
}

func TestPointAlongGeometry_Empty(t *testing.T) {
	assert.Nil(t, pointAlongGeometry(nil, 0.5))
}

func TestBuildStopsAndRests_ExcludesDrivingAndAttachesWaypoints(t *testing.T) {
	start := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	timeline := []domain.TimelineSegment{
		{Status: domain.Driving, StartTime: start, EndTime: start.Add(time.Hour), DurationMinutes: 60, Description: "Driving to pickup"},
		{Status: domain.OnDutyNotDriving, StartTime: start.Add(time.Hour), EndTime: start.Add(2 * time.Hour), DurationMinutes: 60, Description: "Pickup (1 hr)"},
		{Status: domain.Driving, StartTime: start.Add(2 * time.Hour), EndTime: start.Add(4 * time.Hour), DurationMinutes: 120, Description: "Driving to dropoff"},
		{Status: domain.OnDutyNotDriving, StartTime: start.Add(4 * time.Hour), EndTime: start.Add(5 * time.Hour), DurationMinutes: 60, Description: "Dropoff (1 hr)"},
	}
	route := domain.Route{
		Waypoints: []domain.Point{{-87.6, 41.8}, {-86.1, 39.8}, {-85.7, 38.2}},
		Legs: []domain.RouteLeg{
			{DistanceMiles: 50, DurationHours: 1, Geometry: []domain.Point{{-87.6, 41.8}, {-86.1, 39.8}}},
			{DistanceMiles: 100, DurationHours: 2, Geometry: []domain.Point{{-86.1, 39.8}, {-85.7, 38.2}}},
		},
	}

	stops := buildStopsAndRests(timeline, route)
	require.Len(t, stops, 2)

	assert.Equal(t, "Pickup (1 hr)", stops[0].Description)
	require.NotNil(t, stops[0].Coordinates)
	assert.Equal(t, route.Waypoints[1], *stops[0].Coordinates)

	assert.Equal(t, "Dropoff (1 hr)", stops[1].Description)
	require.NotNil(t, stops[1].Coordinates)
	assert.Equal(t, route.Waypoints[2], *stops[1].Coordinates)
}

func TestBuildStopsAndRests_InterpolatesMidLegStop(t *testing.T) {
	start := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	timeline := []domain.TimelineSegment{
		{Status: domain.Driving, StartTime: start, EndTime: start.Add(4 * time.Hour), DurationMinutes: 240, Description: "Driving to pickup"},
		{Status: domain.OffDuty, StartTime: start.Add(4 * time.Hour), EndTime: start.Add(4*time.Hour + 30*time.Minute), DurationMinutes: 30, Description: "30-minute break"},
	}
	route := domain.Route{
		Legs: []domain.RouteLeg{
			{DistanceMiles: 400, DurationHours: 8, Geometry: []domain.Point{{0, 0}, {100, 0}}},
		},
	}

	stops := buildStopsAndRests(timeline, route)
	require.Len(t, stops, 1)
	require.NotNil(t, stops[0].Coordinates)
	assert.InDelta(t, 50, stops[0].Coordinates[0], 1e-6)
}
