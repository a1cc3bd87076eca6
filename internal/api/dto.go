package api

import (
	"time"

	"github.com/draymaster/tripplanner/internal/domain"
)

// planRequest is the JSON body of POST /api/plan, per spec §6.
type planRequest struct {
	CurrentLocation       string     `json:"current_location"`
	PickupLocation        string     `json:"pickup_location"`
	DropoffLocation       string     `json:"dropoff_location"`
	CurrentCycleUsedHrs   *float64   `json:"current_cycle_used_hrs"`
	StartTime             *string    `json:"start_time"`
	CurrentLocationCoords *[]float64 `json:"current_location_coords"`
	PickupLocationCoords  *[]float64 `json:"pickup_location_coords"`
	DropoffLocationCoords *[]float64 `json:"dropoff_location_coords"`
}

type routeLegDTO struct {
	DistanceMiles float64       `json:"distance_miles"`
	DurationHours float64       `json:"duration_hours"`
	Geometry      []domain.Point `json:"geometry,omitempty"`
}

type routeDTO struct {
	Geometry        []domain.Point `json:"geometry,omitempty"`
	DistanceMiles   float64        `json:"distance_miles"`
	DurationHours   float64        `json:"duration_hours"`
	Waypoints       []domain.Point `json:"waypoints,omitempty"`
	Legs            []routeLegDTO  `json:"legs"`
	GeometryPolyline string        `json:"geometry_polyline,omitempty"`
}

type stopDTO struct {
	Status          domain.DutyStatus `json:"status"`
	StartTime       time.Time         `json:"start_time"`
	EndTime         time.Time         `json:"end_time"`
	DurationMinutes float64           `json:"duration_minutes"`
	Description     string            `json:"description"`
	Coordinates     *domain.Point     `json:"coordinates"`
}

type dailyLogDTO struct {
	LogDate           string                  `json:"log_date"`
	FromPlace         string                  `json:"from_place"`
	ToPlace           string                  `json:"to_place"`
	Segments          []domain.LogGridSegment `json:"segments"`
	TotalDrivingHours float64                 `json:"total_driving_hours"`
	TotalOnDutyHours  float64                 `json:"total_on_duty_hours"`
	TotalOffDutyHours float64                 `json:"total_off_duty_hours"`
	TotalSleeperHours float64                 `json:"total_sleeper_hours"`
}

type planResponse struct {
	Route          routeDTO      `json:"route"`
	StopsAndRests  []stopDTO     `json:"stops_and_rests"`
	LogSheets      []dailyLogDTO `json:"log_sheets"`
}

type placeSuggestionDTO struct {
	Name        string        `json:"name"`
	Coordinates *domain.Point `json:"coordinates,omitempty"`
}

type placesResponse struct {
	Suggestions []placeSuggestionDTO `json:"suggestions"`
}

type debugResponse struct {
	RouteProviderConfigured bool `json:"route_provider_configured"`
}

type errorResponse struct {
	Error string `json:"error"`
}
