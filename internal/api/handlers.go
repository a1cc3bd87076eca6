package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/draymaster/tripplanner/internal/domain"
	"github.com/draymaster/tripplanner/internal/events"
	"github.com/draymaster/tripplanner/internal/hos"
	"github.com/draymaster/tripplanner/internal/logsheet"
	apperrors "github.com/draymaster/tripplanner/internal/platform/errors"
	"github.com/draymaster/tripplanner/internal/platform/logger"
	"github.com/draymaster/tripplanner/internal/platform/validation"
	"github.com/draymaster/tripplanner/internal/routeprovider"
)

// Handlers holds the dependencies the HTTP layer needs: a route provider,
// an event publisher and a logger. It has no mutable state of its own,
// matching the stateless handler-struct pattern used across the
// draymaster services.
type Handlers struct {
	routes    *routeprovider.Client
	publisher *events.Publisher
	log       *logger.Logger

	cycleValidator  *validation.CycleHoursValidator
	stringValidator *validation.StringValidator
	coordValidator  *validation.CoordinateValidator
}

// NewHandlers builds a Handlers. publisher may be nil, in which case
// event publishing is a no-op.
func NewHandlers(routes *routeprovider.Client, publisher *events.Publisher, log *logger.Logger) *Handlers {
	return &Handlers{
		routes:          routes,
		publisher:       publisher,
		log:             log,
		cycleValidator:  validation.NewCycleHoursValidator(),
		stringValidator: validation.NewStringValidator(),
		coordValidator:  validation.NewCoordinateValidator(),
	}
}

func jsonResponse(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Default().WithError(err).Errorw("encode response failed")
	}
}

func writeAppError(w http.ResponseWriter, log *logger.Logger, err *apperrors.AppError) {
	status := http.StatusBadRequest
	if err.Code == "INTERNAL_ERROR" {
		status = http.StatusInternalServerError
	}
	log.WithError(err).Warnw("request failed", "code", err.Code)
	jsonResponse(w, status, errorResponse{Error: err.Message})
}

func coordsToPoint(c *[]float64) (*domain.Point, *apperrors.AppError) {
	if c == nil {
		return nil, nil
	}
	v := *c
	if len(v) != 2 {
		return nil, apperrors.ValidationError("coordinates must be [lng, lat]")
	}
	pt := domain.Point{v[0], v[1]}
	return &pt, nil
}

// parsePlanRequest validates and converts the decoded JSON body into a
// domain.TripRequest, per spec §6/§7's field-level validation rules.
func (h *Handlers) parsePlanRequest(body planRequest) (domain.TripRequest, *apperrors.AppError) {
	current := strings.TrimSpace(body.CurrentLocation)
	pickup := strings.TrimSpace(body.PickupLocation)
	dropoff := strings.TrimSpace(body.DropoffLocation)

	if err := h.stringValidator.ValidateRequired(current, "current_location"); err != nil {
		return domain.TripRequest{}, apperrors.ValidationError(err.Error())
	}
	if err := h.stringValidator.ValidateRequired(pickup, "pickup_location"); err != nil {
		return domain.TripRequest{}, apperrors.ValidationError(err.Error())
	}
	if err := h.stringValidator.ValidateRequired(dropoff, "dropoff_location"); err != nil {
		return domain.TripRequest{}, apperrors.ValidationError(err.Error())
	}

	if body.CurrentCycleUsedHrs == nil {
		return domain.TripRequest{}, apperrors.ValidationError("current_cycle_used_hrs is required")
	}
	cycleHrs := *body.CurrentCycleUsedHrs
	if err := h.cycleValidator.Validate(cycleHrs); err != nil {
		return domain.TripRequest{}, apperrors.ValidationError(err.Error())
	}

	startTime := time.Now().UTC()
	if body.StartTime != nil && strings.TrimSpace(*body.StartTime) != "" {
		parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(*body.StartTime))
		if err != nil {
			return domain.TripRequest{}, apperrors.ValidationError("start_time must be an ISO-8601 datetime")
		}
		startTime = parsed
	}

	currentCoords, aerr := coordsToPoint(body.CurrentLocationCoords)
	if aerr != nil {
		return domain.TripRequest{}, aerr
	}
	pickupCoords, aerr := coordsToPoint(body.PickupLocationCoords)
	if aerr != nil {
		return domain.TripRequest{}, aerr
	}
	dropoffCoords, aerr := coordsToPoint(body.DropoffLocationCoords)
	if aerr != nil {
		return domain.TripRequest{}, aerr
	}
	for _, pt := range []*domain.Point{currentCoords, pickupCoords, dropoffCoords} {
		if pt == nil {
			continue
		}
		if err := h.coordValidator.ValidatePair([]float64{pt[0], pt[1]}); err != nil {
			return domain.TripRequest{}, apperrors.ValidationError(err.Error())
		}
	}

	return domain.TripRequest{
		CurrentLocation:       current,
		PickupLocation:        pickup,
		DropoffLocation:       dropoff,
		CurrentCycleUsedHrs:   cycleHrs,
		StartTime:             startTime,
		CurrentLocationCoords: currentCoords,
		PickupLocationCoords:  pickupCoords,
		DropoffLocationCoords: dropoffCoords,
	}, nil
}

func toRouteDTO(route domain.Route) routeDTO {
	legs := make([]routeLegDTO, len(route.Legs))
	for i, leg := range route.Legs {
		legs[i] = routeLegDTO{
			DistanceMiles: leg.DistanceMiles,
			DurationHours: leg.DurationHours,
			Geometry:      leg.Geometry,
		}
	}
	return routeDTO{
		Geometry:         route.Geometry,
		DistanceMiles:    route.DistanceMiles,
		DurationHours:    route.DurationHours,
		Waypoints:        route.Waypoints,
		Legs:             legs,
		GeometryPolyline: routeprovider.EncodePolyline(route.Geometry),
	}
}

func toDailyLogDTO(log domain.DailyLog) dailyLogDTO {
	return dailyLogDTO{
		LogDate:           log.LogDate.Format("2006-01-02"),
		FromPlace:         log.FromPlace,
		ToPlace:           log.ToPlace,
		Segments:          log.Segments,
		TotalDrivingHours: log.TotalDrivingHours,
		TotalOnDutyHours:  log.TotalOnDutyHours,
		TotalOffDutyHours: log.TotalOffDutyHours,
		TotalSleeperHours: log.TotalSleeperHours,
	}
}

func daysOnRoad(logs []domain.DailyLog) int {
	return len(logs)
}

// PlanTrip handles POST /api/plan: resolve the route, build the HOS
// timeline, split it into daily logs, and publish a best-effort
// trip-planned event.
func (h *Handlers) PlanTrip(w http.ResponseWriter, r *http.Request) {
	log := logger.WithContext(r.Context())

	var body planRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeAppError(w, log, apperrors.ValidationError("malformed JSON request body"))
		return
	}

	req, aerr := h.parsePlanRequest(body)
	if aerr != nil {
		writeAppError(w, log, aerr)
		return
	}

	route, err := h.routes.GetRoute(r.Context(), req)
	if err != nil {
		if ae, ok := err.(*apperrors.AppError); ok {
			writeAppError(w, log, ae)
			return
		}
		writeAppError(w, log, apperrors.RouteUnavailableError(err))
		return
	}

	timeline := hos.BuildTimeline(req, route)
	logSheets := logsheet.BuildLogSheets(timeline, req)

	dailyLogDTOs := make([]dailyLogDTO, len(logSheets))
	for i, l := range logSheets {
		dailyLogDTOs[i] = toDailyLogDTO(l)
	}

	h.publisher.PublishTripPlanned(r.Context(), events.TopicTripPlanned, events.TripPlanned{
		CurrentLocation: req.CurrentLocation,
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
		DistanceMiles:   route.DistanceMiles,
		DrivingHours:    route.DurationHours,
		DaysOnRoad:      daysOnRoad(logSheets),
	})

	jsonResponse(w, http.StatusOK, planResponse{
		Route:         toRouteDTO(route),
		StopsAndRests: buildStopsAndRests(timeline, route),
		LogSheets:     dailyLogDTOs,
	})
}

// SearchPlaces handles GET /api/places?q=... for address autocomplete.
// Per spec §7, any upstream failure degrades to an empty suggestion
// list with a 200, never a 400 or 500.
func (h *Handlers) SearchPlaces(w http.ResponseWriter, r *http.Request) {
	log := logger.WithContext(r.Context())
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	if len(query) < 2 {
		jsonResponse(w, http.StatusOK, placesResponse{Suggestions: []placeSuggestionDTO{}})
		return
	}

	suggestions, err := h.routes.SearchPlaces(r.Context(), query, 5)
	if err != nil {
		log.WithError(err).Warnw("place autocomplete degraded to empty result", "query", query)
		jsonResponse(w, http.StatusOK, placesResponse{Suggestions: []placeSuggestionDTO{}})
		return
	}

	out := make([]placeSuggestionDTO, len(suggestions))
	for i, s := range suggestions {
		out[i] = placeSuggestionDTO{Name: s.Name, Coordinates: s.Coordinates}
	}
	jsonResponse(w, http.StatusOK, placesResponse{Suggestions: out})
}

// Debug handles GET /api/debug, a lightweight operational probe reporting
// whether a route provider access token is configured.
func (h *Handlers) Debug(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, debugResponse{RouteProviderConfigured: h.routes.HasToken()})
}

// Healthz handles GET /healthz for liveness probes.
func Healthz(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
