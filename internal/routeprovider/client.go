// Package routeprovider wraps the Mapbox geocoding and directions APIs,
// turning place names into a domain.Route the HOS engine can consume.
// The client pattern (config struct, timeout-bound http.Client, JSON
// request/response types, doRequest helper, structured logging on the
// way out) follows services/emodal-integration/internal/client in the
// draymaster-tms services.
package routeprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/draymaster/tripplanner/internal/domain"
	apperrors "github.com/draymaster/tripplanner/internal/platform/errors"
	"github.com/draymaster/tripplanner/internal/platform/logger"
)

const (
	metersToMiles  = 0.000621371
	secondsToHours = 1.0 / 3600.0
)

// Config holds the Mapbox endpoints and credentials. Defaults come from
// internal/platform/config; a non-default GeocodeURL/DirectionsURL lets
// tests point at a local fixture server.
type Config struct {
	GeocodeURL    string
	DirectionsURL string
	AccessToken   string
	Timeout       time.Duration
}

// Client is the route provider used by the planning handler. It is safe
// for concurrent use; it holds no per-request state.
type Client struct {
	cfg        Config
	httpClient *http.Client
	cache      *GeocodeCache
	log        *logger.Logger
}

// HasToken reports whether an access token is configured, used by the
// /api/debug probe to surface a misconfigured deployment.
func (c *Client) HasToken() bool {
	return strings.TrimSpace(c.cfg.AccessToken) != ""
}

// NewClient builds a Client. cache may be nil, in which case every
// geocode lookup hits Mapbox directly.
func NewClient(cfg Config, cache *GeocodeCache, log *logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		cache:      cache,
		log:        log,
	}
}

type geocodeResponse struct {
	Features []geocodeFeature `json:"features"`
}

type geocodeFeature struct {
	PlaceName string    `json:"place_name"`
	Text      string    `json:"text"`
	Center    []float64 `json:"center"`
}

// PlaceSuggestion is one autocomplete result from Mapbox geocoding.
type PlaceSuggestion struct {
	Name        string       `json:"name"`
	Coordinates *domain.Point `json:"coordinates,omitempty"`
}

// Geocode resolves a free-text place query to a single [lng, lat] point,
// checking the Redis cache first when one is configured.
func (c *Client) Geocode(ctx context.Context, query string) (domain.Point, error) {
	if c.cache != nil {
		if pt, ok := c.cache.Get(ctx, query); ok {
			return pt, nil
		}
	}

	features, err := c.geocodeFeatures(ctx, query, 1, false)
	if err != nil {
		return domain.Point{}, err
	}
	if len(features) == 0 || len(features[0].Center) != 2 {
		return domain.Point{}, apperrors.RouteUnavailableError(fmt.Errorf("no geocoding match for %q", query))
	}

	pt := domain.Point{features[0].Center[0], features[0].Center[1]}
	if c.cache != nil {
		c.cache.Set(ctx, query, pt)
	}
	return pt, nil
}

// SearchPlaces returns autocomplete suggestions for a partial address,
// used by the /api/places endpoint.
func (c *Client) SearchPlaces(ctx context.Context, query string, limit int) ([]PlaceSuggestion, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 5
	}
	if limit > 10 {
		limit = 10
	}

	features, err := c.geocodeFeatures(ctx, query, limit, true)
	if err != nil {
		return nil, err
	}

	out := make([]PlaceSuggestion, 0, len(features))
	for _, f := range features {
		if len(f.Center) != 2 {
			continue
		}
		name := f.PlaceName
		if name == "" {
			name = f.Text
		}
		pt := domain.Point{f.Center[0], f.Center[1]}
		out = append(out, PlaceSuggestion{Name: name, Coordinates: &pt})
	}
	return out, nil
}

func (c *Client) geocodeFeatures(ctx context.Context, query string, limit int, autocomplete bool) ([]geocodeFeature, error) {
	token := strings.TrimSpace(c.cfg.AccessToken)
	if token == "" {
		return nil, apperrors.RouteUnavailableError(fmt.Errorf("no route provider access token configured"))
	}

	q := url.Values{}
	q.Set("access_token", token)
	q.Set("limit", strconv.Itoa(limit))
	q.Set("country", "us")
	if autocomplete {
		q.Set("autocomplete", "true")
		q.Set("types", "place,address,postcode")
	}

	endpoint := fmt.Sprintf("%s/%s.json?%s", strings.TrimRight(c.cfg.GeocodeURL, "/"), url.PathEscape(query), q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.InternalError(fmt.Errorf("build geocode request: %w", err))
	}

	c.log.Debugw("geocoding request", "query", query, "autocomplete", autocomplete)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.RouteUnavailableError(fmt.Errorf("geocode %q: %w", query, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.RouteUnavailableError(fmt.Errorf("geocode %q: mapbox returned HTTP %d", query, resp.StatusCode))
	}

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, apperrors.InternalError(fmt.Errorf("decode geocode response: %w", err))
	}
	return decoded.Features, nil
}

type directionsResponse struct {
	Routes []directionsRoute `json:"routes"`
}

type directionsRoute struct {
	Distance float64          `json:"distance"`
	Duration float64          `json:"duration"`
	Geometry geojsonGeometry  `json:"geometry"`
	Legs     []directionsLeg  `json:"legs"`
}

type directionsLeg struct {
	Distance float64         `json:"distance"`
	Duration float64         `json:"duration"`
	Geometry geojsonGeometry `json:"geometry"`
}

type geojsonGeometry struct {
	Coordinates [][]float64 `json:"coordinates"`
}

func toPoints(coords [][]float64) []domain.Point {
	pts := make([]domain.Point, 0, len(coords))
	for _, c := range coords {
		if len(c) != 2 {
			continue
		}
		pts = append(pts, domain.Point{c[0], c[1]})
	}
	return pts
}

// GetRoute geocodes current/pickup/dropoff (reusing any pre-resolved
// coordinates on the request) and fetches driving directions between the
// three waypoints in order, returning a domain.Route.
func (c *Client) GetRoute(ctx context.Context, req domain.TripRequest) (domain.Route, error) {
	current, err := c.resolve(ctx, req.CurrentLocationCoords, req.CurrentLocation)
	if err != nil {
		return domain.Route{}, err
	}
	pickup, err := c.resolve(ctx, req.PickupLocationCoords, req.PickupLocation)
	if err != nil {
		return domain.Route{}, err
	}
	dropoff, err := c.resolve(ctx, req.DropoffLocationCoords, req.DropoffLocation)
	if err != nil {
		return domain.Route{}, err
	}

	coordsPath := fmt.Sprintf("%g,%g;%g,%g;%g,%g",
		current[0], current[1], pickup[0], pickup[1], dropoff[0], dropoff[1])

	q := url.Values{}
	q.Set("access_token", strings.TrimSpace(c.cfg.AccessToken))
	q.Set("geometries", "geojson")
	q.Set("overview", "full")

	endpoint := fmt.Sprintf("%s/%s?%s", strings.TrimRight(c.cfg.DirectionsURL, "/"), coordsPath, q.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Route{}, apperrors.InternalError(fmt.Errorf("build directions request: %w", err))
	}

	c.log.Infow("directions request", "current", req.CurrentLocation, "pickup", req.PickupLocation, "dropoff", req.DropoffLocation)
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return domain.Route{}, apperrors.RouteUnavailableError(fmt.Errorf("directions request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Route{}, apperrors.RouteUnavailableError(fmt.Errorf("directions: mapbox returned HTTP %d", resp.StatusCode))
	}

	var decoded directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Route{}, apperrors.InternalError(fmt.Errorf("decode directions response: %w", err))
	}
	if len(decoded.Routes) == 0 {
		return domain.Route{}, apperrors.RouteUnavailableError(fmt.Errorf("no route returned for the given locations"))
	}

	best := decoded.Routes[0]
	legs := make([]domain.RouteLeg, len(best.Legs))
	for i, leg := range best.Legs {
		legs[i] = domain.RouteLeg{
			DistanceMiles: leg.Distance * metersToMiles,
			DurationHours: leg.Duration * secondsToHours,
			Geometry:      toPoints(leg.Geometry.Coordinates),
		}
	}

	return domain.Route{
		Geometry:      toPoints(best.Geometry.Coordinates),
		DistanceMiles: best.Distance * metersToMiles,
		DurationHours: best.Duration * secondsToHours,
		Legs:          legs,
		Waypoints:     []domain.Point{current, pickup, dropoff},
	}, nil
}

func (c *Client) resolve(ctx context.Context, preResolved *domain.Point, location string) (domain.Point, error) {
	if preResolved != nil {
		return *preResolved, nil
	}
	return c.Geocode(ctx, location)
}
