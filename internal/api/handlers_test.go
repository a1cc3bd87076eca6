package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draymaster/tripplanner/internal/platform/logger"
	"github.com/draymaster/tripplanner/internal/routeprovider"
)

// fakeMapbox serves canned geocoding and directions responses so handler
// tests never hit the network, following the httptest.NewServer pattern
// used throughout the livesim2 app tests.
func fakeMapbox(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/geocoding/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"features":[{"place_name":"Test Place","text":"Test","center":[-87.6,41.8]}]}`)
	})
	mux.HandleFunc("/directions/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"routes":[{"distance":160934,"duration":3960,"geometry":{"coordinates":[[-87.6,41.8],[-86.1,39.8]]},"legs":[{"distance":80467,"duration":1980,"geometry":{"coordinates":[[-87.6,41.8],[-86.1,39.8]]}},{"distance":80467,"duration":1980,"geometry":{"coordinates":[[-86.1,39.8],[-85.7,38.2]]}}]}]}`)
	})
	return httptest.NewServer(mux)
}

func newTestHandlers(t *testing.T) *Handlers {
	t.Helper()
	srv := fakeMapbox(t)
	t.Cleanup(srv.Close)

	client := routeprovider.NewClient(routeprovider.Config{
		GeocodeURL:    srv.URL + "/geocoding",
		DirectionsURL: srv.URL + "/directions",
		AccessToken:   "test-token",
		Timeout:       5 * time.Second,
	}, nil, logger.Default())

	return NewHandlers(client, nil, logger.Default())
}

func doJSON(t *testing.T, h http.HandlerFunc, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestPlanTrip_Success(t *testing.T) {
	h := newTestHandlers(t)
	cycle := 0.0
	body := planRequest{
		CurrentLocation:     "Chicago, IL",
		PickupLocation:      "Indianapolis, IN",
		DropoffLocation:     "Louisville, KY",
		CurrentCycleUsedHrs: &cycle,
	}

	rec := doJSON(t, h.PlanTrip, http.MethodPost, "/api/plan", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp planResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.LogSheets)
	assert.NotEmpty(t, resp.StopsAndRests)
	for _, stop := range resp.StopsAndRests {
		assert.NotEqual(t, "DRIVING", string(stop.Status))
	}
}

func TestPlanTrip_MissingRequiredField(t *testing.T) {
	h := newTestHandlers(t)
	cycle := 0.0
	body := planRequest{
		PickupLocation:      "Indianapolis, IN",
		DropoffLocation:     "Louisville, KY",
		CurrentCycleUsedHrs: &cycle,
	}

	rec := doJSON(t, h.PlanTrip, http.MethodPost, "/api/plan", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlanTrip_CycleHoursOutOfRange(t *testing.T) {
	h := newTestHandlers(t)
	cycle := 71.0
	body := planRequest{
		CurrentLocation:     "Chicago, IL",
		PickupLocation:      "Indianapolis, IN",
		DropoffLocation:     "Louisville, KY",
		CurrentCycleUsedHrs: &cycle,
	}

	rec := doJSON(t, h.PlanTrip, http.MethodPost, "/api/plan", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlanTrip_UnparseableStartTime(t *testing.T) {
	h := newTestHandlers(t)
	cycle := 0.0
	bad := "not-a-date"
	body := planRequest{
		CurrentLocation:     "Chicago, IL",
		PickupLocation:      "Indianapolis, IN",
		DropoffLocation:     "Louisville, KY",
		CurrentCycleUsedHrs: &cycle,
		StartTime:           &bad,
	}

	rec := doJSON(t, h.PlanTrip, http.MethodPost, "/api/plan", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchPlaces_ShortQueryReturnsEmpty(t *testing.T) {
	h := newTestHandlers(t)
	req := httptest.NewRequest(http.MethodGet, "/api/places?q=a", nil)
	rec := httptest.NewRecorder()
	h.SearchPlaces(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp placesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Suggestions)
}

func TestSearchPlaces_UpstreamFailureDegradesToEmpty(t *testing.T) {
	client := routeprovider.NewClient(routeprovider.Config{
		GeocodeURL:    "http://127.0.0.1:0/geocoding",
		DirectionsURL: "http://127.0.0.1:0/directions",
		AccessToken:   "",
		Timeout:       time.Second,
	}, nil, logger.Default())
	h := NewHandlers(client, nil, logger.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/places?q=chicago", nil)
	rec := httptest.NewRecorder()
	h.SearchPlaces(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp placesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Suggestions)
}
