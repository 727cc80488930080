package planner_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"trip_planner/internal/adapters/planner"
	"trip_planner/internal/domain"
)

// fakePlanner answers POST /api/trip with a plan shaped after the request.
func fakePlanner(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/trip" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			w.WriteHeader(http.StatusUnsupportedMediaType)
			_ = json.NewEncoder(w).Encode(map[string]any{"detail": "bad content type " + ct})
			return
		}
		var req domain.TripRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			return
		}
		dates, err := domain.DatesBetween(req.StartDate, req.EndDate)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]any{"detail": err.Error()})
			return
		}
		plan := domain.TripPlan{City: req.City, StartDate: req.StartDate, EndDate: req.EndDate}
		for i, d := range dates {
			plan.Days = append(plan.Days, domain.DayPlan{
				Date:           d,
				DayIndex:       i,
				Description:    fmt.Sprintf("day %d", i+1),
				Transportation: req.Transportation,
				Accommodation:  req.Accommodation,
				Attractions: []domain.Attraction{{
					Name:     "Forbidden City",
					Location: domain.Location{Longitude: 116.397, Latitude: 39.918},
					Rating:   4.9,
				}},
			})
			plan.WeatherInfo = append(plan.WeatherInfo, domain.WeatherInfo{Date: d, DayWeather: "sunny", DayTemp: 24})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(plan)
	})
}

func beijing() domain.TripRequest {
	return domain.TripRequest{
		City:           "Beijing",
		StartDate:      "2024-05-01",
		EndDate:        "2024-05-03",
		TravelDays:     3,
		Transportation: "walk",
		Accommodation:  "hotel",
		Preferences:    []string{"history"},
	}
}

func newClient(t *testing.T, base string, opts ...planner.Option) *planner.Client {
	t.Helper()
	cl, err := planner.New(base, opts...)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	return cl
}

func remoteMessage(t *testing.T, err error) string {
	t.Helper()
	var re *domain.RemoteError
	if !errors.As(err, &re) {
		t.Fatalf("expected *domain.RemoteError, got %T (%v)", err, err)
	}
	return re.Message
}

func TestClient_CreateTripPlan_Beijing(t *testing.T) {
	ts := httptest.NewServer(fakePlanner(t))
	defer ts.Close()

	cl := newClient(t, ts.URL+"/api")
	plan, err := cl.CreateTripPlan(context.Background(), beijing())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(plan.Days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(plan.Days))
	}
	if len(plan.WeatherInfo) != len(plan.Days) {
		t.Fatalf("weather %d != days %d", len(plan.WeatherInfo), len(plan.Days))
	}
	wantDates := []string{"2024-05-01", "2024-05-02", "2024-05-03"}
	for i, d := range plan.Days {
		if d.DayIndex != i {
			t.Fatalf("day %d: day_index %d", i, d.DayIndex)
		}
		if plan.WeatherInfo[i].Date != wantDates[i] {
			t.Fatalf("weather %d: date %s, want %s", i, plan.WeatherInfo[i].Date, wantDates[i])
		}
	}
	if v := domain.CheckPlan(beijing(), plan); len(v) != 0 {
		t.Fatalf("unexpected violations: %v", v)
	}
}

func TestClient_CreateTripPlan_DetailWins(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail": "invalid city"}`))
	}))
	defer ts.Close()

	_, err := newClient(t, ts.URL).CreateTripPlan(context.Background(), beijing())
	if got := remoteMessage(t, err); got != "invalid city" {
		t.Fatalf("message = %q", got)
	}
}

func TestClient_CreateTripPlan_ValidationDetailList(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail":[{"loc":["body","city"],"msg":"field required"},{"msg":"value is not a valid integer"}]}`))
	}))
	defer ts.Close()

	_, err := newClient(t, ts.URL).CreateTripPlan(context.Background(), beijing())
	if got := remoteMessage(t, err); got != "field required; value is not a valid integer" {
		t.Fatalf("message = %q", got)
	}
}

func TestClient_CreateTripPlan_NoDetailFallsBackToStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "boom"}`))
	}))
	defer ts.Close()

	_, err := newClient(t, ts.URL).CreateTripPlan(context.Background(), beijing())
	if got := remoteMessage(t, err); got != "request failed with status code 500" {
		t.Fatalf("message = %q", got)
	}
}

func TestClient_CreateTripPlan_GenericFallback(t *testing.T) {
	silent := planner.TransportFunc(func(ctx context.Context, req planner.Request) (*planner.Response, error) {
		return nil, &planner.TransportError{}
	})
	cl := newClient(t, "", planner.WithTransport(silent))

	_, err := cl.CreateTripPlan(context.Background(), beijing())
	if got := remoteMessage(t, err); got != domain.GenericFailure {
		t.Fatalf("message = %q", got)
	}
}

func TestClient_CreateTripPlan_Timeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer ts.Close()

	cl := newClient(t, ts.URL, planner.WithTimeout(50*time.Millisecond))
	start := time.Now()
	_, err := cl.CreateTripPlan(context.Background(), beijing())
	if err == nil {
		t.Fatalf("expected timeout error")
	}
	if remoteMessage(t, err) == "" {
		t.Fatalf("expected non-empty message")
	}
	if time.Since(start) > time.Second {
		t.Fatalf("timeout not enforced, took %s", time.Since(start))
	}
}

func TestClient_CreateTripPlan_UndecodableBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>gateway</html>`))
	}))
	defer ts.Close()

	_, err := newClient(t, ts.URL).CreateTripPlan(context.Background(), beijing())
	if remoteMessage(t, err) == "" {
		t.Fatalf("expected non-empty message")
	}
}

func TestClient_FailureDoesNotAffectNextCall(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fakePlanner(t).ServeHTTP(w, r)
	}))
	defer ts.Close()

	cl := newClient(t, ts.URL+"/api")
	if _, err := cl.CreateTripPlan(context.Background(), beijing()); err == nil {
		t.Fatalf("expected first call to fail")
	}
	plan, err := cl.CreateTripPlan(context.Background(), beijing())
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if len(plan.Days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(plan.Days))
	}
}

func TestNew_RequiresBase(t *testing.T) {
	if _, err := planner.New(""); err == nil {
		t.Fatalf("expected error for empty base")
	}
}

func TestNormalize_PassesRemoteErrorThrough(t *testing.T) {
	orig := domain.NewRemoteError("already normalized")
	if got := planner.Normalize(fmt.Errorf("wrapped: %w", orig)); got != error(orig) {
		t.Fatalf("got %v", got)
	}
	if planner.Normalize(nil) != nil {
		t.Fatalf("nil should stay nil")
	}
}

func TestClient_CreateTripPlan_RateLimited(t *testing.T) {
	ts := httptest.NewServer(fakePlanner(t))
	defer ts.Close()

	cl := newClient(t, ts.URL+"/api", planner.WithRateLimit(1))

	// first call spends the single token
	if _, err := cl.CreateTripPlan(context.Background(), beijing()); err != nil {
		t.Fatalf("first call: %v", err)
	}
	start := time.Now()
	if _, err := cl.CreateTripPlan(context.Background(), beijing()); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if waited := time.Since(start); waited < 700*time.Millisecond {
		t.Fatalf("second call should wait for a token, took %s", waited)
	}
}

func TestClient_CreateTripPlan_RateLimitWaitCancelled(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fakePlanner(t).ServeHTTP(w, r)
	}))
	defer ts.Close()

	cl := newClient(t, ts.URL+"/api", planner.WithRateLimit(1))
	if _, err := cl.CreateTripPlan(context.Background(), beijing()); err != nil {
		t.Fatalf("first call: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := cl.CreateTripPlan(ctx, beijing())
	if remoteMessage(t, err) == "" {
		t.Fatalf("expected non-empty message")
	}
	if n := calls.Load(); n != 1 {
		t.Fatalf("cancelled call should not reach the server, saw %d calls", n)
	}
}
