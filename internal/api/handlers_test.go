package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"example.com/octofit/internal/dashboard"
	"example.com/octofit/internal/upstream"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newRouter serves the dashboard against a fake API whose responses are keyed by path.
func newRouter(t *testing.T, api http.HandlerFunc) http.Handler {
	t.Helper()
	upstreamSrv := httptest.NewServer(api)
	t.Cleanup(upstreamSrv.Close)

	client := upstream.NewClient(upstreamSrv.URL, 2*time.Second, upstream.WithLogger(quietLogger()))
	service, err := dashboard.NewService(client, quietLogger())
	require.NoError(t, err)
	return NewHandler(service, quietLogger(), []string{"https://octofit.test"}).Router()
}

func staticAPI(bodies map[string]string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, ok := bodies[r.URL.Path]
		if !ok {
			body = `[]`
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func get(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestActivitiesPageRendersRows(t *testing.T) {
	router := newRouter(t, staticAPI(map[string]string{
		"/api/activities/": `[{"id":1,"user":"alice","activity_type":"Run","duration":30,"distance":5,"calories_burned":300,"date":"2024-01-01"}]`,
	}))

	rr := get(t, router, "/activities")

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	body := rr.Body.String()
	require.Equal(t, 1, strings.Count(body, `<th scope="row">`))
	for _, want := range []string{"alice", "Run", "<td>30</td>", "<td>5</td>", "300", "1/1/2024"} {
		require.Contains(t, body, want)
	}
	require.Contains(t, body, `data-state="ready"`)
}

func TestEmptyEnvelopeShowsPlaceholder(t *testing.T) {
	router := newRouter(t, staticAPI(map[string]string{
		"/api/teams/": `{"results":[]}`,
	}))

	rr := get(t, router, "/teams")

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	require.Contains(t, body, "No teams found. Create your first team!")
	require.NotContains(t, body, "Loading...")
	require.NotContains(t, body, "Error!")
}

func TestUnrecognizedShapeShowsPlaceholder(t *testing.T) {
	for _, payload := range []string{`{}`, `null`, `17`} {
		router := newRouter(t, staticAPI(map[string]string{"/api/users/": payload}))

		rr := get(t, router, "/users")

		require.Equal(t, http.StatusOK, rr.Code, payload)
		require.Contains(t, rr.Body.String(), "No users found", payload)
		require.NotContains(t, rr.Body.String(), "Error!", payload)
	}
}

func TestUpstreamFailureShowsErrorPanel(t *testing.T) {
	router := newRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	rr := get(t, router, "/leaderboard")

	require.Equal(t, http.StatusBadGateway, rr.Code)
	body := rr.Body.String()
	require.Contains(t, body, "Error!")
	require.Contains(t, body, "500")
	require.Contains(t, body, `data-state="error"`)
	require.NotContains(t, body, "<table")
}

func TestConnectionFailureShowsErrorPanel(t *testing.T) {
	dead := httptest.NewServer(http.NotFoundHandler())
	dead.Close()

	client := upstream.NewClient(dead.URL, time.Second, upstream.WithLogger(quietLogger()))
	service, err := dashboard.NewService(client, quietLogger())
	require.NoError(t, err)
	router := NewHandler(service, quietLogger(), nil).Router()

	rr := get(t, router, "/workouts")

	require.Equal(t, http.StatusBadGateway, rr.Code)
	require.Contains(t, rr.Body.String(), "failed to fetch")
}

func TestOverviewRendersEveryView(t *testing.T) {
	router := newRouter(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/users/" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	})

	rr := get(t, router, "/")

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	require.Equal(t, 5, strings.Count(body, `<section class="view"`))
	require.Contains(t, body, "No activities found")
	require.Contains(t, body, "No leaderboard data available")
	require.Contains(t, body, "HTTP error! status: 503")
	require.Contains(t, body, "No workouts found")
}

func TestUnknownViewIsNotFound(t *testing.T) {
	router := newRouter(t, staticAPI(nil))

	require.Equal(t, http.StatusNotFound, get(t, router, "/badges").Code)
	require.Equal(t, http.StatusNotFound, get(t, router, "/api/views/badges").Code)
}

func TestViewSnapshot(t *testing.T) {
	router := newRouter(t, staticAPI(map[string]string{
		"/api/leaderboard/": `{"results":[{"id":"a","user":"alice","total_points":90},{"id":"b","user":"bob","total_points":40}]}`,
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/views/leaderboard", nil)
	req.Header.Set("Origin", "https://octofit.test")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "https://octofit.test", rr.Header().Get("Access-Control-Allow-Origin"))

	var body struct {
		ID         string           `json:"id"`
		View       string           `json:"view"`
		Collection string           `json:"collection"`
		State      string           `json:"state"`
		Count      int              `json:"count"`
		Records    []map[string]any `json:"records"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	require.NotEmpty(t, body.ID)
	require.Equal(t, "leaderboard", body.View)
	require.Equal(t, "leaderboard", body.Collection)
	require.Equal(t, "ready", body.State)
	require.Equal(t, 2, body.Count)
	require.Equal(t, "alice", body.Records[0]["user"])
	require.Equal(t, "bob", body.Records[1]["user"])
}

func TestViewSnapshotError(t *testing.T) {
	router := newRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rr := get(t, router, "/api/views/activities")

	require.Equal(t, http.StatusBadGateway, rr.Code)
	var body SnapshotResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	require.Equal(t, "error", string(body.State))
	require.Equal(t, "HTTP error! status: 404", body.Message)
	require.Empty(t, body.Records)
}

func TestHealthz(t *testing.T) {
	router := newRouter(t, staticAPI(nil))

	rr := get(t, router, "/healthz")

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "ok", rr.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	router := newRouter(t, staticAPI(nil))
	get(t, router, "/teams")

	rr := get(t, router, "/metrics")

	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "octofit_dashboard_upstream_fetches_total")
}
