package dashboard

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"example.com/octofit/internal/domain"
	"example.com/octofit/internal/upstream"
	"example.com/octofit/internal/view"
)

type fakeFetcher struct {
	results map[string][]domain.Record
	errs    map[string]error
}

func (f fakeFetcher) Fetch(_ context.Context, collection string) ([]domain.Record, error) {
	if err, ok := f.errs[collection]; ok {
		return nil, err
	}
	return f.results[collection], nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func waitAll(t *testing.T, views []*view.View) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	for _, v := range views {
		_, err := v.Wait(ctx)
		require.NoError(t, err)
	}
}

func TestServiceMountUnknownView(t *testing.T) {
	svc, err := NewService(fakeFetcher{}, quietLogger())
	require.NoError(t, err)

	_, err = svc.Mount(context.Background(), "badges")
	require.ErrorIs(t, err, ErrViewNotFound)
}

func TestServiceRejectsDuplicateDefinitions(t *testing.T) {
	_, err := NewService(fakeFetcher{}, quietLogger(), Teams(), Teams())
	require.Error(t, err)
}

func TestServiceMountAllIsolatesFailures(t *testing.T) {
	fetcher := fakeFetcher{
		results: map[string][]domain.Record{
			upstream.CollectionActivities: {{"id": "1", "user": "alice"}},
			upstream.CollectionTeams:      {{"id": "t1", "name": "Blue"}},
		},
		errs: map[string]error{
			upstream.CollectionLeaderboard: &upstream.StatusError{Status: 500},
		},
	}
	svc, err := NewService(fetcher, quietLogger())
	require.NoError(t, err)

	views := svc.MountAll(context.Background())
	require.Len(t, views, 5)
	waitAll(t, views)

	phases := map[string]view.Phase{}
	for _, v := range views {
		phases[v.Definition().Name] = v.Snapshot().Phase
	}
	require.Equal(t, view.PhaseReady, phases["activities"])
	require.Equal(t, view.PhaseError, phases["leaderboard"])
	require.Equal(t, view.PhaseReady, phases["teams"])
	require.Equal(t, view.PhaseReady, phases["users"])
	require.Equal(t, view.PhaseReady, phases["workouts"])

	var buf bytes.Buffer
	require.NoError(t, svc.RenderPage(&buf, "Overview", "", views...))
	html := buf.String()
	require.Contains(t, html, "alice")
	require.Contains(t, html, "HTTP error! status: 500")
	require.Contains(t, html, "No users found")
	require.Contains(t, html, `href="/workouts"`)
}

func TestServiceRenderPageMarksActiveNav(t *testing.T) {
	svc, err := NewService(fakeFetcher{}, quietLogger())
	require.NoError(t, err)

	v, err := svc.Mount(context.Background(), "teams")
	require.NoError(t, err)
	waitAll(t, []*view.View{v})

	var buf bytes.Buffer
	require.NoError(t, svc.RenderPage(&buf, "Teams", "teams", v))
	require.Contains(t, buf.String(), `class="nav-link active" href="/teams"`)
}

func TestServiceLookup(t *testing.T) {
	svc, err := NewService(fakeFetcher{}, quietLogger())
	require.NoError(t, err)

	def, ok := svc.Lookup("workouts")
	require.True(t, ok)
	require.Equal(t, upstream.CollectionWorkouts, def.Collection)

	_, ok = svc.Lookup("badges")
	require.False(t, ok)
	require.Len(t, svc.Definitions(), 5)
}
