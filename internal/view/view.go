// Package view implements the collection view: one asynchronous fetch per
// mount, a loading/error/ready state machine, and rendering as a pure function
// of the current state.
package view

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"example.com/octofit/internal/domain"
)

// Phase is the state of a view instance.
type Phase string

const (
	PhaseLoading Phase = "loading"
	PhaseError   Phase = "error"
	PhaseReady   Phase = "ready"
)

// State is a point-in-time snapshot of a view.
type State struct {
	Phase   Phase
	Message string          // Set in PhaseError.
	Records []domain.Record // Set in PhaseReady, never nil there.
}

// Fetcher retrieves a normalized collection.
type Fetcher interface {
	Fetch(ctx context.Context, collection string) ([]domain.Record, error)
}

// View is a single mount of a Definition.
type View struct {
	id      string
	def     Definition
	fetcher Fetcher
	logger  *slog.Logger

	mu    sync.RWMutex
	state State

	mount sync.Once
	done  chan struct{}
}

// New constructs a View in the loading state.
func New(def Definition, fetcher Fetcher, logger *slog.Logger) *View {
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.NewString()
	return &View{
		id:      id,
		def:     def,
		fetcher: fetcher,
		logger:  logger.With(slog.String("view", def.Name), slog.String("view_id", id)),
		state:   State{Phase: PhaseLoading},
		done:    make(chan struct{}),
	}
}

// ID identifies this instance in logs and snapshots.
func (v *View) ID() string { return v.id }

// Definition returns the definition the view was built from.
func (v *View) Definition() Definition { return v.def }

// Mount starts the fetch in the background and returns immediately. Only the
// first call has any effect. Cancelling ctx aborts the in-flight request.
func (v *View) Mount(ctx context.Context) {
	v.mount.Do(func() {
		go v.load(ctx)
	})
}

func (v *View) load(ctx context.Context) {
	defer close(v.done)

	records, err := v.fetcher.Fetch(ctx, v.def.Collection)
	if err != nil {
		if ctx.Err() != nil {
			v.logger.DebugContext(ctx, "view torn down before fetch resolved", slog.Any("err", err))
		} else {
			v.logger.ErrorContext(ctx, "view fetch failed", slog.Any("err", err))
		}
		v.set(State{Phase: PhaseError, Message: err.Error()})
		return
	}
	if records == nil {
		records = []domain.Record{}
	}
	v.logger.InfoContext(ctx, "view ready", slog.Int("records", len(records)))
	v.set(State{Phase: PhaseReady, Records: records})
}

func (v *View) set(s State) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state = s
}

// Snapshot returns the current state.
func (v *View) Snapshot() State {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

// Done is closed once the view has left the loading state.
func (v *View) Done() <-chan struct{} { return v.done }

// Wait blocks until the view resolves or ctx is done. On ctx expiry it returns
// the current snapshot together with ctx's error.
func (v *View) Wait(ctx context.Context) (State, error) {
	select {
	case <-v.done:
		return v.Snapshot(), nil
	case <-ctx.Done():
		return v.Snapshot(), ctx.Err()
	}
}
