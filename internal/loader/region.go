// Package loader drives view regions through Idle -> Loading -> Loaded|Failed.
//
// Each Region carries a generation counter. Begin starts a new generation;
// Commit applies a result only if its generation is still the latest, so a
// slow response from a superseded load can never overwrite a newer one.
package loader

import (
	"context"
	"sync"
)

// State is the lifecycle position of a region.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateLoaded  State = "loaded"
	StateFailed  State = "failed"
)

// Result is what a view renders into its region.
type Result struct {
	HTML     string
	Status   string
	Counters map[string]string
	Failed   bool
}

// View fetches and renders one pane.
type View interface {
	Pane() string
	// Loading returns the placeholder shown while a load is in flight.
	Loading() Result
	// Load issues exactly one upstream request and renders the outcome.
	Load(ctx context.Context) Result
}

// Snapshot is the observable content of a region.
type Snapshot struct {
	Pane       string            `json:"pane"`
	Generation uint64            `json:"generation"`
	State      State             `json:"state"`
	HTML       string            `json:"html"`
	Status     string            `json:"status"`
	Counters   map[string]string `json:"counters,omitempty"`
}

// Region is a rendering target with last-issued-wins semantics.
type Region struct {
	mu   sync.Mutex
	gen  uint64
	snap Snapshot
}

// NewRegion returns an idle region for pane.
func NewRegion(pane string) *Region {
	return &Region{snap: Snapshot{Pane: pane, State: StateIdle}}
}

// Begin starts a new generation and shows the loading placeholder.
func (r *Region) Begin(loading Result) (uint64, Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gen++
	r.snap = Snapshot{
		Pane:       r.snap.Pane,
		Generation: r.gen,
		State:      StateLoading,
		HTML:       loading.HTML,
		Status:     loading.Status,
	}
	return r.gen, r.snap
}

// Commit replaces the region content with res if gen is still current.
// It reports false, leaving the region untouched, for a superseded gen.
func (r *Region) Commit(gen uint64, res Result) (Snapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.gen {
		return r.snap, false
	}
	state := StateLoaded
	if res.Failed {
		state = StateFailed
	}
	r.snap = Snapshot{
		Pane:       r.snap.Pane,
		Generation: gen,
		State:      state,
		HTML:       res.HTML,
		Status:     res.Status,
		Counters:   res.Counters,
	}
	return r.snap, true
}

// Publish hands snap to fn while holding the region, unless a newer
// generation has begun since snap was taken. It reports whether fn ran.
// Holding the region orders every published snapshot by generation.
func (r *Region) Publish(snap Snapshot, fn func(Snapshot)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if snap.Generation != r.gen {
		return false
	}
	if fn != nil {
		fn(snap)
	}
	return true
}

// Snapshot returns the current content.
func (r *Region) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snap
}
