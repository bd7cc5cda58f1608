package loader

import (
	"context"
	"errors"
	"log"
	"sync"
)

// ErrUnknownPane is returned for a pane with no registered view.
var ErrUnknownPane = errors.New("unknown pane")

// Publisher receives every snapshot a region accepts.
type Publisher func(Snapshot)

// Board owns one region per view and the summary counters they update.
type Board struct {
	views   map[string]View
	regions map[string]*Region

	mu       sync.Mutex
	counters map[string]string

	wg sync.WaitGroup
}

// NewBoard creates a board with an idle region for each view.
func NewBoard(views ...View) *Board {
	b := &Board{
		views:    make(map[string]View, len(views)),
		regions:  make(map[string]*Region, len(views)),
		counters: make(map[string]string),
	}
	for _, v := range views {
		b.views[v.Pane()] = v
		b.regions[v.Pane()] = NewRegion(v.Pane())
	}
	return b
}

// Has reports whether pane has a loader.
func (b *Board) Has(pane string) bool {
	_, ok := b.views[pane]
	return ok
}

// Region returns the region for pane, or nil.
func (b *Board) Region(pane string) *Region {
	return b.regions[pane]
}

// Load runs one load of pane to completion and returns the region's
// content afterwards. If a newer load started meanwhile, the returned
// snapshot is that newer load's.
func (b *Board) Load(ctx context.Context, pane string) (Snapshot, error) {
	v, ok := b.views[pane]
	if !ok {
		return Snapshot{}, ErrUnknownPane
	}
	region := b.regions[pane]
	gen, _ := region.Begin(v.Loading())
	return b.finish(ctx, v, region, gen, nil), nil
}

// Activate starts a load of pane. The loading snapshot is published
// before Activate returns; the outcome is published from a goroutine
// unless a later activation superseded it.
func (b *Board) Activate(ctx context.Context, pane string, publish Publisher) error {
	v, ok := b.views[pane]
	if !ok {
		return ErrUnknownPane
	}
	region := b.regions[pane]
	gen, loading := region.Begin(v.Loading())
	region.Publish(loading, publish)

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		b.finish(ctx, v, region, gen, publish)
	}()
	return nil
}

func (b *Board) finish(ctx context.Context, v View, region *Region, gen uint64, publish Publisher) Snapshot {
	res := v.Load(ctx)
	snap, ok := region.Commit(gen, res)
	if ok {
		ok = region.Publish(snap, func(s Snapshot) {
			b.mergeCounters(res.Counters)
			if publish != nil {
				publish(s)
			}
		})
	}
	if !ok {
		log.Printf("loader: dropping stale %s result (generation %d)", v.Pane(), gen)
		return region.Snapshot()
	}
	return snap
}

func (b *Board) mergeCounters(c map[string]string) {
	if len(c) == 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for k, v := range c {
		b.counters[k] = v
	}
}

// Counters returns a copy of the summary counters.
func (b *Board) Counters() map[string]string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make(map[string]string, len(b.counters))
	for k, v := range b.counters {
		out[k] = v
	}
	return out
}

// Wait blocks until every background load has finished.
func (b *Board) Wait() {
	b.wg.Wait()
}
