package itunes

import (
	"context"
	"sync"
)

type groupState int

const (
	groupUnfetched groupState = iota
	groupFetching
	groupPopulated
	groupFailed
)

// group is the state machine every lazily-populated field group runs
// through: unfetched → fetching → populated, or unfetched → fetching →
// failed. A failed group replays its stored error on every access until
// the entity is dropped; there is no automatic retry. The mutex is held
// across the fetch, so a concurrent caller blocks on the in-flight fetch
// instead of starting a redundant one.
type group struct {
	mu    sync.Mutex
	state groupState
	err   error
}

func (g *group) load(ctx context.Context, populate func(ctx context.Context) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch g.state {
	case groupPopulated:
		return nil
	case groupFailed:
		return g.err
	case groupUnfetched, groupFetching:
	}

	g.state = groupFetching
	if err := populate(ctx); nil != err {
		g.state = groupFailed
		g.err = err
		return err
	}
	g.state = groupPopulated
	return nil
}
