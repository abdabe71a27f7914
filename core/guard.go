package core

import "sync"

// Guard per-market in-progress flag. Every state-mutating entry point
// enters before touching the ledger and exits on every return path;
// overlapping entry on the same market is rejected, never queued.
type Guard struct {
	flags sync.Map
}

// Enter claims the flag for key, returning ErrOperationInProgress when an
// operation already holds it.
func (g *Guard) Enter(key string) error {
	if _, loaded := g.flags.LoadOrStore(key, struct{}{}); loaded {
		return ErrOperationInProgress
	}
	return nil
}

// Exit releases the flag for key.
func (g *Guard) Exit(key string) {
	g.flags.Delete(key)
}
