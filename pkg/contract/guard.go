package contract

import "sync"

// reentrancyGuard is the mutual-exclusion token shared by every guarded
// entry point. Acquisition never blocks: a call arriving while the guard is
// held (for example a recipient reentering during a refund payout) fails
// with ErrReentrantCall instead of deadlocking.
type reentrancyGuard struct {
	mu sync.Mutex
}

func (g *reentrancyGuard) acquire() error {
	if !g.mu.TryLock() {
		return ErrReentrantCall
	}
	return nil
}

func (g *reentrancyGuard) release() {
	g.mu.Unlock()
}
