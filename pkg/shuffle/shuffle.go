// Package shuffle provides the deterministic metadata permutation.
package shuffle

import (
	"math/big"
	"sync"
)

// Permutation maps token IDs to metadata indices. It is empty until the
// first Run; each Run rebuilds and re-permutes it from scratch.
type Permutation struct {
	size   uint64
	values []uint64

	mu sync.RWMutex
}

// New creates an unset permutation for a collection of the given size.
func New(size uint64) *Permutation {
	return &Permutation{size: size}
}

// Run rebuilds the permutation from the given seed. Values are initialized
// to 1..size in order, then swapped from position size-1 down to position 2:
// at each step i the element at i is swapped with the element at seed mod i.
// Positions 0 and 1 are never swap targets and keep their initial values;
// this matches the deployed permutation exactly and callers depend on the
// resulting output.
func (p *Permutation) Run(seed *big.Int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.values = make([]uint64, p.size)
	for i := range p.values {
		p.values[i] = uint64(i) + 1
	}

	mod := new(big.Int)
	for i := int64(p.size) - 1; i >= 2; i-- {
		r := mod.Mod(seed, big.NewInt(i)).Int64()
		p.values[i], p.values[r] = p.values[r], p.values[i]
	}
}

// IsSet reports whether the permutation has been run at least once.
func (p *Permutation) IsSet() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return len(p.values) > 0
}

// IndexFor returns the metadata index for a token ID. When the permutation
// is unset the token ID maps to itself.
func (p *Permutation) IndexFor(tokenID uint64) uint64 {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if len(p.values) == 0 || tokenID >= uint64(len(p.values)) {
		return tokenID
	}
	return p.values[tokenID]
}

// Size returns the collection size the permutation covers.
func (p *Permutation) Size() uint64 {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.size
}

// Values returns a copy of the current permutation, or nil if unset.
func (p *Permutation) Values() []uint64 {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if len(p.values) == 0 {
		return nil
	}
	values := make([]uint64, len(p.values))
	copy(values, p.values)
	return values
}

// Load replaces the permutation contents. A nil or empty slice resets it to
// unset. Used when restoring persisted contract state.
func (p *Permutation) Load(values []uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(values) == 0 {
		p.values = nil
		return
	}
	p.values = make([]uint64, len(values))
	copy(p.values, values)
}
