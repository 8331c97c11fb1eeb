// Package ledger provides per-token and per-address mint bookkeeping.
package ledger

import (
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// tokenRecord holds the monetary record of a single minted token.
type tokenRecord struct {
	pricePaid *big.Int
	refunded  bool
}

// copy creates a deep copy of a token record.
func (r *tokenRecord) copy() *tokenRecord {
	copied := &tokenRecord{refunded: r.refunded}
	if r.pricePaid != nil {
		copied.pricePaid = new(big.Int).Set(r.pricePaid)
	}
	return copied
}

// snapshot holds a point-in-time ledger capture.
type snapshot struct {
	id            int
	tokens        map[uint64]*tokenRecord
	reserved      map[common.Address]uint64
	claimed       map[common.Address]uint64
	totalReserved uint64
}

// Ledger tracks the price paid and refund status per token, reserved
// allocations per address, and allowlist claims per address.
type Ledger struct {
	tokens        map[uint64]*tokenRecord
	reserved      map[common.Address]uint64
	claimed       map[common.Address]uint64
	totalReserved uint64

	snapshots  []*snapshot
	nextSnapID int

	mu sync.RWMutex
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{
		tokens:   make(map[uint64]*tokenRecord),
		reserved: make(map[common.Address]uint64),
		claimed:  make(map[common.Address]uint64),
	}
}

// RecordMint records the purchase price for a batch of freshly minted tokens.
// The price is captured once and never mutated afterwards.
func (l *Ledger) RecordMint(ids []uint64, price *big.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, id := range ids {
		if _, exists := l.tokens[id]; exists {
			return ErrAlreadyRecorded
		}
	}

	for _, id := range ids {
		l.tokens[id] = &tokenRecord{pricePaid: new(big.Int).Set(price)}
	}
	return nil
}

// MarkRefunded flips the refunded flag for a token. The flag is monotonic:
// a second call on the same token fails with ErrAlreadyRefunded.
func (l *Ledger) MarkRefunded(id uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, exists := l.tokens[id]
	if !exists {
		return ErrUnknownToken
	}
	if rec.refunded {
		return ErrAlreadyRefunded
	}

	rec.refunded = true
	return nil
}

// PriceOf returns the price paid for a token at mint time.
func (l *Ledger) PriceOf(id uint64) (*big.Int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	rec, exists := l.tokens[id]
	if !exists {
		return nil, ErrUnknownToken
	}
	return new(big.Int).Set(rec.pricePaid), nil
}

// IsRefunded reports whether a token has been refunded.
func (l *Ledger) IsRefunded(id uint64) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	rec, exists := l.tokens[id]
	if !exists {
		return false, ErrUnknownToken
	}
	return rec.refunded, nil
}

// Grant increases an address's reserved allocation and the total reserved
// pool in lockstep. Capacity against max supply is the caller's check.
func (l *Ledger) Grant(addr common.Address, amount uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.reserved[addr] += amount
	l.totalReserved += amount
}

// ConsumeReservation decrements an address's reserved allocation and the
// total reserved pool by the minted amount.
func (l *Ledger) ConsumeReservation(addr common.Address, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.reserved[addr] < amount {
		return ErrInvalidReservationAmount
	}
	if l.totalReserved < amount {
		return ErrAmountExceedsTotalReserved
	}

	l.reserved[addr] -= amount
	l.totalReserved -= amount
	return nil
}

// ReservedFor returns the remaining reserved allocation for an address.
func (l *Ledger) ReservedFor(addr common.Address) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.reserved[addr]
}

// TotalReserved returns the size of the remaining reserved pool.
func (l *Ledger) TotalReserved() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.totalReserved
}

// AddClaims increments the allowlist claims executed by an address.
// The per-address cap is enforced by the admission check, not here.
func (l *Ledger) AddClaims(addr common.Address, amount uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.claimed[addr] += amount
}

// ClaimedBy returns the number of allowlist mints executed by an address.
func (l *Ledger) ClaimedBy(addr common.Address) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.claimed[addr]
}

// RecordCount returns the number of token records.
func (l *Ledger) RecordCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.tokens)
}

// Snapshot creates a new snapshot and returns its ID.
func (l *Ledger) Snapshot() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap := &snapshot{
		id:            l.nextSnapID,
		tokens:        make(map[uint64]*tokenRecord, len(l.tokens)),
		reserved:      make(map[common.Address]uint64, len(l.reserved)),
		claimed:       make(map[common.Address]uint64, len(l.claimed)),
		totalReserved: l.totalReserved,
	}
	for id, rec := range l.tokens {
		snap.tokens[id] = rec.copy()
	}
	for addr, n := range l.reserved {
		snap.reserved[addr] = n
	}
	for addr, n := range l.claimed {
		snap.claimed[addr] = n
	}

	l.snapshots = append(l.snapshots, snap)
	l.nextSnapID++

	return snap.id
}

// RevertToSnapshot reverts to a previous snapshot. Unknown IDs are ignored.
func (l *Ledger) RevertToSnapshot(id int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	snapIdx := -1
	for i, snap := range l.snapshots {
		if snap.id == id {
			snapIdx = i
			break
		}
	}
	if snapIdx == -1 {
		return
	}

	snap := l.snapshots[snapIdx]
	l.tokens = make(map[uint64]*tokenRecord, len(snap.tokens))
	for tokenID, rec := range snap.tokens {
		l.tokens[tokenID] = rec.copy()
	}
	l.reserved = make(map[common.Address]uint64, len(snap.reserved))
	for addr, n := range snap.reserved {
		l.reserved[addr] = n
	}
	l.claimed = make(map[common.Address]uint64, len(snap.claimed))
	for addr, n := range snap.claimed {
		l.claimed[addr] = n
	}
	l.totalReserved = snap.totalReserved

	l.snapshots = l.snapshots[:snapIdx]
}
