// Package token provides the base NFT ownership registry.
//
// The registry is a thin ownership ledger: sequential IDs, owner and balance
// bookkeeping, per-token approvals, and a pre-transfer hook that runs before
// any ownership change commits, including mints (transfers from the zero
// address). Policy lives in the hook; the registry itself is policy-free.
package token

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// BeforeTransferFunc runs before an ownership change commits. For mints,
// from is the zero address and the IDs are startID..startID+quantity-1.
// A non-nil error aborts the change with no state mutation. The hook is
// invoked outside the registry lock, so it may read back into the registry.
type BeforeTransferFunc func(from, to common.Address, startID, quantity uint64) error

// snapshot holds a point-in-time registry capture.
type snapshot struct {
	id        int
	owners    map[uint64]common.Address
	balances  map[common.Address]uint64
	approvals map[uint64]common.Address
	nextID    uint64
}

// Registry is an in-memory ownership ledger with sequential token IDs.
type Registry struct {
	owners    map[uint64]common.Address
	balances  map[common.Address]uint64
	approvals map[uint64]common.Address
	nextID    uint64

	beforeTransfer BeforeTransferFunc

	snapshots  []*snapshot
	nextSnapID int

	mu sync.RWMutex
}

// NewRegistry creates an empty registry. IDs start at 0.
func NewRegistry() *Registry {
	return &Registry{
		owners:    make(map[uint64]common.Address),
		balances:  make(map[common.Address]uint64),
		approvals: make(map[uint64]common.Address),
	}
}

// SetBeforeTransfer installs the pre-transfer hook.
func (r *Registry) SetBeforeTransfer(hook BeforeTransferFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.beforeTransfer = hook
}

func (r *Registry) hook() BeforeTransferFunc {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.beforeTransfer
}

// Mint issues quantity sequential tokens to an address and returns their IDs.
// The pre-transfer hook sees the batch as a single transfer from the zero
// address and can reject it before any token is created.
func (r *Registry) Mint(to common.Address, quantity uint64) ([]uint64, error) {
	if to == (common.Address{}) {
		return nil, ErrZeroAddress
	}
	if quantity == 0 {
		return nil, ErrZeroQuantity
	}

	if hook := r.hook(); hook != nil {
		r.mu.RLock()
		startID := r.nextID
		r.mu.RUnlock()
		if err := hook(common.Address{}, to, startID, quantity); err != nil {
			return nil, err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]uint64, quantity)
	for i := uint64(0); i < quantity; i++ {
		id := r.nextID + i
		r.owners[id] = to
		ids[i] = id
	}
	r.balances[to] += quantity
	r.nextID += quantity

	return ids, nil
}

// Transfer moves a single token from its current owner to another address.
func (r *Registry) Transfer(from, to common.Address, id uint64) error {
	if err := r.validateTransfer(from, to, id); err != nil {
		return err
	}

	if hook := r.hook(); hook != nil {
		if err := hook(from, to, id, 1); err != nil {
			return err
		}
	}

	return r.commitTransfer(from, to, id)
}

// TransferFrom moves a token on behalf of caller, who must be the current
// owner or the approved spender for the token.
func (r *Registry) TransferFrom(caller, from, to common.Address, id uint64) error {
	if err := r.validateTransfer(from, to, id); err != nil {
		return err
	}

	r.mu.RLock()
	owner := r.owners[id]
	approved := r.approvals[id]
	r.mu.RUnlock()
	if caller != owner && caller != approved {
		return ErrNotAuthorized
	}

	if hook := r.hook(); hook != nil {
		if err := hook(from, to, id, 1); err != nil {
			return err
		}
	}

	return r.commitTransfer(from, to, id)
}

// validateTransfer checks the transfer arguments against current state.
func (r *Registry) validateTransfer(from, to common.Address, id uint64) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owner, exists := r.owners[id]
	if !exists {
		return ErrNonexistentToken
	}
	if owner != from {
		return ErrWrongOwner
	}
	if to == (common.Address{}) {
		return ErrZeroAddress
	}
	return nil
}

// commitTransfer performs the ownership change, revalidating under the lock
// since the hook ran without it.
func (r *Registry) commitTransfer(from, to common.Address, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	owner, exists := r.owners[id]
	if !exists {
		return ErrNonexistentToken
	}
	if owner != from {
		return ErrWrongOwner
	}

	r.owners[id] = to
	r.balances[from]--
	r.balances[to]++
	delete(r.approvals, id)

	return nil
}

// Approve sets the approved spender for a token. The registry trusts its
// caller; access control is the contract layer's concern.
func (r *Registry) Approve(spender common.Address, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.owners[id]; !exists {
		return ErrNonexistentToken
	}

	r.approvals[id] = spender
	return nil
}

// GetApproved returns the approved spender for a token, if any.
func (r *Registry) GetApproved(id uint64) (common.Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, exists := r.owners[id]; !exists {
		return common.Address{}, ErrNonexistentToken
	}
	return r.approvals[id], nil
}

// OwnerOf returns the current owner of a token.
func (r *Registry) OwnerOf(id uint64) (common.Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owner, exists := r.owners[id]
	if !exists {
		return common.Address{}, ErrNonexistentToken
	}
	return owner, nil
}

// BalanceOf returns the number of tokens held by an address.
func (r *Registry) BalanceOf(addr common.Address) uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.balances[addr]
}

// Exists reports whether a token has been minted.
func (r *Registry) Exists(id uint64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.owners[id]
	return exists
}

// TotalSupply returns the number of tokens minted so far.
func (r *Registry) TotalSupply() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.nextID
}

// Snapshot creates a new snapshot and returns its ID.
func (r *Registry) Snapshot() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := &snapshot{
		id:        r.nextSnapID,
		owners:    make(map[uint64]common.Address, len(r.owners)),
		balances:  make(map[common.Address]uint64, len(r.balances)),
		approvals: make(map[uint64]common.Address, len(r.approvals)),
		nextID:    r.nextID,
	}
	for id, owner := range r.owners {
		snap.owners[id] = owner
	}
	for addr, n := range r.balances {
		snap.balances[addr] = n
	}
	for id, spender := range r.approvals {
		snap.approvals[id] = spender
	}

	r.snapshots = append(r.snapshots, snap)
	r.nextSnapID++

	return snap.id
}

// RevertToSnapshot reverts to a previous snapshot. Unknown IDs are ignored.
func (r *Registry) RevertToSnapshot(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapIdx := -1
	for i, snap := range r.snapshots {
		if snap.id == id {
			snapIdx = i
			break
		}
	}
	if snapIdx == -1 {
		return
	}

	snap := r.snapshots[snapIdx]
	r.owners = make(map[uint64]common.Address, len(snap.owners))
	for tokenID, owner := range snap.owners {
		r.owners[tokenID] = owner
	}
	r.balances = make(map[common.Address]uint64, len(snap.balances))
	for addr, n := range snap.balances {
		r.balances[addr] = n
	}
	r.approvals = make(map[uint64]common.Address, len(snap.approvals))
	for tokenID, spender := range snap.approvals {
		r.approvals[tokenID] = spender
	}
	r.nextID = snap.nextID

	r.snapshots = r.snapshots[:snapIdx]
}

// Dump represents a complete serializable registry capture.
type Dump struct {
	Owners    map[uint64]common.Address
	Approvals map[uint64]common.Address
	NextID    uint64
}

// Dump exports the registry as a serializable structure. Balances are
// derived from owners and not stored.
func (r *Registry) Dump() *Dump {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dump := &Dump{
		Owners:    make(map[uint64]common.Address, len(r.owners)),
		Approvals: make(map[uint64]common.Address, len(r.approvals)),
		NextID:    r.nextID,
	}
	for id, owner := range r.owners {
		dump.Owners[id] = owner
	}
	for id, spender := range r.approvals {
		dump.Approvals[id] = spender
	}
	return dump
}

// Load replaces the registry contents from a dump. Snapshots are discarded.
func (r *Registry) Load(dump *Dump) {
	if dump == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.owners = make(map[uint64]common.Address, len(dump.Owners))
	r.balances = make(map[common.Address]uint64)
	for id, owner := range dump.Owners {
		r.owners[id] = owner
		r.balances[owner]++
	}
	r.approvals = make(map[uint64]common.Address, len(dump.Approvals))
	for id, spender := range dump.Approvals {
		r.approvals[id] = spender
	}
	r.nextID = dump.NextID
	r.snapshots = nil
	r.nextSnapID = 0
}
