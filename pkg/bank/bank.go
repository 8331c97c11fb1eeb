// Package bank provides the native currency ledger used to settle mint
// payments and refund payouts.
package bank

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// Receiver is value-receiving logic attached to an address. A contract-like
// recipient can inspect or reject incoming transfers; a rejection undoes the
// transfer. The hook runs outside the ledger lock, so it may call back into
// the bank or into any contract reachable from it.
type Receiver interface {
	OnValueReceived(from common.Address, amount *big.Int) error
}

// ReceiverFunc adapts a function to the Receiver interface.
type ReceiverFunc func(from common.Address, amount *big.Int) error

// OnValueReceived implements Receiver.
func (f ReceiverFunc) OnValueReceived(from common.Address, amount *big.Int) error {
	return f(from, amount)
}

// snapshot holds a point-in-time balance capture.
type snapshot struct {
	id       int
	balances map[common.Address]*big.Int
}

// Bank manages native currency balances for all participants.
type Bank struct {
	balances  map[common.Address]*big.Int
	receivers map[common.Address]Receiver

	snapshots  []*snapshot
	nextSnapID int

	mu sync.RWMutex
}

// New creates an empty bank.
func New() *Bank {
	return &Bank{
		balances:  make(map[common.Address]*big.Int),
		receivers: make(map[common.Address]Receiver),
	}
}

// Deposit credits an address out of thin air. Test and genesis funding only.
func (b *Bank) Deposit(to common.Address, amount *big.Int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if amount.Sign() < 0 {
		return ErrNegativeAmount
	}

	b.creditLocked(to, amount)
	return nil
}

// BalanceOf returns the balance of an address.
func (b *Bank) BalanceOf(addr common.Address) *big.Int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	balance := b.balances[addr]
	if balance == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(balance)
}

// SetReceiver attaches value-receiving logic to an address. A nil receiver
// detaches it.
func (b *Bank) SetReceiver(addr common.Address, recv Receiver) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if recv == nil {
		delete(b.receivers, addr)
		return
	}
	b.receivers[addr] = recv
}

// Transfer moves amount from one address to another. If the destination has
// a Receiver attached, it runs after the balances move; a receiver error
// undoes the move and the transfer fails with ErrTransferRejected.
func (b *Bank) Transfer(from, to common.Address, amount *big.Int) error {
	b.mu.Lock()

	if amount.Sign() < 0 {
		b.mu.Unlock()
		return ErrNegativeAmount
	}

	balance := b.balances[from]
	if balance == nil || balance.Cmp(amount) < 0 {
		b.mu.Unlock()
		return ErrInsufficientFunds
	}

	b.balances[from] = new(big.Int).Sub(balance, amount)
	b.creditLocked(to, amount)
	recv := b.receivers[to]
	b.mu.Unlock()

	if recv == nil {
		return nil
	}

	// The hook runs unlocked so recipient logic can reenter. Any error
	// unwinds the balance move.
	if err := recv.OnValueReceived(from, new(big.Int).Set(amount)); err != nil {
		b.mu.Lock()
		b.balances[to] = new(big.Int).Sub(b.balances[to], amount)
		b.creditLocked(from, amount)
		b.mu.Unlock()
		return fmt.Errorf("%w: %w", ErrTransferRejected, err)
	}

	return nil
}

// creditLocked adds amount to an address balance. Caller holds the lock.
func (b *Bank) creditLocked(to common.Address, amount *big.Int) {
	balance := b.balances[to]
	if balance == nil {
		balance = big.NewInt(0)
	}
	b.balances[to] = new(big.Int).Add(balance, amount)
}

// TotalHeld returns the sum of all balances.
func (b *Bank) TotalHeld() *big.Int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	total := big.NewInt(0)
	for _, balance := range b.balances {
		total.Add(total, balance)
	}
	return total
}

// Snapshot creates a new snapshot and returns its ID.
func (b *Bank) Snapshot() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	snap := &snapshot{
		id:       b.nextSnapID,
		balances: make(map[common.Address]*big.Int, len(b.balances)),
	}
	for addr, balance := range b.balances {
		snap.balances[addr] = new(big.Int).Set(balance)
	}

	b.snapshots = append(b.snapshots, snap)
	b.nextSnapID++

	return snap.id
}

// RevertToSnapshot reverts balances to a previous snapshot. Receivers are
// unaffected. Unknown IDs are ignored.
func (b *Bank) RevertToSnapshot(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	snapIdx := -1
	for i, snap := range b.snapshots {
		if snap.id == id {
			snapIdx = i
			break
		}
	}
	if snapIdx == -1 {
		return
	}

	snap := b.snapshots[snapIdx]
	b.balances = make(map[common.Address]*big.Int, len(snap.balances))
	for addr, balance := range snap.balances {
		b.balances[addr] = new(big.Int).Set(balance)
	}

	b.snapshots = b.snapshots[:snapIdx]
}

// Dump represents a complete serializable balance capture.
type Dump struct {
	Balances map[common.Address]*big.Int
}

// Dump exports all balances as a serializable structure.
func (b *Bank) Dump() *Dump {
	b.mu.RLock()
	defer b.mu.RUnlock()

	dump := &Dump{Balances: make(map[common.Address]*big.Int, len(b.balances))}
	for addr, balance := range b.balances {
		dump.Balances[addr] = new(big.Int).Set(balance)
	}
	return dump
}

// Load replaces balances from a dump. Snapshots are discarded.
func (b *Bank) Load(dump *Dump) {
	if dump == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.balances = make(map[common.Address]*big.Int, len(dump.Balances))
	for addr, balance := range dump.Balances {
		if balance != nil {
			b.balances[addr] = new(big.Int).Set(balance)
		}
	}
	b.snapshots = nil
	b.nextSnapID = 0
}
