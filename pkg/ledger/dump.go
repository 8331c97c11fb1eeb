package ledger

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// TokenDump represents a single token record in a ledger dump.
type TokenDump struct {
	PricePaid *big.Int
	Refunded  bool
}

// Dump represents a complete serializable ledger capture.
type Dump struct {
	Tokens        map[uint64]TokenDump
	Reserved      map[common.Address]uint64
	Claimed       map[common.Address]uint64
	TotalReserved uint64
}

// Dump exports the ledger as a serializable structure.
func (l *Ledger) Dump() *Dump {
	l.mu.RLock()
	defer l.mu.RUnlock()

	dump := &Dump{
		Tokens:        make(map[uint64]TokenDump, len(l.tokens)),
		Reserved:      make(map[common.Address]uint64, len(l.reserved)),
		Claimed:       make(map[common.Address]uint64, len(l.claimed)),
		TotalReserved: l.totalReserved,
	}
	for id, rec := range l.tokens {
		dump.Tokens[id] = TokenDump{
			PricePaid: new(big.Int).Set(rec.pricePaid),
			Refunded:  rec.refunded,
		}
	}
	for addr, n := range l.reserved {
		dump.Reserved[addr] = n
	}
	for addr, n := range l.claimed {
		dump.Claimed[addr] = n
	}
	return dump
}

// Load replaces the ledger contents from a dump. Snapshots are discarded.
func (l *Ledger) Load(dump *Dump) {
	if dump == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.tokens = make(map[uint64]*tokenRecord, len(dump.Tokens))
	for id, rec := range dump.Tokens {
		price := big.NewInt(0)
		if rec.PricePaid != nil {
			price = new(big.Int).Set(rec.PricePaid)
		}
		l.tokens[id] = &tokenRecord{pricePaid: price, refunded: rec.Refunded}
	}
	l.reserved = make(map[common.Address]uint64, len(dump.Reserved))
	for addr, n := range dump.Reserved {
		l.reserved[addr] = n
	}
	l.claimed = make(map[common.Address]uint64, len(dump.Claimed))
	for addr, n := range dump.Claimed {
		l.claimed[addr] = n
	}
	l.totalReserved = dump.TotalReserved
	l.snapshots = nil
	l.nextSnapID = 0
}
