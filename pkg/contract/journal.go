package contract

// journal coordinates point-in-time snapshots of the token registry, the
// mint ledger, and the bank, so a guarded operation can be unwound as one
// all-or-nothing unit when a later step fails.
type journal struct {
	c      *Contract
	regID  int
	ledID  int
	bankID int
}

// beginJournal captures the current state of all three collaborators.
func (c *Contract) beginJournal() *journal {
	return &journal{
		c:      c,
		regID:  c.registry.Snapshot(),
		ledID:  c.ledger.Snapshot(),
		bankID: c.bank.Snapshot(),
	}
}

// revert rolls all three collaborators back to the captured state.
func (j *journal) revert() {
	j.c.bank.RevertToSnapshot(j.bankID)
	j.c.ledger.RevertToSnapshot(j.ledID)
	j.c.registry.RevertToSnapshot(j.regID)
}
