package bank

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = common.HexToAddress("0x1111111111111111111111111111111111111111")
	bob   = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

func TestDeposit(t *testing.T) {
	b := New()
	require.NoError(t, b.Deposit(alice, big.NewInt(1000)))
	require.NoError(t, b.Deposit(alice, big.NewInt(500)))

	assert.Equal(t, big.NewInt(1500), b.BalanceOf(alice))
	assert.Equal(t, big.NewInt(0), b.BalanceOf(bob))
}

func TestDeposit_Negative(t *testing.T) {
	b := New()
	assert.ErrorIs(t, b.Deposit(alice, big.NewInt(-1)), ErrNegativeAmount)
}

func TestTransfer(t *testing.T) {
	b := New()
	require.NoError(t, b.Deposit(alice, big.NewInt(1000)))

	require.NoError(t, b.Transfer(alice, bob, big.NewInt(300)))

	assert.Equal(t, big.NewInt(700), b.BalanceOf(alice))
	assert.Equal(t, big.NewInt(300), b.BalanceOf(bob))
	assert.Equal(t, big.NewInt(1000), b.TotalHeld())
}

func TestTransfer_InsufficientFunds(t *testing.T) {
	b := New()
	require.NoError(t, b.Deposit(alice, big.NewInt(100)))

	err := b.Transfer(alice, bob, big.NewInt(101))
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, big.NewInt(100), b.BalanceOf(alice))
}

func TestTransfer_ReceiverAccepts(t *testing.T) {
	b := New()
	require.NoError(t, b.Deposit(alice, big.NewInt(100)))

	var gotFrom common.Address
	var gotAmount *big.Int
	b.SetReceiver(bob, ReceiverFunc(func(from common.Address, amount *big.Int) error {
		gotFrom = from
		gotAmount = amount
		return nil
	}))

	require.NoError(t, b.Transfer(alice, bob, big.NewInt(40)))
	assert.Equal(t, alice, gotFrom)
	assert.Equal(t, big.NewInt(40), gotAmount)
	assert.Equal(t, big.NewInt(40), b.BalanceOf(bob))
}

func TestTransfer_ReceiverRejects(t *testing.T) {
	b := New()
	require.NoError(t, b.Deposit(alice, big.NewInt(100)))

	b.SetReceiver(bob, ReceiverFunc(func(from common.Address, amount *big.Int) error {
		return errors.New("not accepting payments")
	}))

	err := b.Transfer(alice, bob, big.NewInt(40))
	assert.ErrorIs(t, err, ErrTransferRejected)

	// Rejection undoes the balance move
	assert.Equal(t, big.NewInt(100), b.BalanceOf(alice))
	assert.Equal(t, big.NewInt(0), b.BalanceOf(bob))
}

func TestTransfer_ReceiverSeesCreditedBalance(t *testing.T) {
	b := New()
	require.NoError(t, b.Deposit(alice, big.NewInt(100)))

	var seen *big.Int
	b.SetReceiver(bob, ReceiverFunc(func(from common.Address, amount *big.Int) error {
		seen = b.BalanceOf(bob)
		return nil
	}))

	require.NoError(t, b.Transfer(alice, bob, big.NewInt(25)))
	assert.Equal(t, big.NewInt(25), seen)
}

func TestSetReceiver_Detach(t *testing.T) {
	b := New()
	require.NoError(t, b.Deposit(alice, big.NewInt(100)))

	b.SetReceiver(bob, ReceiverFunc(func(from common.Address, amount *big.Int) error {
		return errors.New("reject")
	}))
	b.SetReceiver(bob, nil)

	require.NoError(t, b.Transfer(alice, bob, big.NewInt(10)))
	assert.Equal(t, big.NewInt(10), b.BalanceOf(bob))
}

func TestSnapshotRevert(t *testing.T) {
	b := New()
	require.NoError(t, b.Deposit(alice, big.NewInt(100)))

	snapID := b.Snapshot()

	require.NoError(t, b.Transfer(alice, bob, big.NewInt(60)))
	require.NoError(t, b.Deposit(bob, big.NewInt(5)))

	b.RevertToSnapshot(snapID)

	assert.Equal(t, big.NewInt(100), b.BalanceOf(alice))
	assert.Equal(t, big.NewInt(0), b.BalanceOf(bob))
}

func TestDumpLoad_RoundTrip(t *testing.T) {
	b := New()
	require.NoError(t, b.Deposit(alice, big.NewInt(123)))
	require.NoError(t, b.Deposit(bob, big.NewInt(456)))

	restored := New()
	restored.Load(b.Dump())

	assert.Equal(t, big.NewInt(123), restored.BalanceOf(alice))
	assert.Equal(t, big.NewInt(456), restored.BalanceOf(bob))
	assert.Equal(t, big.NewInt(579), restored.TotalHeld())
}
