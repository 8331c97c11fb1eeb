package shuffle

import (
	"math/big"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Deterministic(t *testing.T) {
	seed := big.NewInt(987654321)

	p1 := New(100)
	p1.Run(seed)
	p2 := New(100)
	p2.Run(seed)

	assert.Equal(t, p1.Values(), p2.Values())
}

func TestRun_RerunOverwrites(t *testing.T) {
	p := New(50)
	p.Run(big.NewInt(1))
	first := p.Values()

	p.Run(big.NewInt(2))
	second := p.Values()
	assert.NotEqual(t, first, second)

	// Re-running with the original seed reproduces the original output
	p.Run(big.NewInt(1))
	assert.Equal(t, first, p.Values())
}

func TestRun_IsFullPermutation(t *testing.T) {
	p := New(64)
	p.Run(big.NewInt(31337))

	values := p.Values()
	require.Len(t, values, 64)

	sorted := make([]uint64, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	for i, v := range sorted {
		assert.Equal(t, uint64(i)+1, v)
	}
}

func TestRun_FixedPoints(t *testing.T) {
	for _, seed := range []int64{0, 1, 7, 123456789, 1 << 40} {
		p := New(32)
		p.Run(big.NewInt(seed))
		values := p.Values()

		// Positions 0 and 1 are never touched by the swap loop
		assert.Equal(t, uint64(1), values[0], "seed %d", seed)
		assert.Equal(t, uint64(2), values[1], "seed %d", seed)
	}
}

func TestRun_TinyCollections(t *testing.T) {
	p := New(2)
	p.Run(big.NewInt(99))
	assert.Equal(t, []uint64{1, 2}, p.Values())

	p = New(1)
	p.Run(big.NewInt(99))
	assert.Equal(t, []uint64{1}, p.Values())
}

func TestIndexFor_Unset(t *testing.T) {
	p := New(10)
	assert.False(t, p.IsSet())

	// Identity mapping while unset
	for id := uint64(0); id < 10; id++ {
		assert.Equal(t, id, p.IndexFor(id))
	}
}

func TestIndexFor_Set(t *testing.T) {
	p := New(16)
	p.Run(big.NewInt(42))
	require.True(t, p.IsSet())

	values := p.Values()
	for id := uint64(0); id < 16; id++ {
		assert.Equal(t, values[id], p.IndexFor(id))
	}
}

func TestLoad(t *testing.T) {
	p := New(3)
	p.Load([]uint64{3, 1, 2})
	assert.True(t, p.IsSet())
	assert.Equal(t, uint64(3), p.IndexFor(0))

	p.Load(nil)
	assert.False(t, p.IsSet())
}
