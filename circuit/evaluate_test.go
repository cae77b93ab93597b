package circuit

import (
	"testing"

	"github.com/bits-and-blooms/bitset"
	"github.com/stretchr/testify/require"
)

func TestEvaluateElementary(t *testing.T) {
	assert := require.New(t)

	c := &Circuit{
		NbQubits: 3,
		Gates: []Gate{
			{Op: X, T: 0},            // 0 -> 1
			{Op: CX, A: 0, T: 1},     // 1 -> 1
			{Op: CCX, A: 0, B: 1, T: 2}, // 2 -> 1
			{Op: CX, A: 2, T: 0},     // 0 -> 0
		},
	}

	out, err := c.Evaluate(c.NewState())
	assert.NoError(err)
	assert.False(out.Test(0))
	assert.True(out.Test(1))
	assert.True(out.Test(2))
}

func TestEvaluateDoesNotMutateInput(t *testing.T) {
	assert := require.New(t)

	c := &Circuit{
		NbQubits: 1,
		Gates:    []Gate{{Op: X, T: 0}},
	}
	in := c.NewState()
	out, err := c.Evaluate(in)
	assert.NoError(err)
	assert.True(out.Test(0))
	assert.False(in.Test(0))
}

func TestEvaluateAndDiscipline(t *testing.T) {
	assert := require.New(t)

	// and on a clean target computes the conjunction
	c := &Circuit{
		NbQubits: 3,
		Gates: []Gate{
			{Op: X, T: 0},
			{Op: X, T: 1},
			{Op: And, A: 0, B: 1, T: 2},
		},
	}
	out, err := c.Evaluate(c.NewState())
	assert.NoError(err)
	assert.True(out.Test(2))

	// and on a dirty target is rejected
	dirty := &Circuit{
		NbQubits: 3,
		Gates:    []Gate{{Op: And, A: 0, B: 1, T: 2}},
	}
	in := dirty.NewState()
	in.Set(2)
	_, err = dirty.Evaluate(in)
	assert.ErrorIs(err, ErrDirtyAnd)

	// andinv restores the target to zero
	roundTrip := &Circuit{
		NbQubits: 3,
		Gates: []Gate{
			{Op: X, T: 0},
			{Op: X, T: 1},
			{Op: And, A: 0, B: 1, T: 2},
			{Op: AndInv, A: 0, B: 1, T: 2},
		},
	}
	out, err = roundTrip.Evaluate(roundTrip.NewState())
	assert.NoError(err)
	assert.False(out.Test(2))

	// andinv on a target out of sync with its controls is rejected
	badSync := &Circuit{
		NbQubits: 3,
		Gates:    []Gate{{Op: AndInv, A: 0, B: 1, T: 2}},
	}
	in = badSync.NewState()
	in.Set(2)
	_, err = badSync.Evaluate(in)
	assert.ErrorIs(err, ErrBadUncompute)
}

func TestEvaluateZeroChecks(t *testing.T) {
	assert := require.New(t)

	// release point sees a non-zero wire
	c := &Circuit{
		NbQubits: 1,
		Gates:    []Gate{{Op: X, T: 0}},
		Checks:   []ZeroCheck{{Q: 0, At: 1}},
	}
	_, err := c.Evaluate(c.NewState())
	assert.ErrorIs(err, ErrDirtyRelease)

	// release point sees a clean wire
	clean := &Circuit{
		NbQubits: 1,
		Gates: []Gate{
			{Op: X, T: 0},
			{Op: X, T: 0},
		},
		Checks: []ZeroCheck{{Q: 0, At: 2}},
	}
	_, err = clean.Evaluate(clean.NewState())
	assert.NoError(err)

	// check recorded beyond the tape end is a malformed artifact
	malformed := &Circuit{
		NbQubits: 1,
		Gates:    []Gate{{Op: X, T: 0}},
		Checks:   []ZeroCheck{{Q: 0, At: 5}},
	}
	_, err = malformed.Evaluate(malformed.NewState())
	assert.Error(err)
}

func TestEvaluateStateWidth(t *testing.T) {
	assert := require.New(t)

	c := &Circuit{NbQubits: 8}
	_, err := c.Evaluate(bitset.New(4))
	assert.ErrorIs(err, ErrStateWidth)
}

func TestPackUnpackUint64(t *testing.T) {
	assert := require.New(t)

	state := bitset.New(16)
	r := Register{Offset: 5, Width: 7}
	PackUint64(state, r, 0b1011001)
	assert.Equal(uint64(0b1011001), UnpackUint64(state, r))

	// wires outside the register stay untouched
	assert.False(state.Test(4))
	assert.False(state.Test(12))

	// packing overwrites previous contents
	PackUint64(state, r, 0)
	assert.Equal(uint64(0), UnpackUint64(state, r))
	assert.Equal(uint(0), state.Count())
}
