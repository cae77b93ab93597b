package circuit

import (
	"errors"
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Evaluation errors. A well formed tape applied to a state satisfying its
// register preconditions never returns one; they surface emission bugs.
var (
	// ErrStateWidth is returned when the input state is narrower than the
	// circuit's wire count.
	ErrStateWidth = errors.New("state narrower than circuit")
	// ErrDirtyAnd is returned when an And gate targets a wire that does
	// not read 0.
	ErrDirtyAnd = errors.New("and target not clean")
	// ErrBadUncompute is returned when an AndInv gate targets a wire out
	// of sync with the conjunction of its controls.
	ErrBadUncompute = errors.New("uncompute target out of sync with controls")
	// ErrDirtyRelease is returned when a workspace wire does not read 0 at
	// its recorded release point.
	ErrDirtyRelease = errors.New("workspace released in non-zero state")
)

// NewState returns an all-zero state wide enough for the circuit.
func (c *Circuit) NewState() *bitset.BitSet {
	return bitset.New(uint(c.NbQubits))
}

// Evaluate applies the tape to a copy of in and returns the resulting
// state. in must be at least NbQubits wide; wires outside the operand
// registers must read 0.
//
// Beyond plain simulation, Evaluate enforces the uncompute discipline of
// the tape: And targets must be clean, AndInv targets must hold the
// conjunction of their controls, and every recorded release point must read
// 0. Checks must be sorted by gate index, which holds for every compiled
// circuit.
func (c *Circuit) Evaluate(in *bitset.BitSet) (*bitset.BitSet, error) {
	if int(in.Len()) < c.NbQubits {
		return nil, fmt.Errorf("%w: state has %d wires, circuit needs %d", ErrStateWidth, in.Len(), c.NbQubits)
	}
	state := in.Clone()

	checks := c.Checks
	runChecks := func(at uint32) error {
		for len(checks) > 0 && checks[0].At == at {
			if state.Test(uint(checks[0].Q)) {
				return fmt.Errorf("%w: wire %d after %d gates", ErrDirtyRelease, checks[0].Q, at)
			}
			checks = checks[1:]
		}
		return nil
	}

	if err := runChecks(0); err != nil {
		return nil, err
	}
	for i, g := range c.Gates {
		switch g.Op {
		case X:
			state.Flip(uint(g.T))
		case CX:
			if state.Test(uint(g.A)) {
				state.Flip(uint(g.T))
			}
		case CCX:
			if state.Test(uint(g.A)) && state.Test(uint(g.B)) {
				state.Flip(uint(g.T))
			}
		case And:
			if state.Test(uint(g.T)) {
				return nil, fmt.Errorf("%w: gate %d (%s)", ErrDirtyAnd, i, g)
			}
			if state.Test(uint(g.A)) && state.Test(uint(g.B)) {
				state.Set(uint(g.T))
			}
		case AndInv:
			want := state.Test(uint(g.A)) && state.Test(uint(g.B))
			if state.Test(uint(g.T)) != want {
				return nil, fmt.Errorf("%w: gate %d (%s)", ErrBadUncompute, i, g)
			}
			state.Clear(uint(g.T))
		default:
			return nil, fmt.Errorf("gate %d: unknown op %d", i, g.Op)
		}
		if err := runChecks(uint32(i + 1)); err != nil {
			return nil, err
		}
	}
	if len(checks) > 0 {
		return nil, fmt.Errorf("zero check at gate %d beyond tape end", checks[0].At)
	}
	return state, nil
}

// PackUint64 writes the low r.Width bits of v into the register's wires,
// least significant bit first.
func PackUint64(state *bitset.BitSet, r Register, v uint64) {
	for i := 0; i < int(r.Width); i++ {
		state.SetTo(uint(r.Qubit(i)), v>>i&1 == 1)
	}
}

// UnpackUint64 reads the register's wires as an unsigned integer, least
// significant bit first. The register must not exceed 64 bits.
func UnpackUint64(state *bitset.BitSet, r Register) uint64 {
	var v uint64
	for i := 0; i < int(r.Width); i++ {
		if state.Test(uint(r.Qubit(i))) {
			v |= 1 << i
		}
	}
	return v
}
