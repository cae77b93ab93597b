package test

import (
	"math/rand"

	"github.com/consensys/qnark/circuit"
	"github.com/consensys/qnark/frontend"
)

// funcCircuit adapts a bare closure into a frontend.Circuit.
type funcCircuit struct {
	define func(api frontend.API) error
}

func (c *funcCircuit) Define(api frontend.API) error { return c.define(api) }

// SelfInverse checks the adjoint round-trip law for define's emission: the
// tape followed by its gate level adjoint must fix every input state. The
// registers listed by index in free are driven through all of their values,
// or through a deterministic random sample when there are too many; every
// other wire starts at zero, which keeps the tape's compute and uncompute
// preconditions intact.
func (assert *Assert) SelfInverse(define func(api frontend.API) error, free ...int) {
	compiled, err := frontend.Compile(&funcCircuit{define: define})
	assert.NoError(err)

	doubled := appendAdjoint(compiled)

	regs := make([]circuit.Register, len(free))
	total := 0
	for i, ri := range free {
		regs[i] = compiled.Registers[ri]
		total += int(regs[i].Width)
	}

	const exhaustiveLimit = 14
	if total <= exhaustiveLimit {
		for v := uint64(0); v < 1<<uint(total); v++ {
			assert.checkFixedPoint(doubled, regs, v)
		}
		return
	}
	rng := rand.New(rand.NewSource(0x5eed))
	for i := 0; i < 200; i++ {
		assert.checkFixedPoint(doubled, regs, rng.Uint64())
	}
}

// checkFixedPoint distributes the low bits of v across the free registers,
// runs the tape and requires the state to come through unchanged.
func (assert *Assert) checkFixedPoint(c *circuit.Circuit, regs []circuit.Register, v uint64) {
	in := c.NewState()
	for _, r := range regs {
		circuit.PackUint64(in, r, v)
		v >>= r.Width
	}
	out, err := c.Evaluate(in)
	assert.NoError(err)
	assert.True(in.Equal(out), "state not restored by adjoint")
}

// appendAdjoint returns a copy of c whose tape is followed by its own
// adjoint: the gates reversed, each replaced by its inverse. Zero checks of
// the forward half keep their positions; the adjoint half needs none.
func appendAdjoint(c *circuit.Circuit) *circuit.Circuit {
	gates := make([]circuit.Gate, 0, 2*len(c.Gates))
	gates = append(gates, c.Gates...)
	for i := len(c.Gates) - 1; i >= 0; i-- {
		gates = append(gates, c.Gates[i].Inverse())
	}
	return &circuit.Circuit{
		Gates:       gates,
		Registers:   c.Registers,
		NbQubits:    c.NbQubits,
		MaxAncillas: c.MaxAncillas,
		NbAncillas:  c.NbAncillas,
		Checks:      c.Checks,
	}
}
