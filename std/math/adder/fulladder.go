// Package adder synthesizes reversible binary adders: a linear depth ripple
// carry construction and the logarithmic depth carry lookahead construction
// of Draper, Kutin, Rains and Svore.
//
// All builders are free functions over frontend.API. Registers are little
// endian slices of qubits; operand registers are left unchanged and the sum
// lands in a zeroed output register. Emission order is deterministic, so
// compiling the same width twice yields the same tape.
package adder

import "github.com/consensys/qnark/frontend"

// FullAdder emits the six gate one bit adder. carryIn ends up holding the sum
// bit x⊕y⊕carryIn, carryOut (which must be a zeroed wire) the outgoing carry,
// and x and y are left unchanged:
//
//	y  ← x⊕y
//	c  ← x⊕c
//	w  ← y∧c
//	y  ← x⊕y
//	w  ← x⊕w
//	c  ← y⊕c
//
// The sequence costs a single And. Chained through a zeroed register it turns
// that register into the carry chain and then the sum (see Ripple).
func FullAdder(api frontend.API, carryIn, x, y, carryOut frontend.Qubit) {
	api.CX(x, y)
	api.CX(x, carryIn)
	api.And(y, carryIn, carryOut)
	api.CX(x, y)
	api.CX(x, carryOut)
	api.CX(y, carryIn)
}
