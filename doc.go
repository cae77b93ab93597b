// Package qnark provides a high level API to synthesize reversible arithmetic
// circuits over an elementary gate set (NOT, CNOT, Toffoli and a compute /
// uncompute AND primitive).
//
// qnark ships two adder constructions:
//   - a ripple-carry adder: linear depth, no workspace qubits
//   - a carry-lookahead adder: logarithmic depth,
//     n - HammingWeight(n) - ⌊log2(n)⌋ workspace qubits
//
// Circuits are declared with the frontend package, compile to a circuit.Circuit
// gate tape, and can be simulated, serialized and profiled (see the profile
// package) to attribute gate cost per subroutine.
package qnark

import (
	"github.com/blang/semver/v4"
)

var Version = semver.MustParse("0.1.0")
