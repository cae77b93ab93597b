package adder

import (
	"errors"
	"fmt"

	"github.com/consensys/qnark/frontend"
)

var (
	// ErrOperandWidth triggered when the two operand registers differ in width
	ErrOperandWidth = errors.New("operand registers must have equal width")

	// ErrSumWidth triggered when the sum register holds neither n nor n+1 bits
	ErrSumWidth = errors.New("sum register must hold n or n+1 bits")
)

// checkWidths validates register widths before anything is emitted, so a
// malformed call never leaves a partially built tape behind.
func checkWidths(xs, ys, zs []frontend.Qubit) error {
	n := len(xs)
	if len(ys) != n {
		return fmt.Errorf("%w: len(xs)=%d len(ys)=%d", ErrOperandWidth, n, len(ys))
	}
	if len(zs) != n && len(zs) != n+1 {
		return fmt.Errorf("%w: len(zs)=%d n=%d", ErrSumWidth, len(zs), n)
	}
	return nil
}

// Ripple emits the ripple carry adder: zs = xs + ys.
//
// xs and ys hold the n bit operands; zs is the zeroed output register, n+1
// bits wide to keep the carry out or n bits wide to truncate the sum mod 2^n.
// zs doubles as the carry chain: full adder k sums into zs[k] and carries
// into zs[k+1], so the construction needs no workspace qubits at all. Gate
// count and depth are linear in n.
func Ripple(api frontend.API, xs, ys, zs []frontend.Qubit) error {
	if err := checkWidths(xs, ys, zs); err != nil {
		return err
	}
	n := len(xs)
	for k := 0; k+1 < len(zs); k++ {
		FullAdder(api, zs[k], xs[k], ys[k], zs[k+1])
	}
	if len(zs) == n && n > 0 {
		// no carry to produce out of the top bit, two XORs finish the sum
		api.CX(xs[n-1], zs[n-1])
		api.CX(ys[n-1], zs[n-1])
	}
	return nil
}
