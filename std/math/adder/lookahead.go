package adder

import "github.com/consensys/qnark/frontend"

// Lookahead emits the carry lookahead adder: zs = xs + ys.
//
// Register conventions match Ripple. The construction computes every carry
// through a logarithmic depth propagate/generate network instead of a chain,
// at the price of n − OnesCount(n) − ⌊log2(n)⌋ workspace qubits, all returned
// to zero before the builder returns. The And count stays linear in n and the
// circuit depth drops to O(log n).
func Lookahead(api frontend.API, xs, ys, zs []frontend.Qubit) error {
	if err := checkWidths(xs, ys, zs); err != nil {
		return err
	}
	if len(zs) == len(xs) {
		lookaheadTruncated(api, xs, ys, zs)
	} else {
		lookaheadCarryOut(api, xs, ys, zs)
	}
	return nil
}

// lookaheadCarryOut adds n bit operands into an n+1 bit sum register.
func lookaheadCarryOut(api frontend.API, xs, ys, zs []frontend.Qubit) {
	n := len(xs)
	if n == 0 {
		return
	}

	// generate bits into the fresh sum register: zs[i+1] = x_i ∧ y_i
	for i := 0; i < n; i++ {
		api.And(xs[i], ys[i], zs[i+1])
	}

	// propagate bits in place, ys[i] = x_i ⊕ y_i, for the span of the carry
	// network; the scope restores ys on exit
	api.Within(func() {
		for i := 0; i < n; i++ {
			api.CX(xs[i], ys[i])
		}
	}, func() {
		// rewrite zs[1..n] from generate bits into carries, then finish
		// each sum bit with its propagate bit
		computeCarries(api, ys[1:], zs[1:])
		for k := 0; k < n; k++ {
			api.CX(ys[k], zs[k])
		}
	})
}

// lookaheadTruncated adds n bit operands into an n bit sum register, mod 2^n.
// It recurses into carry-out mode on the low n−1 bits and finishes the top
// bit with two XORs, the same way Ripple finishes its top bit.
func lookaheadTruncated(api frontend.API, xs, ys, zs []frontend.Qubit) {
	n := len(xs)
	if n == 0 {
		return
	}
	lookaheadCarryOut(api, xs[:n-1], ys[:n-1], zs[:n])
	api.CX(xs[n-1], zs[n-1])
	api.CX(ys[n-1], zs[n-1])
}
