package circuit

import "fmt"

// Op identifies one of the elementary reversible operations a gate tape may
// contain.
type Op uint8

const (
	// X flips the target qubit.
	X Op = iota
	// CX flips the target qubit if the control reads 1.
	CX
	// CCX flips the target qubit if both controls read 1 (Toffoli).
	CCX
	// And writes the conjunction of its controls into a fresh target; the
	// target must read 0 when the gate is applied.
	And
	// AndInv undoes an earlier And: assuming the target holds the
	// conjunction of its controls, it returns the target to 0. Tracked as a
	// distinct operation since its cost differs from And on targets that
	// implement uncompute by measurement.
	AndInv

	nbOps // sentinel
)

// String implements fmt.Stringer.
func (op Op) String() string {
	switch op {
	case X:
		return "x"
	case CX:
		return "cx"
	case CCX:
		return "ccx"
	case And:
		return "and"
	case AndInv:
		return "andinv"
	default:
		return "unknown"
	}
}

// NbControls returns the number of control qubits of the operation.
func (op Op) NbControls() int {
	switch op {
	case X:
		return 0
	case CX:
		return 1
	default:
		return 2
	}
}

// Inverse returns the operation undoing op. X, CX and CCX are their own
// inverse; And and AndInv swap.
func (op Op) Inverse() Op {
	switch op {
	case And:
		return AndInv
	case AndInv:
		return And
	default:
		return op
	}
}

// Gate is one elementary operation on wire indices. A is the first control,
// B the second; slots beyond the operation's control count are zero and
// carry no meaning.
type Gate struct {
	Op   Op
	A, B uint32
	T    uint32
}

// Inverse returns the gate undoing g.
func (g Gate) Inverse() Gate {
	g.Op = g.Op.Inverse()
	return g
}

// Qubits appends the wire indices g touches to buf and returns it.
func (g Gate) Qubits(buf []uint32) []uint32 {
	switch g.Op.NbControls() {
	case 0:
		return append(buf, g.T)
	case 1:
		return append(buf, g.A, g.T)
	default:
		return append(buf, g.A, g.B, g.T)
	}
}

// String returns a short readable form, e.g. "ccx 3 4 7" (controls first,
// target last).
func (g Gate) String() string {
	switch g.Op.NbControls() {
	case 0:
		return fmt.Sprintf("%s %d", g.Op, g.T)
	case 1:
		return fmt.Sprintf("%s %d %d", g.Op, g.A, g.T)
	default:
		return fmt.Sprintf("%s %d %d %d", g.Op, g.A, g.B, g.T)
	}
}
