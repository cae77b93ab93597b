package frontend

// Qubit is a handle on one wire of the circuit under construction. Handles
// are issued by [API.Register] and [API.Ancillas]; the zero value is not a
// valid qubit and using it panics.
type Qubit struct {
	w uint32 // wire index plus one, so the zero value stays detectable
}

// API represents the operations available to a circuit's Define method.
//
// Gate methods append to the tape in call order. Operands of a gate must sit
// on distinct wires; violating that panics, as do allocation-discipline
// errors, and Compile converts the panic into an error with a stack.
type API interface {
	// X flips q
	X(q Qubit)

	// CX flips t if c is set
	CX(c, t Qubit)

	// CCX flips t if both a and b are set
	CCX(a, b, t Qubit)

	// And writes the AND of a and b into t. The target must be a zeroed
	// wire; the caller undoes the write with AndInv before the wire is
	// released or reused.
	And(a, b, t Qubit)

	// AndInv undoes a matching And, returning t to zero
	AndInv(a, b, t Qubit)

	// Register allocates width fresh primary qubits and records them in the
	// compiled artifact. All registers must be allocated before any
	// workspace is acquired, so that primary wires form a contiguous prefix
	// of the wire space.
	Register(width int) []Qubit

	// Ancillas acquires n workspace qubits, each holding zero. Wires freed
	// by earlier Release calls are reused before new wires are created.
	Ancillas(n int) []Qubit

	// Release returns the workspace qubits of the most recent un-released
	// Ancillas call. qs must be exactly that slice, in order; acquisitions
	// and releases nest strictly. The caller must have returned every
	// released qubit to zero, which Evaluate enforces on the compiled
	// circuit and Compile cannot.
	Release(qs []Qubit)

	// Within emits prelude, then body, then the adjoint of prelude. The
	// prelude function runs twice and must emit the same gates both times.
	Within(prelude, body func())

	// Adjoint emits the inverse of everything f emits: the span is
	// reversed and each gate replaced by its own inverse. Acquiring or
	// releasing workspace inside f is not allowed.
	Adjoint(f func())
}
