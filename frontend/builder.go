package frontend

import (
	"fmt"
	"slices"

	"github.com/consensys/qnark/circuit"
	"github.com/consensys/qnark/profile"
)

// builder records the gate tape and the register and workspace bookkeeping
// while a Circuit's Define method runs. It is not safe for concurrent use;
// Compile drives one builder from a single goroutine.
type builder struct {
	gates     []circuit.Gate
	registers []circuit.Register
	checks    []circuit.ZeroCheck

	nbWires uint32

	// workspace bookkeeping. live holds the wire ids handed out by each
	// un-released Ancillas call, most recent last; free holds released
	// wires, reused before new wires are created.
	live [][]uint32
	free []uint32

	curAncillas int
	maxAncillas int
	nbAncillas  int

	// nesting depth of Adjoint scopes at emission time. A gate emitted at
	// odd depth lands on the final tape inverted.
	adjointDepth int
}

var _ API = (*builder)(nil)

func newBuilder(config CompileConfig) *builder {
	return &builder{
		gates: make([]circuit.Gate, 0, config.Capacity),
	}
}

// wire returns the wire index behind q. It panics on the zero value, which
// catches qubits that never came from Register or Ancillas.
func (builder *builder) wire(q Qubit) uint32 {
	if q.w == 0 {
		panic("uninitialized qubit; handles are issued by Register and Ancillas")
	}
	return q.w - 1
}

func (builder *builder) qubit(wire uint32) Qubit {
	return Qubit{w: wire + 1}
}

// emit appends g to the tape and feeds the profiler. Inside an odd number of
// Adjoint scopes the gate will be inverted before the tape is sealed, so the
// profiler is told about the op the final tape will carry.
func (builder *builder) emit(g circuit.Gate) {
	builder.gates = append(builder.gates, g)
	op := g.Op
	if builder.adjointDepth&1 == 1 {
		op = op.Inverse()
	}
	profile.RecordGate(op == circuit.And)
}

func (builder *builder) X(q Qubit) {
	builder.emit(circuit.Gate{Op: circuit.X, T: builder.wire(q)})
}

func (builder *builder) CX(c, t Qubit) {
	cw, tw := builder.wire(c), builder.wire(t)
	if cw == tw {
		panic("cx: control and target on the same wire")
	}
	builder.emit(circuit.Gate{Op: circuit.CX, A: cw, T: tw})
}

func (builder *builder) CCX(a, b, t Qubit) {
	builder.emit(builder.threeWire(circuit.CCX, a, b, t))
}

func (builder *builder) And(a, b, t Qubit) {
	builder.emit(builder.threeWire(circuit.And, a, b, t))
}

func (builder *builder) AndInv(a, b, t Qubit) {
	builder.emit(builder.threeWire(circuit.AndInv, a, b, t))
}

func (builder *builder) threeWire(op circuit.Op, a, b, t Qubit) circuit.Gate {
	aw, bw, tw := builder.wire(a), builder.wire(b), builder.wire(t)
	if aw == bw || aw == tw || bw == tw {
		panic(op.String() + ": duplicate wire among controls and target")
	}
	return circuit.Gate{Op: op, A: aw, B: bw, T: tw}
}

func (builder *builder) Register(width int) []Qubit {
	if width < 0 {
		panic(fmt.Sprintf("register width %d out of range", width))
	}
	if builder.nbAncillas > 0 {
		panic("registers must be allocated before any workspace is acquired")
	}
	builder.registers = append(builder.registers, circuit.Register{
		Offset: builder.nbWires,
		Width:  uint32(width),
	})
	qs := make([]Qubit, width)
	for i := range qs {
		qs[i] = builder.qubit(builder.nbWires)
		builder.nbWires++
	}
	return qs
}

func (builder *builder) Ancillas(n int) []Qubit {
	if n < 0 {
		panic(fmt.Sprintf("workspace size %d out of range", n))
	}
	if builder.adjointDepth > 0 {
		panic("cannot acquire workspace inside an Adjoint scope")
	}
	ids := make([]uint32, n)
	for i := range ids {
		if k := len(builder.free); k > 0 {
			ids[i] = builder.free[k-1]
			builder.free = builder.free[:k-1]
		} else {
			ids[i] = builder.nbWires
			builder.nbWires++
		}
	}
	builder.live = append(builder.live, ids)
	builder.curAncillas += n
	builder.nbAncillas += n
	if builder.curAncillas > builder.maxAncillas {
		builder.maxAncillas = builder.curAncillas
	}
	qs := make([]Qubit, n)
	for i, id := range ids {
		qs[i] = builder.qubit(id)
	}
	return qs
}

func (builder *builder) Release(qs []Qubit) {
	if builder.adjointDepth > 0 {
		panic("cannot release workspace inside an Adjoint scope")
	}
	if len(builder.live) == 0 {
		panic("release without a matching workspace acquisition")
	}
	top := builder.live[len(builder.live)-1]
	if len(qs) != len(top) {
		panic(fmt.Sprintf("workspace released out of order: got %d qubits, expected %d", len(qs), len(top)))
	}
	for i := range qs {
		if builder.wire(qs[i]) != top[i] {
			panic("workspace released out of order")
		}
	}
	builder.live = builder.live[:len(builder.live)-1]
	builder.curAncillas -= len(top)

	// record, against the current tape position, that each released wire
	// must read zero once the tape prefix has run. Evaluate enforces it.
	at := uint32(len(builder.gates))
	sorted := slices.Clone(top)
	slices.Sort(sorted)
	for _, w := range sorted {
		builder.checks = append(builder.checks, circuit.ZeroCheck{Q: w, At: at})
	}

	// push back in reverse so the next acquisition reuses the same wires in
	// the same order, keeping synthesis deterministic
	for i := len(top) - 1; i >= 0; i-- {
		builder.free = append(builder.free, top[i])
	}
}

// Within emits prelude, then body, then the adjoint of prelude.
func (builder *builder) Within(prelude, body func()) {
	prelude()
	body()
	builder.Adjoint(prelude)
}

// Adjoint emits the inverse of everything f emits.
func (builder *builder) Adjoint(f func()) {
	mark := len(builder.gates)
	builder.adjointDepth++
	f()
	builder.adjointDepth--
	builder.invert(mark)
}

// invert reverses the tape from mark on and replaces each gate by its
// inverse, turning the span into the adjoint of what was just emitted.
func (builder *builder) invert(mark int) {
	gs := builder.gates[mark:]
	for i, j := 0, len(gs)-1; i < j; i, j = i+1, j-1 {
		gs[i], gs[j] = gs[j].Inverse(), gs[i].Inverse()
	}
	if len(gs)&1 == 1 {
		mid := len(gs) / 2
		gs[mid] = gs[mid].Inverse()
	}
}

// compile seals the recorded tape into the final artifact.
func (builder *builder) compile() (*circuit.Circuit, error) {
	if builder.curAncillas > 0 {
		return nil, fmt.Errorf("%w: %d qubits in %d acquisitions", ErrWorkspaceLeak, builder.curAncillas, len(builder.live))
	}
	return &circuit.Circuit{
		Gates:       builder.gates,
		Registers:   builder.registers,
		NbQubits:    int(builder.nbWires),
		MaxAncillas: builder.maxAncillas,
		NbAncillas:  builder.nbAncillas,
		Checks:      builder.checks,
	}, nil
}
