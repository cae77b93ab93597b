// Package circuit declares the artifact produced by compiling a
// frontend.Circuit: an ordered tape of elementary reversible gates together
// with the register map and workspace accounting of the build.
//
// A Circuit holds no values. Qubits are wire indices; a state exists only
// when the tape is applied to one (see Evaluate).
package circuit

// Register designates a contiguous span of primary wires reserved for one
// operand, in allocation order starting at wire 0.
type Register struct {
	Offset uint32
	Width  uint32
}

// Qubit returns the wire index of bit i of the register, bit 0 being the
// least significant.
func (r Register) Qubit(i int) uint32 {
	return r.Offset + uint32(i)
}

// ZeroCheck records that wire Q must read 0 once the first At gates of the
// tape have been applied. The frontend emits one for every workspace qubit
// at the point it is released.
type ZeroCheck struct {
	Q  uint32
	At uint32
}

// Circuit is the synthesis artifact.
//
// The gate tape is serialized in binary (see ToBytes), the remaining fields
// through CBOR.
type Circuit struct {
	// Gates is the tape, in emission order.
	Gates []Gate `cbor:"-"`

	// Registers are the primary operand spans, in allocation order.
	Registers []Register

	// NbQubits is the number of distinct wires the tape addresses:
	// primaries first, workspace wires above them.
	NbQubits int

	// MaxAncillas is the peak number of simultaneously held workspace
	// wires during the build.
	MaxAncillas int

	// NbAncillas is the total number of workspace acquisitions, counting
	// reused wires once per acquisition.
	NbAncillas int

	// Checks are the workspace release points, sorted by gate index.
	Checks []ZeroCheck

	depth int // cached by Depth
}

// NbGates returns the length of the gate tape.
func (c *Circuit) NbGates() int {
	return len(c.Gates)
}

// NbAnds returns the number of And gates on the tape, the dominant cost
// primitive. Uncomputations (AndInv) are not counted.
func (c *Circuit) NbAnds() int {
	n := 0
	for _, g := range c.Gates {
		if g.Op == And {
			n++
		}
	}
	return n
}

// NbPrimaryQubits returns the number of wires covered by operand registers.
func (c *Circuit) NbPrimaryQubits() int {
	n := 0
	for _, r := range c.Registers {
		n += int(r.Width)
	}
	return n
}

// GateCounts returns the number of occurrences of each operation on the
// tape.
func (c *Circuit) GateCounts() map[Op]int {
	counts := make(map[Op]int, int(nbOps))
	for _, g := range c.Gates {
		counts[g.Op]++
	}
	return counts
}

// Depth returns the length of the longest chain of gates sharing a wire;
// the number of time steps needed if gates on disjoint wires are applied in
// parallel. The result is cached, so the tape must not be mutated after the
// first call.
func (c *Circuit) Depth() int {
	if c.depth == 0 && len(c.Gates) > 0 {
		levels := make([]int, c.NbQubits)
		var buf [3]uint32
		for _, g := range c.Gates {
			qs := g.Qubits(buf[:0])
			l := 0
			for _, q := range qs {
				if levels[q] > l {
					l = levels[q]
				}
			}
			l++
			for _, q := range qs {
				levels[q] = l
			}
			if l > c.depth {
				c.depth = l
			}
		}
	}
	return c.depth
}

// Footprint is the numeric resource summary external cost models consume.
type Footprint struct {
	NbQubits    int
	NbGates     int
	NbAnds      int
	MaxAncillas int
	Depth       int
}

// Footprint returns the circuit's resource summary.
func (c *Circuit) Footprint() Footprint {
	return Footprint{
		NbQubits:    c.NbQubits,
		NbGates:     c.NbGates(),
		NbAnds:      c.NbAnds(),
		MaxAncillas: c.MaxAncillas,
		Depth:       c.Depth(),
	}
}
