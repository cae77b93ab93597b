package adder

import (
	"fmt"

	"github.com/consensys/qnark/frontend"
	"github.com/consensys/qnark/internal/bitutil"
)

// workspaceSize returns the number of workspace qubits the carry network of
// width n needs, one per pyramid slot: n − OnesCount(n) − ⌊log2(n)⌋. The
// count is exact, the network neither reuses a slot nor leaves one idle.
func workspaceSize(n int) int {
	if n < 2 {
		return 0
	}
	size := n - bitutil.OnesCount(uint(n)) - bitutil.Log2Floor(uint(n))
	if size < 0 {
		panic(fmt.Sprintf("workspace size %d for carry network width %d", size, n))
	}
	return size
}

// partition slices ws into the pyramid levels of the carry network: level t
// holds ⌊n/2^t⌋−1 generalized propagate bits, for t = 1..⌊log2(n)⌋−1. It
// panics unless ws holds exactly the slots the levels need; a mismatch means
// the sizing arithmetic and the level arithmetic disagree.
func partition(ws []frontend.Qubit, n int) [][]frontend.Qubit {
	rounds := bitutil.Log2Floor(uint(n))
	levels := make([][]frontend.Qubit, 0, rounds-1)
	for t := 1; t < rounds; t++ {
		width := n>>t - 1
		if width > len(ws) {
			panic(fmt.Sprintf("workspace partition: level %d needs %d slots, %d left", t, width, len(ws)))
		}
		levels = append(levels, ws[:width])
		ws = ws[width:]
	}
	if len(ws) != 0 {
		panic(fmt.Sprintf("workspace partition: %d slots left over", len(ws)))
	}
	return levels
}
