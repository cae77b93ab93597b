package adder

import (
	"github.com/consensys/qnark/frontend"
	"github.com/consensys/qnark/internal/bitutil"
)

// computeCarries rewrites gs in place from generate bits into carries.
//
// On entry gs[i] holds the generate bit of position i+1 of the full adder
// (g_i) and ps[j] the propagate bit p_{j+1}; len(ps) == len(gs)−1, position
// 0's propagate bit is not needed. On exit gs[i] holds the carry into
// position i+1. The rewrite runs the three round families of the lookahead
// network against a pyramid of generalized propagate bits held in workspace:
// the pyramid is computed as a Within prelude, so it is uncomputed and the
// workspace handed back clean however the rounds are laid out.
func computeCarries(api frontend.API, ps, gs []frontend.Qubit) {
	n := len(gs)
	if n < 2 {
		// a single generate bit already is the carry
		return
	}

	ws := api.Ancillas(workspaceSize(n))
	pws := append([][]frontend.Qubit{ps}, partition(ws, n)...)

	api.Within(func() {
		pRounds(api, pws)
	}, func() {
		gRounds(api, pws, gs)
		cRounds(api, pws, gs)
	})

	api.Release(ws)
}

// pRounds fills the workspace pyramid with generalized propagate bits.
//
// Level t slot m tells whether a carry entering the 2^t wide block
// [2^t·(m+1), 2^t·(m+2)) leaves it again: the AND of the two half blocks one
// level down. Level 0 is the propagate register itself, shifted down one
// position, which is what keeps the whole pyramid at n − OnesCount(n) −
// ⌊log2(n)⌋ slots.
func pRounds(api frontend.API, pws [][]frontend.Qubit) {
	for t := 1; t < len(pws); t++ {
		prev, cur := pws[t-1], pws[t]
		for m := 0; m < len(cur); m++ {
			api.And(prev[2*m+1], prev[2*m+2], cur[m])
		}
	}
}

// gRounds folds generate bits pairwise up the tree. After round t, position
// 2^t·(m+1)−1 of gs holds the generalized generate bit of its 2^t wide
// block: whether the block produces a carry out of its top boundary.
func gRounds(api frontend.API, pws [][]frontend.Qubit, gs []frontend.Qubit) {
	n := len(gs)
	for t := 1; t <= len(pws); t++ {
		stride := 1 << t
		half := stride >> 1
		for m := 0; m*stride+stride-1 < n; m++ {
			api.CCX(gs[m*stride+half-1], pws[t-1][2*m], gs[m*stride+stride-1])
		}
	}
}

// cRounds walks back down the tree, turning generalized generate bits into
// true carries. Round t extends the carry at block boundary 2^t·m across the
// following half block; descending t fills in ever finer boundaries until
// every position of gs holds its carry.
func cRounds(api frontend.API, pws [][]frontend.Qubit, gs []frontend.Qubit) {
	n := len(gs)
	for t := bitutil.Log2Floor(uint(2 * n / 3)); t >= 1; t-- {
		stride := 1 << t
		half := stride >> 1
		for m := 1; m*stride+half-1 < n; m++ {
			api.CCX(gs[m*stride-1], pws[t-1][2*m-1], gs[m*stride+half-1])
		}
	}
}
