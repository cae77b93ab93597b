package stats

import (
	"sync"

	"github.com/consensys/qnark/frontend"
	"github.com/consensys/qnark/std/math/adder"
)

var (
	initOnce sync.Once
	snippets = make(map[string]Circuit)
)

func GetSnippets() map[string]Circuit {
	initOnce.Do(initSnippets)
	return snippets
}

type snippet func(api frontend.API, xs, ys, zs []frontend.Qubit) error

// registerSnippet adds a synthesis fragment to the statistics tests. The
// fragment gets two zeroed operand registers and a zeroed sum register, one
// bit wider unless truncated is set. With no explicit widths it is compiled
// at every width in Widths.
func registerSnippet(name string, truncated bool, s snippet, widths ...int) {
	if _, ok := snippets[name]; ok {
		panic("circuit " + name + " already registered")
	}
	if len(widths) == 0 {
		widths = Widths[:]
	}
	snippets[name] = Circuit{
		Make: func(width int) frontend.Circuit {
			return &snippetCircuit{s: s, width: width, truncated: truncated}
		},
		Widths: widths,
	}
}

func initSnippets() {
	// add std snippets
	registerSnippet("math/adder.FullAdder", false, func(api frontend.API, xs, ys, zs []frontend.Qubit) error {
		adder.FullAdder(api, zs[0], xs[0], ys[0], zs[1])
		return nil
	}, 1)

	registerSnippet("math/adder.Ripple", false, adder.Ripple)
	registerSnippet("math/adder.Ripple/truncated", true, adder.Ripple)

	registerSnippet("math/adder.Lookahead", false, adder.Lookahead)
	registerSnippet("math/adder.Lookahead/truncated", true, adder.Lookahead)
}

type snippetCircuit struct {
	s         snippet
	width     int
	truncated bool
}

func (d *snippetCircuit) Define(api frontend.API) error {
	sumWidth := d.width + 1
	if d.truncated {
		sumWidth = d.width
	}
	xs := api.Register(d.width)
	ys := api.Register(d.width)
	zs := api.Register(sumWidth)
	return d.s(api, xs, ys, zs)
}
