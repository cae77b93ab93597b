package test

import (
	"fmt"

	"github.com/consensys/qnark/circuit"
	"github.com/consensys/qnark/frontend"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"golang.org/x/sync/errgroup"
)

// Adder is the signature shared by the adder builders under test.
type Adder func(api frontend.API, xs, ys, zs []frontend.Qubit) error

// AdderCircuit synthesizes one adder invocation: operand registers x and y of
// Width bits and a sum register of SumWidth bits, handed to Build.
type AdderCircuit struct {
	Width    int
	SumWidth int
	Build    Adder
}

func (c *AdderCircuit) Define(api frontend.API) error {
	x := api.Register(c.Width)
	y := api.Register(c.Width)
	z := api.Register(c.SumWidth)
	return c.Build(api, x, y, z)
}

// CompileAdder compiles one invocation of build over width bit operands with
// a sumWidth bit sum register.
func (assert *Assert) CompileAdder(build Adder, width, sumWidth int) *circuit.Circuit {
	compiled, err := frontend.Compile(&AdderCircuit{Width: width, SumWidth: sumWidth, Build: build})
	assert.NoError(err)
	return compiled
}

// Add applies the compiled adder to concrete operands and returns the value
// of the sum register. It fails the test if the simulation rejects the tape
// or if either operand register comes out modified.
func (assert *Assert) Add(c *circuit.Circuit, x, y uint64) uint64 {
	in := c.NewState()
	circuit.PackUint64(in, c.Registers[0], x)
	circuit.PackUint64(in, c.Registers[1], y)
	out, err := c.Evaluate(in)
	assert.NoError(err)
	assert.Equal(x, circuit.UnpackUint64(out, c.Registers[0]), "x register modified")
	assert.Equal(y, circuit.UnpackUint64(out, c.Registers[1]), "y register modified")
	return circuit.UnpackUint64(out, c.Registers[2])
}

// ExhaustiveAdd simulates every operand pair of the given width and checks
// the sum register against native addition truncated to its width. The
// operand space is partitioned across goroutines.
func (assert *Assert) ExhaustiveAdd(c *circuit.Circuit, width int) {
	var mask uint64
	if w := uint(c.Registers[2].Width); w >= 64 {
		mask = ^uint64(0)
	} else {
		mask = uint64(1)<<w - 1
	}

	var g errgroup.Group
	for x := uint64(0); x < 1<<uint(width); x++ {
		x := x
		g.Go(func() error {
			for y := uint64(0); y < 1<<uint(width); y++ {
				in := c.NewState()
				circuit.PackUint64(in, c.Registers[0], x)
				circuit.PackUint64(in, c.Registers[1], y)
				out, err := c.Evaluate(in)
				if err != nil {
					return fmt.Errorf("%d+%d: %w", x, y, err)
				}
				if got, want := circuit.UnpackUint64(out, c.Registers[2]), (x+y)&mask; got != want {
					return fmt.Errorf("%d+%d: sum register reads %d, want %d", x, y, got, want)
				}
				if circuit.UnpackUint64(out, c.Registers[0]) != x || circuit.UnpackUint64(out, c.Registers[1]) != y {
					return fmt.Errorf("%d+%d: operand registers modified", x, y)
				}
			}
			return nil
		})
	}
	assert.NoError(g.Wait())
}

// CompileDeterministic compiles the definition twice and fails unless both
// artifacts are structurally identical. It returns the compiled circuit.
func (assert *Assert) CompileDeterministic(c frontend.Circuit) *circuit.Circuit {
	first, err := frontend.Compile(c)
	assert.NoError(err)
	second, err := frontend.Compile(c)
	assert.NoError(err)
	opts := []cmp.Option{cmpopts.IgnoreUnexported(circuit.Circuit{}), cmpopts.EquateEmpty()}
	if diff := cmp.Diff(first, second, opts...); diff != "" {
		assert.FailNow(ErrCompilationNotDeterministic.Error(), diff)
	}
	return first
}
