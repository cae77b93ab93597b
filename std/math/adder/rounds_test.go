package adder

import (
	"fmt"
	"testing"

	"github.com/consensys/qnark/frontend"
	"github.com/consensys/qnark/internal/bitutil"
	"github.com/consensys/qnark/test"
)

func TestWorkspaceSize(t *testing.T) {
	assert := test.NewAssert(t)

	expected := map[int]int{2: 0, 3: 0, 4: 1, 5: 1, 8: 4, 16: 11, 17: 11, 32: 26, 1024: 1013}
	for n, want := range expected {
		assert.Equal(want, workspaceSize(n), "n=%d", n)
	}
	assert.Equal(0, workspaceSize(0))
	assert.Equal(0, workspaceSize(1))
}

func TestWorkspacePartition(t *testing.T) {
	assert := test.NewAssert(t)

	for _, n := range []int{2, 3, 4, 5, 8, 16, 17, 32, 1024} {
		assert.Run(func(assert *test.Assert) {
			ws := make([]frontend.Qubit, workspaceSize(n))
			levels := partition(ws, n)
			rounds := bitutil.Log2Floor(uint(n))
			assert.Len(levels, max(rounds-1, 0))
			total := 0
			for i, level := range levels {
				assert.Equal(n>>(i+1)-1, len(level))
				total += len(level)
			}
			assert.Equal(len(ws), total)
		}, fmt.Sprintf("n=%d", n))
	}

	// over- and under-sized workspace must be rejected
	assert.Panics(func() { partition(make([]frontend.Qubit, 3), 8) })
	assert.Panics(func() { partition(make([]frontend.Qubit, 5), 8) })
}

func TestFullAdderRoundTrip(t *testing.T) {
	assert := test.NewAssert(t)

	assert.SelfInverse(func(api frontend.API) error {
		carry := api.Register(1)
		x := api.Register(1)
		y := api.Register(1)
		out := api.Register(1)
		FullAdder(api, carry[0], x[0], y[0], out[0])
		return nil
	}, 0, 1, 2)
}

func TestRoundBuildersRoundTrip(t *testing.T) {
	assert := test.NewAssert(t)

	for _, n := range []int{4, 8, 11} {
		assert.Run(func(assert *test.Assert) {
			assert.SelfInverse(func(api frontend.API) error {
				ps := api.Register(n - 1)
				ws := api.Register(workspaceSize(n))
				pRounds(api, append([][]frontend.Qubit{ps}, partition(ws, n)...))
				return nil
			}, 0)
		}, "pRounds", fmt.Sprintf("n=%d", n))

		assert.Run(func(assert *test.Assert) {
			assert.SelfInverse(func(api frontend.API) error {
				ps := api.Register(n - 1)
				ws := api.Register(workspaceSize(n))
				gs := api.Register(n)
				gRounds(api, append([][]frontend.Qubit{ps}, partition(ws, n)...), gs)
				return nil
			}, 0, 1, 2)
		}, "gRounds", fmt.Sprintf("n=%d", n))

		assert.Run(func(assert *test.Assert) {
			assert.SelfInverse(func(api frontend.API) error {
				ps := api.Register(n - 1)
				ws := api.Register(workspaceSize(n))
				gs := api.Register(n)
				cRounds(api, append([][]frontend.Qubit{ps}, partition(ws, n)...), gs)
				return nil
			}, 0, 1, 2)
		}, "cRounds", fmt.Sprintf("n=%d", n))

		assert.Run(func(assert *test.Assert) {
			assert.SelfInverse(func(api frontend.API) error {
				ps := api.Register(n - 1)
				gs := api.Register(n)
				computeCarries(api, ps, gs)
				return nil
			}, 0, 1)
		}, "computeCarries", fmt.Sprintf("n=%d", n))
	}
}

func TestAdderRoundTrip(t *testing.T) {
	assert := test.NewAssert(t)

	for _, b := range builders {
		for _, n := range []int{5, 9} {
			assert.Run(func(assert *test.Assert) {
				assert.SelfInverse(func(api frontend.API) error {
					xs := api.Register(n)
					ys := api.Register(n)
					zs := api.Register(n + 1)
					return b.build(api, xs, ys, zs)
				}, 0, 1)
			}, b.name, fmt.Sprintf("carry/n=%d", n))

			assert.Run(func(assert *test.Assert) {
				assert.SelfInverse(func(api frontend.API) error {
					xs := api.Register(n)
					ys := api.Register(n)
					zs := api.Register(n)
					return b.build(api, xs, ys, zs)
				}, 0, 1)
			}, b.name, fmt.Sprintf("mod/n=%d", n))
		}
	}
}
