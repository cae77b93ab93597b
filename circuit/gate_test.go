package circuit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpInverse(t *testing.T) {
	assert := require.New(t)

	assert.Equal(X, X.Inverse())
	assert.Equal(CX, CX.Inverse())
	assert.Equal(CCX, CCX.Inverse())
	assert.Equal(AndInv, And.Inverse())
	assert.Equal(And, AndInv.Inverse())

	for op := X; op < nbOps; op++ {
		assert.Equal(op, op.Inverse().Inverse(), "inverse must be an involution")
	}
}

func TestOpNbControls(t *testing.T) {
	assert := require.New(t)

	assert.Equal(0, X.NbControls())
	assert.Equal(1, CX.NbControls())
	assert.Equal(2, CCX.NbControls())
	assert.Equal(2, And.NbControls())
	assert.Equal(2, AndInv.NbControls())
}

func TestGateString(t *testing.T) {
	assert := require.New(t)

	assert.Equal("x 7", Gate{Op: X, T: 7}.String())
	assert.Equal("cx 1 2", Gate{Op: CX, A: 1, T: 2}.String())
	assert.Equal("ccx 3 4 5", Gate{Op: CCX, A: 3, B: 4, T: 5}.String())
	assert.Equal("and 0 1 2", Gate{Op: And, A: 0, B: 1, T: 2}.String())
	assert.Equal("andinv 0 1 2", Gate{Op: AndInv, A: 0, B: 1, T: 2}.String())
}

func TestGateQubits(t *testing.T) {
	assert := require.New(t)

	var buf [3]uint32
	assert.Equal([]uint32{7}, Gate{Op: X, T: 7}.Qubits(buf[:0]))
	assert.Equal([]uint32{1, 2}, Gate{Op: CX, A: 1, T: 2}.Qubits(buf[:0]))
	assert.Equal([]uint32{3, 4, 5}, Gate{Op: And, A: 3, B: 4, T: 5}.Qubits(buf[:0]))
}

func TestGateInverse(t *testing.T) {
	assert := require.New(t)

	g := Gate{Op: And, A: 1, B: 2, T: 3}
	inv := g.Inverse()
	assert.Equal(Gate{Op: AndInv, A: 1, B: 2, T: 3}, inv)
	assert.Equal(g, inv.Inverse())

	cx := Gate{Op: CX, A: 0, T: 1}
	assert.Equal(cx, cx.Inverse())
}
