package circuit

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGateStreamRoundTrip(t *testing.T) {
	assert := require.New(t)

	c := randomCircuit(13, 200)

	var buf bytes.Buffer
	assert.NoError(c.WriteGates(&buf))
	gates, nbQubits, err := ReadGates(&buf)
	assert.NoError(err)
	assert.Equal(c.NbQubits, nbQubits)
	assert.Equal(c.Gates, gates)
}

func TestGateStreamCompressed(t *testing.T) {
	assert := require.New(t)

	c := randomCircuit(29, 500)

	var plain, compressed bytes.Buffer
	assert.NoError(c.WriteGates(&plain))
	assert.NoError(c.WriteGates(&compressed, WithCompression()))

	gates, nbQubits, err := ReadGates(&compressed)
	assert.NoError(err)
	assert.Equal(c.NbQubits, nbQubits)
	assert.Equal(c.Gates, gates)
}

func TestGateStreamEmpty(t *testing.T) {
	assert := require.New(t)

	c := &Circuit{}
	var buf bytes.Buffer
	assert.NoError(c.WriteGates(&buf))
	gates, nbQubits, err := ReadGates(&buf)
	assert.NoError(err)
	assert.Equal(0, nbQubits)
	assert.Empty(gates)
}

func TestGateStreamCorrupt(t *testing.T) {
	assert := require.New(t)

	c := randomCircuit(5, 30)
	var buf bytes.Buffer
	assert.NoError(c.WriteGates(&buf))
	data := buf.Bytes()

	// unsupported version
	bad := append([]byte{}, data...)
	bad[0] = 0x55
	_, _, err := ReadGates(bytes.NewReader(bad))
	assert.Error(err)

	// truncated payload
	_, _, err = ReadGates(bytes.NewReader(data[:len(data)-2]))
	assert.Error(err)

	// empty input
	_, _, err = ReadGates(bytes.NewReader(nil))
	assert.Error(err)
}

func TestWireBits(t *testing.T) {
	assert := require.New(t)

	assert.Equal(uint8(1), wireBits(0))
	assert.Equal(uint8(1), wireBits(1))
	assert.Equal(uint8(1), wireBits(2))
	assert.Equal(uint8(2), wireBits(3))
	assert.Equal(uint8(2), wireBits(4))
	assert.Equal(uint8(3), wireBits(5))
	assert.Equal(uint8(10), wireBits(1024))
	assert.Equal(uint8(11), wireBits(1025))
}
