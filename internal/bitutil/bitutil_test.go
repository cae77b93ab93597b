package bitutil

import (
	"math/bits"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func TestOnesCount(t *testing.T) {
	assert := require.New(t)

	for _, v := range []uint64{0, 1, 2, 3, 5, 8, 16, 17, 32, 255, 256, 1024, 1<<32 - 1, 1 << 63, ^uint64(0)} {
		assert.Equal(bits.OnesCount64(v), OnesCount(v), "v=%d", v)
	}

	// exhaustive on small values; a bug here is a workspace sizing bug, not a
	// performance one
	for v := uint(0); v < 1<<16; v++ {
		assert.Equal(bits.OnesCount(v), OnesCount(v), "v=%d", v)
	}
}

func TestLog2Floor(t *testing.T) {
	assert := require.New(t)

	assert.Equal(-1, Log2Floor(uint(0)))
	for v := uint64(1); v < 1<<12; v++ {
		assert.Equal(bits.Len64(v)-1, Log2Floor(v), "v=%d", v)
	}
	assert.Equal(63, Log2Floor(^uint64(0)))
	assert.Equal(63, Log2Floor(uint64(1)<<63))
	assert.Equal(62, Log2Floor(uint64(1)<<63-1))
}

func TestBitUtilProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 1000

	properties := gopter.NewProperties(parameters)

	properties.Property("OnesCount matches math/bits", prop.ForAll(
		func(v uint64) bool {
			return OnesCount(v) == bits.OnesCount64(v)
		},
		gen.UInt64(),
	))

	properties.Property("Log2Floor matches math/bits", prop.ForAll(
		func(v uint64) bool {
			if v == 0 {
				return Log2Floor(v) == -1
			}
			return Log2Floor(v) == bits.Len64(v)-1
		},
		gen.UInt64(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
