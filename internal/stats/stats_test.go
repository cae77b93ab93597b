package stats

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/consensys/qnark/test"
)

func TestCircuitStatistics(t *testing.T) {
	const refPath = "latest.stats"
	assert := test.NewAssert(t)

	// load reference
	reference := NewGlobalStats()
	assert.NoError(reference.Load(refPath))

	snippets := GetSnippets()
	// for each snippet, on each width, compare with reference stats
	for name, c := range snippets {
		// check that we have it.
		ref, ok := reference.Stats[name]
		if !ok {
			assert.Log("warning: no stats for circuit", name)
			continue
		}
		for _, width := range c.Widths {
			circuit := c.Make(width)
			assert.Run(func(assert *test.Assert) {
				rs := ref[WidthIdx(width)]

				s, err := NewSnippetStats(circuit)
				assert.NoError(err, "building stats for circuit "+name)

				if s != rs {
					assert.Failf("unexpected stats count", "expected %s (reference), got %s. %s - width %d", rs, s, name, width)
				}
			}, name, strconv.Itoa(width))
		}
	}
}

func TestStatsWriteLoadRoundTrip(t *testing.T) {
	assert := test.NewAssert(t)

	reference := NewGlobalStats()
	assert.NoError(reference.Load("latest.stats"))
	assert.NotEmpty(reference.Stats)

	var buf bytes.Buffer
	_, err := reference.WriteTo(&buf)
	assert.NoError(err)

	path := filepath.Join(t.TempDir(), "roundtrip.stats")
	assert.NoError(os.WriteFile(path, buf.Bytes(), 0600))

	reloaded := NewGlobalStats()
	assert.NoError(reloaded.Load(path))
	assert.Equal(reference.Stats, reloaded.Stats)
}
