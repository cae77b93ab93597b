/*
Copyright © 2020 ConsenSys

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package qnark

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/consensys/qnark/circuit"
	"github.com/consensys/qnark/std/math/adder"
	"github.com/consensys/qnark/test"
)

// TestIntegrationAPI pushes both adder constructions through the full
// pipeline: synthesis, binary and stream serialization, then simulation of
// the deserialized artifact.
func TestIntegrationAPI(t *testing.T) {
	assert := test.NewAssert(t)

	builders := []struct {
		name  string
		build test.Adder
	}{
		{"ripple", adder.Ripple},
		{"lookahead", adder.Lookahead},
	}

	const width = 10
	for _, b := range builders {
		assert.Run(func(assert *test.Assert) {
			compiled := assert.CompileAdder(b.build, width, width+1)

			// binary round trip
			var buf bytes.Buffer
			_, err := compiled.WriteTo(&buf)
			assert.NoError(err)
			decoded := new(circuit.Circuit)
			_, err = decoded.ReadFrom(&buf)
			assert.NoError(err)
			if diff := cmp.Diff(compiled, decoded, cmpopts.IgnoreUnexported(circuit.Circuit{}), cmpopts.EquateEmpty()); diff != "" {
				assert.FailNow("decoded circuit differs from compiled one", diff)
			}

			// gate stream round trip, raw and compressed
			for _, opts := range [][]circuit.StreamOption{nil, {circuit.WithCompression()}} {
				var stream bytes.Buffer
				assert.NoError(compiled.WriteGates(&stream, opts...))
				gates, nbQubits, err := circuit.ReadGates(&stream)
				assert.NoError(err)
				assert.Equal(compiled.NbQubits, nbQubits)
				assert.Equal(compiled.Gates, gates)
			}

			// the decoded artifact must still add
			assert.Equal(uint64(513+294), assert.Add(decoded, 513, 294))
			assert.Equal(uint64(1023+1023), assert.Add(decoded, 1023, 1023))
		}, b.name)
	}
}
