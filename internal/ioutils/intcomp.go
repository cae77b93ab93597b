// Package ioutils gathers binary helpers shared by the circuit
// serialization code.
package ioutils

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/ronanh/intcomp"
)

// CompressAndWriteUints32 compresses input with intcomp and writes it to w,
// prefixed by the compressed word count. It returns the scratch buffer
// (possibly grown) for reuse.
func CompressAndWriteUints32(w io.Writer, input []uint32, scratch []uint32) ([]uint32, error) {
	scratch = scratch[:0]
	scratch = intcomp.CompressUint32(input, scratch)
	if err := binary.Write(w, binary.LittleEndian, uint64(len(scratch))); err != nil {
		return scratch, err
	}
	if err := binary.Write(w, binary.LittleEndian, scratch); err != nil {
		return scratch, err
	}
	return scratch, nil
}

// ReadAndDecompressUints32 decodes one compressed slice from in. It returns
// the scratch buffer (possibly grown) for reuse, the number of bytes
// consumed and the decoded values.
func ReadAndDecompressUints32(in []byte, scratch []uint32) ([]uint32, int, []uint32, error) {
	if len(in) < 8 {
		return scratch, 0, nil, errors.New("missing length prefix")
	}
	length := int(binary.LittleEndian.Uint64(in[:8]))
	if length < 0 || len(in) < 8+4*length {
		return scratch, 0, nil, errors.New("truncated compressed section")
	}
	if cap(scratch) < length {
		scratch = make([]uint32, length)
	}
	scratch = scratch[:length]
	for i := range scratch {
		scratch[i] = binary.LittleEndian.Uint32(in[8+4*i:])
	}
	return scratch, 8 + 4*length, intcomp.UncompressUint32(scratch, nil), nil
}
