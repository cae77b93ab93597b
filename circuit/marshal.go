package circuit

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"

	"github.com/consensys/qnark/internal/ioutils"
	"github.com/fxamacker/cbor/v2"
	"golang.org/x/sync/errgroup"
)

// ToBytes serializes the circuit to a byte slice.
//
// The gate tape dominates the payload, so it is written as two
// intcomp-compressed uint32 sections (opcodes, then operand triples)
// prepared in parallel, followed by a CBOR body carrying the remaining
// fields.
func (c *Circuit) ToBytes() ([]byte, error) {
	var ops, args []byte
	var g errgroup.Group
	g.Go(func() error {
		var err error
		ops, err = c.opsToBytes()
		return err
	})
	g.Go(func() error {
		var err error
		args, err = c.argsToBytes()
		return err
	})
	body, err := c.toBytes()
	if err != nil {
		return nil, err
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	h := header{
		opsLen:  uint64(len(ops)),
		argsLen: uint64(len(args)),
		bodyLen: uint64(len(body)),
	}

	buf := h.toBytes()
	buf = append(buf, ops...)
	buf = append(buf, args...)
	buf = append(buf, body...)

	return buf, nil
}

// FromBytes deserializes the circuit from a byte slice and returns the
// number of bytes read.
func (c *Circuit) FromBytes(data []byte) (int, error) {
	if len(data) < headerLen {
		return 0, errors.New("invalid data length")
	}

	h := new(header)
	h.fromBytes(data)

	if len(data) < headerLen+int(h.opsLen)+int(h.argsLen)+int(h.bodyLen) {
		return 0, errors.New("invalid data length")
	}

	var opcodes, operands []uint32
	var g errgroup.Group
	g.Go(func() error {
		var err error
		_, _, opcodes, err = ioutils.ReadAndDecompressUints32(data[headerLen:headerLen+int(h.opsLen)], nil)
		return err
	})
	g.Go(func() error {
		var err error
		_, _, operands, err = ioutils.ReadAndDecompressUints32(data[headerLen+int(h.opsLen):headerLen+int(h.opsLen)+int(h.argsLen)], nil)
		return err
	})

	dm, err := cbor.DecOptions{
		MaxArrayElements: 2147483647,
		MaxMapPairs:      2147483647,
	}.DecMode()
	if err != nil {
		return 0, err
	}
	off := headerLen + int(h.opsLen) + int(h.argsLen)
	decoder := dm.NewDecoder(bytes.NewReader(data[off : off+int(h.bodyLen)]))
	if err := decoder.Decode(c); err != nil {
		return 0, err
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}

	if len(operands) != 3*len(opcodes) {
		return 0, errors.New("corrupt gate sections")
	}
	c.Gates = make([]Gate, len(opcodes))
	for i := range c.Gates {
		if opcodes[i] >= uint32(nbOps) {
			return 0, errors.New("corrupt gate sections")
		}
		c.Gates[i] = Gate{
			Op: Op(opcodes[i]),
			A:  operands[3*i],
			B:  operands[3*i+1],
			T:  operands[3*i+2],
		}
	}
	c.depth = 0

	return headerLen + int(h.opsLen) + int(h.argsLen) + int(h.bodyLen), nil
}

// WriteTo implements io.WriterTo.
func (c *Circuit) WriteTo(w io.Writer) (int64, error) {
	data, err := c.ToBytes()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// ReadFrom implements io.ReaderFrom; the reader is drained.
func (c *Circuit) ReadFrom(r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return int64(len(data)), err
	}
	n, err := c.FromBytes(data)
	return int64(n), err
}

func (c *Circuit) opsToBytes() ([]byte, error) {
	s := make([]uint32, len(c.Gates))
	for i, g := range c.Gates {
		s[i] = uint32(g.Op)
	}
	var buf bytes.Buffer
	buf.Grow(8 + len(s))
	if _, err := ioutils.CompressAndWriteUints32(&buf, s, nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *Circuit) argsToBytes() ([]byte, error) {
	s := make([]uint32, 3*len(c.Gates))
	for i, g := range c.Gates {
		s[3*i] = g.A
		s[3*i+1] = g.B
		s[3*i+2] = g.T
	}
	var buf bytes.Buffer
	buf.Grow(8 + 4*len(s))
	if _, err := ioutils.CompressAndWriteUints32(&buf, s, nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// toBytes CBOR-encodes everything the binary sections don't carry.
func (c *Circuit) toBytes() ([]byte, error) {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return nil, err
	}
	buf := new(bytes.Buffer)
	if err := enc.NewEncoder(buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

const headerLen = 3 * 8

type header struct {
	// length in bytes of each section
	opsLen  uint64
	argsLen uint64
	bodyLen uint64
}

func (h *header) toBytes() []byte {
	buf := make([]byte, 0, headerLen+int(h.opsLen)+int(h.argsLen)+int(h.bodyLen))
	buf = binary.LittleEndian.AppendUint64(buf, h.opsLen)
	buf = binary.LittleEndian.AppendUint64(buf, h.argsLen)
	buf = binary.LittleEndian.AppendUint64(buf, h.bodyLen)
	return buf
}

func (h *header) fromBytes(buf []byte) {
	h.opsLen = binary.LittleEndian.Uint64(buf[:8])
	h.argsLen = binary.LittleEndian.Uint64(buf[8:16])
	h.bodyLen = binary.LittleEndian.Uint64(buf[16:24])
}
