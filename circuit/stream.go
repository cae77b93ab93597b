package circuit

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/consensys/compress/lzss"
	"github.com/consensys/qnark/internal/bitutil"
	"github.com/icza/bitio"
)

// Gate stream framing: one version byte (high bit set when the payload is
// lzss-compressed), the wire count and gate count as uvarints, then the
// bit-packed payload.
const (
	streamVersion  = 1
	flagCompressed = 1 << 7

	opBits = 3
)

type streamConfig struct {
	compress bool
}

// StreamOption sets an option on the gate stream writer.
type StreamOption func(*streamConfig)

// WithCompression compresses the packed payload with lzss. Readers detect
// it from the stream header.
func WithCompression() StreamOption {
	return func(cfg *streamConfig) {
		cfg.compress = true
	}
}

// WriteGates writes a compact, language agnostic encoding of the gate tape,
// meant for handing circuits to external estimators: each gate is a 3-bit
// opcode followed by one wire index per operand, packed on just enough bits
// for the circuit's wire count.
func (c *Circuit) WriteGates(w io.Writer, opts ...StreamOption) error {
	var cfg streamConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	qw := wireBits(c.NbQubits)
	var payload bytes.Buffer
	payload.Grow(len(c.Gates) * (opBits + 3*int(qw)) / 8)
	bw := bitio.NewWriter(&payload)
	var buf [3]uint32
	for _, g := range c.Gates {
		bw.TryWriteBits(uint64(g.Op), opBits)
		for _, q := range g.Qubits(buf[:0]) {
			bw.TryWriteBits(uint64(q), qw)
		}
	}
	if bw.TryError != nil {
		return bw.TryError
	}
	if err := bw.Close(); err != nil {
		return err
	}

	head := byte(streamVersion)
	data := payload.Bytes()
	if cfg.compress {
		compressor, err := lzss.NewCompressor(nil, lzss.BestCompression)
		if err != nil {
			return err
		}
		if data, err = compressor.Compress(data); err != nil {
			return err
		}
		head |= flagCompressed
	}

	hdr := []byte{head}
	hdr = binary.AppendUvarint(hdr, uint64(c.NbQubits))
	hdr = binary.AppendUvarint(hdr, uint64(len(c.Gates)))
	if _, err := w.Write(hdr); err != nil {
		return err
	}
	_, err := w.Write(data)
	return err
}

// ReadGates decodes a stream produced by WriteGates and returns the gate
// tape and the wire count.
func ReadGates(r io.Reader) ([]Gate, int, error) {
	br := bufio.NewReader(r)
	head, err := br.ReadByte()
	if err != nil {
		return nil, 0, err
	}
	if head&^byte(flagCompressed) != streamVersion {
		return nil, 0, fmt.Errorf("unsupported gate stream version %d", head&^byte(flagCompressed))
	}
	nbQubits, err := binary.ReadUvarint(br)
	if err != nil {
		return nil, 0, err
	}
	nbGates, err := binary.ReadUvarint(br)
	if err != nil {
		return nil, 0, err
	}
	payload, err := io.ReadAll(br)
	if err != nil {
		return nil, 0, err
	}
	if head&flagCompressed != 0 {
		if payload, err = lzss.Decompress(payload, nil); err != nil {
			return nil, 0, err
		}
	}

	qw := wireBits(int(nbQubits))
	if nbGates > uint64(len(payload))*8/uint64(opBits+int(qw)) {
		return nil, 0, errors.New("corrupt gate stream: gate count exceeds payload")
	}

	rd := bitio.NewReader(bytes.NewReader(payload))
	gates := make([]Gate, nbGates)
	for i := range gates {
		op := Op(rd.TryReadBits(opBits))
		if rd.TryError != nil {
			return nil, 0, rd.TryError
		}
		if op >= nbOps {
			return nil, 0, fmt.Errorf("gate %d: invalid opcode %d", i, uint8(op))
		}
		g := Gate{Op: op}
		switch op.NbControls() {
		case 0:
			g.T = uint32(rd.TryReadBits(qw))
		case 1:
			g.A = uint32(rd.TryReadBits(qw))
			g.T = uint32(rd.TryReadBits(qw))
		default:
			g.A = uint32(rd.TryReadBits(qw))
			g.B = uint32(rd.TryReadBits(qw))
			g.T = uint32(rd.TryReadBits(qw))
		}
		gates[i] = g
	}
	if rd.TryError != nil {
		return nil, 0, rd.TryError
	}
	return gates, int(nbQubits), nil
}

// wireBits returns the number of bits needed to address every wire.
func wireBits(nbQubits int) uint8 {
	if nbQubits <= 1 {
		return 1
	}
	return uint8(bitutil.Log2Floor(uint(nbQubits-1)) + 1)
}
