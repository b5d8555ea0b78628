package abi

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// WordSize is the width in bytes of one ABI word.
const WordSize = 32

// Word is a single 32-byte big-endian slot of an encoded payload.
type Word [WordSize]byte

// BytesToWord right-aligns b in a word, keeping the last 32 bytes if b is
// longer.
func BytesToWord(b []byte) Word {
	var w Word
	if len(b) > WordSize {
		b = b[len(b)-WordSize:]
	}
	copy(w[WordSize-len(b):], b)
	return w
}

// Bytes returns the word as a byte slice.
func (w Word) Bytes() []byte { return w[:] }

// Hex returns the 0x-prefixed hex form of the word.
func (w Word) Hex() string { return hexutil.Encode(w[:]) }

// String implements fmt.Stringer.
func (w Word) String() string { return w.Hex() }

// uintWord encodes v zero-padded into a word.
func uintWord(v uint64) Word {
	var w Word
	binary.BigEndian.PutUint64(w[WordSize-8:], v)
	return w
}

// wordAt returns the word starting at byte position pos of buf.
func wordAt(buf []byte, pos int) (*Word, error) {
	if pos < 0 || pos > len(buf)-WordSize {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d",
			ErrUnexpectedEOF, WordSize, pos, len(buf))
	}
	return (*Word)(buf[pos : pos+WordSize]), nil
}

// size interprets the word as an unsigned count or offset. It reports false
// if the value exceeds limit.
func (w *Word) size(limit int) (int, bool) {
	if !allBytes(w[:WordSize-8], 0) {
		return 0, false
	}
	v := binary.BigEndian.Uint64(w[WordSize-8:])
	if v > math.MaxInt32 || int(v) > limit {
		return 0, false
	}
	return int(v), true
}

// allBytes reports whether every byte of b equals c.
func allBytes(b []byte, c byte) bool {
	for _, x := range b {
		if x != c {
			return false
		}
	}
	return true
}

// padded rounds n up to the next word boundary.
func padded(n int) int {
	return (n + WordSize - 1) / WordSize * WordSize
}

// encodeDynamicBytes lays out b as a length word followed by the payload
// right-padded to a word boundary.
func encodeDynamicBytes(b []byte) []byte {
	length := uintWord(uint64(len(b)))
	out := make([]byte, 0, WordSize+padded(len(b)))
	out = append(out, length[:]...)
	return append(out, common.RightPadBytes(b, padded(len(b)))...)
}

// decodeDynamicBytes reads a length-prefixed payload whose length word starts
// at pos. The returned slice is a copy.
func decodeDynamicBytes(buf []byte, pos int) ([]byte, error) {
	w, err := wordAt(buf, pos)
	if err != nil {
		return nil, err
	}
	start := pos + WordSize
	n, ok := w.size(len(buf) - start)
	if !ok || padded(n) > len(buf)-start {
		return nil, fmt.Errorf("%w: payload of length %s at offset %d exceeds data length %d",
			ErrUnexpectedEOF, w.Hex(), start, len(buf))
	}
	out := make([]byte, n)
	copy(out, buf[start:start+n])
	return out, nil
}
