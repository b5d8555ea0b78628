package abi

import (
	"encoding/binary"
	"fmt"
	"reflect"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Bytes is a variable-length byte sequence encoded as the dynamic "bytes"
// type. A plain []byte is an array of uint8 and encodes one word per byte.
type Bytes []byte

// Kind is the type-erased view of an ABI type. It is implemented only by the
// types of this package.
type Kind interface {
	// String returns the canonical type name, e.g. "uint32" or "bytes[]".
	String() string

	// IsDynamic reports whether values are stored in the tail region.
	IsDynamic() bool

	encodeValue(v any) ([]byte, error)
	decodeValue(buf []byte, pos int) (any, error)
}

// Type is the encode/decode capability of one ABI type whose Go values have
// type T.
//
// Static types encode to exactly one word and decode from the word at the
// given position. Dynamic types encode to their tail content (length word
// followed by the payload) and decode from the position of that length word.
type Type[T any] struct {
	name    string
	dynamic bool
	elem    Kind

	enc    func(v T) ([]byte, error)
	dec    func(buf []byte, pos int) (T, error)
	coerce func(v any) (T, bool)
}

// String returns the canonical name of the type.
func (t Type[T]) String() string { return t.name }

// IsDynamic reports whether the type is stored in the tail region.
func (t Type[T]) IsDynamic() bool { return t.dynamic }

// Encode returns the standalone encoding of v: one word for static types or
// the length-prefixed tail content for dynamic types.
func (t Type[T]) Encode(v T) ([]byte, error) { return t.enc(v) }

func (t Type[T]) encodeValue(v any) ([]byte, error) {
	tv, ok := v.(T)
	if !ok && t.coerce != nil {
		tv, ok = t.coerce(v)
	}
	if !ok {
		return nil, fmt.Errorf("%w: cannot use %T as %s", ErrTypeMismatch, v, t.name)
	}
	return t.enc(tv)
}

func (t Type[T]) decodeValue(buf []byte, pos int) (any, error) {
	return t.dec(buf, pos)
}

// Elem returns the element type of an array type, or nil.
func Elem(k Kind) Kind {
	switch k := k.(type) {
	case sliceKind:
		return k.elem
	case interface{ elemKind() Kind }:
		return k.elemKind()
	}
	return nil
}

func (t Type[T]) elemKind() Kind { return t.elem }

var (
	// Uint8 is the ABI uint8 type.
	Uint8 = unsigned[uint8]("uint8", 1)

	// Uint16 encodes 16-bit values under the canonical name "uint32". The
	// widened name is shared with Uint32, so signatures that differ only in
	// uint16 versus uint32 arguments have identical selectors. Decoding still
	// enforces the 16-bit width.
	Uint16 = unsigned[uint16]("uint32", 2)

	// Uint32 is the ABI uint32 type.
	Uint32 = unsigned[uint32]("uint32", 4)

	// Uint64 is the ABI uint64 type.
	Uint64 = unsigned[uint64]("uint64", 8)

	// Int32 is the ABI int32 type, sign-extended to a full word.
	Int32 = signed[int32]("int32", 4)

	// Int64 is the ABI int64 type, sign-extended to a full word.
	Int64 = signed[int64]("int64", 8)

	// Uint256 is the ABI uint256 type. A nil value encodes as zero.
	Uint256 = Type[*uint256.Int]{
		name: "uint256",
		enc: func(v *uint256.Int) ([]byte, error) {
			var w Word
			if v != nil {
				w = v.Bytes32()
			}
			return w[:], nil
		},
		dec: func(buf []byte, pos int) (*uint256.Int, error) {
			w, err := wordAt(buf, pos)
			if err != nil {
				return nil, err
			}
			return new(uint256.Int).SetBytes32(w[:]), nil
		},
		coerce: func(v any) (*uint256.Int, bool) {
			if u, ok := v.(uint256.Int); ok {
				return &u, true
			}
			return nil, false
		},
	}

	// Hash is a 256-bit hash carried as a raw word. It shares the canonical
	// name "uint256" and its layout.
	Hash = Type[common.Hash]{
		name: "uint256",
		enc: func(v common.Hash) ([]byte, error) {
			return common.CopyBytes(v[:]), nil
		},
		dec: func(buf []byte, pos int) (common.Hash, error) {
			w, err := wordAt(buf, pos)
			if err != nil {
				return common.Hash{}, err
			}
			return common.Hash(*w), nil
		},
	}

	// Address is the ABI address type: 20 bytes right-aligned in a word.
	Address = Type[common.Address]{
		name: "address",
		enc: func(v common.Address) ([]byte, error) {
			return common.LeftPadBytes(v[:], WordSize), nil
		},
		dec: func(buf []byte, pos int) (common.Address, error) {
			w, err := wordAt(buf, pos)
			if err != nil {
				return common.Address{}, err
			}
			if !allBytes(w[:WordSize-common.AddressLength], 0) {
				return common.Address{}, fmt.Errorf("%w: address %s", ErrInvalidPadding, w.Hex())
			}
			return common.BytesToAddress(w[WordSize-common.AddressLength:]), nil
		},
	}

	// Bool is the ABI bool type.
	Bool = Type[bool]{
		name: "bool",
		enc: func(v bool) ([]byte, error) {
			var w Word
			if v {
				w[WordSize-1] = 1
			}
			return w[:], nil
		},
		dec: func(buf []byte, pos int) (bool, error) {
			w, err := wordAt(buf, pos)
			if err != nil {
				return false, err
			}
			if !allBytes(w[:WordSize-1], 0) || w[WordSize-1] > 1 {
				return false, fmt.Errorf("%w: %s", ErrInvalidBool, w.Hex())
			}
			return w[WordSize-1] == 1, nil
		},
	}

	// DynamicBytes is the ABI bytes type.
	DynamicBytes = Type[Bytes]{
		name:    "bytes",
		dynamic: true,
		enc: func(v Bytes) ([]byte, error) {
			return encodeDynamicBytes(v), nil
		},
		dec: func(buf []byte, pos int) (Bytes, error) {
			return decodeDynamicBytes(buf, pos)
		},
		coerce: func(v any) (Bytes, bool) {
			b, ok := v.([]byte)
			return b, ok
		},
	}

	// String is the ABI string type. Content is carried as raw bytes.
	String = Type[string]{
		name:    "string",
		dynamic: true,
		enc: func(v string) ([]byte, error) {
			return encodeDynamicBytes([]byte(v)), nil
		},
		dec: func(buf []byte, pos int) (string, error) {
			b, err := decodeDynamicBytes(buf, pos)
			return string(b), err
		},
	}
)

// unsigned builds a zero-padded integer type occupying the low width bytes
// of a word.
func unsigned[T uint8 | uint16 | uint32 | uint64](name string, width int) Type[T] {
	return Type[T]{
		name: name,
		enc: func(v T) ([]byte, error) {
			w := uintWord(uint64(v))
			return w[:], nil
		},
		dec: func(buf []byte, pos int) (T, error) {
			w, err := wordAt(buf, pos)
			if err != nil {
				return 0, err
			}
			if !allBytes(w[:WordSize-width], 0) {
				return 0, fmt.Errorf("%w: %d-byte unsigned integer %s", ErrInvalidPadding, width, w.Hex())
			}
			return T(binary.BigEndian.Uint64(w[WordSize-8:])), nil
		},
	}
}

// signed builds a two's-complement integer type sign-extended from its low
// width bytes to the full word.
func signed[T int32 | int64](name string, width int) Type[T] {
	return Type[T]{
		name: name,
		enc: func(v T) ([]byte, error) {
			var w Word
			if v < 0 {
				for i := 0; i < WordSize-8; i++ {
					w[i] = 0xff
				}
			}
			binary.BigEndian.PutUint64(w[WordSize-8:], uint64(int64(v)))
			return w[:], nil
		},
		dec: func(buf []byte, pos int) (T, error) {
			w, err := wordAt(buf, pos)
			if err != nil {
				return 0, err
			}
			var pad byte
			if w[WordSize-width]&0x80 != 0 {
				pad = 0xff
			}
			if !allBytes(w[:WordSize-width], pad) {
				return 0, fmt.Errorf("%w: %d-byte signed integer %s", ErrInvalidPadding, width, w.Hex())
			}
			return T(int64(binary.BigEndian.Uint64(w[WordSize-8:]))), nil
		},
	}
}

// FixedBytes returns the bytesN type for 1 <= n <= 32. Values are byte
// slices of exactly n bytes, left-aligned in the word. It panics for any
// other width; use ParseType to validate untrusted input.
func FixedBytes(n int) Type[[]byte] {
	t, err := fixedBytes(n)
	if err != nil {
		panic(err)
	}
	return t
}

func fixedBytes(n int) (Type[[]byte], error) {
	if n < 1 || n > WordSize {
		return Type[[]byte]{}, fmt.Errorf("%w: bytes%d", ErrUnsupportedType, n)
	}
	name := fmt.Sprintf("bytes%d", n)
	return Type[[]byte]{
		name: name,
		enc: func(v []byte) ([]byte, error) {
			if len(v) != n {
				return nil, fmt.Errorf("%w: %d bytes for %s", ErrValueOutOfRange, len(v), name)
			}
			return common.RightPadBytes(v, WordSize), nil
		},
		dec: func(buf []byte, pos int) ([]byte, error) {
			w, err := wordAt(buf, pos)
			if err != nil {
				return nil, err
			}
			if !allBytes(w[n:], 0) {
				return nil, fmt.Errorf("%w: %s %s", ErrInvalidPadding, name, w.Hex())
			}
			return common.CopyBytes(w[:n]), nil
		},
		coerce: byteArray,
	}, nil
}

// byteArray accepts Go byte arrays such as [4]byte where a byte slice is
// expected.
func byteArray(v any) ([]byte, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Array || rv.Type().Elem().Kind() != reflect.Uint8 {
		return nil, false
	}
	out := make([]byte, rv.Len())
	reflect.Copy(reflect.ValueOf(out), rv)
	return out, true
}
