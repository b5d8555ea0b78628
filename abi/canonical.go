package abi

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

var (
	uint256Type = reflect.TypeOf((*uint256.Int)(nil))
	hashType    = reflect.TypeOf(common.Hash{})
	addressType = reflect.TypeOf(common.Address{})
	bytesType   = reflect.TypeOf(Bytes(nil))
	byteType    = reflect.TypeOf(byte(0))

	// goKinds maps Go value types to their ABI type.
	goKinds = map[reflect.Type]Kind{
		reflect.TypeOf(uint8(0)):  Uint8,
		reflect.TypeOf(uint16(0)): Uint16,
		reflect.TypeOf(uint32(0)): Uint32,
		reflect.TypeOf(uint64(0)): Uint64,
		reflect.TypeOf(int32(0)):  Int32,
		reflect.TypeOf(int64(0)):  Int64,
		reflect.TypeOf(false):     Bool,
		reflect.TypeOf(""):        String,
		uint256Type:               Uint256,
		hashType:                  Hash,
		addressType:               Address,
		bytesType:                 DynamicBytes,
	}

	// namedKinds maps canonical text to the ABI type parsed from it.
	namedKinds = map[string]Kind{
		"uint8":   Uint8,
		"uint16":  Uint16,
		"uint32":  Uint32,
		"uint64":  Uint64,
		"int32":   Int32,
		"int64":   Int64,
		"uint256": Uint256,
		"address": Address,
		"bool":    Bool,
		"bytes":   DynamicBytes,
		"string":  String,
	}
)

// KindOf returns the ABI type of Go values of type t. Supported are uint8,
// uint16, uint32, uint64, int32, int64, bool, string, *uint256.Int,
// common.Hash, common.Address, Bytes, byte arrays [N]byte with 1 <= N <= 32
// and slices of any supported type. Anything else fails with
// ErrUnsupportedType.
func KindOf(t reflect.Type) (Kind, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil", ErrUnsupportedType)
	}
	if k, ok := goKinds[t]; ok {
		return k, nil
	}
	switch t.Kind() {
	case reflect.Array:
		if t.Elem() != byteType {
			return nil, fmt.Errorf("%w: %s (only byte arrays have a fixed size, use slices)", ErrUnsupportedType, t)
		}
		fb, err := fixedBytes(t.Len())
		if err != nil {
			return nil, fmt.Errorf("%w (Go type %s)", err, t)
		}
		return byteArrayKind{Type: fb, goType: t}, nil

	case reflect.Slice:
		elem, err := KindOf(t.Elem())
		if err != nil {
			return nil, err
		}
		return sliceKind{elem: elem, goType: t}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, t)
}

// CanonicalName returns the canonical ABI name of Go values of type t, as
// used in function and event signatures.
func CanonicalName(t reflect.Type) (string, error) {
	k, err := KindOf(t)
	if err != nil {
		return "", err
	}
	return k.String(), nil
}

// ParseType returns the ABI type for canonical type text such as "uint32",
// "bytes4" or "address[]". Array values of parsed types are []any.
func ParseType(name string) (Kind, error) {
	name = strings.TrimSpace(name)
	if elem, ok := strings.CutSuffix(name, "[]"); ok {
		k, err := ParseType(elem)
		if err != nil {
			return nil, err
		}
		return sliceKind{elem: k}, nil
	}
	if k, ok := namedKinds[name]; ok {
		return k, nil
	}
	if digits, ok := strings.CutPrefix(name, "bytes"); ok {
		n, err := strconv.Atoi(digits)
		if err != nil || strconv.Itoa(n) != digits {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, name)
		}
		fb, err := fixedBytes(n)
		if err != nil {
			return nil, err
		}
		return fb, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, name)
}
