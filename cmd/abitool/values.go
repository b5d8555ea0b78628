package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/eth2030/abicodec/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

// errInvalidValue is returned for command-line values that do not parse as
// their declared type.
var errInvalidValue = errors.New("invalid value")

// parseValue converts the command-line text s into a value of type k.
// Integers are decimal or 0x-prefixed hex, byte strings are 0x hex, strings
// may be given bare or double-quoted, arrays are written as [a,b,...].
func parseValue(k abi.Kind, s string) (any, error) {
	s = strings.TrimSpace(s)
	if elem := abi.Elem(k); elem != nil {
		items, err := splitList(s)
		if err != nil {
			return nil, err
		}
		vals := make([]any, len(items))
		for i, item := range items {
			v, err := parseValue(elem, item)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			vals[i] = v
		}
		return vals, nil
	}

	switch k.(type) {
	case abi.Type[uint8]:
		n, err := strconv.ParseUint(s, 0, 8)
		return uint8(n), wrapValue(k, s, err)
	case abi.Type[uint16]:
		n, err := strconv.ParseUint(s, 0, 16)
		return uint16(n), wrapValue(k, s, err)
	case abi.Type[uint32]:
		n, err := strconv.ParseUint(s, 0, 32)
		return uint32(n), wrapValue(k, s, err)
	case abi.Type[uint64]:
		n, err := strconv.ParseUint(s, 0, 64)
		return n, wrapValue(k, s, err)
	case abi.Type[int32]:
		n, err := strconv.ParseInt(s, 0, 32)
		return int32(n), wrapValue(k, s, err)
	case abi.Type[int64]:
		n, err := strconv.ParseInt(s, 0, 64)
		return n, wrapValue(k, s, err)
	case abi.Type[*uint256.Int]:
		return parseUint256(s)
	case abi.Type[common.Address]:
		if !common.IsHexAddress(s) {
			return nil, fmt.Errorf("%w: %q is not an address", errInvalidValue, s)
		}
		return common.HexToAddress(s), nil
	case abi.Type[bool]:
		b, err := strconv.ParseBool(s)
		return b, wrapValue(k, s, err)
	case abi.Type[abi.Bytes]:
		b, err := hexutil.Decode(s)
		return abi.Bytes(b), wrapValue(k, s, err)
	case abi.Type[[]byte]:
		b, err := hexutil.Decode(s)
		return b, wrapValue(k, s, err)
	case abi.Type[string]:
		if strings.HasPrefix(s, `"`) {
			u, err := strconv.Unquote(s)
			return u, wrapValue(k, s, err)
		}
		return s, nil
	}
	return nil, fmt.Errorf("%w: %s", abi.ErrUnsupportedType, k)
}

func wrapValue(k abi.Kind, s string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %q as %s: %v", errInvalidValue, s, k, err)
}

// parseUint256 accepts decimal or 0x-prefixed hex, leading zeros included.
func parseUint256(s string) (*uint256.Int, error) {
	if digits, ok := strings.CutPrefix(strings.ToLower(s), "0x"); ok {
		digits = strings.TrimLeft(digits, "0")
		if digits == "" {
			return new(uint256.Int), nil
		}
		v, err := uint256.FromHex("0x" + digits)
		if err != nil {
			return nil, fmt.Errorf("%w: %q as uint256: %v", errInvalidValue, s, err)
		}
		return v, nil
	}
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q as uint256: %v", errInvalidValue, s, err)
	}
	return v, nil
}

// splitList splits "[a,b,...]" into its top-level items. Nested brackets and
// double-quoted strings are kept intact.
func splitList(s string) ([]string, error) {
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return nil, fmt.Errorf("%w: array %q must be written as [a,b,...]", errInvalidValue, s)
	}
	inner := strings.TrimSpace(s[1 : len(s)-1])
	if inner == "" {
		return nil, nil
	}
	var (
		items  []string
		depth  int
		quoted bool
		start  int
	)
	for i := 0; i < len(inner); i++ {
		switch c := inner[i]; {
		case quoted && c == '\\':
			i++
		case c == '"':
			quoted = !quoted
		case quoted:
		case c == '[':
			depth++
		case c == ']':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("%w: unbalanced brackets in %q", errInvalidValue, s)
			}
		case c == ',' && depth == 0:
			items = append(items, strings.TrimSpace(inner[start:i]))
			start = i + 1
		}
	}
	if depth != 0 || quoted {
		return nil, fmt.Errorf("%w: unterminated list or string in %q", errInvalidValue, s)
	}
	return append(items, strings.TrimSpace(inner[start:])), nil
}

// formatValue renders a decoded value the way parseValue reads it.
func formatValue(v any) string {
	switch v := v.(type) {
	case *uint256.Int:
		return v.Dec()
	case common.Address:
		return v.Hex()
	case common.Hash:
		return v.Hex()
	case bool:
		return strconv.FormatBool(v)
	case abi.Bytes:
		return hexutil.Encode(v)
	case []byte:
		return hexutil.Encode(v)
	case string:
		return strconv.Quote(v)
	case []any:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = formatValue(e)
		}
		return "[" + strings.Join(parts, ",") + "]"
	}
	return fmt.Sprint(v)
}
