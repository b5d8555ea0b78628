package abi

import (
	"encoding/binary"
	"fmt"
	"reflect"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// SelectorLength is the number of selector bytes prefixing call data.
const SelectorLength = 4

// Method describes a callable contract function.
type Method struct {
	Name     string
	Inputs   []Kind
	Outputs  []Kind
	Constant bool // does not modify state
	Payable  bool // accepts value with the call

	sig Signature
}

// NewMethod describes the function name with the given argument and return
// types.
func NewMethod(name string, inputs, outputs []Kind) Method {
	return Method{
		Name:    name,
		Inputs:  inputs,
		Outputs: outputs,
		sig:     NewSignature(name, inputs...),
	}
}

// MethodOf describes the function name using the parameter and result types
// of the Go function type of fn, e.g.
//
//	abi.MethodOf("transfer", func(common.Address, *uint256.Int) bool { ... })
//
// Only the type of fn is inspected; a typed nil function is fine. Parameter
// types without an ABI mapping fail with ErrUnsupportedType.
func MethodOf(name string, fn any) (Method, error) {
	ft := reflect.TypeOf(fn)
	if ft == nil || ft.Kind() != reflect.Func {
		return Method{}, fmt.Errorf("%w: %s: %T is not a function", ErrUnsupportedType, name, fn)
	}
	if ft.IsVariadic() {
		return Method{}, fmt.Errorf("%w: %s: variadic function", ErrUnsupportedType, name)
	}
	inputs := make([]Kind, ft.NumIn())
	for i := range inputs {
		k, err := KindOf(ft.In(i))
		if err != nil {
			return Method{}, fmt.Errorf("%s argument %d: %w", name, i, err)
		}
		inputs[i] = k
	}
	outputs := make([]Kind, ft.NumOut())
	for i := range outputs {
		k, err := KindOf(ft.Out(i))
		if err != nil {
			return Method{}, fmt.Errorf("%s result %d: %w", name, i, err)
		}
		outputs[i] = k
	}
	return NewMethod(name, inputs, outputs), nil
}

// Signature returns the canonical signature of the method.
func (m Method) Signature() Signature { return m.sig }

// ID returns the function selector.
func (m Method) ID() uint32 { return m.sig.Selector() }

// String returns the canonical signature text.
func (m Method) String() string { return m.sig.String() }

// EncodeCall returns the call data for args: the selector followed by the
// encoded arguments.
func (m Method) EncodeCall(args ...any) ([]byte, error) {
	payload, err := encodeValues(m.Inputs, args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", m.sig, err)
	}
	sel := m.sig.SelectorBytes()
	return append(sel[:], payload...), nil
}

// DecodeInput checks the selector of call data and decodes the arguments.
func (m Method) DecodeInput(data []byte) ([]any, error) {
	if len(data) < SelectorLength {
		return nil, fmt.Errorf("%w: call data of %d bytes has no selector", ErrUnexpectedEOF, len(data))
	}
	if id := binary.BigEndian.Uint32(data[:SelectorLength]); id != m.ID() {
		return nil, fmt.Errorf("%w: call data for %s, want 0x%08x (%s)",
			ErrSelectorMismatch, hexutil.Encode(data[:SelectorLength]), m.ID(), m.sig)
	}
	vals, err := decodeValues(m.Inputs, data[SelectorLength:])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", m.sig, err)
	}
	return vals, nil
}

// EncodeOutput encodes return values.
func (m Method) EncodeOutput(vals ...any) ([]byte, error) {
	return encodeValues(m.Outputs, vals)
}

// DecodeOutput decodes return data.
func (m Method) DecodeOutput(data []byte) ([]any, error) {
	return decodeValues(m.Outputs, data)
}

// encodeValues encodes vals as a payload of the given types.
func encodeValues(kinds []Kind, vals []any) ([]byte, error) {
	if len(vals) != len(kinds) {
		return nil, fmt.Errorf("%w: got %d values for %d arguments", ErrArgumentCount, len(vals), len(kinds))
	}
	sink := NewSink(len(kinds))
	for i, k := range kinds {
		if err := sink.PushValue(k, vals[i]); err != nil {
			return nil, err
		}
	}
	return sink.Finalize()
}

// decodeValues decodes one value per type from payload.
func decodeValues(kinds []Kind, payload []byte) ([]any, error) {
	stream := NewStream(payload)
	vals := make([]any, len(kinds))
	for i, k := range kinds {
		v, err := stream.PopValue(k)
		if err != nil {
			return nil, fmt.Errorf("value %d (%s): %w", i, k, err)
		}
		vals[i] = v
	}
	return vals, nil
}
