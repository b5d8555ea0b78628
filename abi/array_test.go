package abi

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/holiman/uint256"
)

func TestArrayOfBytes(t *testing.T) {
	sink := NewSink(1)
	if err := Push(sink, ArrayOf(DynamicBytes), []Bytes{{0x12, 0x34}, {0x56}}); err != nil {
		t.Fatalf("push: %v", err)
	}
	got := sink.MustFinalize()
	want := words(t,
		word("20"),
		word("02"),
		word("40"),
		word("80"),
		word("02"),
		"1234"+strings.Repeat("00", 30),
		word("01"),
		"56"+strings.Repeat("00", 31),
	)
	if !bytes.Equal(got, want) {
		t.Fatalf("payload:\n got %x\nwant %x", got, want)
	}

	dec, err := Pop(NewStream(got), ArrayOf(DynamicBytes))
	if err != nil {
		t.Fatalf("pop: %v", err)
	}
	if len(dec) != 2 || !bytes.Equal(dec[0], []byte{0x12, 0x34}) || !bytes.Equal(dec[1], []byte{0x56}) {
		t.Fatalf("decoded: got %x", dec)
	}
}

func TestArrayNested(t *testing.T) {
	typ := ArrayOf(ArrayOf(Uint32))
	v := [][]uint32{{1, 2}, {3}}

	sink := NewSink(1)
	if err := Push(sink, typ, v); err != nil {
		t.Fatalf("push: %v", err)
	}
	got := sink.MustFinalize()
	want := words(t,
		word("20"),
		word("02"),
		word("40"),
		word("a0"),
		word("02"),
		word("01"),
		word("02"),
		word("01"),
		word("03"),
	)
	if !bytes.Equal(got, want) {
		t.Fatalf("payload:\n got %x\nwant %x", got, want)
	}

	dec, err := Pop(NewStream(got), typ)
	if err != nil {
		t.Fatalf("pop: %v", err)
	}
	if !reflect.DeepEqual(dec, v) {
		t.Fatalf("decoded: got %v, want %v", dec, v)
	}
}

func TestArrayEmpty(t *testing.T) {
	sink := NewSink(1)
	if err := Push(sink, ArrayOf(Uint256), nil); err != nil {
		t.Fatalf("push: %v", err)
	}
	got := sink.MustFinalize()
	if want := words(t, word("20"), word("00")); !bytes.Equal(got, want) {
		t.Fatalf("payload:\n got %x\nwant %x", got, want)
	}
	dec, err := Pop(NewStream(got), ArrayOf(Uint256))
	if err != nil {
		t.Fatalf("pop: %v", err)
	}
	if len(dec) != 0 {
		t.Fatalf("decoded: got %d elements, want 0", len(dec))
	}
}

func TestArrayMixedWithStatic(t *testing.T) {
	sink := NewSink(3)
	if err := Push(sink, Uint32, 7); err != nil {
		t.Fatal(err)
	}
	if err := Push(sink, ArrayOf(String), []string{"a", "bc"}); err != nil {
		t.Fatal(err)
	}
	if err := Push(sink, Bool, true); err != nil {
		t.Fatal(err)
	}
	payload := sink.MustFinalize()

	stream := NewStream(payload)
	n, err := Pop(stream, Uint32)
	if err != nil || n != 7 {
		t.Fatalf("uint32: got (%d, %v)", n, err)
	}
	strs, err := Pop(stream, ArrayOf(String))
	if err != nil {
		t.Fatalf("string[]: %v", err)
	}
	if !reflect.DeepEqual(strs, []string{"a", "bc"}) {
		t.Fatalf("string[]: got %q", strs)
	}
	flag, err := Pop(stream, Bool)
	if err != nil || !flag {
		t.Fatalf("bool: got (%v, %v)", flag, err)
	}
	if stream.Position() != 3 {
		t.Fatalf("position: got %d, want 3", stream.Position())
	}
}

func TestArrayElementError(t *testing.T) {
	sink := NewSink(1)
	err := Push(sink, ArrayOf(FixedBytes(2)), [][]byte{{1, 2}, {3}})
	if !errors.Is(err, ErrValueOutOfRange) {
		t.Fatalf("push: got %v, want ErrValueOutOfRange", err)
	}
	if !strings.Contains(err.Error(), "value 1") {
		t.Fatalf("error does not name the element: %v", err)
	}

	// Second element of a bool[] is 2.
	payload := words(t, word("20"), word("02"), word("01"), word("02"))
	if _, err := Pop(NewStream(payload), ArrayOf(Bool)); !errors.Is(err, ErrInvalidBool) {
		t.Fatalf("pop: got %v, want ErrInvalidBool", err)
	}
}

func TestSliceKind(t *testing.T) {
	k, err := ParseType("uint256[]")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	sink := NewSink(1)
	in := []*uint256.Int{uint256.NewInt(1), uint256.NewInt(2), uint256.NewInt(3)}
	if err := sink.PushValue(k, in); err != nil {
		t.Fatalf("push: %v", err)
	}
	payload := sink.MustFinalize()

	typed := NewSink(1)
	if err := Push(typed, ArrayOf(Uint256), in); err != nil {
		t.Fatalf("push typed: %v", err)
	}
	if !bytes.Equal(payload, typed.MustFinalize()) {
		t.Fatal("parsed and typed array encodings differ")
	}

	v, err := NewStream(payload).PopValue(k)
	if err != nil {
		t.Fatalf("pop: %v", err)
	}
	vals, ok := v.([]any)
	if !ok || len(vals) != 3 {
		t.Fatalf("decoded: got %#v", v)
	}
	for i, e := range vals {
		if !e.(*uint256.Int).Eq(in[i]) {
			t.Errorf("element %d: got %v, want %v", i, e, in[i])
		}
	}

	if err := NewSink(1).PushValue(k, "not a slice"); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("push string: got %v, want ErrTypeMismatch", err)
	}
}

func TestSliceKindGoType(t *testing.T) {
	k, err := KindOf(reflect.TypeOf([][4]byte(nil)))
	if err != nil {
		t.Fatalf("kind: %v", err)
	}
	if k.String() != "bytes4[]" {
		t.Fatalf("name: got %s, want bytes4[]", k)
	}
	in := [][4]byte{{1, 2, 3, 4}, {5, 6, 7, 8}}
	sink := NewSink(1)
	if err := sink.PushValue(k, in); err != nil {
		t.Fatalf("push: %v", err)
	}
	got, err := NewStream(sink.MustFinalize()).PopValue(k)
	if err != nil {
		t.Fatalf("pop: %v", err)
	}
	if !reflect.DeepEqual(got, in) {
		t.Fatalf("decoded: got %#v, want %#v", got, in)
	}
}
