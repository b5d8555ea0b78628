package abi

import (
	"fmt"
	"reflect"
)

// ArrayOf returns the variable-length array type E[] for element type elem.
// Elements are laid out after the length word with their own head/tail
// scheme, offsets being relative to the start of the element region.
func ArrayOf[E any](elem Type[E]) Type[[]E] {
	return Type[[]E]{
		name:    elem.name + "[]",
		dynamic: true,
		elem:    elem,
		enc: func(v []E) ([]byte, error) {
			return encodeList(len(v), func(s *Sink, i int) error {
				return Push(s, elem, v[i])
			})
		},
		dec: func(buf []byte, pos int) ([]E, error) {
			var out []E
			err := decodeList(buf, pos, func(s *Stream, n int) error {
				out = make([]E, n)
				for i := range out {
					v, err := Pop(s, elem)
					if err != nil {
						return fmt.Errorf("element %d: %w", i, err)
					}
					out[i] = v
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
			return out, nil
		},
	}
}

// encodeList writes the length word of an n-element array followed by the
// element region produced by push on a nested sink.
func encodeList(n int, push func(s *Sink, i int) error) ([]byte, error) {
	inner := NewSink(n)
	for i := 0; i < n; i++ {
		if err := push(inner, i); err != nil {
			return nil, err
		}
	}
	region, err := inner.Finalize()
	if err != nil {
		return nil, err
	}
	length := uintWord(uint64(n))
	out := make([]byte, 0, WordSize+len(region))
	out = append(out, length[:]...)
	return append(out, region...), nil
}

// decodeList reads the length word at pos and hands a stream rooted at the
// element region to pop. Every element needs at least one word, which bounds
// the count before anything is allocated.
func decodeList(buf []byte, pos int, pop func(s *Stream, n int) error) error {
	w, err := wordAt(buf, pos)
	if err != nil {
		return err
	}
	origin := pos + WordSize
	n, ok := w.size((len(buf) - origin) / WordSize)
	if !ok {
		return fmt.Errorf("%w: array of length %s at offset %d exceeds data length %d",
			ErrUnexpectedEOF, w.Hex(), pos, len(buf))
	}
	return pop(newRegion(buf, origin), n)
}

// sliceKind is an array type whose element type is only known at run time,
// as produced by ParseType and KindOf. Values are []any unless goType names
// the slice type to materialise on decode.
type sliceKind struct {
	elem   Kind
	goType reflect.Type
}

func (k sliceKind) String() string  { return k.elem.String() + "[]" }
func (k sliceKind) IsDynamic() bool { return true }

func (k sliceKind) encodeValue(v any) ([]byte, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return nil, fmt.Errorf("%w: cannot use %T as %s", ErrTypeMismatch, v, k)
	}
	return encodeList(rv.Len(), func(s *Sink, i int) error {
		return s.PushValue(k.elem, rv.Index(i).Interface())
	})
}

func (k sliceKind) decodeValue(buf []byte, pos int) (any, error) {
	var out any
	err := decodeList(buf, pos, func(s *Stream, n int) error {
		if k.goType == nil {
			vals := make([]any, n)
			for i := range vals {
				v, err := s.PopValue(k.elem)
				if err != nil {
					return fmt.Errorf("element %d: %w", i, err)
				}
				vals[i] = v
			}
			out = vals
			return nil
		}
		vals := reflect.MakeSlice(k.goType, n, n)
		for i := 0; i < n; i++ {
			v, err := s.PopValue(k.elem)
			if err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
			vals.Index(i).Set(reflect.ValueOf(v))
		}
		out = vals.Interface()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// byteArrayKind is bytesN materialised as a Go array such as [4]byte.
type byteArrayKind struct {
	Type[[]byte]
	goType reflect.Type
}

func (k byteArrayKind) decodeValue(buf []byte, pos int) (any, error) {
	b, err := k.dec(buf, pos)
	if err != nil {
		return nil, err
	}
	arr := reflect.New(k.goType).Elem()
	reflect.Copy(arr, reflect.ValueOf(b))
	return arr.Interface(), nil
}
