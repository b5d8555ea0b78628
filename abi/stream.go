package abi

import "fmt"

// Stream is a read cursor over an encoded payload. Values are popped in the
// order they were pushed. The cursor only moves forward, one word per value;
// dynamic values are read through their offset without moving it.
//
// A Stream is not safe for concurrent use. After a pop fails the cursor
// position is unspecified and the stream must not be used further.
type Stream struct {
	buf    []byte
	origin int // position dynamic offsets are relative to
	pos    int // absolute byte position of the next head word
}

// NewStream returns a stream reading buf from its first word. The buffer is
// borrowed, not copied, and must not be modified while the stream is in use.
func NewStream(buf []byte) *Stream {
	return &Stream{buf: buf}
}

// newRegion returns a stream over the nested region of buf starting at
// origin, as used for array elements.
func newRegion(buf []byte, origin int) *Stream {
	return &Stream{buf: buf, origin: origin, pos: origin}
}

// Position returns the number of head words consumed so far.
func (s *Stream) Position() int {
	return (s.pos - s.origin) / WordSize
}

// Remaining returns the number of bytes after the cursor.
func (s *Stream) Remaining() int {
	if s.pos >= len(s.buf) {
		return 0
	}
	return len(s.buf) - s.pos
}

// Pop decodes the next value of type t.
func Pop[T any](s *Stream, t Type[T]) (T, error) {
	at, err := s.locate(t.dynamic)
	if err != nil {
		var zero T
		return zero, err
	}
	return t.dec(s.buf, at)
}

// PopValue decodes the next value of kind k as an untyped value.
func (s *Stream) PopValue(k Kind) (any, error) {
	at, err := s.locate(k.IsDynamic())
	if err != nil {
		return nil, err
	}
	return k.decodeValue(s.buf, at)
}

// locate consumes the next head word and returns the position the value is
// decoded from: the head word itself for static types, or the target of the
// offset it holds for dynamic ones.
func (s *Stream) locate(dynamic bool) (int, error) {
	head, err := wordAt(s.buf, s.pos)
	if err != nil {
		return 0, err
	}
	at := s.pos
	s.pos += WordSize
	if !dynamic {
		return at, nil
	}
	off, ok := head.size(len(s.buf))
	if !ok || s.origin+off > len(s.buf)-WordSize {
		return 0, fmt.Errorf("%w: offset %s from %d, data length %d",
			ErrInvalidOffset, head.Hex(), s.origin, len(s.buf))
	}
	return s.origin + off, nil
}
