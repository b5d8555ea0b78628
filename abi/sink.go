package abi

import "fmt"

// Sink accumulates an encoded payload for a fixed number of top-level
// values. One head word is reserved per value up front; dynamic values are
// appended to the tail and their head word receives the tail offset.
//
// A Sink is not safe for concurrent use; independent payloads need
// independent sinks.
type Sink struct {
	heads  []byte
	tail   []byte
	filled int
	err    error
}

// NewSink returns a sink for exactly n top-level values.
func NewSink(n int) *Sink {
	return &Sink{heads: make([]byte, n*WordSize)}
}

// Len returns the number of values pushed so far.
func (s *Sink) Len() int { return s.filled }

// Cap returns the number of values the sink was created for.
func (s *Sink) Cap() int { return len(s.heads) / WordSize }

// Push appends v as the next value of type t. An encoding error is returned
// and also remembered, making Finalize fail. Pushing more values than the
// sink was created for panics.
func Push[T any](s *Sink, t Type[T], v T) error {
	enc, err := t.enc(v)
	return s.place(t.name, t.dynamic, enc, err)
}

// PushValue appends an untyped value as the next value of kind k.
func (s *Sink) PushValue(k Kind, v any) error {
	enc, err := k.encodeValue(v)
	return s.place(k.String(), k.IsDynamic(), enc, err)
}

// place fills the next head slot with enc, or with the offset of enc in the
// tail region for dynamic values.
func (s *Sink) place(name string, dynamic bool, enc []byte, err error) error {
	if s.filled == s.Cap() {
		panic(fmt.Sprintf("abi: push of %s exceeds the %d declared values", name, s.Cap()))
	}
	slot := s.heads[s.filled*WordSize : (s.filled+1)*WordSize]
	s.filled++
	if err != nil {
		err = fmt.Errorf("value %d (%s): %w", s.filled-1, name, err)
		if s.err == nil {
			s.err = err
		}
		return err
	}
	if !dynamic {
		copy(slot, enc)
		return nil
	}
	off := uintWord(uint64(len(s.heads) + len(s.tail)))
	copy(slot, off[:])
	s.tail = append(s.tail, enc...)
	return nil
}

// Finalize returns the payload: the head words in push order followed by
// the tail region. It fails if fewer values were pushed than declared or if
// any pushed value could not be encoded.
func (s *Sink) Finalize() ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.filled < s.Cap() {
		return nil, fmt.Errorf("%w: %d of %d values pushed", ErrIncompleteEncoding, s.filled, s.Cap())
	}
	out := make([]byte, len(s.heads)+len(s.tail))
	copy(out, s.heads)
	copy(out[len(s.heads):], s.tail)
	return out, nil
}

// MustFinalize is like Finalize but panics on error. It is meant for call
// sites that push a statically known, well-formed argument list.
func (s *Sink) MustFinalize() []byte {
	out, err := s.Finalize()
	if err != nil {
		panic(err)
	}
	return out
}
