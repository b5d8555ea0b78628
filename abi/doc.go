// Package abi implements the word-aligned contract ABI used for Ethereum
// style call payloads and event logs.
//
// Every value is laid out in 32-byte big-endian words. Static values occupy
// a single word in the head region; dynamic values (bytes, string and
// arrays) store a byte offset in their head word and keep a length-prefixed,
// zero-padded payload in the tail region.
//
// The set of supported types is closed: each one is a Type[T] value exported
// by this package (Uint32, Address, DynamicBytes, ArrayOf(...), ...). A
// payload is built by pushing values into a Sink in argument order and read
// back by popping them from a Stream in the same order:
//
//	sink := abi.NewSink(2)
//	abi.Push(sink, abi.Uint32, 69)
//	abi.Push(sink, abi.Bool, true)
//	payload, err := sink.Finalize()
//
//	stream := abi.NewStream(payload)
//	n, err := abi.Pop(stream, abi.Uint32)
//	ok, err := abi.Pop(stream, abi.Bool)
//
// Function selectors and event topics are derived from the canonical
// signature text, see Signature.
package abi
