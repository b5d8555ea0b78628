package abi

import (
	"fmt"

	"github.com/eth2030/abicodec/crypto"
	"github.com/ethereum/go-ethereum/common"
)

// MaxIndexed is the number of indexed arguments a log can carry next to the
// event topic.
const MaxIndexed = 3

// EventArg is one argument of an event.
type EventArg struct {
	Kind    Kind
	Indexed bool // carried as a log topic instead of in the data payload
}

// Event describes a contract event.
type Event struct {
	Name   string
	Inputs []EventArg

	sig Signature
}

// NewEvent describes the event name with the given arguments. The signature
// covers all arguments in declaration order, indexed or not.
func NewEvent(name string, args ...EventArg) (Event, error) {
	kinds := make([]Kind, len(args))
	indexed := 0
	for i, a := range args {
		kinds[i] = a.Kind
		if a.Indexed {
			indexed++
		}
	}
	if indexed > MaxIndexed {
		return Event{}, fmt.Errorf("%w: %s has %d, at most %d", ErrTooManyTopics, name, indexed, MaxIndexed)
	}
	return Event{Name: name, Inputs: args, sig: NewSignature(name, kinds...)}, nil
}

// Signature returns the canonical signature of the event.
func (e Event) Signature() Signature { return e.sig }

// Topic returns the event topic hash, the first topic of every log.
func (e Event) Topic() common.Hash { return e.sig.Topic() }

// String returns the canonical signature text.
func (e Event) String() string { return e.sig.String() }

// EncodeLog splits vals, given in declaration order, into log topics and
// data. The first topic is the event topic. An indexed static value is its
// encoded word; an indexed dynamic value is the Keccak-256 hash of its
// content. Non-indexed values are encoded into data.
func (e Event) EncodeLog(vals ...any) ([]common.Hash, []byte, error) {
	if len(vals) != len(e.Inputs) {
		return nil, nil, fmt.Errorf("%s: %w: got %d values for %d arguments",
			e.sig, ErrArgumentCount, len(vals), len(e.Inputs))
	}
	topics := []common.Hash{e.Topic()}
	var (
		dataKinds []Kind
		dataVals  []any
	)
	for i, a := range e.Inputs {
		if !a.Indexed {
			dataKinds = append(dataKinds, a.Kind)
			dataVals = append(dataVals, vals[i])
			continue
		}
		topic, err := indexedTopic(a.Kind, vals[i])
		if err != nil {
			return nil, nil, fmt.Errorf("%s: indexed value %d: %w", e.sig, i, err)
		}
		topics = append(topics, topic)
	}
	data, err := encodeValues(dataKinds, dataVals)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", e.sig, err)
	}
	return topics, data, nil
}

// DecodeTopics checks the event topic and decodes the indexed values.
// Indexed dynamic values cannot be recovered from their hash and are
// returned as the common.Hash topic itself.
func (e Event) DecodeTopics(topics []common.Hash) ([]any, error) {
	if len(topics) == 0 || topics[0] != e.Topic() {
		return nil, fmt.Errorf("%w: log is not %s", ErrSelectorMismatch, e.sig)
	}
	var vals []any
	next := 1
	for _, a := range e.Inputs {
		if !a.Indexed {
			continue
		}
		if next >= len(topics) {
			return nil, fmt.Errorf("%w: %s expects more topics than %d", ErrUnexpectedEOF, e.sig, len(topics))
		}
		topic := topics[next]
		next++
		if a.Kind.IsDynamic() {
			vals = append(vals, topic)
			continue
		}
		v, err := a.Kind.decodeValue(topic[:], 0)
		if err != nil {
			return nil, fmt.Errorf("%s: topic %d: %w", e.sig, next-1, err)
		}
		vals = append(vals, v)
	}
	return vals, nil
}

// DecodeData decodes the non-indexed values from log data.
func (e Event) DecodeData(data []byte) ([]any, error) {
	var kinds []Kind
	for _, a := range e.Inputs {
		if !a.Indexed {
			kinds = append(kinds, a.Kind)
		}
	}
	vals, err := decodeValues(kinds, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.sig, err)
	}
	return vals, nil
}

// indexedTopic returns the topic carrying an indexed value.
func indexedTopic(k Kind, v any) (common.Hash, error) {
	enc, err := k.encodeValue(v)
	if err != nil {
		return common.Hash{}, err
	}
	if !k.IsDynamic() {
		return common.BytesToHash(enc), nil
	}
	if Elem(k) != nil {
		// Arrays hash their element region without the length word.
		return crypto.Keccak256Hash(enc[WordSize:]), nil
	}
	// bytes and string hash their unpadded content.
	content, err := decodeDynamicBytes(enc, 0)
	if err != nil {
		return common.Hash{}, err
	}
	return crypto.Keccak256Hash(content), nil
}
