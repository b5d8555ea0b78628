package abi

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/eth2030/abicodec/crypto"
	"github.com/ethereum/go-ethereum/common"
)

// HashFunc hashes a byte string to a 32-byte digest.
type HashFunc func(data []byte) []byte

// keccak256 is the default HashFunc.
func keccak256(data []byte) []byte { return crypto.Keccak256(data) }

// Signature is the canonical signature of a function or event: its name and
// the canonical names of its ordered argument types. Signatures are
// immutable and safe for concurrent use.
type Signature struct {
	name string
	args []string
}

// NewSignature builds the signature of name over the given argument types.
func NewSignature(name string, args ...Kind) Signature {
	names := make([]string, len(args))
	for i, a := range args {
		names[i] = a.String()
	}
	return Signature{name: name, args: names}
}

// ParseSignature parses signature text such as "transfer(address,uint256)".
// Whitespace around names is ignored and every argument type must be
// supported.
func ParseSignature(text string) (Signature, []Kind, error) {
	text = strings.TrimSpace(text)
	open := strings.IndexByte(text, '(')
	if open <= 0 || !strings.HasSuffix(text, ")") {
		return Signature{}, nil, fmt.Errorf("%w: %q", ErrInvalidSignature, text)
	}
	name := strings.TrimSpace(text[:open])
	if name == "" || strings.ContainsAny(name, " \t,()") {
		return Signature{}, nil, fmt.Errorf("%w: bad name in %q", ErrInvalidSignature, text)
	}
	var kinds []Kind
	if list := strings.TrimSpace(text[open+1 : len(text)-1]); list != "" {
		for _, field := range strings.Split(list, ",") {
			k, err := ParseType(field)
			if err != nil {
				return Signature{}, nil, fmt.Errorf("%w: %w", ErrInvalidSignature, err)
			}
			kinds = append(kinds, k)
		}
	}
	return NewSignature(name, kinds...), kinds, nil
}

// Name returns the function or event name.
func (s Signature) Name() string { return s.name }

// Args returns the canonical argument type names.
func (s Signature) Args() []string {
	return append([]string(nil), s.args...)
}

// String returns the canonical text "name(type1,type2,...)" with no spaces.
func (s Signature) String() string {
	return s.name + "(" + strings.Join(s.args, ",") + ")"
}

// SelectorWith returns the first four bytes of h(signature) as a big-endian
// integer.
func (s Signature) SelectorWith(h HashFunc) uint32 {
	return binary.BigEndian.Uint32(h([]byte(s.String()))[:4])
}

// TopicWith returns the full h(signature) digest.
func (s Signature) TopicWith(h HashFunc) common.Hash {
	return common.BytesToHash(h([]byte(s.String())))
}

// Selector returns the Keccak-256 function selector.
func (s Signature) Selector() uint32 { return s.SelectorWith(keccak256) }

// SelectorBytes returns the Keccak-256 function selector as it prefixes call
// data.
func (s Signature) SelectorBytes() [4]byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], s.Selector())
	return b
}

// Topic returns the Keccak-256 event topic hash.
func (s Signature) Topic() common.Hash { return s.TopicWith(keccak256) }

// Selector returns the Keccak-256 function selector of name over args.
func Selector(name string, args ...Kind) uint32 {
	return NewSignature(name, args...).Selector()
}

// TopicHash returns the Keccak-256 event topic hash of name over args.
func TopicHash(name string, args ...Kind) common.Hash {
	return NewSignature(name, args...).Topic()
}
