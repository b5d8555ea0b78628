package abi

import (
	"encoding/binary"
	"fmt"
	"sort"
	"sync"

	"github.com/eth2030/abicodec/log"
	"github.com/ethereum/go-ethereum/common"
)

// Interface is the set of methods and events a contract exposes, indexed by
// selector and topic. It is safe for concurrent use.
type Interface struct {
	name string
	log  *log.Logger

	mu          sync.RWMutex
	constructor *Method
	methods     map[uint32]Method
	events      map[common.Hash]Event
}

// NewInterface returns an empty interface description.
func NewInterface(name string) *Interface {
	return &Interface{
		name:    name,
		log:     log.Default().Module("abi").With("interface", name),
		methods: make(map[uint32]Method),
		events:  make(map[common.Hash]Event),
	}
}

// Name returns the interface name.
func (c *Interface) Name() string { return c.name }

// SetConstructor records the constructor. Constructor arguments are encoded
// without a selector.
func (c *Interface) SetConstructor(m Method) error {
	if m.Constant {
		return fmt.Errorf("%w: constructor can't be constant", ErrInvalidSignature)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.constructor = &m
	return nil
}

// EncodeConstructor encodes constructor arguments.
func (c *Interface) EncodeConstructor(args ...any) ([]byte, error) {
	c.mu.RLock()
	ctor := c.constructor
	c.mu.RUnlock()
	if ctor == nil {
		if len(args) == 0 {
			return []byte{}, nil
		}
		return nil, fmt.Errorf("%w: %s has no constructor", ErrArgumentCount, c.name)
	}
	return encodeValues(ctor.Inputs, args)
}

// AddMethod registers m. Two methods with the same selector cannot coexist;
// note that uint16 arguments share the "uint32" name, so f(uint16) and
// f(uint32) collide.
func (c *Interface) AddMethod(m Method) error {
	if m.Constant && m.Payable {
		return fmt.Errorf("%w: method %s cannot be constant and payable at the same time", ErrInvalidSignature, m.Name)
	}
	if m.Name == "constructor" {
		return c.SetConstructor(m)
	}
	id := m.ID()

	c.mu.Lock()
	defer c.mu.Unlock()
	if prev, ok := c.methods[id]; ok {
		c.log.Warn("Selector collision", "selector", fmt.Sprintf("0x%08x", id), "existing", prev.String(), "new", m.String())
		return fmt.Errorf("%w: 0x%08x of %s already used by %s", ErrDuplicateSelector, id, m, prev)
	}
	c.methods[id] = m
	c.log.Debug("Method registered", "signature", m.String(), "selector", fmt.Sprintf("0x%08x", id))
	return nil
}

// AddEvent registers e.
func (c *Interface) AddEvent(e Event) error {
	topic := e.Topic()

	c.mu.Lock()
	defer c.mu.Unlock()
	if prev, ok := c.events[topic]; ok {
		c.log.Warn("Topic collision", "topic", topic.Hex(), "existing", prev.String(), "new", e.String())
		return fmt.Errorf("%w: %s of %s already used by %s", ErrDuplicateSelector, topic.Hex(), e, prev)
	}
	c.events[topic] = e
	c.log.Debug("Event registered", "signature", e.String(), "topic", topic.Hex())
	return nil
}

// MethodByID returns the method with the given selector.
func (c *Interface) MethodByID(id uint32) (Method, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.methods[id]
	return m, ok
}

// MethodByCall returns the method addressed by the selector of call data.
func (c *Interface) MethodByCall(data []byte) (Method, bool) {
	if len(data) < SelectorLength {
		return Method{}, false
	}
	return c.MethodByID(binary.BigEndian.Uint32(data[:SelectorLength]))
}

// EventByTopic returns the event with the given topic hash.
func (c *Interface) EventByTopic(topic common.Hash) (Event, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.events[topic]
	return e, ok
}

// Methods returns the registered methods sorted by signature.
func (c *Interface) Methods() []Method {
	c.mu.RLock()
	out := make([]Method, 0, len(c.methods))
	for _, m := range c.methods {
		out = append(out, m)
	}
	c.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// Events returns the registered events sorted by signature.
func (c *Interface) Events() []Event {
	c.mu.RLock()
	out := make([]Event, 0, len(c.events))
	for _, e := range c.events {
		out = append(out, e)
	}
	c.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}
