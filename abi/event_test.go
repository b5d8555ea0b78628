package abi

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

func newTransferEvent(t *testing.T) Event {
	t.Helper()
	e, err := NewEvent("Transfer",
		EventArg{Kind: Address, Indexed: true},
		EventArg{Kind: Address, Indexed: true},
		EventArg{Kind: Uint256},
	)
	if err != nil {
		t.Fatalf("event: %v", err)
	}
	return e
}

func TestEventEncodeLog(t *testing.T) {
	e := newTransferEvent(t)
	from := common.HexToAddress("0x1111111111111111111111111111111111111111")
	to := common.HexToAddress("0x2222222222222222222222222222222222222222")

	topics, data, err := e.EncodeLog(from, to, uint256.NewInt(0x45))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(topics) != 3 {
		t.Fatalf("topics: got %d, want 3", len(topics))
	}
	if want := common.HexToHash("0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"); topics[0] != want {
		t.Fatalf("topic 0: got %s, want %s", topics[0].Hex(), want.Hex())
	}
	if topics[1] != common.BytesToHash(from[:]) || topics[2] != common.BytesToHash(to[:]) {
		t.Fatalf("indexed topics: got %s %s", topics[1].Hex(), topics[2].Hex())
	}
	if string(data) != string(words(t, word("45"))) {
		t.Fatalf("data: got %x", data)
	}

	indexed, err := e.DecodeTopics(topics)
	if err != nil {
		t.Fatalf("decode topics: %v", err)
	}
	if len(indexed) != 2 || indexed[0].(common.Address) != from || indexed[1].(common.Address) != to {
		t.Fatalf("indexed values: got %v", indexed)
	}
	vals, err := e.DecodeData(data)
	if err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(vals) != 1 || !vals[0].(*uint256.Int).Eq(uint256.NewInt(0x45)) {
		t.Fatalf("data values: got %v", vals)
	}
}

func TestEventIndexedDynamic(t *testing.T) {
	e, err := NewEvent("Log",
		EventArg{Kind: String, Indexed: true},
		EventArg{Kind: ArrayOf(Uint32), Indexed: true},
		EventArg{Kind: DynamicBytes},
	)
	if err != nil {
		t.Fatalf("event: %v", err)
	}
	if e.String() != "Log(string,uint32[],bytes)" {
		t.Fatalf("signature: got %s", e)
	}
	topics, data, err := e.EncodeLog("hello", []uint32{1, 2}, Bytes{0xab})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if want := common.HexToHash("0x1c8aff950685c2ed4bc3174f3472287b56d9517b9c948127319a09a7a36deac8"); topics[1] != want {
		t.Fatalf("string topic: got %s, want %s", topics[1].Hex(), want.Hex())
	}
	if want := common.HexToHash("0xe90b7bceb6e7df5418fb78d8ee546e97c83a08bbccc01a0644d599ccd2a7c2e0"); topics[2] != want {
		t.Fatalf("array topic: got %s, want %s", topics[2].Hex(), want.Hex())
	}

	indexed, err := e.DecodeTopics(topics)
	if err != nil {
		t.Fatalf("decode topics: %v", err)
	}
	if indexed[0].(common.Hash) != topics[1] || indexed[1].(common.Hash) != topics[2] {
		t.Fatalf("dynamic indexed values are returned as their topic: got %v", indexed)
	}
	vals, err := e.DecodeData(data)
	if err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if b := vals[0].(Bytes); len(b) != 1 || b[0] != 0xab {
		t.Fatalf("data: got %x", b)
	}
}

func TestEventTooManyIndexed(t *testing.T) {
	arg := EventArg{Kind: Uint32, Indexed: true}
	if _, err := NewEvent("E", arg, arg, arg); err != nil {
		t.Fatalf("three indexed: %v", err)
	}
	if _, err := NewEvent("E", arg, arg, arg, arg); !errors.Is(err, ErrTooManyTopics) {
		t.Fatalf("four indexed: got %v, want ErrTooManyTopics", err)
	}
}

func TestEventDecodeErrors(t *testing.T) {
	e := newTransferEvent(t)
	if _, err := e.DecodeTopics(nil); !errors.Is(err, ErrSelectorMismatch) {
		t.Fatalf("no topics: got %v, want ErrSelectorMismatch", err)
	}
	if _, err := e.DecodeTopics([]common.Hash{{0x01}}); !errors.Is(err, ErrSelectorMismatch) {
		t.Fatalf("wrong topic: got %v, want ErrSelectorMismatch", err)
	}
	if _, err := e.DecodeTopics([]common.Hash{e.Topic()}); !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("missing topics: got %v, want ErrUnexpectedEOF", err)
	}
	bad := common.HexToHash("0x0100000000000000000000001111111111111111111111111111111111111111")
	if _, err := e.DecodeTopics([]common.Hash{e.Topic(), bad, bad}); !errors.Is(err, ErrInvalidPadding) {
		t.Fatalf("bad address topic: got %v, want ErrInvalidPadding", err)
	}
	if _, _, err := e.EncodeLog(common.Address{}); !errors.Is(err, ErrArgumentCount) {
		t.Fatalf("arity: got %v, want ErrArgumentCount", err)
	}
}
