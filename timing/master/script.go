package master

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sarchlab/axilite/axi"
)

// scriptStep is the JSON form of a Transaction.
type scriptStep struct {
	Op     string `json:"op"`
	ID     uint8  `json:"id"`
	Addr   uint32 `json:"addr"`
	Data   uint64 `json:"data"`
	Cycles int    `json:"cycles"`
}

// LoadScript loads a list of transactions from a JSON file.
func LoadScript(path string) ([]*Transaction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script file: %w", err)
	}

	txns, err := ParseScript(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse script %s: %w", path, err)
	}

	return txns, nil
}

// ParseScript parses a JSON array of steps such as
//
//	[{"op": "reset", "cycles": 1}, {"op": "read", "id": 3, "addr": 4}]
func ParseScript(data []byte) ([]*Transaction, error) {
	var steps []scriptStep
	if err := json.Unmarshal(data, &steps); err != nil {
		return nil, err
	}

	txns := make([]*Transaction, 0, len(steps))
	for i, step := range steps {
		t, err := step.toTransaction()
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		txns = append(txns, t)
	}

	return txns, nil
}

func (s scriptStep) toTransaction() (*Transaction, error) {
	if s.ID > axi.IDMask {
		return nil, fmt.Errorf("id %d does not fit in 4 bits", s.ID)
	}
	if s.Cycles < 0 {
		return nil, fmt.Errorf("cycles must be >= 0, got %d", s.Cycles)
	}

	t := &Transaction{ID: s.ID, Addr: s.Addr, Data: s.Data, Cycles: s.Cycles}

	switch s.Op {
	case "read":
		t.Op = OpRead
	case "write":
		t.Op = OpWrite
	case "reset":
		t.Op = OpReset
	case "idle":
		t.Op = OpIdle
	default:
		return nil, fmt.Errorf("unknown op %q", s.Op)
	}

	return t, nil
}
