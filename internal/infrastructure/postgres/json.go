package postgres

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// jsonColumn adapts a json.RawMessage field to nullable JSONB scanning.
// database/sql refuses to store a NULL driver value into *json.RawMessage,
// so every JSONB read goes through this: NULL becomes a nil RawMessage.
type jsonColumn struct {
	dst *json.RawMessage
}

func nullJSON(dst *json.RawMessage) jsonColumn { return jsonColumn{dst: dst} }

func (c jsonColumn) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*c.dst = nil
		return nil
	case []byte:
		// The driver may reuse the buffer after Scan returns.
		buf := make([]byte, len(v))
		copy(buf, v)
		*c.dst = buf
		return nil
	case string:
		*c.dst = json.RawMessage(v)
		return nil
	default:
		return fmt.Errorf("scan jsonb: unsupported type %T", src)
	}
}

// Value lets a jsonColumn round-trip on writes: nil marshals to SQL NULL
// instead of an empty byte slice, which JSONB rejects.
func (c jsonColumn) Value() (driver.Value, error) {
	if c.dst == nil || *c.dst == nil {
		return nil, nil
	}
	return []byte(*c.dst), nil
}
