package protocol

import (
	"encoding/json"
	"fmt"
)

type tagged struct {
	Type string `json:"type"`
}

// DecodeType peeks the "type" tag of a raw message without decoding the
// rest of the payload.
func DecodeType(b []byte) (string, error) {
	if len(b) == 0 {
		return "", fmt.Errorf("decode type: empty message")
	}
	var t tagged
	if err := json.Unmarshal(b, &t); err != nil {
		return "", fmt.Errorf("decode type: %w", err)
	}
	if t.Type == "" {
		return "", fmt.Errorf("decode type: missing type field")
	}
	return t.Type, nil
}

// DecodePayload decodes a full message body into its typed struct.
func DecodePayload[T any](b []byte) (T, error) {
	var out T
	if len(b) == 0 {
		return out, fmt.Errorf("decode payload: empty message")
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return out, fmt.Errorf("decode payload: %w", err)
	}
	return out, nil
}

// Encode marshals an outbound message. The struct carries its own type
// tag, so this is a thin wrapper kept for symmetry with decoding.
func Encode(v any) ([]byte, error) {
	if v == nil {
		return nil, fmt.Errorf("encode: nil message")
	}
	return json.Marshal(v)
}
