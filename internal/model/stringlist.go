package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StringList is a list-valued field persisted as JSON text in a single
// column. Encoding and decoding happen only at the store boundary; the
// serialized form never leaves the store layer.
type StringList []string

// EncodeStringList serializes a list for storage. A nil or empty list is
// stored as "[]" so the column is never NULL.
func EncodeStringList(list StringList) (string, error) {
	if len(list) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]string(list))
	if err != nil {
		return "", fmt.Errorf("encoding string list: %w", err)
	}
	return string(b), nil
}

// DecodeStringList deserializes a stored list. Empty or whitespace-only
// text decodes to an empty list rather than an error.
func DecodeStringList(raw string) (StringList, error) {
	if strings.TrimSpace(raw) == "" {
		return StringList{}, nil
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("decoding string list: %w", err)
	}
	if list == nil {
		return StringList{}, nil
	}
	return StringList(list), nil
}
