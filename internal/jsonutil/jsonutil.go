// Package jsonutil provides shared helpers for decoding remote JSON payloads:
// contextual error wrapping and navigation into nested response envelopes.
package jsonutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrPathMissing is returned by Dig when a path segment is absent or null.
var ErrPathMissing = errors.New("json path missing")

// UnmarshalWithContext unmarshals JSON data into v and wraps any error
// with the provided context message.
func UnmarshalWithContext(data []byte, v any, context string) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", context, err)
	}
	return nil
}

// DecodeWithContext decodes a single JSON value from r into v and wraps any
// error with the provided context message.
func DecodeWithContext(r io.Reader, v any, context string) error {
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("%s: %w", context, err)
	}
	return nil
}

// UnmarshalArrayAllowEmpty unmarshals JSON data into a slice.
// An empty array (or JSON null) yields a nil slice and no error.
func UnmarshalArrayAllowEmpty[T any](data []byte, context string) ([]T, error) {
	var entries []T
	if err := UnmarshalWithContext(data, &entries, context); err != nil {
		return nil, err
	}
	return entries, nil
}

// Dig walks an object path (e.g. "data", "patient", "doctors") through raw JSON
// and returns the raw value found at the end. A missing or null segment yields
// ErrPathMissing naming the dotted path up to that segment.
func Dig(raw json.RawMessage, path ...string) (json.RawMessage, error) {
	cur := raw
	for i, key := range path {
		if isNull(cur) {
			return nil, fmt.Errorf("%s: %w", strings.Join(path[:i], "."), ErrPathMissing)
		}
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(cur, &obj); err != nil {
			return nil, fmt.Errorf("%s: %w", strings.Join(path[:i], "."), err)
		}
		next, ok := obj[key]
		if !ok || isNull(next) {
			return nil, fmt.Errorf("%s: %w", strings.Join(path[:i+1], "."), ErrPathMissing)
		}
		cur = next
	}
	return cur, nil
}

func isNull(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return s == "" || s == "null"
}
