// Package tlv implements the Tag-Length-Value binary encoding used by
// ZATCA e-invoicing QR payloads: each field is a one byte tag, a one byte
// length and that many UTF-8 value bytes.
package tlv

import (
	"errors"
	"fmt"
)

var (
	// ErrValueTooLong is returned when a field value exceeds the single
	// length byte capacity of 255 UTF-8 bytes.
	ErrValueTooLong = errors.New("tlv: value exceeds 255 bytes")

	// ErrTruncated is returned when a declared field length runs past the
	// end of the input.
	ErrTruncated = errors.New("tlv: truncated input")
)

// MaxValueLen is the largest value, in UTF-8 bytes, a single field can carry.
const MaxValueLen = 255

// EncodeField encodes a single field as [tag, len, value...].
func EncodeField(tag byte, value string) ([]byte, error) {
	raw := []byte(value)
	if len(raw) > MaxValueLen {
		return nil, fmt.Errorf("field %d is %d bytes: %w", tag, len(raw), ErrValueTooLong)
	}

	out := make([]byte, 0, 2+len(raw))
	out = append(out, tag, byte(len(raw)))
	out = append(out, raw...)
	return out, nil
}

// DecodeAll walks a concatenation of TLV fields and returns the decoded
// values keyed by tag. A declared length that exceeds the remaining bytes
// fails with ErrTruncated; duplicate tags keep the last occurrence.
func DecodeAll(data []byte) (map[byte]string, error) {
	fields := make(map[byte]string)

	for i := 0; i < len(data); {
		if len(data)-i < 2 {
			return nil, fmt.Errorf("field header at offset %d: %w", i, ErrTruncated)
		}

		tag := data[i]
		length := int(data[i+1])
		i += 2

		if length > len(data)-i {
			return nil, fmt.Errorf("field %d declares %d bytes, %d remain: %w", tag, length, len(data)-i, ErrTruncated)
		}

		fields[tag] = string(data[i : i+length])
		i += length
	}

	return fields, nil
}
