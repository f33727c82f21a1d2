package tropical

import (
	"bytes"
	"fmt"
	"math/big"
)

var jsonNull = []byte("null")

// MarshalJSON encodes a finite value as an unquoted JSON integer of any
// size and Infinite as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.w == nil {
		return jsonNull, nil
	}

	return []byte(v.w.String()), nil
}

// UnmarshalJSON accepts an integer (bare or quoted) or null.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, jsonNull) {
		*v = Infinite()
		return nil
	}
	data = bytes.Trim(data, `"`)
	w, ok := new(big.Int).SetString(string(data), 10)
	if !ok {
		return fmt.Errorf("tropical: invalid weight %q", data)
	}
	if w.Sign() < 0 {
		return fmt.Errorf("%w: %s", ErrNegativeWeight, w)
	}
	*v = Value{w: w}

	return nil
}

// Parse is the inverse of String: "∞" (or "inf") yields Infinite, anything
// else must be a non-negative base-10 integer.
func Parse(s string) (Value, error) {
	if s == "∞" || s == "inf" {
		return Infinite(), nil
	}
	w, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Value{}, fmt.Errorf("tropical: invalid weight %q", s)
	}
	if w.Sign() < 0 {
		return Value{}, fmt.Errorf("%w: %s", ErrNegativeWeight, w)
	}

	return Value{w: w}, nil
}
