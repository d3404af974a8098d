package api

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Decode rehydrates a value read from a SessionStore into a typed target.
//
// Persistent backends round-trip values through JSON, so a stored struct
// comes back as map[string]any and numbers come back as float64. Decode
// converts such values (weakly typed, so "1" and 1.0 both satisfy an int
// field) into the caller's struct or scalar.
func Decode(value any, target any) error {
	if value == nil {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("build decoder: %w", err)
	}
	if err := dec.Decode(value); err != nil {
		return fmt.Errorf("decode session value: %w", err)
	}
	return nil
}
