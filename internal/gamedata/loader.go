package gamedata

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// validator is implemented by data files that can check their own contents.
type validator interface {
	Validate() error
}

// Load reads a JSON file from the embedded filesystem and decodes it into T.
// Unknown fields are rejected, and T is validated when it knows how.
func Load[T any](filename string) (T, error) {
	content, err := dataFS.ReadFile(filename)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("read embedded file %s: %w", filename, err)
	}
	return decode[T](filename, content)
}

func decode[T any](filename string, content []byte) (T, error) {
	var result T

	dec := json.NewDecoder(bytes.NewReader(content))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&result); err != nil {
		return result, fmt.Errorf("parse JSON from %s: %w", filename, err)
	}

	if v, ok := any(&result).(validator); ok {
		if err := v.Validate(); err != nil {
			return result, fmt.Errorf("invalid %s: %w", filename, err)
		}
	}
	return result, nil
}
