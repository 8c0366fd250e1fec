package codec

import (
	"encoding/json"
	"fmt"
)

// JSON creates a new codec using json encoding.
// The type parameter T must be serializable by encoding/json.
func JSON[T any]() Codec[T] {
	return &jsonCodecImpl[T]{}
}

// jsonCodecImpl implements the Codec interface using json encoding
type jsonCodecImpl[T any] struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see codec.Codec)
// --------------------------------------------------------------------------

func (c jsonCodecImpl[T]) Encode(v T) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to json encode value: %w", err)
	}
	return string(b), nil
}

func (c jsonCodecImpl[T]) Decode(s string) (T, error) {
	var v T
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return v, fmt.Errorf("failed to json decode value: %w", err)
	}
	return v, nil
}
