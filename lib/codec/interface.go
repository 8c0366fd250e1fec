package codec

// Codec is the interface for all key and value codecs.
// Implementations must be pure: no I/O, no shared mutable state, safe for
// concurrent use from multiple goroutines.
type Codec[T any] interface {
	// Encode encodes a value into its persisted string representation
	// It returns the encoded string and an error if any
	Encode(v T) (string, error)
	// Decode decodes a persisted string back into a value
	// It returns the decoded value and an error if any
	Decode(s string) (T, error)
}
