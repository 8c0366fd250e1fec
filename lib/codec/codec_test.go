package codec

import (
	"testing"
)

// TestStringCodecRoundTrip tests that the identity codec returns inputs unchanged
func TestStringCodecRoundTrip(t *testing.T) {
	c := String()

	inputs := []string{"", "hello", "with spaces and ünïcode", "line\nbreak", "{\"json\":true}"}

	for _, in := range inputs {
		encoded, err := c.Encode(in)
		if err != nil {
			t.Errorf("Failed to encode %q: %v", in, err)
			continue
		}
		if encoded != in {
			t.Errorf("Expected identity encoding for %q, got %q", in, encoded)
		}

		decoded, err := c.Decode(encoded)
		if err != nil {
			t.Errorf("Failed to decode %q: %v", encoded, err)
			continue
		}
		if decoded != in {
			t.Errorf("Expected %q after round trip, got %q", in, decoded)
		}
	}
}

// TestIntCodecRoundTrip tests encoding and decoding of int values
func TestIntCodecRoundTrip(t *testing.T) {
	c := Int()

	inputs := []int{0, 1, -1, 42, -99999, 1 << 40}

	for _, in := range inputs {
		encoded, err := c.Encode(in)
		if err != nil {
			t.Errorf("Failed to encode %d: %v", in, err)
			continue
		}

		decoded, err := c.Decode(encoded)
		if err != nil {
			t.Errorf("Failed to decode %q: %v", encoded, err)
			continue
		}
		if decoded != in {
			t.Errorf("Expected %d after round trip, got %d", in, decoded)
		}
	}
}

// TestIntCodecRejectsNonNumeric tests that decoding non-numeric input fails
func TestIntCodecRejectsNonNumeric(t *testing.T) {
	c := Int()

	for _, s := range []string{"", "abc", "1.5", "1x", " 1"} {
		if _, err := c.Decode(s); err == nil {
			t.Errorf("Expected decode of %q to fail", s)
		}
	}
}

// TestJSONCodecRoundTrip tests the json codec with a struct type
func TestJSONCodecRoundTrip(t *testing.T) {
	type user struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}

	c := JSON[user]()

	in := user{Name: "alice", Age: 30}

	encoded, err := c.Encode(in)
	if err != nil {
		t.Fatalf("Failed to encode %+v: %v", in, err)
	}

	decoded, err := c.Decode(encoded)
	if err != nil {
		t.Fatalf("Failed to decode %q: %v", encoded, err)
	}

	if decoded != in {
		t.Errorf("Expected %+v after round trip, got %+v", in, decoded)
	}
}

// TestJSONCodecRejectsMalformedInput tests that decoding malformed json fails
func TestJSONCodecRejectsMalformedInput(t *testing.T) {
	c := JSON[map[string]int]()

	if _, err := c.Decode("{not json"); err == nil {
		t.Errorf("Expected decode of malformed json to fail")
	}
}
