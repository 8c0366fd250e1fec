package codec

import (
	"fmt"
	"strconv"
)

// Int creates a new codec for int values using base-10 string encoding
func Int() Codec[int] {
	return &intCodecImpl{}
}

// intCodecImpl implements the Codec interface using strconv
type intCodecImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see codec.Codec)
// --------------------------------------------------------------------------

func (c intCodecImpl) Encode(v int) (string, error) {
	return strconv.Itoa(v), nil
}

func (c intCodecImpl) Decode(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("failed to decode %q as int: %w", s, err)
	}
	return v, nil
}
