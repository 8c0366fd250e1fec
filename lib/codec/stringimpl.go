package codec

// String creates a new identity codec for string keys and values
func String() Codec[string] {
	return &stringCodecImpl{}
}

// stringCodecImpl implements the Codec interface as the identity mapping
type stringCodecImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see codec.Codec)
// --------------------------------------------------------------------------

func (c stringCodecImpl) Encode(v string) (string, error) {
	return v, nil
}

func (c stringCodecImpl) Decode(s string) (string, error) {
	return s, nil
}
