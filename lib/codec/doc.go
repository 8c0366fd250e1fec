// Package codec defines the encoding contract between domain keys/values and
// their persisted string representation. Every dictionary stores both keys and
// values as text, so callers supply a Codec for each side that losslessly maps
// the domain type to a string and back.
//
// The package focuses on:
//   - A single generic interface (Codec) shared by all implementations
//   - Pure, I/O-free transformations that are safe to call from any goroutine
//   - Ready-made codecs for the common cases (string identity, integers, JSON)
//
// Codecs are injected into the dictionary constructors as first-class values.
// A codec must be invertible: for every v, Decode(Encode(v)) == v. The
// dictionary never inspects the encoded form beyond storing and comparing it,
// so any encoding satisfying that property is valid.
//
// Implementations:
//
//   - String(): the identity codec for string keys and values.
//     Encoding never fails.
//
//   - Int(): strconv-based codec for int values. Decoding fails with an
//     error on non-numeric input.
//
//   - JSON[T](): a codec for arbitrary serializable types using json
//     encoding.
package codec
