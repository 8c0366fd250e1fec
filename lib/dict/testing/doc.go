// Package testing provides standardised tests for dictionary implementations
// that satisfy the dict.IDict interface.
//
// The package contains a conformance suite validating the shared dictionary
// contract: read-your-write visibility, upsert semantics, absent keys,
// subscriber fan-out and safety under concurrent access. Implementation
// specific behavior (mirror reload, cache eviction) is covered by the
// implementation's own tests.
//
// Example usage:
//
//	factory := func(t testing.TB) dict.IDict[string, string] {
//		d, err := mdict.New(...)
//		...
//		return d
//	}
//
//	dicttesting.RunDictTests(t, "MyDict", factory)
package testing
