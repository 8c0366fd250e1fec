// Package testing provides standardised tests for storage engines that
// satisfy the durable.Engine interface.
//
// The package contains a conformance suite validating the engine contract:
// write-then-read visibility, upsert semantics, point lookups of absent keys,
// full enumeration, serialized concurrent writers and close behavior.
//
// Example usage:
//
//	// Creating a factory function for your implementation
//	factory := func(t testing.TB) durable.Engine {
//		return NewMyEngine(t.TempDir())
//	}
//
//	// Running the standard test suite
//	enginetesting.RunEngineTests(t, "MyEngine", factory)
package testing
