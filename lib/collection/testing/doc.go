// Package testing provides standardised tests and benchmarks for
// port collections that satisfy the collection.IPortCollection interface.
//
// The package contains:
//   - testing: A conformance suite for lookup, value access, guards and binding by name
//   - benchmark: Performance tests for common collection operations
//
// Example usage:
//
//	// Creating a factory function for your implementation
//	factory := func(entries ...collection.Entry) collection.IPortCollection {
//		return NewMyCollection(entries...)
//	}
//
//	// Running the standard test suite
//	colltesting.RunCollectionTests(t, "MyCollection", factory)
//
//	// Running performance benchmarks
//	colltesting.RunCollectionBenchmarks(b, "MyCollection", factory)
package testing
