// Package framework contains the low-level test harness infrastructure that is
// not specific to the API being tested.
//
// The general model is:
//
// 1. There is a notion of a test context which is similar to Go's *testing.T,
// allowing pieces of test logic to be associated with a test identifier and to
// accumulate success/failure results, outside of the Go test runner.
//
// 2. Tests can be selected or excluded by regex filters on their identifiers.
//
// 3. Progress and results are reported through a pluggable TestLogger; debug
// output produced during a test is captured so it can be dumped afterward.
//
// The domain-specific code that knows what is being tested is responsible for
// providing the HTTP calls to the service under test and a domain-specific test
// API on top of the test context.
package framework
