// Package results persists one JSON record per test case under a
// platform-named directory (<root>/<Linux|Windows|Other>/<case>.json) and
// reads those directories back. Every file read is checked against an
// embedded JSON Schema before it is decoded.
package results
