// Package platform describes the running host: a free-text platform
// descriptor, the Go runtime version, and the mapping from a descriptor to
// the result directory (Linux, Windows or Other) that holds its records.
package platform
