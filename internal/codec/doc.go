// Package codec serializes sample values to deterministic CBOR (RFC 8949
// Core Deterministic Encoding) under a numbered protocol.
//
// Protocol 1 is plain CBOR: shared containers are written once per
// occurrence and a reference cycle is an error. Protocol 2 prefixes the
// self-described CBOR tag and memoizes the object graph: a container that is
// reachable more than once is wrapped in tag 28 (shareable) where it is first
// written, and every later occurrence becomes tag 29 (sharedref) holding its
// index. This is what lets a list that contains itself round-trip.
//
// Values are the plain Go shapes a sample catalog is written in: nil, bool,
// integers, floats, complex numbers, strings, []byte, []any (list),
// map[string]any (dict), plus the Tuple and Set types of this package.
package codec
