// Package crypt implements the SHA-256-crypt ("$5$") and SHA-512-crypt ("$6$")
// password hashing schemes.
//
// Output is byte-compatible with the published crypt-SHA reference vectors:
//
//	$5$saltstring$5B8vYYiY.CVt1RlTTf8KbXBH3hsxY/GNooZaBBGWEc5
//
// The rounds clause is written only when the count differs from 5000.
//
// # Architecture boundaries
//
// Digest contexts come from an injected primitive.Source, salts and round
// counts from the policy package, serialization from codec. Engines keep no
// mutable state.
//
// # What this package must NOT do
//
//   - Share a digest context between calls.
//   - Compare hashes with ==.
//   - Log. Failures are returned to the caller.
package crypt
