// Package policy provides the round-count and salt policies shared by every
// goDigest hashing engine.
//
// # Rounds
//
// A [Rounds] value holds an immutable inclusive range plus the algorithm's
// default round count. [Rounds.Effective] maps a caller request into the range
// (non-positive requests select the default) and [Rounds.Random] draws a fresh
// count for new hashes.
//
// # Salt
//
// A [Salt] value generates random salts from an alphabet and truncates caller
// supplied salts that exceed the configured length. Supplied salts shorter than
// the minimum are passed through unchanged.
//
// # What this package must NOT do
//
//   - Use a non-cryptographic random source.
//   - Know anything about encodings or digest primitives.
package policy
