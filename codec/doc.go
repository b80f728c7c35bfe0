// Package codec parses and serializes the self-describing hash strings
// persisted by goDigest.
//
// # Grammar
//
//	$<identifier>$[rounds=<n>$]<salt>$<digest>
//
// The rounds clause is omitted when the count equals the algorithm's default.
// Parsing is purely syntactic: resolving the identifier to an algorithm is the
// registry's job.
//
// # What this package must NOT do
//
//   - Import any engine or the goDigest root package.
//   - Decode the digest; engines compare serialized strings.
package codec
