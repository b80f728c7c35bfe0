// Package internal contains helper utilities that are intentionally private to goDigest,
// most importantly the secure random generation used by salt and round policies.
//
// # Sub-packages
//
//   - audit: async event dispatch (Dispatcher + Sink implementations)
//
// # What this package must NOT do
//
//   - Export types that appear in the public goDigest API.
//   - Be imported by any package outside the goDigest module.
//   - Fall back to math/rand for anything that ends up in a hash.
package internal
