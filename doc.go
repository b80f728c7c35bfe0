// Package goDigest hashes and verifies passwords in self-describing
// "$id$[rounds=N$]salt$digest" strings and upgrades hashes of older
// algorithms to the strongest registered one on successful verification.
//
// The package is designed for concurrent server workloads: Digester methods are safe to
// call from multiple goroutines after initialization through [Builder.Build].
//
// # Algorithms
//
// The default [Registry] holds five algorithms ranked by priority:
//
//	$1$  iterated MD5          (iterated package)
//	$3$  iterated SHA-256      (iterated package)
//	$4$  iterated SHA-512      (iterated package)
//	$5$  SHA-256-crypt         (crypt package)
//	$6$  SHA-512-crypt         (crypt package, best)
//
// Argon2id and bcrypt engines from the password package can be added with
// [Builder.WithAlgorithm]; a higher priority makes them the upgrade target.
//
// # Architecture boundaries
//
// goDigest is the public surface. It exposes [Digester], [Builder], [Config], [Registry] and
// value types ([MatchResult], [MetricsSnapshot]). Engines live in their own packages and
// only meet here through the [Engine] interface. Audit dispatch lives under internal/.
//
// # What this package must NOT do
//
//   - Log or audit plaintext passwords or full encoded hashes.
//   - Return an error for a mismatched or unrecognized hash; both are ordinary results.
//   - Perform I/O outside of [Digester.Authenticate] and the audit sink.
package goDigest
