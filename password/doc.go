// Package password provides memory-hard and adaptive engines that can be
// registered next to the crypt engines.
//
// # Output format
//
// Argon2id hashes are encoded in PHC string format:
//
//	$argon2id$v=19$m=<memory>,t=<time>,p=<threads>$<salt>$<hash>
//
// bcrypt hashes use the standard modular crypt form ("$2a$<cost>$...").
//
// Both engines expose NeedsUpgrade so the digester can re-hash a password
// whose stored parameters are weaker than the current configuration, even
// when the algorithm itself is already the best registered one.
//
// # Architecture boundaries
//
// This package owns hashing and verification only. Selecting an algorithm and
// persisting upgrades belongs to the goDigest Digester.
//
// # What this package must NOT do
//
//   - Store or retrieve passwords. Callers supply plaintext and receive hashes.
//   - Import the goDigest root package.
//   - Log plaintext passwords or hash parameters at runtime.
package password
