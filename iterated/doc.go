// Package iterated provides the legacy salted, iterated single-digest engines.
//
// These exist so hashes written by older deployments keep verifying and can be
// upgraded to a crypt engine on the next successful login. New hashes should
// not be produced with them.
//
//	$1$<n>$<salt>$<digest>  MD5
//	$3$<n>$<salt>$<digest>  SHA-256
//	$4$<n>$<salt>$<digest>  SHA-512
//
// The digest is base64(H^n(salt || NFC(plain))). The iteration count n is
// always written, even for a single pass; this is not the crypt grammar of
// the codec package.
package iterated
