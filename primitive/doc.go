// Package primitive supplies the fixed-output digest functions engines build on.
//
// Engines never reach for a digest implementation directly; they receive a
// [Source] at construction and ask it for a fresh context per computation.
// [Default] serves MD5, SHA-256 and SHA-512 from the crypto.Hash registry.
// [Restrict] narrows a source, which is how configurations and tests model a
// host that lacks a primitive.
package primitive
