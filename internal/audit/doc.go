// Package audit implements async event dispatching for hashing and
// verification outcomes.
//
// # Components
//
//   - [Sink]: interface for event consumers (channel, JSON writer, no-op).
//   - [Dispatcher]: buffered async relay with drop-if-full / block-if-full semantics.
//   - [Event]: structured record with a UUID, timestamp, type, user, algorithm and metadata.
//
// # Architecture boundaries
//
// This package owns event buffering and sink delivery. It does NOT decide which
// events to emit; the Digester does.
//
// # What this package must NOT do
//
//   - Filter or suppress events based on business logic.
//   - Import goDigest or any sibling internal package.
//   - Accept plaintext passwords or encoded hashes in events.
package audit
