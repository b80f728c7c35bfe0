// Package credstore persists encoded password hashes in Redis.
//
// [RedisStore] implements goDigest.CredentialStore so that
// Digester.Authenticate can write upgraded hashes back atomically. Keys have
// the form "<prefix>:<userID>" and hold the encoded hash verbatim.
//
// Every Redis failure is wrapped in [ErrUnavailable]; a missing key is
// [ErrNotFound]. Both are the goDigest sentinels, so callers can match either
// package's name with errors.Is.
package credstore
