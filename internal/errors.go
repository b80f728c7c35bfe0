package internal

import "errors"

// ErrNilPlaintext is shared by every engine so callers can match it through
// goDigest.ErrNilPlaintext regardless of which engine produced it.
var ErrNilPlaintext = errors.New("plaintext is nil")
