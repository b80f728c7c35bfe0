package goDigest

import (
	"errors"

	"github.com/MrEthical07/goDigest/internal"
)

var (
	// ErrNilPlaintext is returned when hashing is asked for an absent plaintext.
	ErrNilPlaintext = internal.ErrNilPlaintext
	// ErrBuilderUsed is returned when Build is called more than once.
	ErrBuilderUsed = errors.New("builder already used")
	// ErrEmptyRegistry is returned when a registry is built without algorithms.
	ErrEmptyRegistry = errors.New("registry requires at least one algorithm")
	// ErrDuplicateAlgorithm is returned when two descriptors share an identifier.
	ErrDuplicateAlgorithm = errors.New("duplicate algorithm identifier")
	// ErrDuplicatePriority is returned when two descriptors share a priority.
	ErrDuplicatePriority = errors.New("duplicate algorithm priority")
	// ErrInvalidDescriptor is returned for descriptors without an engine or
	// whose identifier disagrees with the engine's.
	ErrInvalidDescriptor = errors.New("invalid algorithm descriptor")
	// ErrCredentialNotFound is returned by Authenticate when the store has no hash for the user.
	ErrCredentialNotFound = errors.New("credential not found")
	// ErrCredentialStoreUnavailable is returned by Authenticate when the store cannot be read.
	ErrCredentialStoreUnavailable = errors.New("credential store unavailable")
)
