package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/MrEthical07/goDigest/codec"
	"github.com/MrEthical07/goDigest/internal"
)

// IdentifierBcrypt tags bcrypt hashes produced by golang.org/x/crypto/bcrypt.
const IdentifierBcrypt = "2a"

// bcrypt revisions golang.org/x/crypto/bcrypt verifies besides "2a".
var bcryptAliases = []string{"2b", "2y"}

// Bcrypt is a bcrypt engine that plugs into the goDigest registry.
type Bcrypt struct {
	cost int
}

// NewBcrypt returns an engine hashing at cost. A cost of zero selects
// bcrypt.DefaultCost; other values outside bcrypt's range are rejected.
func NewBcrypt(cost int) (*Bcrypt, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, bcrypt.InvalidCostError(cost)
	}
	return &Bcrypt{cost: cost}, nil
}

// Identifier returns "2a", the revision new hashes are written with.
func (b *Bcrypt) Identifier() string { return IdentifierBcrypt }

// Aliases returns the other bcrypt revisions Verify accepts.
func (b *Bcrypt) Aliases() []string {
	return append([]string(nil), bcryptAliases...)
}

// Generate hashes plain at the engine's cost with a random salt.
func (b *Bcrypt) Generate(plain []byte) (string, error) {
	return b.Hash(plain, "", 0)
}

// Hash returns a bcrypt hash of plain. bcrypt embeds its own random salt, so
// a supplied salt is rejected. rounds > 0 is used as the cost, clamped to
// bcrypt's range.
func (b *Bcrypt) Hash(plain []byte, salt string, rounds int) (string, error) {
	if plain == nil {
		return "", internal.ErrNilPlaintext
	}
	if salt != "" {
		return "", ErrSaltUnsupported
	}

	cost := b.cost
	switch {
	case rounds <= 0:
	case rounds < bcrypt.MinCost:
		cost = bcrypt.MinCost
	case rounds > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	default:
		cost = rounds
	}

	out, err := bcrypt.GenerateFromPassword(plain, cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		return "", err
	}
	return string(out), nil
}

// Verify reports whether encoded is a bcrypt hash of plain. The "2a", "2b"
// and "2y" revisions are accepted.
func (b *Bcrypt) Verify(plain []byte, encoded string) bool {
	if plain == nil || !b.Recognizes(encoded) {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(encoded), plain) == nil
}

// Recognizes reports whether encoded is a well-formed bcrypt hash.
func (b *Bcrypt) Recognizes(encoded string) bool {
	id, err := codec.Identifier(encoded)
	if err != nil || !isBcryptIdentifier(id) {
		return false
	}
	_, err = bcrypt.Cost([]byte(encoded))
	return err == nil && len(encoded) == bcryptHashLen
}

// bcryptHashLen is the length of "$2a$NN$" plus 22 salt and 31 hash characters.
const bcryptHashLen = 60

func isBcryptIdentifier(id string) bool {
	if id == IdentifierBcrypt {
		return true
	}
	for _, alias := range bcryptAliases {
		if id == alias {
			return true
		}
	}
	return false
}

// NeedsUpgrade reports whether encoded uses a lower cost than the engine.
func (b *Bcrypt) NeedsUpgrade(encoded string) (bool, error) {
	cost, err := bcrypt.Cost([]byte(encoded))
	if err != nil {
		return false, err
	}
	return cost < b.cost, nil
}
