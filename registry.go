package goDigest

import (
	"fmt"
	"sort"

	"github.com/MrEthical07/goDigest/crypt"
	"github.com/MrEthical07/goDigest/iterated"
	"github.com/MrEthical07/goDigest/policy"
	"github.com/MrEthical07/goDigest/primitive"
)

// Descriptor binds an identifier to an engine and its rank.
type Descriptor struct {
	Identifier    string
	Priority      int
	DefaultRounds int
	Engine        Engine
}

// Registry maps identifiers to engines. It is immutable after [NewRegistry]
// and safe for unsynchronized concurrent reads.
type Registry struct {
	byID    map[string]Descriptor
	ordered []Descriptor
}

// NewRegistry validates descs and builds a registry. Identifiers and
// priorities must be unique. An empty DefaultRounds is filled from the engine
// when it reports one.
func NewRegistry(descs ...Descriptor) (*Registry, error) {
	if len(descs) == 0 {
		return nil, ErrEmptyRegistry
	}

	r := &Registry{
		byID:    make(map[string]Descriptor, len(descs)),
		ordered: make([]Descriptor, 0, len(descs)),
	}
	priorities := make(map[int]string, len(descs))

	for _, d := range descs {
		if d.Engine == nil || d.Identifier == "" || d.Engine.Identifier() != d.Identifier {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDescriptor, d.Identifier)
		}
		if _, ok := r.byID[d.Identifier]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateAlgorithm, d.Identifier)
		}
		if other, ok := priorities[d.Priority]; ok {
			return nil, fmt.Errorf("%w: %d used by %q and %q", ErrDuplicatePriority, d.Priority, other, d.Identifier)
		}
		if d.DefaultRounds == 0 {
			if rd, ok := d.Engine.(roundsDefaulter); ok {
				d.DefaultRounds = rd.DefaultRounds()
			}
		}

		priorities[d.Priority] = d.Identifier
		r.byID[d.Identifier] = d
		r.ordered = append(r.ordered, d)

		if al, ok := d.Engine.(aliaser); ok {
			for _, alias := range al.Aliases() {
				if _, taken := r.byID[alias]; taken || alias == "" {
					return nil, fmt.Errorf("%w: alias %q of %q", ErrDuplicateAlgorithm, alias, d.Identifier)
				}
				r.byID[alias] = d
			}
		}
	}

	sort.Slice(r.ordered, func(i, j int) bool {
		return r.ordered[i].Priority > r.ordered[j].Priority
	})

	return r, nil
}

// Resolve returns the descriptor registered under identifier or one of its
// engine's aliases.
func (r *Registry) Resolve(identifier string) (Descriptor, bool) {
	d, ok := r.byID[identifier]
	return d, ok
}

// Best returns the descriptor with the highest priority.
func (r *Registry) Best() Descriptor {
	return r.ordered[0]
}

// Descriptors returns all descriptors ordered by descending priority.
func (r *Registry) Descriptors() []Descriptor {
	out := make([]Descriptor, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// DefaultDescriptors builds the standard algorithm table from cfg:
//
//	"1" iterated MD5      priority 1
//	"3" iterated SHA-256  priority 2
//	"4" iterated SHA-512  priority 3
//	"5" SHA-256-crypt     priority 4
//	"6" SHA-512-crypt     priority 5
//
// A nil src selects primitive.Default().
func DefaultDescriptors(cfg Config, src primitive.Source) ([]Descriptor, error) {
	if src == nil {
		src = primitive.Default()
	}
	salt, err := policy.NewSalt(cfg.Salt.MinLength, cfg.Salt.Length, cfg.Salt.Alphabet)
	if err != nil {
		return nil, err
	}

	iteratedOpts := []iterated.Option{
		iterated.WithRoundRange(cfg.Rounds.Min, cfg.Rounds.Max),
		iterated.WithSaltPolicy(salt),
		iterated.WithSource(src),
	}
	cryptOpts := []crypt.Option{
		crypt.WithRoundRange(cfg.Rounds.Min, cfg.Rounds.Max),
		crypt.WithSaltPolicy(salt),
		crypt.WithSource(src),
	}

	factories := []struct {
		priority int
		build    func() (Engine, error)
	}{
		{1, func() (Engine, error) { return iterated.NewMD5(iteratedOpts...) }},
		{2, func() (Engine, error) { return iterated.NewSHA256(iteratedOpts...) }},
		{3, func() (Engine, error) { return iterated.NewSHA512(iteratedOpts...) }},
		{4, func() (Engine, error) { return crypt.NewSHA256(cryptOpts...) }},
		{5, func() (Engine, error) { return crypt.NewSHA512(cryptOpts...) }},
	}

	descs := make([]Descriptor, 0, len(factories))
	for _, f := range factories {
		e, err := f.build()
		if err != nil {
			return nil, err
		}
		descs = append(descs, Descriptor{
			Identifier: e.Identifier(),
			Priority:   f.priority,
			Engine:     e,
		})
	}
	return descs, nil
}
