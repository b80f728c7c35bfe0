package iterated

import (
	"strconv"
	"strings"

	"github.com/MrEthical07/goDigest/codec"
)

// fields is the parsed form of
//
//	"$" identifier "$" iterations "$" salt "$" digest
//
// The iteration count is always present. The digest is standard base64 and
// never contains '$', so the salt runs up to the last separator.
type fields struct {
	id     string
	rounds int
	salt   string
	digest string
}

func format(e fields) string {
	var b strings.Builder
	b.Grow(len(e.id) + len(e.salt) + len(e.digest) + 14)

	b.WriteString(codec.Prefix(e.id))
	b.WriteString(strconv.Itoa(e.rounds))
	b.WriteByte('$')
	b.WriteString(e.salt)
	b.WriteByte('$')
	b.WriteString(e.digest)
	return b.String()
}

func parse(s string) (fields, error) {
	id, err := codec.Identifier(s)
	if err != nil {
		return fields{}, err
	}
	rest := s[len(id)+2:]

	end := strings.IndexByte(rest, '$')
	if end <= 0 {
		return fields{}, codec.ErrMalformed
	}
	rounds, err := parseIterations(rest[:end])
	if err != nil {
		return fields{}, err
	}
	rest = rest[end+1:]

	sep := strings.LastIndexByte(rest, '$')
	if sep <= 0 || sep == len(rest)-1 {
		return fields{}, codec.ErrMalformed
	}

	return fields{id: id, rounds: rounds, salt: rest[:sep], digest: rest[sep+1:]}, nil
}

func parseIterations(s string) (int, error) {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, codec.ErrMalformed
		}
	}
	v, err := strconv.ParseUint(s, 10, 31)
	if err != nil {
		return 0, codec.ErrMalformed
	}
	return int(v), nil
}
