package crypt

import (
	"hash"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrEthical07/goDigest/codec"
	"github.com/MrEthical07/goDigest/internal"
	"github.com/MrEthical07/goDigest/policy"
	"github.com/MrEthical07/goDigest/primitive"
)

type vector struct {
	plain  string
	salt   string
	rounds int
	sha256 string
	sha512 string
}

// Published crypt-SHA test vectors. Rounds 0 means the default of 5000.
var vectors = []vector{
	{
		plain:  "Hello world!",
		salt:   "saltstring",
		sha256: "$5$saltstring$5B8vYYiY.CVt1RlTTf8KbXBH3hsxY/GNooZaBBGWEc5",
		sha512: "$6$saltstring$svn8UoSVapNtMuq1ukKS4tPQd8iKwSMHWjl/O817G3uBnIFNjnQJuesI68u4OTLiBFdcbYEdFCoEOfaS35inz1",
	},
	{
		plain:  "Hello world!",
		salt:   "saltstringsaltstring",
		rounds: 10000,
		sha256: "$5$rounds=10000$saltstringsaltst$3xv.VbSHBb41AL9AvLeujZkZRBAwqFMz2.opqey6IcA",
		sha512: "$6$rounds=10000$saltstringsaltst$OW1/O6BYHV6BcXZu8QVeXbDWra3Oeqh0sbHbbMCVNSnCM/UrjmM0Dp8vOuZeHBy/YTBmSK6H9qs/y3RnOaw5v.",
	},
	{
		plain:  "This is just a test",
		salt:   "toolongsaltstring",
		rounds: 5000,
		sha256: "$5$toolongsaltstrin$Un/5jzAHMgOGZ5.mWJpuVolil07guHPvOW8mGRcvxa5",
		sha512: "$6$toolongsaltstrin$lQ8jolhgVRVhY4b5pZKaysCLi0QBxGoNeKQzQ3glMhwllF7oGDZxUhx1yxdYcz/e1JSbq3y6JMxxl8audkUEm0",
	},
	{
		plain:  "a very much longer text to encrypt.  This one even stretches over morethan one line.",
		salt:   "anotherlongsaltstring",
		rounds: 1400,
		sha256: "$5$rounds=1400$anotherlongsalts$Rx.j8H.h8HjEDGomFU8bDkXm3XIUnzyxf12oP84Bnq1",
		sha512: "$6$rounds=1400$anotherlongsalts$POfYwTEok97VWcjxIiSOjiykti.o/pQs.wPvMxQ6Fm7I6IoYN3CmLs66x9t0oSwbtEW7o7UmJEiDwGqd8p4ur1",
	},
	{
		plain:  "we have a short salt string but not a short password",
		salt:   "short",
		rounds: 77777,
		sha256: "$5$rounds=77777$short$JiO1O3ZpDAxGJeaDIuqCoEFysAe1mZNJRs3pw0KQRd/",
		sha512: "$6$rounds=77777$short$WuQyW2YR.hBNpjjRhpYD/ifIw05xdfeEyQoMxIXbkvr0gge1a1x3yRULJ5CCaUeOxFmtlcGZelFl5CxtgfiAc0",
	},
	{
		plain:  "a short string",
		salt:   "asaltof16chars..",
		rounds: 123456,
		sha256: "$5$rounds=123456$asaltof16chars..$gP3VQ/6X7UUEW3HkBn2w1/Ptq2jxPyzV/cZKmF/wJvD",
		sha512: "$6$rounds=123456$asaltof16chars..$BtCwjqMJGx5hrJhZywWvt0RLE8uZ4oPwcelCjmw2kSYu.Ec6ycULevoBK25fs2xXgMNrCzIMVcgEJAstJeonj1",
	},
	{
		plain:  "the minimum number is still observed",
		salt:   "roundstoolow",
		rounds: 10,
		sha256: "$5$rounds=1000$roundstoolow$yfvwcWrQ8l/K0DAWyuPMDNHpIVlTQebY9l/gL972bIC",
		sha512: "$6$rounds=1000$roundstoolow$kUMsbe306n21p9R.FRkW3IGn.S9NPN0x50YhH1xhLsPuWGsUSklZt58jaTfF4ZEQpyUNGc0dqbpBYYBaHHrsX.",
	},
}

// The reference vectors assume glibc's bounds rather than the library default.
func referenceEngines(t *testing.T) (*Engine, *Engine) {
	t.Helper()
	e256, err := NewSHA256(WithRoundRange(1000, 999999999))
	require.NoError(t, err)
	e512, err := NewSHA512(WithRoundRange(1000, 999999999))
	require.NoError(t, err)
	return e256, e512
}

func TestReferenceVectors(t *testing.T) {
	e256, e512 := referenceEngines(t)

	for _, v := range vectors {
		t.Run(v.salt, func(t *testing.T) {
			got, err := e256.Hash([]byte(v.plain), v.salt, v.rounds)
			require.NoError(t, err)
			assert.Equal(t, v.sha256, got)
			assert.True(t, e256.Verify([]byte(v.plain), v.sha256))

			got, err = e512.Hash([]byte(v.plain), v.salt, v.rounds)
			require.NoError(t, err)
			assert.Equal(t, v.sha512, got)
			assert.True(t, e512.Verify([]byte(v.plain), v.sha512))
		})
	}
}

func TestEncodedLengths(t *testing.T) {
	assert.Equal(t, 43, encodedLen(sha256Groups))
	assert.Equal(t, 86, encodedLen(sha512Groups))
}

func TestPermutationTablesCoverEveryByte(t *testing.T) {
	for width, groups := range map[int][]group{32: sha256Groups, 64: sha512Groups} {
		seen := make(map[int]int)
		for _, g := range groups {
			for _, i := range []int{g.b2, g.b1, g.b0} {
				if i != zero {
					seen[i]++
				}
			}
		}
		assert.Len(t, seen, width)
		for i := 0; i < width; i++ {
			assert.Equal(t, 1, seen[i], "byte %d of %d-byte digest", i, width)
		}
	}
}

func TestHashIsDeterministic(t *testing.T) {
	e, err := NewSHA512()
	require.NoError(t, err)

	a, err := e.Hash([]byte("correct horse"), "fixedsalt", 6000)
	require.NoError(t, err)
	b, err := e.Hash([]byte("correct horse"), "fixedsalt", 6000)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.True(t, strings.HasPrefix(a, "$6$rounds=6000$fixedsalt$"))
}

func TestVerifyRejectsOtherPassword(t *testing.T) {
	e, err := NewSHA256()
	require.NoError(t, err)

	encoded, err := e.Hash([]byte("first"), "", 0)
	require.NoError(t, err)

	assert.True(t, e.Verify([]byte("first"), encoded))
	assert.False(t, e.Verify([]byte("second"), encoded))
	assert.False(t, e.Verify([]byte("First"), encoded))
}

func TestVerifyRejectsForeignAndMalformed(t *testing.T) {
	e256, e512 := referenceEngines(t)
	v := vectors[0]

	assert.False(t, e512.Verify([]byte(v.plain), v.sha256))
	assert.False(t, e256.Verify([]byte(v.plain), v.sha512))
	assert.False(t, e256.Verify([]byte(v.plain), "not-a-valid-hash"))
	assert.False(t, e256.Verify([]byte(v.plain), ""))
	assert.False(t, e256.Verify(nil, v.sha256))
}

// Hashes at the default count are compared in their canonical form, so a
// redundant explicit rounds=5000 clause does not verify.
func TestVerifyRequiresCanonicalForm(t *testing.T) {
	e256, _ := referenceEngines(t)
	v := vectors[0]

	explicit := strings.Replace(v.sha256, "$5$", "$5$rounds=5000$", 1)
	assert.False(t, e256.Verify([]byte(v.plain), explicit))
}

func TestVerifyIgnoresGenerationRange(t *testing.T) {
	e, err := NewSHA512()
	require.NoError(t, err)

	// rounds=10000 and rounds=1000 both fall outside the default [5000, 9000].
	assert.True(t, e.Verify([]byte(vectors[1].plain), vectors[1].sha512))
	assert.True(t, e.Verify([]byte(vectors[6].plain), vectors[6].sha512))

	narrow, err := NewSHA512(WithRoundRange(6000, 7000))
	require.NoError(t, err)
	assert.True(t, narrow.Verify([]byte(vectors[0].plain), vectors[0].sha512))
}

func TestVerifyRoundLimit(t *testing.T) {
	e, err := NewSHA256(WithVerifyRoundLimit(50000))
	require.NoError(t, err)

	assert.True(t, e.Verify([]byte(vectors[1].plain), vectors[1].sha256))
	assert.False(t, e.Verify([]byte(vectors[4].plain), vectors[4].sha256))

	_, err = NewSHA256(WithVerifyRoundLimit(8000))
	assert.ErrorIs(t, err, policy.ErrInvalidVerifyLimit)
}

func TestRecognizes(t *testing.T) {
	e256, e512 := referenceEngines(t)

	assert.True(t, e512.Recognizes(vectors[0].sha512))
	assert.True(t, e256.Recognizes(vectors[1].sha256))
	assert.False(t, e256.Recognizes(vectors[0].sha512))
	for _, in := range []string{"$6$not-a-valid-hash", "$6$", "$6$rounds=x$salt$digest", "$6$a$b$c$d"} {
		assert.False(t, e512.Recognizes(in), in)
	}
}

func TestNilPlaintext(t *testing.T) {
	e, err := NewSHA256()
	require.NoError(t, err)

	_, err = e.Hash(nil, "salt", 0)
	assert.ErrorIs(t, err, internal.ErrNilPlaintext)

	_, err = e.Generate(nil)
	assert.ErrorIs(t, err, internal.ErrNilPlaintext)

	encoded, err := e.Hash([]byte{}, "salt", 0)
	require.NoError(t, err)
	assert.True(t, e.Verify([]byte{}, encoded))
}

func TestRoundsAreClampedToRange(t *testing.T) {
	e, err := NewSHA256(WithRoundRange(5000, 9000))
	require.NoError(t, err)

	low, err := e.Hash([]byte("pw"), "salt", 10)
	require.NoError(t, err)
	assert.Equal(t, "$5$salt$", low[:len("$5$salt$")])

	high, err := e.Hash([]byte("pw"), "salt", 50000)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(high, "$5$rounds=9000$salt$"))

	def, err := e.Hash([]byte("pw"), "salt", -1)
	require.NoError(t, err)
	assert.Equal(t, low, def)
}

func TestGenerateFormat(t *testing.T) {
	e, err := NewSHA512()
	require.NoError(t, err)

	re := regexp.MustCompile(`^\$6\$(rounds=(\d+)\$)?[a-zA-Z0-9]{16}\$[./0-9A-Za-z]{86}$`)
	for i := 0; i < 5; i++ {
		encoded, err := e.Generate([]byte("secret"))
		require.NoError(t, err)
		require.Regexp(t, re, encoded)

		parsed, err := codec.Parse(encoded)
		require.NoError(t, err)
		rounds := parsed.RoundsOr(DefaultRounds)
		assert.GreaterOrEqual(t, rounds, policy.DefaultMinRounds)
		assert.Less(t, rounds, policy.DefaultMaxRounds)

		assert.True(t, e.Verify([]byte("secret"), encoded))
	}
}

func TestSaltPolicyIsApplied(t *testing.T) {
	salt, err := policy.NewSalt(4, 8, "ab")
	require.NoError(t, err)

	e, err := NewSHA256(WithSaltPolicy(salt))
	require.NoError(t, err)

	encoded, err := e.Hash([]byte("pw"), "", 0)
	require.NoError(t, err)
	parsed, err := codec.Parse(encoded)
	require.NoError(t, err)
	assert.Regexp(t, `^[ab]{8}$`, parsed.Salt)

	encoded, err = e.Hash([]byte("pw"), "0123456789", 0)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$5$01234567$"))
}

func TestSaltWithSeparatorIsRejected(t *testing.T) {
	e, err := NewSHA256()
	require.NoError(t, err)

	_, err = e.Hash([]byte("pw"), "ab$cd", 0)
	assert.ErrorIs(t, err, codec.ErrInvalidSalt)
}

func TestInvalidRoundRange(t *testing.T) {
	_, err := NewSHA512(WithRoundRange(9000, 5000))
	assert.ErrorIs(t, err, policy.ErrInvalidRoundRange)
}

func TestUnavailablePrimitive(t *testing.T) {
	e, err := NewSHA512(WithSource(primitive.Restrict(primitive.Default(), primitive.SHA256)))
	require.NoError(t, err)

	_, err = e.Hash([]byte("pw"), "salt", 0)
	assert.ErrorIs(t, err, primitive.ErrUnavailable)
	assert.False(t, e.Verify([]byte("Hello world!"), vectors[0].sha512))
}

type countingSource struct {
	mu    sync.Mutex
	calls int
}

func (c *countingSource) New(name primitive.Name) (hash.Hash, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	return primitive.Default().New(name)
}

func TestEachCallGetsOwnContext(t *testing.T) {
	src := &countingSource{}
	e, err := NewSHA256(WithSource(src), WithRoundRange(1000, 999999999))
	require.NoError(t, err)

	v := vectors[0]
	const workers = 8

	var wg sync.WaitGroup
	results := make([]string, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = e.Hash([]byte(v.plain), v.salt, 0)
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, v.sha256, r)
	}
	assert.Equal(t, workers, src.calls)
}
