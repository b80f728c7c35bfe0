package primitive

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSourceDigests(t *testing.T) {
	src := Default()

	cases := map[Name]string{
		MD5:    "900150983cd24fb0d6963f7d28e17f72",
		SHA256: "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		SHA512: "ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f",
	}
	for name, want := range cases {
		h, err := src.New(name)
		require.NoError(t, err, name)
		_, _ = h.Write([]byte("abc"))
		assert.Equal(t, want, hex.EncodeToString(h.Sum(nil)), name)
		assert.Equal(t, Size(name), h.Size(), name)
	}
}

func TestDefaultSourceReturnsFreshContexts(t *testing.T) {
	src := Default()

	a, err := src.New(SHA256)
	require.NoError(t, err)
	_, _ = a.Write([]byte("dirty"))

	b, err := src.New(SHA256)
	require.NoError(t, err)
	assert.NotSame(t, a, b)
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", hex.EncodeToString(b.Sum(nil)))
}

func TestUnknownPrimitive(t *testing.T) {
	_, err := Default().New("WHIRLPOOL")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 0, Size("WHIRLPOOL"))
}

func TestRestrict(t *testing.T) {
	src := Restrict(Default(), SHA256)

	_, err := src.New(SHA256)
	require.NoError(t, err)

	_, err = src.New(SHA512)
	assert.ErrorIs(t, err, ErrUnavailable)
}
