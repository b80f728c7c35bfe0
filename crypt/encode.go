package crypt

const alphabet = "./0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// zero marks a group position filled with a zero byte.
const zero = -1

// group names the digest bytes packed into one 24-bit value (b2 high, b0 low)
// and how many 6-bit characters are emitted from it.
type group struct {
	b2, b1, b0 int
	n          int
}

var sha256Groups = []group{
	{0, 10, 20, 4}, {21, 1, 11, 4}, {12, 22, 2, 4}, {3, 13, 23, 4},
	{24, 4, 14, 4}, {15, 25, 5, 4}, {6, 16, 26, 4}, {27, 7, 17, 4},
	{18, 28, 8, 4}, {9, 19, 29, 4},
	{zero, 31, 30, 3},
}

var sha512Groups = []group{
	{0, 21, 42, 4}, {22, 43, 1, 4}, {44, 2, 23, 4}, {3, 24, 45, 4},
	{25, 46, 4, 4}, {47, 5, 26, 4}, {6, 27, 48, 4}, {28, 49, 7, 4},
	{50, 8, 29, 4}, {9, 30, 51, 4}, {31, 52, 10, 4}, {53, 11, 32, 4},
	{12, 33, 54, 4}, {34, 55, 13, 4}, {56, 14, 35, 4}, {15, 36, 57, 4},
	{37, 58, 16, 4}, {59, 17, 38, 4}, {18, 39, 60, 4}, {40, 61, 19, 4},
	{62, 20, 41, 4},
	{zero, zero, 63, 2},
}

// encodedLen returns the number of characters groups produce.
func encodedLen(groups []group) int {
	n := 0
	for _, g := range groups {
		n += g.n
	}
	return n
}

// encode renders sum with the permuted crypt base64 described by groups.
func encode(sum []byte, groups []group) string {
	out := make([]byte, 0, encodedLen(groups))
	for _, g := range groups {
		v := uint32(at(sum, g.b2))<<16 | uint32(at(sum, g.b1))<<8 | uint32(at(sum, g.b0))
		for i := 0; i < g.n; i++ {
			out = append(out, alphabet[v&0x3f])
			v >>= 6
		}
	}
	return string(out)
}

func at(sum []byte, i int) byte {
	if i == zero {
		return 0
	}
	return sum[i]
}
