package stablerandom

import (
	"crypto/sha512"
	"math/bits"
)

// Seed reproduces the reference generator's version-2 byte seeding: the
// input is whitened with a trailing SHA-512 digest of itself before being
// split into 32-bit little-endian words and fed to the array-seeding
// routine. This whitening step is part of the exact algorithm being
// replicated, not a hashing convenience — the pinned outputs in the
// originating test suite are unreachable without it.
func (r *Random) Seed(b []byte) {
	digest := sha512.Sum512(b)
	whitened := make([]byte, 0, len(b)+len(digest))
	whitened = append(whitened, b...)
	whitened = append(whitened, digest[:]...)

	key := bytesToUint32LE(whitened)
	if len(key) == 0 {
		key = []uint32{0}
	}
	r.initByArray(key)
}

// bytesToUint32LE treats b as a single big-endian integer and splits it
// into 32-bit little-endian words, least-significant word first, matching
// int.from_bytes(b, 'big') followed by a little-endian 32-bit word split.
func bytesToUint32LE(b []byte) []uint32 {
	// Pad on the left so the length is a multiple of 4, preserving the
	// big-endian integer value.
	pad := (4 - len(b)%4) % 4
	padded := make([]byte, pad+len(b))
	copy(padded[pad:], b)

	words := len(padded) / 4
	out := make([]uint32, words)
	for i := 0; i < words; i++ {
		// Word 0 of the output is the least-significant 32 bits, which
		// live at the tail of the big-endian byte slice.
		off := len(padded) - (i+1)*4
		out[i] = uint32(padded[off])<<24 | uint32(padded[off+1])<<16 | uint32(padded[off+2])<<8 | uint32(padded[off+3])
	}

	// Trim trailing (most-significant) all-zero words, but always leave
	// at least one word behind.
	for len(out) > 1 && out[len(out)-1] == 0 {
		out = out[:len(out)-1]
	}
	return out
}

// GetRandBits returns an unsigned integer with exactly k (1..64) uniformly
// distributed random bits.
func (r *Random) GetRandBits(k int) uint64 {
	if k <= 0 {
		return 0
	}
	if k <= 32 {
		return uint64(r.genrandUint32() >> (32 - uint(k)))
	}

	var result uint64
	shift := uint(0)
	remaining := k
	for remaining > 0 {
		take := remaining
		if take > 32 {
			take = 32
		}
		word := uint64(r.genrandUint32() >> (32 - uint(take)))
		result |= word << shift
		shift += 32
		remaining -= take
	}
	return result
}

// Random returns a float64 in [0, 1), combining two 32-bit draws into a
// 53-bit mantissa exactly as the reference generator's genrand_res53 does.
func (r *Random) Random() float64 {
	a := r.genrandUint32() >> 5
	b := r.genrandUint32() >> 6
	return (float64(a)*67108864.0 + float64(b)) / 9007199254740992.0
}

// randBelow draws a uniform integer in [0, nIn) via rejection sampling on
// k random bits, where k is the bit length of nIn (so a power of two nIn
// draws one bit more than it strictly needs).
func (r *Random) randBelow(nIn int) int {
	if nIn <= 0 {
		return 0
	}
	k := bits.Len(uint(nIn))
	for {
		v := r.GetRandBits(k)
		if v < uint64(nIn) {
			return int(v)
		}
	}
}

// Shuffle permutes the slice in place using Fisher-Yates from the end,
// drawing each swap index with randBelow, matching the reference
// generator's shuffle exactly (including its iteration order, which
// Go's math/rand does not replicate).
func Shuffle[T any](r *Random, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := r.randBelow(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
