// Package key implements LiteHashKey, the station-name key used by the
// aggregation table, along with the pluggable hashing strategies: the lite
// length+prefix digest, or a general-purpose hasher used as a pre-hashed
// identity.
package key

import (
	"bytes"

	"github.com/cespare/xxhash/v2"
	"github.com/dchest/siphash"
)

// Hasher computes the 64-bit digest used as a map bucket identity. The
// table it feeds bypasses its default hashing and treats the digest as
// the bucket address directly, so Hasher implementations should spread
// bits well across the full 64-bit range.
type Hasher interface {
	Hash(name []byte) uint64
}

// LiteHasher is a cheap length+prefix digest: bits 0..7 hold the name's
// length, and for each of the first 7 bytes, byte i occupies bits
// ((i+1)*8)..((i+2)*8). Names longer than ~8 bytes are dominated by shared
// prefixes in the canonical dataset, so folding in the length is enough to
// avoid observable collisions at n ~= 500 distinct names; it does not
// strengthen collision resistance in general. Byte 0 of the name
// deliberately does not overlap the length field; this is a design choice,
// not an oversight.
type LiteHasher struct{}

// Hash implements Hasher.
func (LiteHasher) Hash(name []byte) uint64 {
	digest := uint64(len(name) & 0xFF)
	n := len(name)
	if n > 7 {
		n = 7
	}
	for i := 0; i < n; i++ {
		digest |= uint64(name[i]) << ((uint(i) + 1) * 8)
	}
	return digest
}

// XXHasher delegates to xxhash, one of the "any high-quality hasher"
// alternatives in place of the lite digest.
type XXHasher struct{}

// Hash implements Hasher.
func (XXHasher) Hash(name []byte) uint64 {
	return xxhash.Sum64(name)
}

// SipHasher delegates to siphash-2-4 with a fixed key, the second
// high-quality alternative. The key need not be secret here; station
// names are not adversarial input.
type SipHasher struct {
	K0, K1 uint64
}

// NewSipHasher returns a SipHasher with a fixed, non-secret key.
func NewSipHasher() SipHasher {
	return SipHasher{K0: 0x646f6e7477617374, K1: 0x206861766520756e}
}

// Hash implements Hasher.
func (h SipHasher) Hash(name []byte) uint64 {
	return siphash.Hash(h.K0, h.K1, name)
}

// LiteHashKey is an owned byte sequence used as a hash-map key, paired
// with a precomputed digest. Equality and ordering are full byte-wise
// comparisons; the digest is only ever used as a bucket address, so
// collisions are safe as long as the table compares keys by Equal.
type LiteHashKey struct {
	name   []byte
	digest uint64
}

// New builds a LiteHashKey over a copy of name, hashed with hasher.
// The caller's buffer is not retained.
func New(hasher Hasher, name []byte) LiteHashKey {
	owned := make([]byte, len(name))
	copy(owned, name)
	return LiteHashKey{name: owned, digest: hasher.Hash(owned)}
}

// Digest returns the precomputed 64-bit bucket identity.
func (k LiteHashKey) Digest() uint64 {
	return k.digest
}

// Bytes returns the underlying station name bytes. Callers must not
// mutate the returned slice.
func (k LiteHashKey) Bytes() []byte {
	return k.name
}

// Equal reports full byte-wise equality.
func (k LiteHashKey) Equal(other LiteHashKey) bool {
	return bytes.Equal(k.name, other.name)
}

// Less reports lexicographic ordering over raw bytes.
func (k LiteHashKey) Less(other LiteHashKey) bool {
	return bytes.Compare(k.name, other.name) < 0
}
