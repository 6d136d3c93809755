// Package transcript provides the single Fiat-Shamir transcript-building
// helper every argument in zkproof/ uses, so that each prover and its
// verifier hash the same values in the same order and derive challenges
// the same way. The arguments append their statement values and prior
// commitments; the commitment key and public key are not appended.
//
// Grounded in takakv-msc-poc's voteproof.getFSChallenge (hash a fixed,
// ordered sequence of field encodings, then reduce to a scalar) and
// dedis-votegral's deriveNonInteractiveChallenge. Generalized here over
// hashing.Hashable so every argument can append arbitrary structured
// values (vectors, ciphertexts, commitments) instead of flattening to
// bytes by hand at each call site.
package transcript

import (
	"github.com/streetU/crypto-primitives/bignat"
	"github.com/streetU/crypto-primitives/group"
	"github.com/streetU/crypto-primitives/hashing"
	"github.com/streetU/crypto-primitives/randomness"
)

// Builder accumulates an ordered sequence of Hashable values and derives
// Fiat-Shamir challenges from them.
type Builder struct {
	hasher *hashing.Hasher
	kdf    *randomness.KDF
	values []hashing.Hashable
}

// New builds a transcript Builder over the given hasher and KDF. Both must
// share the same underlying hash function for the challenge derivation to
// be consistent with the transcript's own digest.
func New(hasher *hashing.Hasher, kdf *randomness.KDF) *Builder {
	return &Builder{hasher: hasher, kdf: kdf}
}

// Append adds values, in order, to the transcript.
func (b *Builder) Append(values ...hashing.Hashable) {
	b.values = append(b.values, values...)
}

// AppendGq appends the value of a Gq element.
func (b *Builder) AppendGq(e *group.GqElement) {
	b.Append(hashing.Integer(e.Value().Bytes()))
}

// AppendGqVector appends every element of a Gq vector, in order.
func (b *Builder) AppendGqVector(v *group.Vector[*group.GqElement]) {
	for i := 0; i < v.Length(); i++ {
		e, _ := v.Get(i)
		b.AppendGq(e)
	}
}

// AppendZq appends the value of a Zq element.
func (b *Builder) AppendZq(e *group.ZqElement) {
	b.Append(hashing.Integer(bignat.IntegerToByteArray(e.Value())))
}

// Digest returns the recursive hash of the accumulated transcript without
// consuming it; the transcript may still be appended to afterward.
func (b *Builder) Digest() ([]byte, error) {
	return b.hasher.Hash(hashing.List(b.values...))
}

// ChallengeZq derives a single Zq challenge from the transcript built so
// far, via KDF-to-Zq keyed on the transcript digest.
func (b *Builder) ChallengeZq(zq *group.ZqGroup, label []byte) (*group.ZqElement, error) {
	digest, err := b.Digest()
	if err != nil {
		return nil, err
	}
	return b.kdf.KDFToZq(digest, label, zq)
}
