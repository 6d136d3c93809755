// Package randomness provides the uniform-sampling and key-derivation
// primitives the rest of this module draws on: a uniform integer in
// [0,upperExclusive), a uniform Zq exponent, a uniform vector of exponents,
// HKDF-Expand, and KDF-to-Zq with rejection sampling.
//
// PRNG sourcing is treated as an abstract capability rather than a fixed
// implementation: this package defines the Source interface the rest of
// the module programs against, plus one concrete implementation
// (CryptoRandSource, backed by crypto/rand) so the library is usable
// without a caller writing their own. Every protocol draws exactly the
// number of samples its proof documents and never re-reads after a sample
// is consumed.
package randomness

import (
	"crypto/rand"
	"hash"
	"io"
	"math/big"

	"github.com/streetU/crypto-primitives/errs"
	"github.com/streetU/crypto-primitives/group"
	"golang.org/x/crypto/hkdf"
)

// Source is the injected randomness capability every protocol in this
// module draws from. Implementations backing a shared Source across
// goroutines must be thread-safe.
type Source interface {
	// GenInteger returns a value sampled uniformly from [0,upperExclusive).
	GenInteger(upperExclusive *big.Int) (*big.Int, error)
	// GenBytes returns n uniformly random bytes.
	GenBytes(n int) ([]byte, error)
}

// CryptoRandSource is the default Source, backed by crypto/rand. It is
// safe for concurrent use, since crypto/rand.Reader is.
type CryptoRandSource struct{}

// GenInteger implements Source.
func (CryptoRandSource) GenInteger(upperExclusive *big.Int) (*big.Int, error) {
	if upperExclusive == nil || upperExclusive.Sign() <= 0 {
		return nil, errs.New(errs.InvalidInput, "upperExclusive must be positive")
	}
	return rand.Int(rand.Reader, upperExclusive)
}

// GenBytes implements Source.
func (CryptoRandSource) GenBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, errs.New(errs.InvalidInput, "n must be non-negative")
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, err
	}
	return b, nil
}

// UniformExponent draws one element uniformly from Zq.
func UniformExponent(src Source, zq *group.ZqGroup) (*group.ZqElement, error) {
	v, err := src.GenInteger(zq.Q())
	if err != nil {
		return nil, err
	}
	return zq.NewElement(v)
}

// UniformVector draws n elements uniformly from Zq, one Source sample
// each, in index order.
func UniformVector(src Source, zq *group.ZqGroup, n int) (*group.Vector[*group.ZqElement], error) {
	if n <= 0 {
		return nil, errs.New(errs.InvalidInput, "n must be positive")
	}
	elements := make([]*group.ZqElement, n)
	for i := 0; i < n; i++ {
		e, err := UniformExponent(src, zq)
		if err != nil {
			return nil, err
		}
		elements[i] = e
	}
	return group.NewVector(elements)
}

// KDF wraps HKDF-Expand and a Zq-targeted rejection-sampling derivation
// over a fixed hash function.
type KDF struct {
	newHash func() hash.Hash
}

// NewKDF builds a KDF over the given hash constructor.
func NewKDF(newHash func() hash.Hash) *KDF {
	return &KDF{newHash: newHash}
}

// HKDFExpand derives length bytes from a pseudo-random key and an info
// label, per RFC 5869's Expand step.
func (k *KDF) HKDFExpand(prk, info []byte, length int) ([]byte, error) {
	if length <= 0 {
		return nil, errs.New(errs.InvalidInput, "length must be positive")
	}
	reader := hkdf.Expand(k.newHash, prk, info)
	out := make([]byte, length)
	if _, err := io.ReadFull(reader, out); err != nil {
		return nil, err
	}
	return out, nil
}

// KDFToZq derives a uniform Zq element from prk and info via HKDF-Expand,
// rejecting outputs >= q and re-expanding with a counter appended to info
// until an in-range value is found. This eliminates the modulo bias a
// plain reduction would introduce. After 256 rejected attempts it fails
// with InvalidInput.
func (k *KDF) KDFToZq(prk, info []byte, zq *group.ZqGroup) (*group.ZqElement, error) {
	q := zq.Q()
	byteLen := (q.BitLen() + 7) / 8
	for counter := 0; counter < 256; counter++ {
		labeled := append(append([]byte{}, info...), byte(counter))
		out, err := k.HKDFExpand(prk, labeled, byteLen)
		if err != nil {
			return nil, err
		}
		v := new(big.Int).SetBytes(out)
		if v.Cmp(q) < 0 {
			return zq.NewElement(v)
		}
	}
	return nil, errs.New(errs.InvalidInput, "KDFToZq: rejection sampling did not converge")
}
