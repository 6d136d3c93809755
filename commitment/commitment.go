// Package commitment implements Pedersen vector and matrix commitments
// over Gq, plus a KDF-derived, verifiable commitment key.
//
// The single-value case is grounded in takakv-msc-poc's util.PedersenCommit
// (C = g^x * h^r); this package generalizes it to vectors (C = h^r *
// prod g_i^{x_i}) and matrices (one column commitment per column, sharing
// one commitment key across all columns), following the commitment-key
// shape getamis-alice's crypto/commitment/pedersen.go uses for its own
// vector commitment.
package commitment

import (
	"math/big"

	"github.com/streetU/crypto-primitives/errs"
	"github.com/streetU/crypto-primitives/group"
	"github.com/streetU/crypto-primitives/hashing"
	"github.com/streetU/crypto-primitives/randomness"
)

// Key is a Pedersen commitment key (h, g_1..g_n) over Gq: h is the
// blinding base and g_1..g_n are the message bases. n is the maximum
// vector length the key can commit to.
type Key struct {
	group *group.GqGroup
	h     *group.GqElement
	gs    *group.Vector[*group.GqElement]
}

// NewKey validates and wraps an (h, gs) pair as a commitment key. h and
// every element of gs must be non-identity members of gq.
func NewKey(gq *group.GqGroup, h *group.GqElement, gs *group.Vector[*group.GqElement]) (*Key, error) {
	if gs.Length() == 0 {
		return nil, errs.New(errs.InvalidInput, "commitment key needs at least one message base")
	}
	if h.IsIdentity() {
		return nil, errs.New(errs.InvalidInput, "blinding base h must not be the identity")
	}
	for i := 0; i < gs.Length(); i++ {
		gi, err := gs.Get(i)
		if err != nil {
			return nil, err
		}
		if gi.IsIdentity() {
			return nil, errs.New(errs.InvalidInput, "message base must not be the identity")
		}
	}
	return &Key{group: gq, h: h, gs: gs}, nil
}

// Size returns n, the maximum committable vector length.
func (k *Key) Size() int { return k.gs.Length() }

// H returns the blinding base.
func (k *Key) H() *group.GqElement { return k.h }

// G returns the i-th message base.
func (k *Key) G(i int) (*group.GqElement, error) { return k.gs.Get(i) }

// Group returns the ambient Gq group.
func (k *Key) Group() *group.GqGroup { return k.group }

// DeriveKey derives a verifiable commitment key of size n from a public
// seed: every base is an HKDF-Expand output (label_i with a counter byte
// appended) squared mod p, so it lands in Gq without any exponent being
// known; values 0, 1 and g are rejected and the counter advanced, and
// after 256 rejected attempts DeriveKey fails with InvalidInput.
func DeriveKey(gq *group.GqGroup, zq *group.ZqGroup, kdf *randomness.KDF, seed []byte, n int) (*Key, error) {
	if n < 1 {
		return nil, errs.New(errs.InvalidInput, "n must be at least 1")
	}
	generator := gq.Generator()
	p := gq.P()
	deriveBase := func(label []byte) (*group.GqElement, error) {
		for counter := 0; counter < 256; counter++ {
			info := append(append([]byte{}, label...), byte(counter))
			out, err := kdf.HKDFExpand(seed, info, (p.BitLen()+7)/8)
			if err != nil {
				return nil, err
			}
			v := new(big.Int).SetBytes(out)
			v.Mul(v, v).Mod(v, p)
			if v.Cmp(big.NewInt(1)) > 0 && v.Cmp(generator.Value()) != 0 {
				return gq.NewElement(v)
			}
		}
		return nil, errs.New(errs.InvalidInput, "commitment key derivation did not converge")
	}
	h, err := deriveBase([]byte("commitment-key/h"))
	if err != nil {
		return nil, err
	}
	gs := make([]*group.GqElement, n)
	for i := 0; i < n; i++ {
		label := append([]byte("commitment-key/g/"), byte(i>>8), byte(i))
		gi, err := deriveBase(label)
		if err != nil {
			return nil, err
		}
		gs[i] = gi
	}
	gsVec, err := group.NewVector(gs)
	if err != nil {
		return nil, err
	}
	return NewKey(gq, h, gsVec)
}

// Commitment is the output of committing to a vector: a single Gq element.
type Commitment struct {
	value *group.GqElement
}

// Value returns the underlying Gq element.
func (c *Commitment) Value() *group.GqElement { return c.value }

// FromValue wraps an already-computed Gq element as a Commitment, for
// callers that derive a commitment homomorphically (e.g. exponentiating
// or combining existing commitments) rather than via Commit.
func FromValue(v *group.GqElement) *Commitment { return &Commitment{value: v} }

// Equal reports whether two commitments carry the same value.
func (c *Commitment) Equal(o *Commitment) bool { return c.value.Equal(o.value) }

// Commit computes C = h^r * prod_{i=1}^{m} g_i^{x_i} for a message vector
// x of length m <= k.Size() and randomness r.
func Commit(k *Key, x *group.Vector[*group.ZqElement], r *group.ZqElement) (*Commitment, error) {
	m := x.Length()
	if m == 0 {
		return nil, errs.New(errs.InvalidInput, "message vector must be non-empty")
	}
	if m > k.Size() {
		return nil, errs.Newf(errs.ShapeError, "message length %d exceeds key size %d", m, k.Size())
	}
	acc, err := k.h.Exponentiate(r)
	if err != nil {
		return nil, err
	}
	for i := 0; i < m; i++ {
		xi, err := x.Get(i)
		if err != nil {
			return nil, err
		}
		gi, err := k.G(i)
		if err != nil {
			return nil, err
		}
		term, err := gi.Exponentiate(xi)
		if err != nil {
			return nil, err
		}
		acc, err = acc.Multiply(term)
		if err != nil {
			return nil, err
		}
	}
	return &Commitment{value: acc}, nil
}

// CommitMatrix commits to each column of a matrix independently, reusing
// the same key and one randomness element per column, returning one
// commitment per column in column order.
func CommitMatrix(k *Key, x *group.Matrix[*group.ZqElement], r *group.Vector[*group.ZqElement]) ([]*Commitment, error) {
	cols := x.NumColumns()
	if r.Length() != cols {
		return nil, errs.Newf(errs.ShapeError, "randomness length %d does not match column count %d", r.Length(), cols)
	}
	out := make([]*Commitment, cols)
	for j := 0; j < cols; j++ {
		col, err := x.Column(j)
		if err != nil {
			return nil, err
		}
		rj, err := r.Get(j)
		if err != nil {
			return nil, err
		}
		c, err := Commit(k, col, rj)
		if err != nil {
			return nil, err
		}
		out[j] = c
	}
	return out, nil
}

// Open verifies that c is a commitment to x with randomness r under k,
// recomputing the commitment and comparing in constant structure (not
// constant time: commitment opening is a public verification step, not a
// secret comparison).
func Open(k *Key, c *Commitment, x *group.Vector[*group.ZqElement], r *group.ZqElement) (bool, error) {
	recomputed, err := Commit(k, x, r)
	if err != nil {
		return false, err
	}
	return c.Equal(recomputed), nil
}

// TranscriptValue renders a commitment as a hashing.Hashable for inclusion
// in a Fiat-Shamir transcript.
func TranscriptValue(c *Commitment) hashing.Hashable {
	return hashing.Bytes(c.value.Value().Bytes())
}
