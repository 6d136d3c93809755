// Package permutation implements uniform random permutation sampling via
// the Fisher-Yates shuffle, plus helpers to apply a permutation to a vector
// and to build its n x n permutation matrix over Zq.
//
// The shuffle loop itself is grounded in dedis-votegral's shuffle.go
// permutation-generation step (pi[i], pi[j] = pi[j], pi[i] driven by one
// random.Int draw per step, descending from the top), generalized here to
// draw from the injected randomness.Source rather than crypto/rand
// directly.
package permutation

import (
	"math/big"

	"github.com/streetU/crypto-primitives/errs"
	"github.com/streetU/crypto-primitives/group"
	"github.com/streetU/crypto-primitives/randomness"
)

// Permutation is a bijection on {0,...,n-1}, represented by its value list
// pi[0..n-1]; Permute reads pi[i] as the input index whose element lands at
// output index i.
type Permutation struct {
	values []int
}

// New validates and wraps a permutation of {0,...,n-1}.
func New(values []int) (*Permutation, error) {
	n := len(values)
	if n == 0 {
		return nil, errs.New(errs.InvalidInput, "permutation must be non-empty")
	}
	seen := make([]bool, n)
	for _, v := range values {
		if v < 0 || v >= n {
			return nil, errs.Newf(errs.InvalidInput, "permutation value %d out of range [0,%d)", v, n)
		}
		if seen[v] {
			return nil, errs.Newf(errs.InvalidInput, "permutation value %d repeated", v)
		}
		seen[v] = true
	}
	cp := make([]int, n)
	copy(cp, values)
	return &Permutation{values: cp}, nil
}

// Identity returns the identity permutation of size n.
func Identity(n int) (*Permutation, error) {
	values := make([]int, n)
	for i := range values {
		values[i] = i
	}
	return New(values)
}

// Length returns n.
func (p *Permutation) Length() int { return len(p.values) }

// At returns pi[i].
func (p *Permutation) At(i int) (int, error) {
	if i < 0 || i >= len(p.values) {
		return 0, errs.Newf(errs.InvalidInput, "index %d out of range [0,%d)", i, len(p.values))
	}
	return p.values[i], nil
}

// Inverse returns the inverse permutation pi^-1.
func (p *Permutation) Inverse() (*Permutation, error) {
	inv := make([]int, len(p.values))
	for i, v := range p.values {
		inv[v] = i
	}
	return New(inv)
}

// Sample draws a permutation of {0,...,n-1} uniformly at random using the
// Fisher-Yates shuffle: for i from n-1 down to 1, swap position i with a
// uniformly drawn position j in [0,i].
func Sample(src randomness.Source, n int) (*Permutation, error) {
	if n < 1 {
		return nil, errs.New(errs.InvalidInput, "n must be at least 1")
	}
	values := make([]int, n)
	for i := range values {
		values[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j, err := src.GenInteger(big.NewInt(int64(i + 1)))
		if err != nil {
			return nil, err
		}
		jj := int(j.Int64())
		values[i], values[jj] = values[jj], values[i]
	}
	return New(values)
}

// Permute returns a new Vector with v's elements reordered according to
// pi: the element at output index i is the input element at index pi(i).
func Permute[E group.Member](pi *Permutation, v *group.Vector[E]) (*group.Vector[E], error) {
	if pi.Length() != v.Length() {
		return nil, errs.Newf(errs.ShapeError, "permutation size %d does not match vector length %d", pi.Length(), v.Length())
	}
	out := make([]E, v.Length())
	for i := 0; i < v.Length(); i++ {
		srcIdx, err := pi.At(i)
		if err != nil {
			return nil, err
		}
		e, err := v.Get(srcIdx)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return group.NewVector(out)
}

// Matrix returns the n x n permutation matrix of pi over Zq: row i has a 1
// at column pi(i) and 0 elsewhere.
func Matrix(zq *group.ZqGroup, pi *Permutation) (*group.Matrix[*group.ZqElement], error) {
	n := pi.Length()
	rows := make([]*group.Vector[*group.ZqElement], n)
	for i := 0; i < n; i++ {
		target, err := pi.At(i)
		if err != nil {
			return nil, err
		}
		row := make([]*group.ZqElement, n)
		for j := 0; j < n; j++ {
			var val *group.ZqElement
			if j == target {
				val = zq.One()
			} else {
				val = zq.Zero()
			}
			row[j] = val
		}
		rowVec, err := group.NewVector(row)
		if err != nil {
			return nil, err
		}
		rows[i] = rowVec
	}
	return group.NewMatrix(rows)
}
