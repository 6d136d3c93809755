// Package zkutil holds small Zq arithmetic helpers shared by every
// argument under zkproof/: scalar exponentiation by a non-negative int,
// power vectors, inner products, and the polynomial-coefficient expansion
// the single-value-product argument uses to bind a committed vector
// opening to a claimed product.
package zkutil

import (
	"github.com/streetU/crypto-primitives/errs"
	"github.com/streetU/crypto-primitives/group"
)

// Pow returns x^k for a non-negative int k, computed by repeated
// multiplication in Zq.
func Pow(x *group.ZqElement, zq *group.ZqGroup, k int) (*group.ZqElement, error) {
	if k < 0 {
		return nil, errs.New(errs.InvalidInput, "exponent must be non-negative")
	}
	acc := zq.One()
	for i := 0; i < k; i++ {
		var err error
		acc, err = acc.Multiply(x)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// PowVector returns (x^0, x^1, ..., x^{n-1}).
func PowVector(x *group.ZqElement, zq *group.ZqGroup, n int) (*group.Vector[*group.ZqElement], error) {
	elements := make([]*group.ZqElement, n)
	for i := 0; i < n; i++ {
		p, err := Pow(x, zq, i)
		if err != nil {
			return nil, err
		}
		elements[i] = p
	}
	return group.NewVector(elements)
}

// InnerProduct returns sum_i a_i*b_i over Zq for equal-length vectors.
func InnerProduct(a, b *group.Vector[*group.ZqElement], zq *group.ZqGroup) (*group.ZqElement, error) {
	if a.Length() != b.Length() {
		return nil, errs.Newf(errs.ShapeError, "vector lengths differ: %d, %d", a.Length(), b.Length())
	}
	acc := zq.Zero()
	for i := 0; i < a.Length(); i++ {
		ai, err := a.Get(i)
		if err != nil {
			return nil, err
		}
		bi, err := b.Get(i)
		if err != nil {
			return nil, err
		}
		term, err := ai.Multiply(bi)
		if err != nil {
			return nil, err
		}
		acc, err = acc.Add(term)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// StarMap computes the bilinear form <a,b>_y = sum_i a_i*b_i*y^i used by
// the zero argument.
func StarMap(a, b *group.Vector[*group.ZqElement], y *group.ZqElement, zq *group.ZqGroup) (*group.ZqElement, error) {
	if a.Length() != b.Length() {
		return nil, errs.Newf(errs.ShapeError, "vector lengths differ: %d, %d", a.Length(), b.Length())
	}
	acc := zq.Zero()
	for i := 0; i < a.Length(); i++ {
		ai, err := a.Get(i)
		if err != nil {
			return nil, err
		}
		bi, err := b.Get(i)
		if err != nil {
			return nil, err
		}
		yi, err := Pow(y, zq, i)
		if err != nil {
			return nil, err
		}
		term, err := ai.Multiply(bi)
		if err != nil {
			return nil, err
		}
		term, err = term.Multiply(yi)
		if err != nil {
			return nil, err
		}
		acc, err = acc.Add(term)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// AddScaled returns a + scalar*b, componentwise, for equal-length vectors.
func AddScaled(a, b *group.Vector[*group.ZqElement], scalar *group.ZqElement, zq *group.ZqGroup) (*group.Vector[*group.ZqElement], error) {
	if a.Length() != b.Length() {
		return nil, errs.Newf(errs.ShapeError, "vector lengths differ: %d, %d", a.Length(), b.Length())
	}
	out := make([]*group.ZqElement, a.Length())
	for i := 0; i < a.Length(); i++ {
		ai, err := a.Get(i)
		if err != nil {
			return nil, err
		}
		bi, err := b.Get(i)
		if err != nil {
			return nil, err
		}
		scaled, err := bi.Multiply(scalar)
		if err != nil {
			return nil, err
		}
		sum, err := ai.Add(scaled)
		if err != nil {
			return nil, err
		}
		out[i] = sum
	}
	return group.NewVector(out)
}

// OnesVector returns a length-n vector of Zq ones.
func OnesVector(zq *group.ZqGroup, n int) (*group.Vector[*group.ZqElement], error) {
	ones := make([]*group.ZqElement, n)
	for i := range ones {
		ones[i] = zq.One()
	}
	return group.NewVector(ones)
}

// ScaleVector returns scalar*a, componentwise.
func ScaleVector(a *group.Vector[*group.ZqElement], scalar *group.ZqElement) (*group.Vector[*group.ZqElement], error) {
	out := make([]*group.ZqElement, a.Length())
	for i := 0; i < a.Length(); i++ {
		ai, err := a.Get(i)
		if err != nil {
			return nil, err
		}
		v, err := ai.Multiply(scalar)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return group.NewVector(out)
}

// NegateVector returns -a, componentwise.
func NegateVector(a *group.Vector[*group.ZqElement]) (*group.Vector[*group.ZqElement], error) {
	out := make([]*group.ZqElement, a.Length())
	for i := 0; i < a.Length(); i++ {
		ai, err := a.Get(i)
		if err != nil {
			return nil, err
		}
		out[i] = ai.Negate()
	}
	return group.NewVector(out)
}

// HadamardVector returns the entrywise product a∘b for equal-length vectors.
func HadamardVector(a, b *group.Vector[*group.ZqElement]) (*group.Vector[*group.ZqElement], error) {
	if a.Length() != b.Length() {
		return nil, errs.Newf(errs.ShapeError, "vector lengths differ: %d, %d", a.Length(), b.Length())
	}
	out := make([]*group.ZqElement, a.Length())
	for i := 0; i < a.Length(); i++ {
		ai, err := a.Get(i)
		if err != nil {
			return nil, err
		}
		bi, err := b.Get(i)
		if err != nil {
			return nil, err
		}
		v, err := ai.Multiply(bi)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return group.NewVector(out)
}

// PolyFromLinearFactors expands prod_{i=1}^{n} (a_i*X + d_i) and returns
// its n+1 coefficients in ascending order (coefficient of X^0 first). The
// top coefficient (X^n) is always prod(a_i).
func PolyFromLinearFactors(a, d *group.Vector[*group.ZqElement], zq *group.ZqGroup) ([]*group.ZqElement, error) {
	if a.Length() != d.Length() {
		return nil, errs.Newf(errs.ShapeError, "vector lengths differ: %d, %d", a.Length(), d.Length())
	}
	n := a.Length()
	coeffs := make([]*group.ZqElement, 1, n+1)
	coeffs[0] = zq.One()
	for i := 0; i < n; i++ {
		ai, err := a.Get(i)
		if err != nil {
			return nil, err
		}
		di, err := d.Get(i)
		if err != nil {
			return nil, err
		}
		next := make([]*group.ZqElement, len(coeffs)+1)
		for k := range next {
			next[k] = zq.Zero()
		}
		for k, ck := range coeffs {
			// term from d_i: contributes to the same degree k
			scaled, err := ck.Multiply(di)
			if err != nil {
				return nil, err
			}
			next[k], err = next[k].Add(scaled)
			if err != nil {
				return nil, err
			}
			// term from a_i*X: contributes to degree k+1
			scaled, err = ck.Multiply(ai)
			if err != nil {
				return nil, err
			}
			next[k+1], err = next[k+1].Add(scaled)
			if err != nil {
				return nil, err
			}
		}
		coeffs = next
	}
	return coeffs, nil
}
