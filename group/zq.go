package group

import (
	"fmt"
	"math/big"

	"github.com/streetU/crypto-primitives/errs"
)

// ZqGroup is the ring of integers modulo q, the order of a paired GqGroup.
type ZqGroup struct {
	q *big.Int
}

// NewZqGroup constructs a ZqGroup of order q. q is not re-validated as
// prime here: it is expected to come from an already-validated GqGroup.
func NewZqGroup(q *big.Int) (*ZqGroup, error) {
	if q == nil || q.Sign() <= 0 {
		return nil, errs.New(errs.InvalidInput, "q must be a positive integer")
	}
	return &ZqGroup{q: new(big.Int).Set(q)}, nil
}

// Q returns the modulus.
func (g *ZqGroup) Q() *big.Int { return new(big.Int).Set(g.q) }

// HasSameOrder reports whether two ZqGroups share the same modulus.
func (g *ZqGroup) HasSameOrder(h *ZqGroup) bool {
	if g == h {
		return true
	}
	if h == nil {
		return false
	}
	return g.q.Cmp(h.q) == 0
}

// IsMember reports whether v lies in [0,q).
func (g *ZqGroup) IsMember(v *big.Int) bool {
	return v.Sign() >= 0 && v.Cmp(g.q) < 0
}

// NewElement validates v as a member of [0,q) and wraps it.
func (g *ZqGroup) NewElement(v *big.Int) (*ZqElement, error) {
	if !g.IsMember(v) {
		return nil, errs.Newf(errs.InvalidInput, "%s is not in [0,%s)", v, g.q)
	}
	return &ZqElement{group: g, value: new(big.Int).Set(v)}, nil
}

// ElementFromBigInt reduces v modulo q before wrapping it, for contexts
// (e.g. hash-to-Zq) where reduction, not rejection, is intended.
func (g *ZqGroup) ElementFromBigInt(v *big.Int) *ZqElement {
	r := new(big.Int).Mod(v, g.q)
	return &ZqElement{group: g, value: r}
}

// Zero returns the additive identity.
func (g *ZqGroup) Zero() *ZqElement { return &ZqElement{group: g, value: big.NewInt(0)} }

// One returns the multiplicative identity.
func (g *ZqGroup) One() *ZqElement { return &ZqElement{group: g, value: big.NewInt(1)} }

// ZqElement is an integer in [0,q).
type ZqElement struct {
	group *ZqGroup
	value *big.Int
}

// Group returns the ZqGroup this element belongs to.
func (e *ZqElement) Group() *ZqGroup { return e.group }

// Value returns the integer value of the element.
func (e *ZqElement) Value() *big.Int { return new(big.Int).Set(e.value) }

// GroupKey implements Member.
func (e *ZqElement) GroupKey() string { return fmt.Sprintf("Zq(q=%s)", e.group.q) }

// ElementSize implements Member: a bare exponent has size 1.
func (e *ZqElement) ElementSize() int { return 1 }

func (e *ZqElement) sameGroup(o *ZqElement) error {
	if o == nil || !e.group.HasSameOrder(o.group) {
		return errs.New(errs.GroupMismatch, "Zq elements belong to different groups")
	}
	return nil
}

// Add returns e+o mod q.
func (e *ZqElement) Add(o *ZqElement) (*ZqElement, error) {
	if err := e.sameGroup(o); err != nil {
		return nil, err
	}
	v := new(big.Int).Add(e.value, o.value)
	v.Mod(v, e.group.q)
	return &ZqElement{group: e.group, value: v}, nil
}

// Subtract returns e-o mod q, normalised to [0,q).
func (e *ZqElement) Subtract(o *ZqElement) (*ZqElement, error) {
	if err := e.sameGroup(o); err != nil {
		return nil, err
	}
	v := new(big.Int).Sub(e.value, o.value)
	v.Mod(v, e.group.q)
	return &ZqElement{group: e.group, value: v}, nil
}

// Negate returns -e mod q, normalised to [0,q).
func (e *ZqElement) Negate() *ZqElement {
	v := new(big.Int).Neg(e.value)
	v.Mod(v, e.group.q)
	return &ZqElement{group: e.group, value: v}
}

// Multiply returns e*o mod q (Zq's ring multiplication, used for witness
// products such as single-value-product arguments).
func (e *ZqElement) Multiply(o *ZqElement) (*ZqElement, error) {
	if err := e.sameGroup(o); err != nil {
		return nil, err
	}
	v := new(big.Int).Mul(e.value, o.value)
	v.Mod(v, e.group.q)
	return &ZqElement{group: e.group, value: v}, nil
}

// Invert returns e^-1 mod q, failing with InvalidInput if e is 0.
func (e *ZqElement) Invert() (*ZqElement, error) {
	if e.value.Sign() == 0 {
		return nil, errs.New(errs.InvalidInput, "zero has no inverse in Zq")
	}
	v := new(big.Int).ModInverse(e.value, e.group.q)
	return &ZqElement{group: e.group, value: v}, nil
}

// Equal reports value equality within the same group.
func (e *ZqElement) Equal(o *ZqElement) bool {
	if o == nil {
		return false
	}
	return e.group.HasSameOrder(o.group) && e.value.Cmp(o.value) == 0
}

func (e *ZqElement) String() string { return e.value.String() }
