// Package elgamal implements multi-recipient ElGamal: key generation,
// encryption, decryption, ciphertext multiplication and exponentiation, and
// the "ones" message used to build re-encryption deltas for the shuffle
// argument.
//
// This generalizes takakv-msc-poc's elgamal.go (a single-recipient,
// single-message encryptVote helper over one algebra.Element) into a
// vectorised, multi-recipient scheme: one gamma component and a vector of
// phi components, encrypting a vector message under a vector public key.
package elgamal

import (
	"github.com/streetU/crypto-primitives/errs"
	"github.com/streetU/crypto-primitives/group"
	"github.com/streetU/crypto-primitives/randomness"
)

// PublicKey is a vector of k Gq elements, pk_i = g^x_i.
type PublicKey struct {
	group    *group.GqGroup
	elements *group.Vector[*group.GqElement]
}

// NewPublicKey validates and wraps k >= 1 Gq elements as a public key.
func NewPublicKey(gq *group.GqGroup, elements *group.Vector[*group.GqElement]) (*PublicKey, error) {
	if elements.Length() == 0 {
		return nil, errs.New(errs.InvalidInput, "public key must have at least one element")
	}
	return &PublicKey{group: gq, elements: elements}, nil
}

// Length returns k, the number of recipients this key supports.
func (pk *PublicKey) Length() int { return pk.elements.Length() }

// Get returns the i-th key component.
func (pk *PublicKey) Get(i int) (*group.GqElement, error) { return pk.elements.Get(i) }

// Group returns the ambient Gq group.
func (pk *PublicKey) Group() *group.GqGroup { return pk.group }

// PrivateKey is a vector of k Zq elements.
type PrivateKey struct {
	zq       *group.ZqGroup
	elements *group.Vector[*group.ZqElement]
}

// NewPrivateKey validates and wraps k >= 1 Zq elements as a private key.
func NewPrivateKey(zq *group.ZqGroup, elements *group.Vector[*group.ZqElement]) (*PrivateKey, error) {
	if elements.Length() == 0 {
		return nil, errs.New(errs.InvalidInput, "private key must have at least one element")
	}
	return &PrivateKey{zq: zq, elements: elements}, nil
}

// Length returns k.
func (sk *PrivateKey) Length() int { return sk.elements.Length() }

// Get returns the i-th key component.
func (sk *PrivateKey) Get(i int) (*group.ZqElement, error) { return sk.elements.Get(i) }

// KeyPair is a matched (PrivateKey, PublicKey) pair over the same group.
type KeyPair struct {
	SecretKey *PrivateKey
	PublicKey *PublicKey
}

// GenKeyPair samples sk uniformly from Zq^k and derives pk_i = g^{sk_i}.
func GenKeyPair(gq *group.GqGroup, zq *group.ZqGroup, k int, src randomness.Source) (*KeyPair, error) {
	if k < 1 {
		return nil, errs.New(errs.InvalidInput, "k must be at least 1")
	}
	skElements := make([]*group.ZqElement, k)
	pkElements := make([]*group.GqElement, k)
	generator := gq.Generator()
	for i := 0; i < k; i++ {
		x, err := randomness.UniformExponent(src, zq)
		if err != nil {
			return nil, err
		}
		skElements[i] = x
		pkEl, err := generator.Exponentiate(x)
		if err != nil {
			return nil, err
		}
		pkElements[i] = pkEl
	}
	skVec, err := group.NewVector(skElements)
	if err != nil {
		return nil, err
	}
	pkVec, err := group.NewVector(pkElements)
	if err != nil {
		return nil, err
	}
	sk, err := NewPrivateKey(zq, skVec)
	if err != nil {
		return nil, err
	}
	pk, err := NewPublicKey(gq, pkVec)
	if err != nil {
		return nil, err
	}
	return &KeyPair{SecretKey: sk, PublicKey: pk}, nil
}

// Message is a vector of ell Gq elements.
type Message struct {
	group    *group.GqGroup
	elements *group.Vector[*group.GqElement]
}

// NewMessage validates and wraps ell >= 1 Gq elements as a message.
func NewMessage(gq *group.GqGroup, elements *group.Vector[*group.GqElement]) (*Message, error) {
	if elements.Length() == 0 {
		return nil, errs.New(errs.InvalidInput, "message must have at least one element")
	}
	return &Message{group: gq, elements: elements}, nil
}

// Length returns ell.
func (m *Message) Length() int { return m.elements.Length() }

// Get returns the i-th message component.
func (m *Message) Get(i int) (*group.GqElement, error) { return m.elements.Get(i) }

// Ones returns the all-identity message of length ell: encrypting it is
// the re-encryption-delta building block the shuffle argument uses.
func Ones(gq *group.GqGroup, ell int) (*Message, error) {
	if ell < 1 {
		return nil, errs.New(errs.InvalidInput, "ell must be at least 1")
	}
	elements := make([]*group.GqElement, ell)
	for i := range elements {
		elements[i] = gq.Identity()
	}
	vec, err := group.NewVector(elements)
	if err != nil {
		return nil, err
	}
	return NewMessage(gq, vec)
}

// Ciphertext is an ElGamal ciphertext (gamma, phi_1..phi_ell). It
// implements group.Member so vectors/matrices of ciphertexts enforce
// uniform-group and uniform-ell invariants automatically.
type Ciphertext struct {
	gamma *group.GqElement
	phi   *group.Vector[*group.GqElement]
}

// NewCiphertext validates and wraps a (gamma, phi) pair.
func NewCiphertext(gamma *group.GqElement, phi *group.Vector[*group.GqElement]) (*Ciphertext, error) {
	if phi.Length() == 0 {
		return nil, errs.New(errs.InvalidInput, "ciphertext must have at least one phi component")
	}
	return &Ciphertext{gamma: gamma, phi: phi}, nil
}

// Gamma returns the gamma (mask) component.
func (c *Ciphertext) Gamma() *group.GqElement { return c.gamma }

// Phi returns the phi (masked-message) vector.
func (c *Ciphertext) Phi() *group.Vector[*group.GqElement] { return c.phi }

// Length returns ell, the number of phi components.
func (c *Ciphertext) Length() int { return c.phi.Length() }

// GroupKey implements group.Member.
func (c *Ciphertext) GroupKey() string { return c.gamma.GroupKey() }

// ElementSize implements group.Member: a ciphertext's size is its ell.
func (c *Ciphertext) ElementSize() int { return c.phi.Length() }

// Encrypt encrypts message m of length ell under pk (of length k >= ell)
// with randomness r, returning (g^r, m_i * pk_i^r for i=1..ell). If pk is
// longer than m, the phi vector is truncated to ell.
func Encrypt(m *Message, r *group.ZqElement, pk *PublicKey) (*Ciphertext, error) {
	ell := m.Length()
	if ell > pk.Length() {
		return nil, errs.Newf(errs.ShapeError, "message length %d exceeds key length %d", ell, pk.Length())
	}
	gq := m.group
	generator := gq.Generator()
	gamma, err := generator.Exponentiate(r)
	if err != nil {
		return nil, err
	}
	phiElements := make([]*group.GqElement, ell)
	for i := 0; i < ell; i++ {
		mi, err := m.Get(i)
		if err != nil {
			return nil, err
		}
		pki, err := pk.Get(i)
		if err != nil {
			return nil, err
		}
		mask, err := pki.Exponentiate(r)
		if err != nil {
			return nil, err
		}
		phi, err := mi.Multiply(mask)
		if err != nil {
			return nil, err
		}
		phiElements[i] = phi
	}
	phiVec, err := group.NewVector(phiElements)
	if err != nil {
		return nil, err
	}
	return NewCiphertext(gamma, phiVec)
}

// Decrypt computes m_i = phi_i * gamma^{-sk_i}, for a secret key of length
// at least the ciphertext's ell.
func Decrypt(c *Ciphertext, sk *PrivateKey) (*Message, error) {
	ell := c.Length()
	if ell > sk.Length() {
		return nil, errs.Newf(errs.ShapeError, "ciphertext length %d exceeds key length %d", ell, sk.Length())
	}
	elements := make([]*group.GqElement, ell)
	for i := 0; i < ell; i++ {
		phi, err := c.phi.Get(i)
		if err != nil {
			return nil, err
		}
		xi, err := sk.Get(i)
		if err != nil {
			return nil, err
		}
		negX := xi.Negate()
		mask, err := c.gamma.Exponentiate(negX)
		if err != nil {
			return nil, err
		}
		mi, err := phi.Multiply(mask)
		if err != nil {
			return nil, err
		}
		elements[i] = mi
	}
	vec, err := group.NewVector(elements)
	if err != nil {
		return nil, err
	}
	return NewMessage(c.gamma.Group(), vec)
}

// Multiply returns the componentwise product of two ciphertexts:
// Enc(m1,r1) * Enc(m2,r2) = Enc(m1*m2, r1+r2).
func Multiply(c1, c2 *Ciphertext) (*Ciphertext, error) {
	if c1.Length() != c2.Length() {
		return nil, errs.Newf(errs.ShapeError, "ciphertexts have different lengths %d, %d", c1.Length(), c2.Length())
	}
	gamma, err := c1.gamma.Multiply(c2.gamma)
	if err != nil {
		return nil, err
	}
	phiElements := make([]*group.GqElement, c1.Length())
	for i := range phiElements {
		a, err := c1.phi.Get(i)
		if err != nil {
			return nil, err
		}
		b, err := c2.phi.Get(i)
		if err != nil {
			return nil, err
		}
		p, err := a.Multiply(b)
		if err != nil {
			return nil, err
		}
		phiElements[i] = p
	}
	phiVec, err := group.NewVector(phiElements)
	if err != nil {
		return nil, err
	}
	return NewCiphertext(gamma, phiVec)
}

// Exponentiate returns c^a componentwise.
func Exponentiate(c *Ciphertext, a *group.ZqElement) (*Ciphertext, error) {
	gamma, err := c.gamma.Exponentiate(a)
	if err != nil {
		return nil, err
	}
	phiElements := make([]*group.GqElement, c.Length())
	for i := range phiElements {
		p, err := c.phi.Get(i)
		if err != nil {
			return nil, err
		}
		pe, err := p.Exponentiate(a)
		if err != nil {
			return nil, err
		}
		phiElements[i] = pe
	}
	phiVec, err := group.NewVector(phiElements)
	if err != nil {
		return nil, err
	}
	return NewCiphertext(gamma, phiVec)
}

// ReEncrypt returns Enc_pk(ones(ell), r) * c, the re-encryption of c with
// fresh randomness r under pk, without changing the encrypted message.
func ReEncrypt(c *Ciphertext, r *group.ZqElement, pk *PublicKey) (*Ciphertext, error) {
	ones, err := Ones(c.gamma.Group(), c.Length())
	if err != nil {
		return nil, err
	}
	delta, err := Encrypt(ones, r, pk)
	if err != nil {
		return nil, err
	}
	return Multiply(delta, c)
}
