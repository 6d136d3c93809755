// Package decryption implements a batched Chaum-Pedersen proof of correct
// decryption: given a ciphertext and a claimed plaintext, prove knowledge
// of the private key used to decrypt it without revealing the key.
//
// For every component i of the ciphertext, correct decryption means
// gamma^{sk_i} = phi_i * m_i^{-1}. This package proves knowledge of the
// sk_i satisfying both that relation and pk_i = g^{sk_i}, batched across
// all components with a single Fiat-Shamir challenge, in the same
// commit/challenge/response sigma-protocol shape as
// takakv-msc-poc/voteproof.go's Prove (sample blinding, derive a
// recursive-hash challenge, respond linearly), generalized from one base
// to the two-base (g, gamma) equality-of-discrete-log case and from a
// scalar secret to a vector of per-component secrets.
package decryption

import (
	"math/big"

	"github.com/streetU/crypto-primitives/elgamal"
	"github.com/streetU/crypto-primitives/errs"
	"github.com/streetU/crypto-primitives/group"
	"github.com/streetU/crypto-primitives/hashing"
	"github.com/streetU/crypto-primitives/internal/xlog"
	"github.com/streetU/crypto-primitives/randomness"
	"github.com/streetU/crypto-primitives/verification"
)

const component = "decryption"

// Statement is the public input: the ciphertext, the public key it was
// encrypted under, the claimed plaintext, and any auxiliary context (e.g.
// an election or ballot identifier) bound into the challenge.
type Statement struct {
	C   *elgamal.Ciphertext
	PK  *elgamal.PublicKey
	M   *elgamal.Message
	Aux []byte
}

// Proof is the non-interactive decryption proof: the challenge e and the
// per-component responses z. The commitments (a,b) are never transmitted;
// the verifier reconstructs them from (e,z) before recomputing e itself.
type Proof struct {
	E *group.ZqElement
	Z []*group.ZqElement
}

func checkChallengeFits(hasher *hashing.Hasher, zq *group.ZqGroup) error {
	if hasher.BitLength() >= zq.Q().BitLen() {
		return errs.New(errs.BitLengthTooLarge, "hash digest bit length is not smaller than the bit length of q; the challenge could exceed the group order")
	}
	return nil
}

func decryptionFactor(c *elgamal.Ciphertext, m *elgamal.Message, i int) (*group.GqElement, error) {
	phi, err := c.Phi().Get(i)
	if err != nil {
		return nil, err
	}
	mi, err := m.Get(i)
	if err != nil {
		return nil, err
	}
	return phi.Multiply(mi.Invert())
}

func challenge(hasher *hashing.Hasher, zq *group.ZqGroup, statement Statement, a, b []*group.GqElement) (*group.ZqElement, error) {
	values := make([]hashing.Hashable, 0, 4*len(a)+1)
	values = append(values, hashing.Integer(statement.C.Gamma().Value().Bytes()))
	for i := 0; i < statement.C.Length(); i++ {
		phi, err := statement.C.Phi().Get(i)
		if err != nil {
			return nil, err
		}
		values = append(values, hashing.Integer(phi.Value().Bytes()))
	}
	for i := 0; i < statement.PK.Length(); i++ {
		pki, err := statement.PK.Get(i)
		if err != nil {
			return nil, err
		}
		values = append(values, hashing.Integer(pki.Value().Bytes()))
	}
	for i := 0; i < statement.M.Length(); i++ {
		mi, err := statement.M.Get(i)
		if err != nil {
			return nil, err
		}
		values = append(values, hashing.Integer(mi.Value().Bytes()))
	}
	if len(statement.Aux) > 0 {
		values = append(values, hashing.Bytes(statement.Aux))
	}
	for _, ai := range a {
		values = append(values, hashing.Integer(ai.Value().Bytes()))
	}
	for _, bi := range b {
		values = append(values, hashing.Integer(bi.Value().Bytes()))
	}
	digest, err := hasher.Hash(hashing.List(values...))
	if err != nil {
		return nil, err
	}
	return zq.NewElement(new(big.Int).SetBytes(digest))
}

// Prove builds a decryption proof for statement.C decrypting to
// statement.M, given the private key witness sk.
func Prove(hasher *hashing.Hasher, zq *group.ZqGroup, src randomness.Source, statement Statement, sk *elgamal.PrivateKey) (*Proof, error) {
	xlog.Stage(component, "prove")
	if err := checkChallengeFits(hasher, zq); err != nil {
		return nil, err
	}
	ell := statement.C.Length()
	if statement.M.Length() != ell {
		return nil, errs.New(errs.ShapeError, "claimed message length must match ciphertext length")
	}
	if sk.Length() < ell || statement.PK.Length() < ell {
		return nil, errs.New(errs.ShapeError, "key length must be at least the ciphertext length")
	}

	gq := statement.C.Gamma().Group()
	generator := gq.Generator()
	gamma := statement.C.Gamma()

	blinding := make([]*group.ZqElement, ell)
	a := make([]*group.GqElement, ell)
	b := make([]*group.GqElement, ell)
	for i := 0; i < ell; i++ {
		bi, err := randomness.UniformExponent(src, zq)
		if err != nil {
			return nil, err
		}
		blinding[i] = bi
		ai, err := generator.Exponentiate(bi)
		if err != nil {
			return nil, err
		}
		a[i] = ai
		biGamma, err := gamma.Exponentiate(bi)
		if err != nil {
			return nil, err
		}
		b[i] = biGamma
	}

	e, err := challenge(hasher, zq, statement, a, b)
	if err != nil {
		return nil, err
	}

	z := make([]*group.ZqElement, ell)
	for i := 0; i < ell; i++ {
		skI, err := sk.Get(i)
		if err != nil {
			return nil, err
		}
		eSk, err := e.Multiply(skI)
		if err != nil {
			return nil, err
		}
		zi, err := blinding[i].Add(eSk)
		if err != nil {
			return nil, err
		}
		z[i] = zi
	}

	// Sanity-check the claimed decryption matches the witness key before
	// returning a proof that could never verify.
	for i := 0; i < ell; i++ {
		pki, err := statement.PK.Get(i)
		if err != nil {
			return nil, err
		}
		skI, err := sk.Get(i)
		if err != nil {
			return nil, err
		}
		expectedPk, err := generator.Exponentiate(skI)
		if err != nil {
			return nil, err
		}
		if !pki.Equal(expectedPk) {
			return nil, errs.New(errs.WitnessInconsistent, "witness key does not match the public key")
		}
		d, err := decryptionFactor(statement.C, statement.M, i)
		if err != nil {
			return nil, err
		}
		expectedD, err := gamma.Exponentiate(skI)
		if err != nil {
			return nil, err
		}
		if !d.Equal(expectedD) {
			return nil, errs.New(errs.WitnessInconsistent, "claimed message does not match the witness key's decryption")
		}
	}

	return &Proof{E: e, Z: z}, nil
}

// reconstructCommitments recomputes (a_i,b_i) = (g^{z_i}*pk_i^{-e},
// gamma^{z_i}*d_i^{-e}) for every component, the values the prover would
// have committed to before drawing e.
func reconstructCommitments(zq *group.ZqGroup, statement Statement, proof *Proof) ([]*group.GqElement, []*group.GqElement, error) {
	ell := statement.C.Length()
	gq := statement.C.Gamma().Group()
	generator := gq.Generator()
	gamma := statement.C.Gamma()
	negE := proof.E.Negate()

	a := make([]*group.GqElement, ell)
	b := make([]*group.GqElement, ell)
	for i := 0; i < ell; i++ {
		pki, err := statement.PK.Get(i)
		if err != nil {
			return nil, nil, err
		}
		gz, err := generator.Exponentiate(proof.Z[i])
		if err != nil {
			return nil, nil, err
		}
		pkiNegE, err := pki.Exponentiate(negE)
		if err != nil {
			return nil, nil, err
		}
		ai, err := gz.Multiply(pkiNegE)
		if err != nil {
			return nil, nil, err
		}
		a[i] = ai

		d, err := decryptionFactor(statement.C, statement.M, i)
		if err != nil {
			return nil, nil, err
		}
		gammaZ, err := gamma.Exponentiate(proof.Z[i])
		if err != nil {
			return nil, nil, err
		}
		dNegE, err := d.Exponentiate(negE)
		if err != nil {
			return nil, nil, err
		}
		bi, err := gammaZ.Multiply(dNegE)
		if err != nil {
			return nil, nil, err
		}
		b[i] = bi
	}
	return a, b, nil
}

// Verify checks a decryption proof by reconstructing the commitments (a,b)
// implied by (e,z) and confirming they re-derive the same challenge e.
func Verify(hasher *hashing.Hasher, zq *group.ZqGroup, statement Statement, proof *Proof) (*verification.Result, error) {
	xlog.Stage(component, "verify")
	if err := checkChallengeFits(hasher, zq); err != nil {
		return nil, err
	}
	result := verification.NewResult()
	ell := statement.C.Length()
	if len(proof.Z) != ell {
		return nil, errs.New(errs.ShapeError, "proof vector length must match ciphertext length")
	}

	a, b, err := reconstructCommitments(zq, statement, proof)
	if err != nil {
		return nil, err
	}
	recomputed, err := challenge(hasher, zq, statement, a, b)
	if err != nil {
		return nil, err
	}
	if recomputed.Value().Cmp(proof.E.Value()) != 0 {
		result.Failf("Could not verify decryption proof of ciphertext %s", statement.C.Gamma().Value().String())
	}

	if !result.IsValid() {
		xlog.FirstFailure(component, result.Failures()[0])
	}
	return result, nil
}

// ProveBatch builds one decryption proof per ciphertext/message pair,
// sharing nothing but the private key across proofs.
func ProveBatch(hasher *hashing.Hasher, zq *group.ZqGroup, src randomness.Source, statements []Statement, sk *elgamal.PrivateKey) ([]*Proof, error) {
	proofs := make([]*Proof, len(statements))
	for i, s := range statements {
		p, err := Prove(hasher, zq, src, s, sk)
		if err != nil {
			return nil, err
		}
		proofs[i] = p
	}
	return proofs, nil
}

// VerifyBatch verifies a batch of decryption proofs, merging every
// sub-result into a single accumulated Result.
func VerifyBatch(hasher *hashing.Hasher, zq *group.ZqGroup, statements []Statement, proofs []*Proof) (*verification.Result, error) {
	if len(statements) != len(proofs) {
		return nil, errs.New(errs.ShapeError, "statement and proof counts must match")
	}
	result := verification.NewResult()
	for i := range statements {
		r, err := Verify(hasher, zq, statements[i], proofs[i])
		if err != nil {
			return nil, err
		}
		result.Merge(r)
	}
	return result, nil
}
