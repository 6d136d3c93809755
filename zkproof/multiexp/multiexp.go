// Package multiexp implements the multi-exponentiation argument: proving
// that m output ciphertexts are each the re-encrypted multi-exponentiation
// of a shared input ciphertext vector against a committed exponent matrix,
// without revealing the matrix.
//
// Generalizes the opening-consistency equation from zkproof/svp and
// zkproof/hadamard to the ciphertext group: the same masked-reveal
// technique applies, with Pedersen commitment combination replaced by
// ElGamal ciphertext multiplication/exponentiation (elgamal.Multiply,
// elgamal.Exponentiate) on the multi-exponentiation side.
package multiexp

import (
	"github.com/streetU/crypto-primitives/commitment"
	"github.com/streetU/crypto-primitives/elgamal"
	"github.com/streetU/crypto-primitives/errs"
	"github.com/streetU/crypto-primitives/group"
	"github.com/streetU/crypto-primitives/internal/xlog"
	"github.com/streetU/crypto-primitives/randomness"
	"github.com/streetU/crypto-primitives/verification"
	"github.com/streetU/crypto-primitives/zkproof/transcript"
	"github.com/streetU/crypto-primitives/zkproof/zkutil"
)

const component = "multiexp"

// Statement is the public input: the shared ciphertext vector, m existing
// column commitments to the exponent matrix, the m claimed output
// ciphertexts, and the encryption public key.
type Statement struct {
	Ciphertexts []*elgamal.Ciphertext
	CA          []*commitment.Commitment
	Outputs     []*elgamal.Ciphertext
	PK          *elgamal.PublicKey
}

// Witness is the prover's secret input.
type Witness struct {
	A   []*group.Vector[*group.ZqElement]
	R   []*group.ZqElement
	Rho []*group.ZqElement
}

// Argument is the non-interactive multi-exponentiation argument.
type Argument struct {
	CD       []*commitment.Commitment
	F        []*elgamal.Ciphertext
	ATilde   []*group.Vector[*group.ZqElement]
	RTilde   []*group.ZqElement
	RhoTilde []*group.ZqElement
}

func multiExponentiate(ciphertexts []*elgamal.Ciphertext, weights *group.Vector[*group.ZqElement]) (*elgamal.Ciphertext, error) {
	n := len(ciphertexts)
	if weights.Length() != n {
		return nil, errs.Newf(errs.ShapeError, "weight count %d does not match ciphertext count %d", weights.Length(), n)
	}
	acc, err := elgamal.Exponentiate(ciphertexts[0], mustGet(weights, 0))
	if err != nil {
		return nil, err
	}
	for i := 1; i < n; i++ {
		term, err := elgamal.Exponentiate(ciphertexts[i], mustGet(weights, i))
		if err != nil {
			return nil, err
		}
		acc, err = elgamal.Multiply(acc, term)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func mustGet(v *group.Vector[*group.ZqElement], i int) *group.ZqElement {
	e, _ := v.Get(i)
	return e
}

func appendCiphertext(tr *transcript.Builder, c *elgamal.Ciphertext) {
	tr.AppendGq(c.Gamma())
	tr.AppendGqVector(c.Phi())
}

// Prove builds a multi-exponentiation argument.
func Prove(ck *commitment.Key, zq *group.ZqGroup, src randomness.Source, tr *transcript.Builder, statement Statement, witness Witness) (*Argument, error) {
	xlog.Stage(component, "prove")
	m := len(witness.A)
	if m == 0 || len(statement.CA) != m || len(witness.R) != m || len(witness.Rho) != m || len(statement.Outputs) != m {
		return nil, errs.New(errs.ShapeError, "multiexp argument: column, randomness, and output counts must all equal m and be non-zero")
	}
	n := len(statement.Ciphertexts)
	ell := statement.Ciphertexts[0].Length()

	for j := 0; j < m; j++ {
		exp, err := multiExponentiate(statement.Ciphertexts, witness.A[j])
		if err != nil {
			return nil, err
		}
		ones, err := elgamal.Ones(statement.PK.Group(), ell)
		if err != nil {
			return nil, err
		}
		delta, err := elgamal.Encrypt(ones, witness.Rho[j], statement.PK)
		if err != nil {
			return nil, err
		}
		claimed, err := elgamal.Multiply(delta, exp)
		if err != nil {
			return nil, err
		}
		if !sameCiphertext(claimed, statement.Outputs[j]) {
			return nil, errs.New(errs.WitnessInconsistent, "multiexp argument: output does not match witness")
		}
	}

	maskColumns := make([]*group.Vector[*group.ZqElement], m)
	maskRand := make([]*group.ZqElement, m)
	maskTau := make([]*group.ZqElement, m)
	cd := make([]*commitment.Commitment, m)
	f := make([]*elgamal.Ciphertext, m)
	for j := 0; j < m; j++ {
		d, err := randomness.UniformVector(src, zq, n)
		if err != nil {
			return nil, err
		}
		rho, err := randomness.UniformExponent(src, zq)
		if err != nil {
			return nil, err
		}
		c, err := commitment.Commit(ck, d, rho)
		if err != nil {
			return nil, err
		}
		tau, err := randomness.UniformExponent(src, zq)
		if err != nil {
			return nil, err
		}
		exp, err := multiExponentiate(statement.Ciphertexts, d)
		if err != nil {
			return nil, err
		}
		ones, err := elgamal.Ones(statement.PK.Group(), ell)
		if err != nil {
			return nil, err
		}
		delta, err := elgamal.Encrypt(ones, tau, statement.PK)
		if err != nil {
			return nil, err
		}
		fj, err := elgamal.Multiply(delta, exp)
		if err != nil {
			return nil, err
		}

		maskColumns[j] = d
		maskRand[j] = rho
		maskTau[j] = tau
		cd[j] = c
		f[j] = fj
	}

	for _, c := range statement.CA {
		tr.Append(commitment.TranscriptValue(c))
	}
	for _, c := range statement.Ciphertexts {
		appendCiphertext(tr, c)
	}
	for _, c := range statement.Outputs {
		appendCiphertext(tr, c)
	}
	for _, c := range cd {
		tr.Append(commitment.TranscriptValue(c))
	}
	for _, c := range f {
		appendCiphertext(tr, c)
	}
	x, err := tr.ChallengeZq(zq, []byte("multiexp/x"))
	if err != nil {
		return nil, err
	}

	aTilde := make([]*group.Vector[*group.ZqElement], m)
	rTilde := make([]*group.ZqElement, m)
	rhoTilde := make([]*group.ZqElement, m)
	for j := 0; j < m; j++ {
		v, err := zkutil.AddScaled(maskColumns[j], witness.A[j], x, zq)
		if err != nil {
			return nil, err
		}
		aTilde[j] = v
		xr, err := x.Multiply(witness.R[j])
		if err != nil {
			return nil, err
		}
		rt, err := xr.Add(maskRand[j])
		if err != nil {
			return nil, err
		}
		rTilde[j] = rt
		xrho, err := x.Multiply(witness.Rho[j])
		if err != nil {
			return nil, err
		}
		rhot, err := xrho.Add(maskTau[j])
		if err != nil {
			return nil, err
		}
		rhoTilde[j] = rhot
	}

	return &Argument{CD: cd, F: f, ATilde: aTilde, RTilde: rTilde, RhoTilde: rhoTilde}, nil
}

func sameCiphertext(a, b *elgamal.Ciphertext) bool {
	if !a.Gamma().Equal(b.Gamma()) {
		return false
	}
	if a.Length() != b.Length() {
		return false
	}
	for i := 0; i < a.Length(); i++ {
		ai, _ := a.Phi().Get(i)
		bi, _ := b.Phi().Get(i)
		if !ai.Equal(bi) {
			return false
		}
	}
	return true
}

// Verify checks a multi-exponentiation argument, accumulating every
// failed equation into the returned Result.
func Verify(ck *commitment.Key, zq *group.ZqGroup, tr *transcript.Builder, statement Statement, arg *Argument) (*verification.Result, error) {
	xlog.Stage(component, "verify")
	result := verification.NewResult()
	m := len(statement.CA)
	if len(arg.CD) != m || len(arg.F) != m || len(arg.ATilde) != m || len(arg.RTilde) != m || len(arg.RhoTilde) != m {
		return nil, errs.New(errs.ShapeError, "multiexp argument: response lengths must all equal m")
	}

	for _, c := range statement.CA {
		tr.Append(commitment.TranscriptValue(c))
	}
	for _, c := range statement.Ciphertexts {
		appendCiphertext(tr, c)
	}
	for _, c := range statement.Outputs {
		appendCiphertext(tr, c)
	}
	for _, c := range arg.CD {
		tr.Append(commitment.TranscriptValue(c))
	}
	for _, c := range arg.F {
		appendCiphertext(tr, c)
	}
	x, err := tr.ChallengeZq(zq, []byte("multiexp/x"))
	if err != nil {
		return nil, err
	}

	ell := statement.Ciphertexts[0].Length()
	for j := 0; j < m; j++ {
		caX, err := statement.CA[j].Value().Exponentiate(x)
		if err != nil {
			return nil, err
		}
		lhs, err := arg.CD[j].Value().Multiply(caX)
		if err != nil {
			return nil, err
		}
		rhs, err := commitment.Commit(ck, arg.ATilde[j], arg.RTilde[j])
		if err != nil {
			return nil, err
		}
		if !lhs.Equal(rhs.Value()) {
			result.Failf("multiexp argument: column %d opening consistency failed", j)
		}

		outX, err := elgamal.Exponentiate(statement.Outputs[j], x)
		if err != nil {
			return nil, err
		}
		lhsCipher, err := elgamal.Multiply(arg.F[j], outX)
		if err != nil {
			return nil, err
		}
		exp, err := multiExponentiate(statement.Ciphertexts, arg.ATilde[j])
		if err != nil {
			return nil, err
		}
		ones, err := elgamal.Ones(statement.PK.Group(), ell)
		if err != nil {
			return nil, err
		}
		delta, err := elgamal.Encrypt(ones, arg.RhoTilde[j], statement.PK)
		if err != nil {
			return nil, err
		}
		rhsCipher, err := elgamal.Multiply(delta, exp)
		if err != nil {
			return nil, err
		}
		if !sameCiphertext(lhsCipher, rhsCipher) {
			result.Failf("multiexp argument: column %d multi-exponentiation consistency failed", j)
		}
	}

	if !result.IsValid() {
		xlog.FirstFailure(component, result.Failures()[0])
	}
	return result, nil
}
