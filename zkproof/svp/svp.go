// Package svp implements the single-value product argument: proving that
// a committed vector a opens c_a and that prod(a_i) = b, without revealing
// a.
//
// The prover commits the coefficients of f(X) = prod_i (a_i*X + d_i) for a
// fresh blinding vector d (excluding the top, public coefficient
// prod(a_i) = b), then reveals a masked vector a~ = x*a + d at the
// Fiat-Shamir challenge x. The verifier recombines the committed
// coefficients homomorphically at x and checks the result against
// prod(a~_i), which is computable directly from the revealed vector. This
// is the same polynomial-binding idea underlying the c_d/c_delta/c_Delta
// single-value-product argument, expressed as an explicit coefficient
// commitment vector rather than the compressed three-commitment form.
package svp

import (
	"github.com/streetU/crypto-primitives/commitment"
	"github.com/streetU/crypto-primitives/errs"
	"github.com/streetU/crypto-primitives/group"
	"github.com/streetU/crypto-primitives/internal/xlog"
	"github.com/streetU/crypto-primitives/randomness"
	"github.com/streetU/crypto-primitives/verification"
	"github.com/streetU/crypto-primitives/zkproof/transcript"
	"github.com/streetU/crypto-primitives/zkproof/zkutil"
)

const component = "svp"

// Statement is the public input to the single-value product argument.
type Statement struct {
	CA *commitment.Commitment
	B  *group.ZqElement
}

// Witness is the prover's secret input.
type Witness struct {
	A *group.Vector[*group.ZqElement]
	R *group.ZqElement
}

// Argument is the non-interactive single-value product argument.
type Argument struct {
	CD           *commitment.Commitment
	CoeffCommits []*commitment.Commitment
	ATilde       *group.Vector[*group.ZqElement]
	RTilde       *group.ZqElement
	RhoTilde     *group.ZqElement
}

// Prove builds a single-value product argument for the given statement
// and witness, appending its own messages to tr in the order the verifier
// must replay them.
func Prove(ck *commitment.Key, zq *group.ZqGroup, src randomness.Source, tr *transcript.Builder, statement Statement, witness Witness) (*Argument, error) {
	xlog.Stage(component, "prove")
	n := witness.A.Length()
	if n == 0 {
		return nil, errs.New(errs.InvalidInput, "witness vector must be non-empty")
	}
	product, err := productOf(witness.A, zq)
	if err != nil {
		return nil, err
	}
	if product.Value().Cmp(statement.B.Value()) != 0 {
		return nil, errs.New(errs.WitnessInconsistent, "witness product does not match statement b")
	}

	d, err := randomness.UniformVector(src, zq, n)
	if err != nil {
		return nil, err
	}
	rd, err := randomness.UniformExponent(src, zq)
	if err != nil {
		return nil, err
	}
	cd, err := commitment.Commit(ck, d, rd)
	if err != nil {
		return nil, err
	}

	coeffs, err := zkutil.PolyFromLinearFactors(witness.A, d, zq)
	if err != nil {
		return nil, err
	}
	// coeffs has n+1 entries; the top one (index n) is the public product b
	// and is not committed.
	lowerCoeffs := coeffs[:n]

	rhos := make([]*group.ZqElement, n)
	coeffCommits := make([]*commitment.Commitment, n)
	for k := 0; k < n; k++ {
		rho, err := randomness.UniformExponent(src, zq)
		if err != nil {
			return nil, err
		}
		rhos[k] = rho
		vec, err := group.NewVector([]*group.ZqElement{lowerCoeffs[k]})
		if err != nil {
			return nil, err
		}
		c, err := commitment.Commit(ck, vec, rho)
		if err != nil {
			return nil, err
		}
		coeffCommits[k] = c
	}

	tr.Append(commitment.TranscriptValue(statement.CA))
	tr.AppendZq(statement.B)
	tr.Append(commitment.TranscriptValue(cd))
	for _, c := range coeffCommits {
		tr.Append(commitment.TranscriptValue(c))
	}
	x, err := tr.ChallengeZq(zq, []byte("svp/x"))
	if err != nil {
		return nil, err
	}

	aTilde, err := zkutil.AddScaled(d, witness.A, x, zq)
	if err != nil {
		return nil, err
	}
	xr, err := x.Multiply(witness.R)
	if err != nil {
		return nil, err
	}
	rTilde, err := xr.Add(rd)
	if err != nil {
		return nil, err
	}

	rhoTilde := zq.Zero()
	xPow := zq.One()
	for k := 0; k < n; k++ {
		term, err := rhos[k].Multiply(xPow)
		if err != nil {
			return nil, err
		}
		rhoTilde, err = rhoTilde.Add(term)
		if err != nil {
			return nil, err
		}
		xPow, err = xPow.Multiply(x)
		if err != nil {
			return nil, err
		}
	}

	return &Argument{
		CD:           cd,
		CoeffCommits: coeffCommits,
		ATilde:       aTilde,
		RTilde:       rTilde,
		RhoTilde:     rhoTilde,
	}, nil
}

// Verify checks a single-value product argument, accumulating every
// failed equation into the returned Result rather than stopping at the
// first one.
func Verify(ck *commitment.Key, zq *group.ZqGroup, tr *transcript.Builder, statement Statement, arg *Argument) (*verification.Result, error) {
	xlog.Stage(component, "verify")
	result := verification.NewResult()
	n := arg.ATilde.Length()
	if len(arg.CoeffCommits) != n {
		return nil, errs.Newf(errs.ShapeError, "coefficient commitment count %d does not match response vector length %d", len(arg.CoeffCommits), n)
	}

	tr.Append(commitment.TranscriptValue(statement.CA))
	tr.AppendZq(statement.B)
	tr.Append(commitment.TranscriptValue(arg.CD))
	for _, c := range arg.CoeffCommits {
		tr.Append(commitment.TranscriptValue(c))
	}
	x, err := tr.ChallengeZq(zq, []byte("svp/x"))
	if err != nil {
		return nil, err
	}

	// Opening consistency: c_d * c_a^x == Commit(a~, r~).
	caX, err := statement.CA.Value().Exponentiate(x)
	if err != nil {
		return nil, err
	}
	lhs, err := arg.CD.Value().Multiply(caX)
	if err != nil {
		return nil, err
	}
	rhsCommit, err := commitment.Commit(ck, arg.ATilde, arg.RTilde)
	if err != nil {
		return nil, err
	}
	if !lhs.Equal(rhsCommit.Value()) {
		result.Fail("single-value product argument: commitment opening consistency failed")
	}

	// Polynomial-evaluation consistency: combine the committed lower
	// coefficients at x and compare against the revealed product, adjusted
	// by the public top coefficient b*x^n.
	xPowN, err := zkutil.Pow(x, zq, n)
	if err != nil {
		return nil, err
	}
	bxn, err := statement.B.Multiply(xPowN)
	if err != nil {
		return nil, err
	}

	aggregate := ck.Group().Identity()
	xPow := zq.One()
	for k := 0; k < n; k++ {
		term, err := arg.CoeffCommits[k].Value().Exponentiate(xPow)
		if err != nil {
			return nil, err
		}
		aggregate, err = aggregate.Multiply(term)
		if err != nil {
			return nil, err
		}
		xPow, err = xPow.Multiply(x)
		if err != nil {
			return nil, err
		}
	}

	l, err := productOf(arg.ATilde, zq)
	if err != nil {
		return nil, err
	}
	lMinusBxn, err := l.Subtract(bxn)
	if err != nil {
		return nil, err
	}
	g1, err := ck.G(0)
	if err != nil {
		return nil, err
	}
	rhsExp, err := g1.Exponentiate(lMinusBxn)
	if err != nil {
		return nil, err
	}
	hExp, err := ck.H().Exponentiate(arg.RhoTilde)
	if err != nil {
		return nil, err
	}
	rhs, err := hExp.Multiply(rhsExp)
	if err != nil {
		return nil, err
	}
	if !aggregate.Equal(rhs) {
		result.Fail("single-value product argument: polynomial evaluation consistency failed")
	}

	if !result.IsValid() {
		xlog.FirstFailure(component, result.Failures()[0])
	}
	return result, nil
}

func productOf(v *group.Vector[*group.ZqElement], zq *group.ZqGroup) (*group.ZqElement, error) {
	acc := zq.One()
	for i := 0; i < v.Length(); i++ {
		vi, err := v.Get(i)
		if err != nil {
			return nil, err
		}
		var mulErr error
		acc, mulErr = acc.Multiply(vi)
		if mulErr != nil {
			return nil, mulErr
		}
	}
	return acc, nil
}
