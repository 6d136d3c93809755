// Package zeroarg implements the zero argument: proving that the
// bilinear star-map sum over m column pairs of two committed matrices
// vanishes, Σⱼ <Aⱼ,Bⱼ>_y = 0, without revealing A or B.
//
// Grounded in the Bayer-Groth zero argument: the prover
// pads A with one fresh column at index 0 and B with one fresh column at
// index m+1, forms degree-m vector polynomials A(X)=Σ Aᵢ Xⁱ and
// B(X)=Σ Bⱼ X^{m+1-j}, and commits every coefficient of the degree-2m
// product polynomial D(X)=<A(X),B(X)>_y. The padding is placed so the
// target sum lands exactly at coefficient m+1 with no cross-contamination
// from the fresh columns, letting that coefficient be zero by
// construction whenever the witness satisfies the relation.
package zeroarg

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

const component = "zeroarg"

// Statement is the public input: m existing column commitments for A and
// B, plus the bilinear-map challenge y.
type Statement struct {
	CA []*commitment.Commitment
	CB []*commitment.Commitment
	Y  *group.ZqElement
}

// Witness is the prover's secret input: the m columns of A and B (each a
// length-n vector) and their existing commitment randomness.
type Witness struct {
	A []*group.Vector[*group.ZqElement]
	R []*group.ZqElement
	B []*group.Vector[*group.ZqElement]
	S []*group.ZqElement
}

// Argument is the non-interactive zero argument.
type Argument struct {
	CA0    *commitment.Commitment
	CBm1   *commitment.Commitment
	CD     []*commitment.Commitment // length 2m+1, index k = 0..2m
	ATilde *group.Vector[*group.ZqElement]
	BTilde *group.Vector[*group.ZqElement]
	RTilde *group.ZqElement
	STilde *group.ZqElement
	TTilde *group.ZqElement
}

func validateShapes(m int, statement Statement, witness Witness) error {
	if m == 0 {
		return errs.New(errs.InvalidInput, "zero argument requires at least one column")
	}
	if len(statement.CA) != m || len(statement.CB) != m {
		return errs.New(errs.ShapeError, "statement column-commitment counts must equal m")
	}
	if len(witness.A) != m || len(witness.R) != m || len(witness.B) != m || len(witness.S) != m {
		return errs.New(errs.ShapeError, "witness column counts must equal m")
	}
	return nil
}

// Prove builds a zero argument for the given statement and witness.
func Prove(ck *commitment.Key, zq *group.ZqGroup, src randomness.Source, tr *transcript.Builder, statement Statement, witness Witness) (*Argument, error) {
	xlog.Stage(component, "prove")
	m := len(witness.A)
	if err := validateShapes(m, statement, witness); err != nil {
		return nil, err
	}
	n := witness.A[0].Length()

	sum := zq.Zero()
	for j := 0; j < m; j++ {
		term, err := zkutil.StarMap(witness.A[j], witness.B[j], statement.Y, zq)
		if err != nil {
			return nil, err
		}
		sum, err = sum.Add(term)
		if err != nil {
			return nil, err
		}
	}
	if sum.Value().Sign() != 0 {
		return nil, errs.New(errs.WitnessInconsistent, "zero argument: column pairs do not sum to zero")
	}

	a0, err := randomness.UniformVector(src, zq, n)
	if err != nil {
		return nil, err
	}
	r0, err := randomness.UniformExponent(src, zq)
	if err != nil {
		return nil, err
	}
	bm1, err := randomness.UniformVector(src, zq, n)
	if err != nil {
		return nil, err
	}
	sm1, err := randomness.UniformExponent(src, zq)
	if err != nil {
		return nil, err
	}
	ca0, err := commitment.Commit(ck, a0, r0)
	if err != nil {
		return nil, err
	}
	cbm1, err := commitment.Commit(ck, bm1, sm1)
	if err != nil {
		return nil, err
	}

	// Extended index spaces: A_ext[0..m], B_ext[1..m+1] (stored 0-indexed
	// in a slice of length m+2, unused index 0 for B_ext to keep 1-based
	// math readable).
	aExt := make([]*group.Vector[*group.ZqElement], m+1)
	aExt[0] = a0
	copy(aExt[1:], witness.A)
	rExt := make([]*group.ZqElement, m+1)
	rExt[0] = r0
	copy(rExt[1:], witness.R)

	bExt := make([]*group.Vector[*group.ZqElement], m+2) // index 1..m+1 used
	for j := 1; j <= m; j++ {
		bExt[j] = witness.B[j-1]
	}
	bExt[m+1] = bm1
	sExt := make([]*group.ZqElement, m+2)
	for j := 1; j <= m; j++ {
		sExt[j] = witness.S[j-1]
	}
	sExt[m+1] = sm1

	// d_k = sum_{i=0}^{m} sum_{j=1}^{m+1} [i+(m+1-j)==k] <A_ext[i],B_ext[j]>_y
	dValues := make([]*group.ZqElement, 2*m+1)
	for k := range dValues {
		dValues[k] = zq.Zero()
	}
	for i := 0; i <= m; i++ {
		for j := 1; j <= m+1; j++ {
			k := i + (m + 1 - j)
			term, err := zkutil.StarMap(aExt[i], bExt[j], statement.Y, zq)
			if err != nil {
				return nil, err
			}
			dValues[k], err = dValues[k].Add(term)
			if err != nil {
				return nil, err
			}
		}
	}

	tRand := make([]*group.ZqElement, 2*m+1)
	cd := make([]*commitment.Commitment, 2*m+1)
	for k := range dValues {
		t, err := randomness.UniformExponent(src, zq)
		if err != nil {
			return nil, err
		}
		tRand[k] = t
		vec, err := group.NewVector([]*group.ZqElement{dValues[k]})
		if err != nil {
			return nil, err
		}
		c, err := commitment.Commit(ck, vec, t)
		if err != nil {
			return nil, err
		}
		cd[k] = c
	}

	for _, c := range statement.CA {
		tr.Append(commitment.TranscriptValue(c))
	}
	for _, c := range statement.CB {
		tr.Append(commitment.TranscriptValue(c))
	}
	tr.AppendZq(statement.Y)
	tr.Append(commitment.TranscriptValue(ca0))
	tr.Append(commitment.TranscriptValue(cbm1))
	for _, c := range cd {
		tr.Append(commitment.TranscriptValue(c))
	}
	x, err := tr.ChallengeZq(zq, []byte("zeroarg/x"))
	if err != nil {
		return nil, err
	}

	aTilde := make([]*group.ZqElement, n)
	for row := 0; row < n; row++ {
		aTilde[row] = zq.Zero()
	}
	rTilde := zq.Zero()
	xPow := zq.One()
	for i := 0; i <= m; i++ {
		for row := 0; row < n; row++ {
			v, err := aExt[i].Get(row)
			if err != nil {
				return nil, err
			}
			scaled, err := v.Multiply(xPow)
			if err != nil {
				return nil, err
			}
			aTilde[row], err = aTilde[row].Add(scaled)
			if err != nil {
				return nil, err
			}
		}
		scaledR, err := rExt[i].Multiply(xPow)
		if err != nil {
			return nil, err
		}
		rTilde, err = rTilde.Add(scaledR)
		if err != nil {
			return nil, err
		}
		xPow, err = xPow.Multiply(x)
		if err != nil {
			return nil, err
		}
	}
	aTildeVec, err := group.NewVector(aTilde)
	if err != nil {
		return nil, err
	}

	bTilde := make([]*group.ZqElement, n)
	for row := 0; row < n; row++ {
		bTilde[row] = zq.Zero()
	}
	sTilde := zq.Zero()
	for j := 1; j <= m+1; j++ {
		exp := m + 1 - j
		xp, err := zkutil.Pow(x, zq, exp)
		if err != nil {
			return nil, err
		}
		for row := 0; row < n; row++ {
			v, err := bExt[j].Get(row)
			if err != nil {
				return nil, err
			}
			scaled, err := v.Multiply(xp)
			if err != nil {
				return nil, err
			}
			bTilde[row], err = bTilde[row].Add(scaled)
			if err != nil {
				return nil, err
			}
		}
		scaledS, err := sExt[j].Multiply(xp)
		if err != nil {
			return nil, err
		}
		sTilde, err = sTilde.Add(scaledS)
		if err != nil {
			return nil, err
		}
	}
	bTildeVec, err := group.NewVector(bTilde)
	if err != nil {
		return nil, err
	}

	tTilde := zq.Zero()
	xPow = zq.One()
	for k := 0; k <= 2*m; k++ {
		scaled, err := tRand[k].Multiply(xPow)
		if err != nil {
			return nil, err
		}
		tTilde, err = tTilde.Add(scaled)
		if err != nil {
			return nil, err
		}
		xPow, err = xPow.Multiply(x)
		if err != nil {
			return nil, err
		}
	}

	return &Argument{
		CA0:    ca0,
		CBm1:   cbm1,
		CD:     cd,
		ATilde: aTildeVec,
		BTilde: bTildeVec,
		RTilde: rTilde,
		STilde: sTilde,
		TTilde: tTilde,
	}, nil
}

// Verify checks a zero argument, accumulating every failed equation.
func Verify(ck *commitment.Key, zq *group.ZqGroup, tr *transcript.Builder, statement Statement, arg *Argument) (*verification.Result, error) {
	xlog.Stage(component, "verify")
	result := verification.NewResult()
	m := len(statement.CA)
	if len(statement.CB) != m {
		return nil, errs.New(errs.ShapeError, "statement column-commitment counts must match")
	}
	if len(arg.CD) != 2*m+1 {
		return nil, errs.Newf(errs.ShapeError, "expected %d d-coefficients, got %d", 2*m+1, len(arg.CD))
	}

	for _, c := range statement.CA {
		tr.Append(commitment.TranscriptValue(c))
	}
	for _, c := range statement.CB {
		tr.Append(commitment.TranscriptValue(c))
	}
	tr.AppendZq(statement.Y)
	tr.Append(commitment.TranscriptValue(arg.CA0))
	tr.Append(commitment.TranscriptValue(arg.CBm1))
	for _, c := range arg.CD {
		tr.Append(commitment.TranscriptValue(c))
	}
	x, err := tr.ChallengeZq(zq, []byte("zeroarg/x"))
	if err != nil {
		return nil, err
	}

	// Aggregate A-side: C_A,0 = arg.CA0, C_A,i = statement.CA[i-1] for i=1..m.
	aggA := arg.CA0.Value()
	xp := x
	for i := 1; i <= m; i++ {
		term, err := statement.CA[i-1].Value().Exponentiate(xp)
		if err != nil {
			return nil, err
		}
		aggA, err = aggA.Multiply(term)
		if err != nil {
			return nil, err
		}
		xp, err = xp.Multiply(x)
		if err != nil {
			return nil, err
		}
	}
	expectedA, err := commitment.Commit(ck, arg.ATilde, arg.RTilde)
	if err != nil {
		return nil, err
	}
	if !aggA.Equal(expectedA.Value()) {
		result.Fail("zero argument: A-side commitment aggregation failed")
	}

	// Aggregate B-side: C_B,j = statement.CB[j-1] for j=1..m, C_B,m+1 = arg.CBm1.
	aggB := ck.Group().Identity()
	for j := 1; j <= m; j++ {
		exp := m + 1 - j
		xp, err := zkutil.Pow(x, zq, exp)
		if err != nil {
			return nil, err
		}
		term, err := statement.CB[j-1].Value().Exponentiate(xp)
		if err != nil {
			return nil, err
		}
		aggB, err = aggB.Multiply(term)
		if err != nil {
			return nil, err
		}
	}
	termM1, err := arg.CBm1.Value().Exponentiate(zq.One())
	if err != nil {
		return nil, err
	}
	aggB, err = aggB.Multiply(termM1)
	if err != nil {
		return nil, err
	}
	expectedB, err := commitment.Commit(ck, arg.BTilde, arg.STilde)
	if err != nil {
		return nil, err
	}
	if !aggB.Equal(expectedB.Value()) {
		result.Fail("zero argument: B-side commitment aggregation failed")
	}

	// Aggregate D-side.
	aggD := ck.Group().Identity()
	xp = zq.One()
	for k := 0; k <= 2*m; k++ {
		term, err := arg.CD[k].Value().Exponentiate(xp)
		if err != nil {
			return nil, err
		}
		aggD, err = aggD.Multiply(term)
		if err != nil {
			return nil, err
		}
		xp, err = xp.Multiply(x)
		if err != nil {
			return nil, err
		}
	}
	starValue, err := zkutil.StarMap(arg.ATilde, arg.BTilde, statement.Y, zq)
	if err != nil {
		return nil, err
	}
	starVec, err := group.NewVector([]*group.ZqElement{starValue})
	if err != nil {
		return nil, err
	}
	expectedD, err := commitment.Commit(ck, starVec, arg.TTilde)
	if err != nil {
		return nil, err
	}
	if !aggD.Equal(expectedD.Value()) {
		result.Fail("zero argument: D-side commitment aggregation failed")
	}

	if !result.IsValid() {
		xlog.FirstFailure(component, result.Failures()[0])
	}
	return result, nil
}
