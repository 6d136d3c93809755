// Package hadamard implements the Hadamard product argument: proving that
// the componentwise (row-wise) product of m committed columns equals a
// committed target vector b, without revealing the columns or b.
//
// Reduces the relation to a single zero argument (zkproof/zeroarg) rather
// than checking it directly: form the cumulative row-wise products
// p_0=1, p_1=A_1, p_2=p_1∘A_2, ..., p_m=b, commit the interior terms
// p_2..p_{m-1} (p_1 and p_m already have commitments, statement.CA[0] and
// statement.CB), and prove p_j = p_{j-1}∘A_j for every j at once by
// folding the m vector equalities into a single bilinear-sum check: with
// a fresh combining challenge x and the zero argument's own y,
//
//	sum_j x^j * ( <p_j,1>_y - <p_{j-1},A_j>_y ) = 0
//
// holds (with overwhelming probability over x,y) iff every p_j=p_{j-1}∘A_j
// holds. The 2m columns fed to the zero argument are the scaled p_j/1
// pairs and the scaled -p_{j-1}/A_j pairs.
package hadamard

import (
	"github.com/streetU/crypto-primitives/commitment"
	"github.com/streetU/crypto-primitives/errs"
	"github.com/streetU/crypto-primitives/group"
	"github.com/streetU/crypto-primitives/internal/xlog"
	"github.com/streetU/crypto-primitives/randomness"
	"github.com/streetU/crypto-primitives/verification"
	"github.com/streetU/crypto-primitives/zkproof/transcript"
	"github.com/streetU/crypto-primitives/zkproof/zeroarg"
	"github.com/streetU/crypto-primitives/zkproof/zkutil"
)

const component = "hadamard"

// Statement is the public input: m column commitments to A and one
// commitment to the claimed row-wise product b.
type Statement struct {
	CA []*commitment.Commitment
	CB *commitment.Commitment
}

// Witness is the prover's secret input.
type Witness struct {
	A  []*group.Vector[*group.ZqElement]
	R  []*group.ZqElement
	B  *group.Vector[*group.ZqElement]
	SB *group.ZqElement
}

// Argument is the non-interactive Hadamard product argument.
type Argument struct {
	CP      []*commitment.Commitment // length m-2, commitments to p_2..p_{m-1}
	ZeroArg *zeroarg.Argument
}

func rowProduct(columns []*group.Vector[*group.ZqElement], row int, zq *group.ZqGroup) (*group.ZqElement, error) {
	acc := zq.One()
	for _, col := range columns {
		v, err := col.Get(row)
		if err != nil {
			return nil, err
		}
		var err2 error
		acc, err2 = acc.Multiply(v)
		if err2 != nil {
			return nil, err2
		}
	}
	return acc, nil
}

// cumulativeProducts returns p_0..p_m, with p_0 the all-ones vector,
// p_j = p_{j-1} ∘ A_j for j=1..m.
func cumulativeProducts(a []*group.Vector[*group.ZqElement], n int, zq *group.ZqGroup) ([]*group.Vector[*group.ZqElement], error) {
	m := len(a)
	p := make([]*group.Vector[*group.ZqElement], m+1)
	ones, err := zkutil.OnesVector(zq, n)
	if err != nil {
		return nil, err
	}
	p[0] = ones
	for j := 1; j <= m; j++ {
		prod, err := zkutil.HadamardVector(p[j-1], a[j-1])
		if err != nil {
			return nil, err
		}
		p[j] = prod
	}
	return p, nil
}

// Prove builds a Hadamard product argument. m must be at least 2.
func Prove(ck *commitment.Key, zq *group.ZqGroup, src randomness.Source, tr *transcript.Builder, statement Statement, witness Witness) (*Argument, error) {
	xlog.Stage(component, "prove")
	m := len(witness.A)
	if m < 2 {
		return nil, errs.New(errs.InvalidInput, "hadamard argument requires at least two columns")
	}
	if len(statement.CA) != m || len(witness.R) != m {
		return nil, errs.New(errs.ShapeError, "column commitment and randomness counts must equal m")
	}
	n := witness.B.Length()
	for j, col := range witness.A {
		if col.Length() != n {
			return nil, errs.Newf(errs.ShapeError, "column %d length %d does not match target length %d", j, col.Length(), n)
		}
	}

	p, err := cumulativeProducts(witness.A, n, zq)
	if err != nil {
		return nil, err
	}
	for row := 0; row < n; row++ {
		pm, err := p[m].Get(row)
		if err != nil {
			return nil, err
		}
		bi, err := witness.B.Get(row)
		if err != nil {
			return nil, err
		}
		if pm.Value().Cmp(bi.Value()) != 0 {
			return nil, errs.New(errs.WitnessInconsistent, "hadamard argument: row-wise product does not match witness b")
		}
	}

	// s_0 (for p_0, the public ones vector) is zero, s_1 = witness.R[0],
	// s_m = witness.SB; only s_2..s_{m-1} need fresh randomness.
	s := make([]*group.ZqElement, m+1)
	s[0] = zq.Zero()
	s[1] = witness.R[0]
	s[m] = witness.SB

	cp := make([]*commitment.Commitment, 0, m-2)
	for j := 2; j < m; j++ {
		rho, err := randomness.UniformExponent(src, zq)
		if err != nil {
			return nil, err
		}
		s[j] = rho
		c, err := commitment.Commit(ck, p[j], rho)
		if err != nil {
			return nil, err
		}
		cp = append(cp, c)
	}

	// pc[j] is the existing commitment to p[j] for j=0..m.
	pc := make([]*commitment.Commitment, m+1)
	onesCommit, err := commitment.Commit(ck, p[0], zq.Zero())
	if err != nil {
		return nil, err
	}
	pc[0] = onesCommit
	pc[1] = statement.CA[0]
	pc[m] = statement.CB
	for j := 2; j < m; j++ {
		pc[j] = cp[j-2]
	}

	for _, c := range statement.CA {
		tr.Append(commitment.TranscriptValue(c))
	}
	tr.Append(commitment.TranscriptValue(statement.CB))
	for _, c := range cp {
		tr.Append(commitment.TranscriptValue(c))
	}
	x, err := tr.ChallengeZq(zq, []byte("hadamard/x"))
	if err != nil {
		return nil, err
	}
	y, err := tr.ChallengeZq(zq, []byte("hadamard/y"))
	if err != nil {
		return nil, err
	}

	ones, err := zkutil.OnesVector(zq, n)
	if err != nil {
		return nil, err
	}

	zeroCA := make([]*commitment.Commitment, 2*m)
	zeroCB := make([]*commitment.Commitment, 2*m)
	zeroA := make([]*group.Vector[*group.ZqElement], 2*m)
	zeroR := make([]*group.ZqElement, 2*m)
	zeroB := make([]*group.Vector[*group.ZqElement], 2*m)
	zeroS := make([]*group.ZqElement, 2*m)

	for k := 1; k <= m; k++ {
		xk, err := zkutil.Pow(x, zq, k)
		if err != nil {
			return nil, err
		}
		scaledP, err := zkutil.ScaleVector(p[k], xk)
		if err != nil {
			return nil, err
		}
		scaledS, err := s[k].Multiply(xk)
		if err != nil {
			return nil, err
		}
		scaledCommit, err := pc[k].Value().Exponentiate(xk)
		if err != nil {
			return nil, err
		}
		zeroA[k-1] = scaledP
		zeroR[k-1] = scaledS
		zeroCA[k-1] = commitment.FromValue(scaledCommit)
		zeroB[k-1] = ones
		zeroS[k-1] = zq.Zero()
		zeroCB[k-1] = onesCommit
	}
	for j := 1; j <= m; j++ {
		xj, err := zkutil.Pow(x, zq, j)
		if err != nil {
			return nil, err
		}
		scaledP, err := zkutil.ScaleVector(p[j-1], xj)
		if err != nil {
			return nil, err
		}
		negP, err := zkutil.NegateVector(scaledP)
		if err != nil {
			return nil, err
		}
		scaledS, err := s[j-1].Multiply(xj)
		if err != nil {
			return nil, err
		}
		negS := scaledS.Negate()
		scaledCommit, err := pc[j-1].Value().Exponentiate(xj)
		if err != nil {
			return nil, err
		}
		invCommit := scaledCommit.Invert()
		idx := m + j - 1
		zeroA[idx] = negP
		zeroR[idx] = negS
		zeroCA[idx] = commitment.FromValue(invCommit)
		zeroB[idx] = witness.A[j-1]
		zeroS[idx] = witness.R[j-1]
		zeroCB[idx] = statement.CA[j-1]
	}

	zeroStatement := zeroarg.Statement{CA: zeroCA, CB: zeroCB, Y: y}
	zeroWitness := zeroarg.Witness{A: zeroA, R: zeroR, B: zeroB, S: zeroS}
	zeroArg, err := zeroarg.Prove(ck, zq, src, tr, zeroStatement, zeroWitness)
	if err != nil {
		return nil, err
	}

	return &Argument{CP: cp, ZeroArg: zeroArg}, nil
}

// Verify checks a Hadamard product argument, accumulating every failed
// equation into the returned Result.
func Verify(ck *commitment.Key, zq *group.ZqGroup, tr *transcript.Builder, statement Statement, arg *Argument) (*verification.Result, error) {
	xlog.Stage(component, "verify")
	m := len(statement.CA)
	if m < 2 {
		return nil, errs.New(errs.InvalidInput, "hadamard argument requires at least two columns")
	}
	if len(arg.CP) != m-2 {
		return nil, errs.Newf(errs.ShapeError, "expected %d intermediate commitments, got %d", m-2, len(arg.CP))
	}

	n := arg.ZeroArg.ATilde.Length()
	ones, err := zkutil.OnesVector(zq, n)
	if err != nil {
		return nil, err
	}
	onesCommit, err := commitment.Commit(ck, ones, zq.Zero())
	if err != nil {
		return nil, err
	}

	pc := make([]*commitment.Commitment, m+1)
	pc[0] = onesCommit
	pc[1] = statement.CA[0]
	pc[m] = statement.CB
	for j := 2; j < m; j++ {
		pc[j] = arg.CP[j-2]
	}

	for _, c := range statement.CA {
		tr.Append(commitment.TranscriptValue(c))
	}
	tr.Append(commitment.TranscriptValue(statement.CB))
	for _, c := range arg.CP {
		tr.Append(commitment.TranscriptValue(c))
	}
	x, err := tr.ChallengeZq(zq, []byte("hadamard/x"))
	if err != nil {
		return nil, err
	}
	y, err := tr.ChallengeZq(zq, []byte("hadamard/y"))
	if err != nil {
		return nil, err
	}

	zeroCA := make([]*commitment.Commitment, 2*m)
	zeroCB := make([]*commitment.Commitment, 2*m)
	for k := 1; k <= m; k++ {
		xk, err := zkutil.Pow(x, zq, k)
		if err != nil {
			return nil, err
		}
		scaledCommit, err := pc[k].Value().Exponentiate(xk)
		if err != nil {
			return nil, err
		}
		zeroCA[k-1] = commitment.FromValue(scaledCommit)
		zeroCB[k-1] = onesCommit
	}
	for j := 1; j <= m; j++ {
		xj, err := zkutil.Pow(x, zq, j)
		if err != nil {
			return nil, err
		}
		scaledCommit, err := pc[j-1].Value().Exponentiate(xj)
		if err != nil {
			return nil, err
		}
		invCommit := scaledCommit.Invert()
		idx := m + j - 1
		zeroCA[idx] = commitment.FromValue(invCommit)
		zeroCB[idx] = statement.CA[j-1]
	}

	zeroStatement := zeroarg.Statement{CA: zeroCA, CB: zeroCB, Y: y}
	result, err := zeroarg.Verify(ck, zq, tr, zeroStatement, arg.ZeroArg)
	if err != nil {
		return nil, err
	}

	if !result.IsValid() {
		xlog.FirstFailure(component, result.Failures()[0])
	}
	return result, nil
}
