// Package shuffle implements the shuffle argument: proving that an output
// ciphertext vector is a secret permutation and re-encryption of an input
// ciphertext vector, without revealing the permutation.
//
// Follows the Bayer-Groth matrix-decomposition construction: the N=m*n
// exponent vector a_i = x1^{pi(i)+1} (pi mapping each output position to
// its source input position) is reshaped into an m-column, n-row matrix
// and committed column-wise as c_A. A second challenge pair (y,z) masks a
// into b=y*a+z*1, committed the same way as c_B using s_j=y*r_j so c_B is
// homomorphically derivable from c_A (c_B_j = c_A_j^y * Commit(1,0)^z,
// checked directly). Because {pi(i)+1} ranges bijectively over {1..N},
// prod_i b_i equals the public, witness-free target
// T = prod_{k=1}^{N} (y*x1^k+z); zkproof/product proves the committed c_B
// columns multiply to T. Separately, zkproof/multiexp ties the committed
// a columns to the actual re-encryption: applying a_i to the output
// ciphertexts C'_i and combining m column results reduces, by the same
// permutation-invariance trick, to an equation against a publicly
// computable combination of the input ciphertexts (see weightedInputCombination).
package shuffle

import (
	"math/big"

	"github.com/streetU/crypto-primitives/commitment"
	"github.com/streetU/crypto-primitives/elgamal"
	"github.com/streetU/crypto-primitives/errs"
	"github.com/streetU/crypto-primitives/group"
	"github.com/streetU/crypto-primitives/internal/xlog"
	"github.com/streetU/crypto-primitives/permutation"
	"github.com/streetU/crypto-primitives/randomness"
	"github.com/streetU/crypto-primitives/verification"
	"github.com/streetU/crypto-primitives/zkproof/multiexp"
	"github.com/streetU/crypto-primitives/zkproof/product"
	"github.com/streetU/crypto-primitives/zkproof/transcript"
	"github.com/streetU/crypto-primitives/zkproof/zkutil"
)

const component = "shuffle"

// Statement is the public input: the input and output ciphertext vectors,
// the m*n decomposition of N=len(Input), and the encryption public key.
type Statement struct {
	Input  []*elgamal.Ciphertext
	Output []*elgamal.Ciphertext
	M      int
	N      int
	PK     *elgamal.PublicKey
}

// Witness is the prover's secret input: the permutation Pi such that
// Output[i] = ReEncrypt(Input[Pi^{-1}(i)], ReEncRand[i], pk), and the
// commitment randomness for the column-wise exponent matrix.
type Witness struct {
	Pi         *permutation.Permutation
	ColumnRand []*group.ZqElement
	ReEncRand  []*group.ZqElement
}

// Argument is the non-interactive shuffle argument.
type Argument struct {
	CA              []*commitment.Commitment
	CB              []*commitment.Commitment
	PartialProducts []*elgamal.Ciphertext // length m, Z_j: column j's multi-exponentiation of the output ciphertexts
	Tau             *group.ZqElement
	ProductArg      *product.Argument
	MultiExpArg     []*multiexp.Argument // length m, one call per column
}

func validateDims(statement Statement) (int, int, error) {
	m, n := statement.M, statement.N
	if m < 1 || n < 1 {
		return 0, 0, errs.New(errs.InvalidInput, "shuffle argument: m and n must be positive")
	}
	bigN := m * n
	if len(statement.Input) != bigN || len(statement.Output) != bigN {
		return 0, 0, errs.Newf(errs.ShapeError, "shuffle argument: expected N=m*n=%d ciphertexts", bigN)
	}
	if bigN < 2 {
		return 0, 0, errs.New(errs.InvalidInput, "shuffle argument: N must be at least 2")
	}
	return m, n, nil
}

func appendCiphertextVector(tr *transcript.Builder, cs []*elgamal.Ciphertext) {
	for _, c := range cs {
		tr.AppendGq(c.Gamma())
		tr.AppendGqVector(c.Phi())
	}
}

// publicTarget computes T = prod_{k=0}^{N-1} (y*x1^{k+1}+z), the
// permutation-invariant value every valid b=y*a+z must multiply to.
func publicTarget(x1, y, z *group.ZqElement, zq *group.ZqGroup, bigN int) (*group.ZqElement, error) {
	acc := zq.One()
	xp := zq.One()
	for k := 0; k < bigN; k++ {
		var err error
		xp, err = xp.Multiply(x1)
		if err != nil {
			return nil, err
		}
		yx, err := y.Multiply(xp)
		if err != nil {
			return nil, err
		}
		term, err := yx.Add(z)
		if err != nil {
			return nil, err
		}
		acc, err = acc.Multiply(term)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// weightedInputCombination computes T_C = prod_{k=0}^{N-1} (Input[k])^{x1^{k+1}},
// the public combination the committed exponent matrix's multi-exponentiation
// of the output ciphertexts must reduce to.
func weightedInputCombination(input []*elgamal.Ciphertext, x1 *group.ZqElement) (*elgamal.Ciphertext, error) {
	xp := x1
	acc, err := elgamal.Exponentiate(input[0], xp)
	if err != nil {
		return nil, err
	}
	for k := 1; k < len(input); k++ {
		var err error
		xp, err = xp.Multiply(x1)
		if err != nil {
			return nil, err
		}
		term, err := elgamal.Exponentiate(input[k], xp)
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

func multiExpColumn(ciphertexts []*elgamal.Ciphertext, weights *group.Vector[*group.ZqElement]) (*elgamal.Ciphertext, error) {
	n := len(ciphertexts)
	if weights.Length() != n {
		return nil, errs.Newf(errs.ShapeError, "column length %d does not match ciphertext count %d", weights.Length(), n)
	}
	w0, err := weights.Get(0)
	if err != nil {
		return nil, err
	}
	acc, err := elgamal.Exponentiate(ciphertexts[0], w0)
	if err != nil {
		return nil, err
	}
	for i := 1; i < n; i++ {
		wi, err := weights.Get(i)
		if err != nil {
			return nil, err
		}
		term, err := elgamal.Exponentiate(ciphertexts[i], wi)
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

// Prove builds a shuffle argument.
func Prove(ck *commitment.Key, zq *group.ZqGroup, src randomness.Source, tr *transcript.Builder, statement Statement, witness Witness) (*Argument, error) {
	xlog.Stage(component, "prove")
	bigN := len(statement.Input)
	m, n, err := validateDims(statement)
	if err != nil {
		return nil, err
	}
	if witness.Pi.Length() != bigN || len(witness.ColumnRand) != m || len(witness.ReEncRand) != bigN {
		return nil, errs.New(errs.ShapeError, "shuffle argument: witness lengths must match the m*n decomposition")
	}
	limit := new(big.Int).Sub(zq.Q(), big.NewInt(3))
	if big.NewInt(int64(bigN)).Cmp(limit) > 0 {
		return nil, errs.New(errs.PreconditionViolated, "shuffle argument: N exceeds q-3")
	}

	piInv, err := witness.Pi.Inverse()
	if err != nil {
		return nil, err
	}
	for i := 0; i < bigN; i++ {
		sourceIdx, err := piInv.At(i)
		if err != nil {
			return nil, err
		}
		reenc, err := elgamal.ReEncrypt(statement.Input[sourceIdx], witness.ReEncRand[i], statement.PK)
		if err != nil {
			return nil, err
		}
		if !sameCiphertext(reenc, statement.Output[i]) {
			return nil, errs.New(errs.WitnessInconsistent, "shuffle argument: output does not match witness permutation and re-encryption")
		}
	}

	appendCiphertextVector(tr, statement.Input)
	appendCiphertextVector(tr, statement.Output)
	x1, err := tr.ChallengeZq(zq, []byte("shuffle/x1"))
	if err != nil {
		return nil, err
	}

	aValues := make([]*group.ZqElement, bigN)
	for i := 0; i < bigN; i++ {
		srcIdx, err := piInv.At(i)
		if err != nil {
			return nil, err
		}
		exp, err := zkutil.Pow(x1, zq, srcIdx+1)
		if err != nil {
			return nil, err
		}
		aValues[i] = exp
	}
	aMatrix, err := matrixFromFlat(aValues, m, n)
	if err != nil {
		return nil, err
	}
	rVec, err := group.NewVector(witness.ColumnRand)
	if err != nil {
		return nil, err
	}
	ca, err := commitment.CommitMatrix(ck, aMatrix, rVec)
	if err != nil {
		return nil, err
	}

	for _, c := range ca {
		tr.Append(commitment.TranscriptValue(c))
	}
	y, err := tr.ChallengeZq(zq, []byte("shuffle/y"))
	if err != nil {
		return nil, err
	}
	z, err := tr.ChallengeZq(zq, []byte("shuffle/z"))
	if err != nil {
		return nil, err
	}

	bValues := make([]*group.ZqElement, bigN)
	sVec := make([]*group.ZqElement, m)
	for i := 0; i < bigN; i++ {
		ya, err := y.Multiply(aValues[i])
		if err != nil {
			return nil, err
		}
		bi, err := ya.Add(z)
		if err != nil {
			return nil, err
		}
		bValues[i] = bi
	}
	for j := 0; j < m; j++ {
		sj, err := y.Multiply(witness.ColumnRand[j])
		if err != nil {
			return nil, err
		}
		sVec[j] = sj
	}
	bMatrix, err := matrixFromFlat(bValues, m, n)
	if err != nil {
		return nil, err
	}
	sVector, err := group.NewVector(sVec)
	if err != nil {
		return nil, err
	}
	cb, err := commitment.CommitMatrix(ck, bMatrix, sVector)
	if err != nil {
		return nil, err
	}

	target, err := publicTarget(x1, y, z, zq, bigN)
	if err != nil {
		return nil, err
	}

	bColumns := make([]*group.Vector[*group.ZqElement], m)
	for j := 0; j < m; j++ {
		col, err := bMatrix.Column(j)
		if err != nil {
			return nil, err
		}
		bColumns[j] = col
	}
	prodStatement := product.Statement{CA: cb, B: target}
	prodWitness := product.Witness{A: bColumns, R: sVec}
	prodArg, err := product.Prove(ck, zq, src, tr, prodStatement, prodWitness)
	if err != nil {
		return nil, err
	}

	partialProducts := make([]*elgamal.Ciphertext, m)
	tau := zq.Zero()
	meArgs := make([]*multiexp.Argument, m)
	for j := 0; j < m; j++ {
		outputChunk := statement.Output[j*n : (j+1)*n]
		aCol, err := aMatrix.Column(j)
		if err != nil {
			return nil, err
		}
		zj, err := multiExpColumn(outputChunk, aCol)
		if err != nil {
			return nil, err
		}
		partialProducts[j] = zj

		for i := 0; i < n; i++ {
			ai, err := aCol.Get(i)
			if err != nil {
				return nil, err
			}
			rho := witness.ReEncRand[j*n+i]
			term, err := rho.Multiply(ai)
			if err != nil {
				return nil, err
			}
			tau, err = tau.Add(term)
			if err != nil {
				return nil, err
			}
		}

		meStatement := multiexp.Statement{
			Ciphertexts: outputChunk,
			CA:          []*commitment.Commitment{ca[j]},
			Outputs:     []*elgamal.Ciphertext{zj},
			PK:          statement.PK,
		}
		meWitness := multiexp.Witness{
			A:   []*group.Vector[*group.ZqElement]{aCol},
			R:   []*group.ZqElement{witness.ColumnRand[j]},
			Rho: []*group.ZqElement{zq.Zero()},
		}
		meArg, err := multiexp.Prove(ck, zq, src, tr, meStatement, meWitness)
		if err != nil {
			return nil, err
		}
		meArgs[j] = meArg
	}

	weighted, err := weightedInputCombination(statement.Input, x1)
	if err != nil {
		return nil, err
	}
	combined := partialProducts[0]
	for j := 1; j < m; j++ {
		combined, err = elgamal.Multiply(combined, partialProducts[j])
		if err != nil {
			return nil, err
		}
	}
	ones, err := elgamal.Ones(statement.PK.Group(), statement.Input[0].Length())
	if err != nil {
		return nil, err
	}
	delta, err := elgamal.Encrypt(ones, tau, statement.PK)
	if err != nil {
		return nil, err
	}
	expected, err := elgamal.Multiply(delta, weighted)
	if err != nil {
		return nil, err
	}
	if !sameCiphertext(combined, expected) {
		return nil, errs.New(errs.WitnessInconsistent, "shuffle argument: re-encryption identity does not hold")
	}

	return &Argument{
		CA:              ca,
		CB:              cb,
		PartialProducts: partialProducts,
		Tau:             tau,
		ProductArg:      prodArg,
		MultiExpArg:     meArgs,
	}, nil
}

// Verify checks a shuffle argument, accumulating every failed equation
// across every composed sub-argument into the returned Result.
func Verify(ck *commitment.Key, zq *group.ZqGroup, tr *transcript.Builder, statement Statement, arg *Argument) (*verification.Result, error) {
	xlog.Stage(component, "verify")
	m, n, err := validateDims(statement)
	if err != nil {
		return nil, err
	}
	bigN := len(statement.Input)
	if len(arg.CA) != m || len(arg.CB) != m || len(arg.PartialProducts) != m || len(arg.MultiExpArg) != m {
		return nil, errs.New(errs.ShapeError, "shuffle argument: response lengths must equal m")
	}

	result := verification.NewResult()

	appendCiphertextVector(tr, statement.Input)
	appendCiphertextVector(tr, statement.Output)
	x1, err := tr.ChallengeZq(zq, []byte("shuffle/x1"))
	if err != nil {
		return nil, err
	}

	for _, c := range arg.CA {
		tr.Append(commitment.TranscriptValue(c))
	}
	y, err := tr.ChallengeZq(zq, []byte("shuffle/y"))
	if err != nil {
		return nil, err
	}
	z, err := tr.ChallengeZq(zq, []byte("shuffle/z"))
	if err != nil {
		return nil, err
	}

	ones, err := zkutil.OnesVector(zq, n)
	if err != nil {
		return nil, err
	}
	onesCommit, err := commitment.Commit(ck, ones, zq.Zero())
	if err != nil {
		return nil, err
	}
	for j := 0; j < m; j++ {
		caY, err := arg.CA[j].Value().Exponentiate(y)
		if err != nil {
			return nil, err
		}
		onesZ, err := onesCommit.Value().Exponentiate(z)
		if err != nil {
			return nil, err
		}
		expected, err := caY.Multiply(onesZ)
		if err != nil {
			return nil, err
		}
		if !expected.Equal(arg.CB[j].Value()) {
			result.Failf("shuffle argument: column %d commitment b-transform failed", j)
		}
	}

	target, err := publicTarget(x1, y, z, zq, bigN)
	if err != nil {
		return nil, err
	}
	prodStatement := product.Statement{CA: arg.CB, B: target}
	prodResult, err := product.Verify(ck, zq, tr, prodStatement, arg.ProductArg)
	if err != nil {
		return nil, err
	}
	result.Merge(prodResult)

	for j := 0; j < m; j++ {
		outputChunk := statement.Output[j*n : (j+1)*n]
		meStatement := multiexp.Statement{
			Ciphertexts: outputChunk,
			CA:          []*commitment.Commitment{arg.CA[j]},
			Outputs:     []*elgamal.Ciphertext{arg.PartialProducts[j]},
			PK:          statement.PK,
		}
		meResult, err := multiexp.Verify(ck, zq, tr, meStatement, arg.MultiExpArg[j])
		if err != nil {
			return nil, err
		}
		result.Merge(meResult)
	}

	weighted, err := weightedInputCombination(statement.Input, x1)
	if err != nil {
		return nil, err
	}
	combined := arg.PartialProducts[0]
	for j := 1; j < m; j++ {
		combined, err = elgamal.Multiply(combined, arg.PartialProducts[j])
		if err != nil {
			return nil, err
		}
	}
	ones2, err := elgamal.Ones(statement.PK.Group(), statement.Input[0].Length())
	if err != nil {
		return nil, err
	}
	delta, err := elgamal.Encrypt(ones2, arg.Tau, statement.PK)
	if err != nil {
		return nil, err
	}
	expected, err := elgamal.Multiply(delta, weighted)
	if err != nil {
		return nil, err
	}
	if !sameCiphertext(combined, expected) {
		result.Fail("shuffle argument: re-encryption identity check failed")
	}

	if !result.IsValid() {
		xlog.FirstFailure(component, result.Failures()[0])
	}
	return result, nil
}

func matrixFromFlat(flat []*group.ZqElement, m, n int) (*group.Matrix[*group.ZqElement], error) {
	rows := make([]*group.Vector[*group.ZqElement], n)
	for row := 0; row < n; row++ {
		rowValues := make([]*group.ZqElement, m)
		for col := 0; col < m; col++ {
			rowValues[col] = flat[col*n+row]
		}
		v, err := group.NewVector(rowValues)
		if err != nil {
			return nil, err
		}
		rows[row] = v
	}
	return group.NewMatrix(rows)
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
