// Package product implements the product argument: proving that every
// entry of an m-column committed matrix multiplies (across both columns
// and rows) to a single public scalar B.
//
// Composes zkproof/hadamard (columns multiply row-wise to an internal,
// freshly committed vector b) with zkproof/svp (the entries of b multiply
// to the public B).
package product

import (
	"github.com/streetU/crypto-primitives/commitment"
	"github.com/streetU/crypto-primitives/errs"
	"github.com/streetU/crypto-primitives/group"
	"github.com/streetU/crypto-primitives/internal/xlog"
	"github.com/streetU/crypto-primitives/randomness"
	"github.com/streetU/crypto-primitives/verification"
	"github.com/streetU/crypto-primitives/zkproof/hadamard"
	"github.com/streetU/crypto-primitives/zkproof/svp"
	"github.com/streetU/crypto-primitives/zkproof/transcript"
)

const component = "product"

// Statement is the public input: m column commitments to A and the
// claimed overall product B.
type Statement struct {
	CA []*commitment.Commitment
	B  *group.ZqElement
}

// Witness is the prover's secret input.
type Witness struct {
	A []*group.Vector[*group.ZqElement]
	R []*group.ZqElement
}

// Argument is the non-interactive product argument.
type Argument struct {
	CB  *commitment.Commitment
	Had *hadamard.Argument
	SVP *svp.Argument
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

// Prove builds a product argument. If m == 1 the Hadamard step is skipped
// and the single column is fed directly into the single-value product
// argument.
func Prove(ck *commitment.Key, zq *group.ZqGroup, src randomness.Source, tr *transcript.Builder, statement Statement, witness Witness) (*Argument, error) {
	xlog.Stage(component, "prove")
	m := len(witness.A)
	if m == 0 || len(statement.CA) != m || len(witness.R) != m {
		return nil, errs.New(errs.ShapeError, "product argument: column and randomness counts must match and be non-zero")
	}
	n := witness.A[0].Length()

	if m == 1 {
		svpStatement := svp.Statement{CA: statement.CA[0], B: statement.B}
		svpWitness := svp.Witness{A: witness.A[0], R: witness.R[0]}
		arg, err := svp.Prove(ck, zq, src, tr, svpStatement, svpWitness)
		if err != nil {
			return nil, err
		}
		return &Argument{SVP: arg}, nil
	}

	bValues := make([]*group.ZqElement, n)
	for row := 0; row < n; row++ {
		p, err := rowProduct(witness.A, row, zq)
		if err != nil {
			return nil, err
		}
		bValues[row] = p
	}
	b, err := group.NewVector(bValues)
	if err != nil {
		return nil, err
	}
	sb, err := randomness.UniformExponent(src, zq)
	if err != nil {
		return nil, err
	}
	cb, err := commitment.Commit(ck, b, sb)
	if err != nil {
		return nil, err
	}

	hadStatement := hadamard.Statement{CA: statement.CA, CB: cb}
	hadWitness := hadamard.Witness{A: witness.A, R: witness.R, B: b, SB: sb}
	hadArg, err := hadamard.Prove(ck, zq, src, tr, hadStatement, hadWitness)
	if err != nil {
		return nil, err
	}

	overallProduct := zq.One()
	for row := 0; row < n; row++ {
		overallProduct, err = overallProduct.Multiply(bValues[row])
		if err != nil {
			return nil, err
		}
	}
	if overallProduct.Value().Cmp(statement.B.Value()) != 0 {
		return nil, errs.New(errs.WitnessInconsistent, "product argument: overall product does not match statement B")
	}

	svpStatement := svp.Statement{CA: cb, B: statement.B}
	svpWitness := svp.Witness{A: b, R: sb}
	svpArg, err := svp.Prove(ck, zq, src, tr, svpStatement, svpWitness)
	if err != nil {
		return nil, err
	}

	return &Argument{CB: cb, Had: hadArg, SVP: svpArg}, nil
}

// Verify checks a product argument, accumulating every failed equation
// from both composed sub-arguments into the returned Result.
func Verify(ck *commitment.Key, zq *group.ZqGroup, tr *transcript.Builder, statement Statement, arg *Argument) (*verification.Result, error) {
	xlog.Stage(component, "verify")
	m := len(statement.CA)
	if m == 1 {
		svpStatement := svp.Statement{CA: statement.CA[0], B: statement.B}
		return svp.Verify(ck, zq, tr, svpStatement, arg.SVP)
	}

	result := verification.NewResult()
	hadStatement := hadamard.Statement{CA: statement.CA, CB: arg.CB}
	hadResult, err := hadamard.Verify(ck, zq, tr, hadStatement, arg.Had)
	if err != nil {
		return nil, err
	}
	result.Merge(hadResult)

	svpStatement := svp.Statement{CA: arg.CB, B: statement.B}
	svpResult, err := svp.Verify(ck, zq, tr, svpStatement, arg.SVP)
	if err != nil {
		return nil, err
	}
	result.Merge(svpResult)

	if !result.IsValid() {
		xlog.FirstFailure(component, result.Failures()[0])
	}
	return result, nil
}
