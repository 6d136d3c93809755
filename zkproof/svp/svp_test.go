package svp

import (
	"crypto/sha256"
	"math/big"
	"testing"

	"github.com/streetU/crypto-primitives/commitment"
	"github.com/streetU/crypto-primitives/group"
	"github.com/streetU/crypto-primitives/hashing"
	"github.com/streetU/crypto-primitives/randomness"
	"github.com/streetU/crypto-primitives/zkproof/transcript"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*group.GqGroup, *group.ZqGroup, *commitment.Key) {
	t.Helper()
	gq, err := group.NewGqGroup(big.NewInt(23), big.NewInt(11), big.NewInt(2))
	require.NoError(t, err)
	zq, err := group.NewZqGroup(big.NewInt(11))
	require.NoError(t, err)
	kdf := randomness.NewKDF(sha256.New)
	ck, err := commitment.DeriveKey(gq, zq, kdf, []byte("svp-test-seed"), 4)
	require.NoError(t, err)
	return gq, zq, ck
}

func zqVec(t *testing.T, zq *group.ZqGroup, values []int64) *group.Vector[*group.ZqElement] {
	t.Helper()
	elements := make([]*group.ZqElement, len(values))
	for i, v := range values {
		e, err := zq.NewElement(big.NewInt(v))
		require.NoError(t, err)
		elements[i] = e
	}
	vec, err := group.NewVector(elements)
	require.NoError(t, err)
	return vec
}

func newTranscript() *transcript.Builder {
	return transcript.New(hashing.New(sha256.New), randomness.NewKDF(sha256.New))
}

func TestSingleValueProductCompleteness(t *testing.T) {
	_, zq, ck := setup(t)
	src := randomness.CryptoRandSource{}

	a := zqVec(t, zq, []int64{2, 3, 4})
	r, err := randomness.UniformExponent(src, zq)
	require.NoError(t, err)
	cAVec := zqVec(t, zq, []int64{2, 3, 4})
	ca, err := commitment.Commit(ck, cAVec, r)
	require.NoError(t, err)
	b, err := zq.NewElement(big.NewInt(24 % 11))
	require.NoError(t, err)

	statement := Statement{CA: ca, B: b}
	witness := Witness{A: a, R: r}

	proveTr := newTranscript()
	arg, err := Prove(ck, zq, src, proveTr, statement, witness)
	require.NoError(t, err)

	verifyTr := newTranscript()
	result, err := Verify(ck, zq, verifyTr, statement, arg)
	require.NoError(t, err)
	assert.True(t, result.IsValid(), result.Failures())
}

func TestSingleValueProductRejectsWrongProduct(t *testing.T) {
	_, zq, ck := setup(t)
	src := randomness.CryptoRandSource{}

	a := zqVec(t, zq, []int64{2, 3})
	r, err := randomness.UniformExponent(src, zq)
	require.NoError(t, err)
	ca, err := commitment.Commit(ck, a, r)
	require.NoError(t, err)
	wrongB, err := zq.NewElement(big.NewInt(9))
	require.NoError(t, err)

	statement := Statement{CA: ca, B: wrongB}
	witness := Witness{A: a, R: r}
	_, err = Prove(ck, zq, src, newTranscript(), statement, witness)
	require.Error(t, err)
}
