package product

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

func setup(t *testing.T) (*group.ZqGroup, *commitment.Key) {
	t.Helper()
	gq, err := group.NewGqGroup(big.NewInt(23), big.NewInt(11), big.NewInt(2))
	require.NoError(t, err)
	zq, err := group.NewZqGroup(big.NewInt(11))
	require.NoError(t, err)
	kdf := randomness.NewKDF(sha256.New)
	ck, err := commitment.DeriveKey(gq, zq, kdf, []byte("product-test-seed"), 2)
	require.NoError(t, err)
	return zq, ck
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

func TestProductCompletenessTwoColumns(t *testing.T) {
	zq, ck := setup(t)
	src := randomness.CryptoRandSource{}

	// column 1 = (2,4), column 2 = (3,5); overall product = 2*4*3*5=120, mod 11 = 10.
	a1 := zqVec(t, zq, []int64{2, 4})
	a2 := zqVec(t, zq, []int64{3, 5})
	r1, err := randomness.UniformExponent(src, zq)
	require.NoError(t, err)
	r2, err := randomness.UniformExponent(src, zq)
	require.NoError(t, err)
	ca1, err := commitment.Commit(ck, a1, r1)
	require.NoError(t, err)
	ca2, err := commitment.Commit(ck, a2, r2)
	require.NoError(t, err)
	b, err := zq.NewElement(big.NewInt(120 % 11))
	require.NoError(t, err)

	statement := Statement{CA: []*commitment.Commitment{ca1, ca2}, B: b}
	witness := Witness{A: []*group.Vector[*group.ZqElement]{a1, a2}, R: []*group.ZqElement{r1, r2}}

	arg, err := Prove(ck, zq, src, newTranscript(), statement, witness)
	require.NoError(t, err)

	result, err := Verify(ck, zq, newTranscript(), statement, arg)
	require.NoError(t, err)
	assert.True(t, result.IsValid(), result.Failures())
}

func TestProductCompletenessSingleColumn(t *testing.T) {
	zq, ck := setup(t)
	src := randomness.CryptoRandSource{}

	a1 := zqVec(t, zq, []int64{2, 3, 4})
	r1, err := randomness.UniformExponent(src, zq)
	require.NoError(t, err)
	ca1, err := commitment.Commit(ck, a1, r1)
	require.NoError(t, err)
	b, err := zq.NewElement(big.NewInt(24 % 11))
	require.NoError(t, err)

	statement := Statement{CA: []*commitment.Commitment{ca1}, B: b}
	witness := Witness{A: []*group.Vector[*group.ZqElement]{a1}, R: []*group.ZqElement{r1}}

	arg, err := Prove(ck, zq, src, newTranscript(), statement, witness)
	require.NoError(t, err)

	result, err := Verify(ck, zq, newTranscript(), statement, arg)
	require.NoError(t, err)
	assert.True(t, result.IsValid(), result.Failures())
}

func TestProductRejectsWrongTarget(t *testing.T) {
	zq, ck := setup(t)
	src := randomness.CryptoRandSource{}

	a1 := zqVec(t, zq, []int64{2, 4})
	a2 := zqVec(t, zq, []int64{3, 5})
	r1, err := randomness.UniformExponent(src, zq)
	require.NoError(t, err)
	r2, err := randomness.UniformExponent(src, zq)
	require.NoError(t, err)
	ca1, err := commitment.Commit(ck, a1, r1)
	require.NoError(t, err)
	ca2, err := commitment.Commit(ck, a2, r2)
	require.NoError(t, err)
	wrongB, err := zq.NewElement(big.NewInt(1))
	require.NoError(t, err)

	statement := Statement{CA: []*commitment.Commitment{ca1, ca2}, B: wrongB}
	witness := Witness{A: []*group.Vector[*group.ZqElement]{a1, a2}, R: []*group.ZqElement{r1, r2}}

	_, err = Prove(ck, zq, src, newTranscript(), statement, witness)
	require.Error(t, err)
}
