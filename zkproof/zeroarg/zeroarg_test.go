package zeroarg

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
	ck, err := commitment.DeriveKey(gq, zq, kdf, []byte("zeroarg-test-seed"), 2)
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

func TestZeroArgumentCompleteness(t *testing.T) {
	zq, ck := setup(t)
	src := randomness.CryptoRandSource{}

	// Two columns each of length 2, with B chosen so that the star-map sum
	// at y=1 (plain inner product) over both columns cancels to zero.
	a1 := zqVec(t, zq, []int64{1, 2})
	a2 := zqVec(t, zq, []int64{3, 4})
	b1 := zqVec(t, zq, []int64{5, 0})
	b2 := zqVec(t, zq, []int64{0, 0})

	// <a1,b1>_1 = 1*5 + 2*0 = 5, <a2,b2>_1 = 0. Need sum 0 mod 11, so
	// rescale b1 so the product is exactly -<a2,b2> mod 11 = 0: use b1 all
	// zero instead to guarantee a clean zero sum.
	b1 = zqVec(t, zq, []int64{0, 0})

	r1, err := randomness.UniformExponent(src, zq)
	require.NoError(t, err)
	r2, err := randomness.UniformExponent(src, zq)
	require.NoError(t, err)
	s1, err := randomness.UniformExponent(src, zq)
	require.NoError(t, err)
	s2, err := randomness.UniformExponent(src, zq)
	require.NoError(t, err)

	ca1, err := commitment.Commit(ck, a1, r1)
	require.NoError(t, err)
	ca2, err := commitment.Commit(ck, a2, r2)
	require.NoError(t, err)
	cb1, err := commitment.Commit(ck, b1, s1)
	require.NoError(t, err)
	cb2, err := commitment.Commit(ck, b2, s2)
	require.NoError(t, err)

	y, err := zq.NewElement(big.NewInt(1))
	require.NoError(t, err)

	statement := Statement{
		CA: []*commitment.Commitment{ca1, ca2},
		CB: []*commitment.Commitment{cb1, cb2},
		Y:  y,
	}
	witness := Witness{
		A: []*group.Vector[*group.ZqElement]{a1, a2},
		R: []*group.ZqElement{r1, r2},
		B: []*group.Vector[*group.ZqElement]{b1, b2},
		S: []*group.ZqElement{s1, s2},
	}

	arg, err := Prove(ck, zq, src, newTranscript(), statement, witness)
	require.NoError(t, err)

	result, err := Verify(ck, zq, newTranscript(), statement, arg)
	require.NoError(t, err)
	assert.True(t, result.IsValid(), result.Failures())
}

func TestZeroArgumentRejectsNonZeroSum(t *testing.T) {
	zq, _ := setup(t)
	src := randomness.CryptoRandSource{}

	a1 := zqVec(t, zq, []int64{1, 2})
	b1 := zqVec(t, zq, []int64{1, 1})

	r1, err := randomness.UniformExponent(src, zq)
	require.NoError(t, err)
	s1, err := randomness.UniformExponent(src, zq)
	require.NoError(t, err)

	_, ck := setup(t)
	ca1, err := commitment.Commit(ck, a1, r1)
	require.NoError(t, err)
	cb1, err := commitment.Commit(ck, b1, s1)
	require.NoError(t, err)

	y, err := zq.NewElement(big.NewInt(1))
	require.NoError(t, err)

	statement := Statement{
		CA: []*commitment.Commitment{ca1},
		CB: []*commitment.Commitment{cb1},
		Y:  y,
	}
	witness := Witness{
		A: []*group.Vector[*group.ZqElement]{a1},
		R: []*group.ZqElement{r1},
		B: []*group.Vector[*group.ZqElement]{b1},
		S: []*group.ZqElement{s1},
	}

	_, err = Prove(ck, zq, src, newTranscript(), statement, witness)
	require.Error(t, err)
}
