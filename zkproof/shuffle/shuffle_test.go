package shuffle

import (
	"crypto/sha256"
	"math/big"
	"testing"

	"github.com/streetU/crypto-primitives/commitment"
	"github.com/streetU/crypto-primitives/elgamal"
	"github.com/streetU/crypto-primitives/group"
	"github.com/streetU/crypto-primitives/hashing"
	"github.com/streetU/crypto-primitives/permutation"
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
	ck, err := commitment.DeriveKey(gq, zq, kdf, []byte("shuffle-test-seed"), 3)
	require.NoError(t, err)
	return gq, zq, ck
}

func newTranscript() *transcript.Builder {
	return transcript.New(hashing.New(sha256.New), randomness.NewKDF(sha256.New))
}

func gqMessage(t *testing.T, gq *group.GqGroup, value int64) *elgamal.Message {
	t.Helper()
	el, err := gq.NewElement(big.NewInt(value))
	require.NoError(t, err)
	vec, err := group.NewVector([]*group.GqElement{el})
	require.NoError(t, err)
	msg, err := elgamal.NewMessage(gq, vec)
	require.NoError(t, err)
	return msg
}

func mustExp(t *testing.T, zq *group.ZqGroup, v int64) *group.ZqElement {
	t.Helper()
	e, err := zq.NewElement(big.NewInt(v))
	require.NoError(t, err)
	return e
}

func TestShuffleCompleteness(t *testing.T) {
	gq, zq, ck := setup(t)
	src := randomness.CryptoRandSource{}

	kp, err := elgamal.GenKeyPair(gq, zq, 1, src)
	require.NoError(t, err)

	inputs := make([]*elgamal.Ciphertext, 3)
	for i, v := range []int64{4, 2, 8} {
		c, err := elgamal.Encrypt(gqMessage(t, gq, v), mustExp(t, zq, int64(i+1)), kp.PublicKey)
		require.NoError(t, err)
		inputs[i] = c
	}

	pi, err := permutation.New([]int{2, 0, 1})
	require.NoError(t, err)
	piInv, err := pi.Inverse()
	require.NoError(t, err)

	columnRand := make([]*group.ZqElement, 3)
	reEncRand := make([]*group.ZqElement, 3)
	outputs := make([]*elgamal.Ciphertext, 3)
	for j := 0; j < 3; j++ {
		cr, err := randomness.UniformExponent(src, zq)
		require.NoError(t, err)
		columnRand[j] = cr
		rr, err := randomness.UniformExponent(src, zq)
		require.NoError(t, err)
		reEncRand[j] = rr

		srcIdx, err := piInv.At(j)
		require.NoError(t, err)
		out, err := elgamal.ReEncrypt(inputs[srcIdx], rr, kp.PublicKey)
		require.NoError(t, err)
		outputs[j] = out
	}

	statement := Statement{Input: inputs, Output: outputs, M: 3, N: 1, PK: kp.PublicKey}
	witness := Witness{Pi: pi, ColumnRand: columnRand, ReEncRand: reEncRand}

	arg, err := Prove(ck, zq, src, newTranscript(), statement, witness)
	require.NoError(t, err)

	result, err := Verify(ck, zq, newTranscript(), statement, arg)
	require.NoError(t, err)
	assert.True(t, result.IsValid(), result.Failures())
}

func TestShuffleRejectsMismatchedOutput(t *testing.T) {
	gq, zq, ck := setup(t)
	src := randomness.CryptoRandSource{}

	kp, err := elgamal.GenKeyPair(gq, zq, 1, src)
	require.NoError(t, err)

	inputs := make([]*elgamal.Ciphertext, 3)
	for i, v := range []int64{4, 2, 8} {
		c, err := elgamal.Encrypt(gqMessage(t, gq, v), mustExp(t, zq, int64(i+1)), kp.PublicKey)
		require.NoError(t, err)
		inputs[i] = c
	}

	pi, err := permutation.New([]int{2, 0, 1})
	require.NoError(t, err)

	columnRand := make([]*group.ZqElement, 3)
	reEncRand := make([]*group.ZqElement, 3)
	for j := 0; j < 3; j++ {
		cr, err := randomness.UniformExponent(src, zq)
		require.NoError(t, err)
		columnRand[j] = cr
		rr, err := randomness.UniformExponent(src, zq)
		require.NoError(t, err)
		reEncRand[j] = rr
	}

	// Outputs left as plain re-encryptions of the *un-permuted* inputs,
	// inconsistent with the claimed permutation pi.
	outputs := make([]*elgamal.Ciphertext, 3)
	for j := 0; j < 3; j++ {
		out, err := elgamal.ReEncrypt(inputs[j], reEncRand[j], kp.PublicKey)
		require.NoError(t, err)
		outputs[j] = out
	}

	statement := Statement{Input: inputs, Output: outputs, M: 3, N: 1, PK: kp.PublicKey}
	witness := Witness{Pi: pi, ColumnRand: columnRand, ReEncRand: reEncRand}

	_, err = Prove(ck, zq, src, newTranscript(), statement, witness)
	require.Error(t, err)
}
