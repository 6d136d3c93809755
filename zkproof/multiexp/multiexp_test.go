package multiexp

import (
	"crypto/sha256"
	"math/big"
	"testing"

	"github.com/streetU/crypto-primitives/commitment"
	"github.com/streetU/crypto-primitives/elgamal"
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
	ck, err := commitment.DeriveKey(gq, zq, kdf, []byte("multiexp-test-seed"), 2)
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

func TestMultiExpCompleteness(t *testing.T) {
	gq, zq, ck := setup(t)
	src := randomness.CryptoRandSource{}

	kp, err := elgamal.GenKeyPair(gq, zq, 1, src)
	require.NoError(t, err)

	c1, err := elgamal.Encrypt(gqMessage(t, gq, 4), mustExp(t, zq, 1), kp.PublicKey)
	require.NoError(t, err)
	c2, err := elgamal.Encrypt(gqMessage(t, gq, 2), mustExp(t, zq, 2), kp.PublicKey)
	require.NoError(t, err)
	ciphertexts := []*elgamal.Ciphertext{c1, c2}

	a1 := zqVec(t, zq, []int64{1, 0})
	r1, err := randomness.UniformExponent(src, zq)
	require.NoError(t, err)
	ca1, err := commitment.Commit(ck, a1, r1)
	require.NoError(t, err)

	rho1, err := randomness.UniformExponent(src, zq)
	require.NoError(t, err)
	exp1, err := multiExponentiate(ciphertexts, a1)
	require.NoError(t, err)
	ones, err := elgamal.Ones(gq, 1)
	require.NoError(t, err)
	delta1, err := elgamal.Encrypt(ones, rho1, kp.PublicKey)
	require.NoError(t, err)
	out1, err := elgamal.Multiply(delta1, exp1)
	require.NoError(t, err)

	statement := Statement{
		Ciphertexts: ciphertexts,
		CA:          []*commitment.Commitment{ca1},
		Outputs:     []*elgamal.Ciphertext{out1},
		PK:          kp.PublicKey,
	}
	witness := Witness{
		A:   []*group.Vector[*group.ZqElement]{a1},
		R:   []*group.ZqElement{r1},
		Rho: []*group.ZqElement{rho1},
	}

	arg, err := Prove(ck, zq, src, newTranscript(), statement, witness)
	require.NoError(t, err)

	result, err := Verify(ck, zq, newTranscript(), statement, arg)
	require.NoError(t, err)
	assert.True(t, result.IsValid(), result.Failures())
}

func TestMultiExpRejectsWrongOutput(t *testing.T) {
	gq, zq, ck := setup(t)
	src := randomness.CryptoRandSource{}

	kp, err := elgamal.GenKeyPair(gq, zq, 1, src)
	require.NoError(t, err)

	c1, err := elgamal.Encrypt(gqMessage(t, gq, 4), mustExp(t, zq, 1), kp.PublicKey)
	require.NoError(t, err)
	c2, err := elgamal.Encrypt(gqMessage(t, gq, 2), mustExp(t, zq, 2), kp.PublicKey)
	require.NoError(t, err)
	ciphertexts := []*elgamal.Ciphertext{c1, c2}

	a1 := zqVec(t, zq, []int64{1, 0})
	r1, err := randomness.UniformExponent(src, zq)
	require.NoError(t, err)
	ca1, err := commitment.Commit(ck, a1, r1)
	require.NoError(t, err)
	rho1, err := randomness.UniformExponent(src, zq)
	require.NoError(t, err)

	wrongOutput, err := elgamal.Encrypt(gqMessage(t, gq, 1), mustExp(t, zq, 3), kp.PublicKey)
	require.NoError(t, err)

	statement := Statement{
		Ciphertexts: ciphertexts,
		CA:          []*commitment.Commitment{ca1},
		Outputs:     []*elgamal.Ciphertext{wrongOutput},
		PK:          kp.PublicKey,
	}
	witness := Witness{
		A:   []*group.Vector[*group.ZqElement]{a1},
		R:   []*group.ZqElement{r1},
		Rho: []*group.ZqElement{rho1},
	}

	_, err = Prove(ck, zq, src, newTranscript(), statement, witness)
	require.Error(t, err)
}

func mustExp(t *testing.T, zq *group.ZqGroup, v int64) *group.ZqElement {
	t.Helper()
	e, err := zq.NewElement(big.NewInt(v))
	require.NoError(t, err)
	return e
}
