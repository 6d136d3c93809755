package commitment

import (
	"crypto/sha256"
	"math/big"
	"testing"

	"github.com/streetU/crypto-primitives/errs"
	"github.com/streetU/crypto-primitives/group"
	"github.com/streetU/crypto-primitives/randomness"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toyGroups(t *testing.T) (*group.GqGroup, *group.ZqGroup) {
	t.Helper()
	gq, err := group.NewGqGroup(big.NewInt(23), big.NewInt(11), big.NewInt(2))
	require.NoError(t, err)
	zq, err := group.NewZqGroup(big.NewInt(11))
	require.NoError(t, err)
	return gq, zq
}

func zqVector(t *testing.T, zq *group.ZqGroup, values []int64) *group.Vector[*group.ZqElement] {
	t.Helper()
	elements := make([]*group.ZqElement, len(values))
	for i, v := range values {
		el, err := zq.NewElement(big.NewInt(v))
		require.NoError(t, err)
		elements[i] = el
	}
	vec, err := group.NewVector(elements)
	require.NoError(t, err)
	return vec
}

func TestDeriveKeyDeterministic(t *testing.T) {
	gq, zq := toyGroups(t)
	kdf := randomness.NewKDF(sha256.New)
	seed := []byte("public-seed")

	k1, err := DeriveKey(gq, zq, kdf, seed, 3)
	require.NoError(t, err)
	k2, err := DeriveKey(gq, zq, kdf, seed, 3)
	require.NoError(t, err)

	assert.True(t, k1.H().Equal(k2.H()))
	for i := 0; i < 3; i++ {
		a, err := k1.G(i)
		require.NoError(t, err)
		b, err := k2.G(i)
		require.NoError(t, err)
		assert.True(t, a.Equal(b))
	}
}

func TestCommitOpenRoundTrip(t *testing.T) {
	gq, zq := toyGroups(t)
	kdf := randomness.NewKDF(sha256.New)
	k, err := DeriveKey(gq, zq, kdf, []byte("seed"), 3)
	require.NoError(t, err)

	x := zqVector(t, zq, []int64{1, 2, 3})
	r, err := zq.NewElement(big.NewInt(5))
	require.NoError(t, err)

	c, err := Commit(k, x, r)
	require.NoError(t, err)

	ok, err := Open(k, c, x, r)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestOpenRejectsWrongRandomness(t *testing.T) {
	gq, zq := toyGroups(t)
	kdf := randomness.NewKDF(sha256.New)
	k, err := DeriveKey(gq, zq, kdf, []byte("seed"), 2)
	require.NoError(t, err)

	x := zqVector(t, zq, []int64{1, 2})
	r, err := zq.NewElement(big.NewInt(5))
	require.NoError(t, err)
	c, err := Commit(k, x, r)
	require.NoError(t, err)

	wrongR, err := zq.NewElement(big.NewInt(6))
	require.NoError(t, err)
	ok, err := Open(k, c, x, wrongR)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCommitRejectsOversizedMessage(t *testing.T) {
	gq, zq := toyGroups(t)
	kdf := randomness.NewKDF(sha256.New)
	k, err := DeriveKey(gq, zq, kdf, []byte("seed"), 1)
	require.NoError(t, err)

	x := zqVector(t, zq, []int64{1, 2})
	r, err := zq.NewElement(big.NewInt(5))
	require.NoError(t, err)
	_, err = Commit(k, x, r)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ShapeError))
}

func TestCommitMatrixOneCommitmentPerColumn(t *testing.T) {
	gq, zq := toyGroups(t)
	kdf := randomness.NewKDF(sha256.New)
	k, err := DeriveKey(gq, zq, kdf, []byte("seed"), 2)
	require.NoError(t, err)

	col1 := zqVector(t, zq, []int64{1, 2})
	col2 := zqVector(t, zq, []int64{3, 4})
	row0 := zqVector(t, zq, []int64{1, 3})
	row1 := zqVector(t, zq, []int64{2, 4})
	m, err := group.NewMatrix([]*group.Vector[*group.ZqElement]{row0, row1})
	require.NoError(t, err)

	r := zqVector(t, zq, []int64{7, 8})
	cs, err := CommitMatrix(k, m, r)
	require.NoError(t, err)
	require.Len(t, cs, 2)

	c1, err := Commit(k, col1, mustGet(t, r, 0))
	require.NoError(t, err)
	c2, err := Commit(k, col2, mustGet(t, r, 1))
	require.NoError(t, err)
	assert.True(t, cs[0].Equal(c1))
	assert.True(t, cs[1].Equal(c2))
}

func mustGet(t *testing.T, v *group.Vector[*group.ZqElement], i int) *group.ZqElement {
	t.Helper()
	e, err := v.Get(i)
	require.NoError(t, err)
	return e
}
