package randomness

import (
	"crypto/sha256"
	"math/big"
	"testing"

	"github.com/streetU/crypto-primitives/group"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixtureSource is a deterministic Source that serves a prefilled queue of
// integers, one per GenInteger call, and panics if it is exhausted or
// asked for bytes — used to assert the exact-number-of-samples contract a
// protocol's randomness draws must honor.
type fixtureSource struct {
	queue []int64
	pos   int
}

func (f *fixtureSource) GenInteger(upperExclusive *big.Int) (*big.Int, error) {
	if f.pos >= len(f.queue) {
		panic("fixtureSource exhausted")
	}
	v := f.queue[f.pos]
	f.pos++
	return big.NewInt(v), nil
}

func (f *fixtureSource) GenBytes(n int) ([]byte, error) {
	panic("fixtureSource: GenBytes not expected")
}

func TestUniformVectorSamplesExactlyN(t *testing.T) {
	zq, err := group.NewZqGroup(big.NewInt(5))
	require.NoError(t, err)
	src := &fixtureSource{queue: []int64{1, 2, 3}}
	vec, err := UniformVector(src, zq, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, vec.Length())
	assert.Equal(t, 3, src.pos)
}

func TestCryptoRandSourceInRange(t *testing.T) {
	src := CryptoRandSource{}
	upper := big.NewInt(1000)
	for i := 0; i < 20; i++ {
		v, err := src.GenInteger(upper)
		require.NoError(t, err)
		assert.True(t, v.Sign() >= 0 && v.Cmp(upper) < 0)
	}
}

func TestKDFToZqInRangeAndDeterministic(t *testing.T) {
	zq, err := group.NewZqGroup(big.NewInt(5))
	require.NoError(t, err)
	k := NewKDF(sha256.New)
	prk := []byte("test-prk")
	info := []byte("crypto-primitives-test")

	a, err := k.KDFToZq(prk, info, zq)
	require.NoError(t, err)
	b, err := k.KDFToZq(prk, info, zq)
	require.NoError(t, err)
	assert.True(t, zq.IsMember(a.Value()))
	assert.Equal(t, 0, a.Value().Cmp(b.Value()))
}

func TestHKDFExpandLength(t *testing.T) {
	k := NewKDF(sha256.New)
	out, err := k.HKDFExpand([]byte("prk"), []byte("info"), 48)
	require.NoError(t, err)
	assert.Len(t, out, 48)
}
