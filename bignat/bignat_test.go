package bignat

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegerByteArrayRoundTrip(t *testing.T) {
	cases := []int64{0, 1, 255, 256, 65535, 1 << 30}
	for _, c := range cases {
		n := big.NewInt(c)
		got := ByteArrayToInteger(IntegerToByteArray(n))
		assert.Equal(t, 0, n.Cmp(got), "round trip for %d", c)
	}
}

func TestIntegerToByteArrayZero(t *testing.T) {
	assert.Equal(t, []byte{0x00}, IntegerToByteArray(big.NewInt(0)))
}

func TestIntegerToByteArrayNoLeadingZero(t *testing.T) {
	b := IntegerToByteArray(big.NewInt(255))
	assert.Equal(t, []byte{0xFF}, b)
}

func TestMultiplyExp(t *testing.T) {
	m := big.NewInt(11)
	assert.Equal(t, big.NewInt(9), Multiply(big.NewInt(4), big.NewInt(5), m))
	assert.Equal(t, big.NewInt(1), Exp(big.NewInt(3), big.NewInt(5), m))
}

func TestInverse(t *testing.T) {
	m := big.NewInt(11)
	inv, err := Inverse(big.NewInt(3), m)
	require.NoError(t, err)
	assert.Equal(t, 0, Multiply(big.NewInt(3), inv, m).Cmp(big.NewInt(1)))
}

func TestInverseFailure(t *testing.T) {
	_, err := Inverse(big.NewInt(2), big.NewInt(4))
	require.Error(t, err)
}
