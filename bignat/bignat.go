// Package bignat wraps the arbitrary-precision nonnegative-integer
// operations used throughout crypto-primitives: modular multiplication,
// exponentiation, and inversion, plus the minimum-length big-endian
// byte<->integer conversion used for Fiat-Shamir transcripts.
//
// math/big is used directly rather than through a third-party bignum
// library: every repo in the example pack (getamis-alice, drand,
// takakv-msc-poc) does arbitrary-precision modular arithmetic straight on
// *big.Int. Accepting and returning *big.Int at every boundary keeps the
// backend swappable without touching call sites.
package bignat

import (
	"math/big"

	"github.com/streetU/crypto-primitives/errs"
)

// Multiply returns a*b mod m.
func Multiply(a, b, m *big.Int) *big.Int {
	r := new(big.Int).Mul(a, b)
	return r.Mod(r, m)
}

// Exp returns base^exp mod m.
func Exp(base, exp, m *big.Int) *big.Int {
	return new(big.Int).Exp(base, exp, m)
}

// Inverse returns a^-1 mod m, failing with InvalidInput if a has no inverse
// modulo m (e.g. gcd(a,m) != 1).
func Inverse(a, m *big.Int) (*big.Int, error) {
	inv := new(big.Int).ModInverse(a, m)
	if inv == nil {
		return nil, errs.Newf(errs.InvalidInput, "%s has no inverse modulo %s", a, m)
	}
	return inv, nil
}

// IsProbablyPrime reports whether n passes a Miller-Rabin primality test
// with the conventional 20-round confidence level.
func IsProbablyPrime(n *big.Int) bool {
	return n.ProbablyPrime(20)
}

// IntegerToByteArray returns the minimum-length big-endian encoding of n: no
// leading zero byte, except that n == 0 encodes as the single byte 0x00.
// This is the one implementation the module ships; see DESIGN.md for the
// round-trip test that pins its behavior.
func IntegerToByteArray(n *big.Int) []byte {
	if n.Sign() == 0 {
		return []byte{0x00}
	}
	return n.Bytes()
}

// ByteArrayToInteger decodes a big-endian byte string produced by
// IntegerToByteArray (or any big-endian byte string) back into an integer.
// It never prepends a spurious byte: big.Int.SetBytes already treats its
// input as an unsigned big-endian magnitude.
func ByteArrayToInteger(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}
