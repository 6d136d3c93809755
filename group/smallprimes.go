package group

import (
	"math/big"

	"github.com/streetU/crypto-primitives/errs"
)

const smallPrimesUpperBound = 10000

// SmallPrimeGroupMembers returns the first r odd primes that are members of
// g's subgroup, iterating candidates 5, 7, 9, 11, ... and skipping
// composites and non-members.
//
// Two distinct bounds are enforced and signalled separately: r >= 10000
// and r > q-4 each fail with PreconditionViolated, as does a generator
// outside {2,3,4} (the routine's own precondition, since the density
// argument it relies on assumes a small generator).
func SmallPrimeGroupMembers(g *GqGroup, r int) ([]*GqElement, error) {
	genVal := g.GeneratorValue()
	if genVal.Cmp(big.NewInt(2)) != 0 && genVal.Cmp(big.NewInt(3)) != 0 && genVal.Cmp(big.NewInt(4)) != 0 {
		return nil, errs.New(errs.PreconditionViolated, "generator must be 2, 3, or 4")
	}
	if r >= smallPrimesUpperBound {
		return nil, errs.Newf(errs.PreconditionViolated, "r must be less than %d", smallPrimesUpperBound)
	}
	qMinus4 := new(big.Int).Sub(g.q, big.NewInt(4))
	if big.NewInt(int64(r)).Cmp(qMinus4) > 0 {
		return nil, errs.New(errs.PreconditionViolated, "r must not exceed q-4")
	}

	members := make([]*GqElement, 0, r)
	candidate := big.NewInt(5)
	two := big.NewInt(2)
	for len(members) < r {
		if candidate.Cmp(g.p) >= 0 {
			return nil, errs.Newf(errs.PreconditionViolated, "fewer than %d small prime group members exist", r)
		}
		if candidate.ProbablyPrime(20) && g.IsMember(candidate) {
			el, err := g.NewElement(candidate)
			if err != nil {
				return nil, err
			}
			members = append(members, el)
		}
		candidate = new(big.Int).Add(candidate, two)
	}
	return members, nil
}
