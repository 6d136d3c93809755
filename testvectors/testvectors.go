// Package testvectors gives the cross-implementation JSON test-vector
// schema a concrete Go shape: a test case supplies a context (group and key
// parameters), an input (statement plus either witness or argument), and an
// output (expected verification result or expected argument), so conformant
// implementations in different languages can exchange and replay the same
// fixtures.
//
// Test-vector *loading* (reading fixture files off disk, a CLI driving
// them) is out of scope; this package only defines the decodable shape,
// following the plain json.RawMessage-staged decode/reconstruct pattern
// takakv-msc-poc's voteproof/marshal.go uses for its own proof JSON.
package testvectors

import (
	"encoding/json"
	"math/big"

	"github.com/streetU/crypto-primitives/commitment"
	"github.com/streetU/crypto-primitives/elgamal"
	"github.com/streetU/crypto-primitives/errs"
	"github.com/streetU/crypto-primitives/group"
)

// Context describes the algebraic setting a test case runs in: the Gq/Zq
// group parameters, an encryption public key, and a Pedersen commitment
// key, plus a nominal security level in bits.
type Context struct {
	P             *big.Int   `json:"p"`
	Q             *big.Int   `json:"q"`
	G             *big.Int   `json:"g"`
	PK            []*big.Int `json:"pk"`
	CommitmentH   *big.Int   `json:"commitment_h"`
	CommitmentG   []*big.Int `json:"commitment_g"`
	SecurityLevel int        `json:"security_level_bits"`
}

// Groups reconstructs the Gq/Zq pair described by the context.
func (c Context) Groups() (*group.GqGroup, *group.ZqGroup, error) {
	gq, err := group.NewGqGroup(c.P, c.Q, c.G)
	if err != nil {
		return nil, nil, err
	}
	zq, err := group.NewZqGroup(c.Q)
	if err != nil {
		return nil, nil, err
	}
	return gq, zq, nil
}

// PublicKey reconstructs the ElGamal public key described by the context.
func (c Context) PublicKey(gq *group.GqGroup) (*elgamal.PublicKey, error) {
	elements := make([]*group.GqElement, len(c.PK))
	for i, v := range c.PK {
		e, err := gq.NewElement(v)
		if err != nil {
			return nil, err
		}
		elements[i] = e
	}
	vec, err := group.NewVector(elements)
	if err != nil {
		return nil, err
	}
	return elgamal.NewPublicKey(gq, vec)
}

// CommitmentKey reconstructs the Pedersen commitment key described by the
// context.
func (c Context) CommitmentKey(gq *group.GqGroup) (*commitment.Key, error) {
	h, err := gq.NewElement(c.CommitmentH)
	if err != nil {
		return nil, err
	}
	elements := make([]*group.GqElement, len(c.CommitmentG))
	for i, v := range c.CommitmentG {
		e, err := gq.NewElement(v)
		if err != nil {
			return nil, err
		}
		elements[i] = e
	}
	vec, err := group.NewVector(elements)
	if err != nil {
		return nil, err
	}
	return commitment.NewKey(gq, h, vec)
}

// NewContext builds a Context from live group and key objects, the inverse
// of Groups/PublicKey/CommitmentKey.
func NewContext(gq *group.GqGroup, pk *elgamal.PublicKey, ck *commitment.Key, securityLevelBits int) (Context, error) {
	pkValues := make([]*big.Int, pk.Length())
	for i := 0; i < pk.Length(); i++ {
		e, err := pk.Get(i)
		if err != nil {
			return Context{}, err
		}
		pkValues[i] = e.Value()
	}
	ckValues := make([]*big.Int, ck.Size())
	for i := 0; i < ck.Size(); i++ {
		g, err := ck.G(i)
		if err != nil {
			return Context{}, err
		}
		ckValues[i] = g.Value()
	}
	return Context{
		P:             gq.P(),
		Q:             gq.Q(),
		G:             gq.GeneratorValue(),
		PK:            pkValues,
		CommitmentH:   ck.H().Value(),
		CommitmentG:   ckValues,
		SecurityLevel: securityLevelBits,
	}, nil
}

// Relation names the module under test; it selects how Input/Output's raw
// JSON payloads are interpreted.
type Relation string

const (
	RelationShuffle    Relation = "shuffle"
	RelationDecryption Relation = "decryption"
	RelationSVP        Relation = "single_value_product"
	RelationHadamard   Relation = "hadamard"
	RelationZero       Relation = "zero"
	RelationProduct    Relation = "product"
	RelationMultiExp   Relation = "multi_exponentiation"
	RelationCommitment Relation = "commitment"
)

// Input is the statement and secret witness (or, for a verify-only vector,
// a pre-built argument) of one test case. Payload shape is
// relation-specific and decoded by the caller via Statement/Witness/Argument.
type Input struct {
	Relation  Relation        `json:"relation"`
	Statement json.RawMessage `json:"statement"`
	Witness   json.RawMessage `json:"witness,omitempty"`
	Argument  json.RawMessage `json:"argument,omitempty"`
}

// Output is the expected result of running Input through the named
// relation: either a pass/fail verdict (with the accumulated failure
// messages a verifier is expected to produce) or, for a prove-vector, the
// expected argument bytes.
type Output struct {
	Valid    bool            `json:"valid"`
	Failures []string        `json:"failures,omitempty"`
	Argument json.RawMessage `json:"argument,omitempty"`
}

// Case is one complete, named test vector.
type Case struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Context     Context `json:"context"`
	Input       Input   `json:"input"`
	Output      Output  `json:"output"`
}

// DecodeCase decodes a single JSON test case.
func DecodeCase(b []byte) (Case, error) {
	var c Case
	if err := json.Unmarshal(b, &c); err != nil {
		return Case{}, errs.Newf(errs.InvalidInput, "decoding test case: %v", err)
	}
	return c, nil
}

// DecodeSuite decodes a JSON array of test cases.
func DecodeSuite(b []byte) ([]Case, error) {
	var cases []Case
	if err := json.Unmarshal(b, &cases); err != nil {
		return nil, errs.Newf(errs.InvalidInput, "decoding test suite: %v", err)
	}
	return cases, nil
}

// Encode renders a single test case back to JSON.
func (c Case) Encode() ([]byte, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return nil, errs.Newf(errs.InvalidInput, "encoding test case: %v", err)
	}
	return b, nil
}
