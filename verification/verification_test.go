package verification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZeroValueIsValid(t *testing.T) {
	r := NewResult()
	assert.True(t, r.IsValid())
	assert.Empty(t, r.Failures())
}

func TestFailAccumulatesAllMessages(t *testing.T) {
	r := NewResult()
	r.Fail("check A failed")
	r.Fail("check B failed")
	r.Failf("check %s failed", "C")
	assert.False(t, r.IsValid())
	assert.Equal(t, []string{"check A failed", "check B failed", "check C failed"}, r.Failures())
}

func TestMergePropagatesFailureAndOrder(t *testing.T) {
	a := NewResult()
	a.Fail("a1")
	b := NewResult()
	b.Fail("b1")
	b.Fail("b2")

	a.Merge(b)
	assert.False(t, a.IsValid())
	assert.Equal(t, []string{"a1", "b1", "b2"}, a.Failures())
}

func TestMergeOfTwoValidResultsStaysValid(t *testing.T) {
	a := NewResult()
	b := NewResult()
	a.Merge(b)
	assert.True(t, a.IsValid())
}

func TestMergeNilIsNoop(t *testing.T) {
	a := NewResult()
	a.Fail("x")
	a.Merge(nil)
	assert.Equal(t, []string{"x"}, a.Failures())
}
