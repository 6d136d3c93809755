// Package hashing implements a domain-separating recursive hash: a digest
// over a sum type {byte-string, text-string, non-negative integer, list},
// used throughout this module to build Fiat-Shamir transcripts.
//
// The recursion pattern is grounded in the transcript-building style of
// voteproof.getFSChallenge and dedis-votegral's deriveNonInteractiveChallenge:
// both concatenate a fixed, documented sequence of field representations and
// hash the result. This package generalizes that into a typed Hashable sum
// so every argument in zkproof/ builds its transcript the same way.
package hashing

import (
	"hash"

	"github.com/streetU/crypto-primitives/errs"
)

// Hashable is the sum type a RecursiveHasher consumes: a []byte, a string,
// a non-negative integer (as its minimum-length big-endian encoding), or a
// []Hashable. Construct one with Bytes, Text,
// Integer, or List.
type Hashable struct {
	kind  hashableKind
	bytes []byte
	text  string
	list  []Hashable
}

type hashableKind int

const (
	kindBytes hashableKind = iota
	kindText
	kindInteger
	kindList
)

// Bytes wraps a byte string.
func Bytes(b []byte) Hashable { return Hashable{kind: kindBytes, bytes: b} }

// Text wraps a UTF-8 string.
func Text(s string) Hashable { return Hashable{kind: kindText, text: s} }

// Integer wraps the minimum-length big-endian encoding of a non-negative
// integer, as produced by bignat.IntegerToByteArray.
func Integer(encoded []byte) Hashable { return Hashable{kind: kindInteger, bytes: encoded} }

// List wraps a non-empty sequence of Hashables. An empty list is rejected
// at hash time with InvalidInput.
func List(items ...Hashable) Hashable { return Hashable{kind: kindList, list: items} }

// Hasher is a domain-separating recursive hash over a fixed hash.Hash
// constructor, producing digests of a fixed length L.
type Hasher struct {
	newHash func() hash.Hash
}

// New builds a Hasher over the given hash constructor (e.g. sha256.New).
func New(newHash func() hash.Hash) *Hasher {
	return &Hasher{newHash: newHash}
}

// DigestLength returns L, the fixed output length in bytes of the
// underlying hash function.
func (h *Hasher) DigestLength() int {
	return h.newHash().Size()
}

// Hash computes the recursive hash of one or more top-level Hashables. When
// more than one value is given they are wrapped in a list.
func (h *Hasher) Hash(values ...Hashable) ([]byte, error) {
	if len(values) == 0 {
		return nil, errs.New(errs.InvalidInput, "hash requires at least one value")
	}
	if len(values) == 1 {
		return h.hashOne(values[0])
	}
	return h.hashOne(List(values...))
}

func (h *Hasher) hashOne(v Hashable) ([]byte, error) {
	switch v.kind {
	case kindBytes:
		hh := h.newHash()
		hh.Write(v.bytes)
		return hh.Sum(nil), nil
	case kindText:
		hh := h.newHash()
		hh.Write([]byte(v.text))
		return hh.Sum(nil), nil
	case kindInteger:
		hh := h.newHash()
		hh.Write(v.bytes)
		return hh.Sum(nil), nil
	case kindList:
		if len(v.list) == 0 {
			return nil, errs.New(errs.InvalidInput, "cannot hash an empty list")
		}
		if len(v.list) == 1 {
			return h.hashOne(v.list[0])
		}
		hh := h.newHash()
		for _, item := range v.list {
			digest, err := h.hashOne(item)
			if err != nil {
				return nil, err
			}
			hh.Write(digest)
		}
		return hh.Sum(nil), nil
	default:
		return nil, errs.New(errs.InvalidInput, "unknown Hashable kind")
	}
}

// BitLength returns the bit length of the underlying hash's digest, used by
// callers checking a BitLengthTooLarge condition against a group order q.
func (h *Hasher) BitLength() int {
	return h.DigestLength() * 8
}
