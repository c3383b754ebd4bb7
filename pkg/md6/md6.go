// Package md6 implements the MD6 hash function with digest lengths of
// 1 to 512 bits, in one-shot and incremental form.
//
// MD6 reduces its input through a tree of applications of a fixed
// 512-byte compression function. The tree-mode scheduler lives in
// pkg/md6/tree and the compression function in pkg/md6/compression;
// this package wires the two together behind hash.Hash and validates
// parameters.
package md6

import (
	"encoding/hex"
)

const (
	// DefaultModeParameter is the standard mode parameter: the
	// number of tree levels after which the computation would
	// switch to sequential chaining. With 64 levels that point is
	// unreachable in practice, so hashing is fully tree-shaped.
	DefaultModeParameter = 64
)

// DefaultRounds returns the round count the MD6 report prescribes for
// a digest length: forty plus a quarter of the digest length in bits,
// raised to at least eighty when a key is in use.
func DefaultRounds(digestBits int, keyed bool) int {
	rounds := 40 + digestBits/4
	if keyed && rounds < 80 {
		rounds = 80
	}
	return rounds
}

// Sum computes the MD6 digest of data in one call, returning exactly
// ceil(digestBits/8) bytes.
func Sum(digestBits int, data []byte) ([]byte, error) {
	return SumKeyed(digestBits, nil, data)
}

// SumKeyed computes the MD6 digest of data under a key of at most 64
// bytes.
func SumKeyed(digestBits int, key, data []byte) ([]byte, error) {
	h, err := NewKeyed(digestBits, key)
	if err != nil {
		return nil, err
	}
	if _, err := h.Write(data); err != nil {
		return nil, err
	}
	return h.Digest()
}

// SumHex computes the MD6 digest of data and renders it as a
// lowercase hexadecimal string.
func SumHex(digestBits int, data []byte) (string, error) {
	digest, err := Sum(digestBits, data)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(digest), nil
}
