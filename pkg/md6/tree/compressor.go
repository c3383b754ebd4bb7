package tree

import (
	"github.com/buildbarn/go-md6/pkg/md6/compression"
)

// Compressor is the scheduler's only collaborator: a pure, fixed-width
// compression function. The scheduler decides what gets compressed
// when; the Compressor decides what the compression of a block is.
//
// Keeping this boundary narrow allows the scheduling logic (cascade
// timing, padding accounting, finalization flags) to be tested against
// a mock, independently of the primitive's cryptography.
type Compressor interface {
	Compress(controlWord uint64, nodeID uint64, key *compression.Key, block *compression.Block) (compression.ChainingValue, error)
}

type standardCompressor struct{}

// NewStandardCompressor creates a Compressor backed by the real MD6
// compression function.
func NewStandardCompressor() Compressor {
	return standardCompressor{}
}

func (standardCompressor) Compress(controlWord uint64, nodeID uint64, key *compression.Key, block *compression.Block) (compression.ChainingValue, error) {
	return compression.Compress(controlWord, nodeID, key, block)
}
