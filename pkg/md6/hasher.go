package md6

import (
	"hash"

	"github.com/buildbarn/go-md6/pkg/md6/compression"
	"github.com/buildbarn/go-md6/pkg/md6/tree"
)

var _ hash.Hash = (*Hasher)(nil)

// Hasher is an incremental MD6 computation. It implements hash.Hash,
// so any byte-stream source can be drained into it through io.Copy
// without buffering the whole input.
//
// Sum() may be called at any point and leaves the computation intact;
// Digest() finishes the computation, after which further writes are
// rejected. A Hasher must not be used concurrently.
type Hasher struct {
	digestBits int
	key        []byte
	state      *tree.LevelStack
}

// New creates a Hasher producing digests of the given length in bits,
// which must lie in [1, 512].
func New(digestBits int) (*Hasher, error) {
	return NewKeyed(digestBits, nil)
}

// NewKeyed creates a Hasher with a key of at most 64 bytes. The key is
// folded into every compression; keyed hashing raises the round count
// to at least eighty.
func NewKeyed(digestBits int, key []byte) (*Hasher, error) {
	state, err := newLevelStack(digestBits, key)
	if err != nil {
		return nil, err
	}
	return &Hasher{
		digestBits: digestBits,
		key:        append([]byte(nil), key...),
		state:      state,
	}, nil
}

func newLevelStack(digestBits int, key []byte) (*tree.LevelStack, error) {
	return tree.NewLevelStack(
		digestBits,
		key,
		DefaultModeParameter,
		DefaultRounds(digestBits, len(key) > 0),
		tree.NewStandardCompressor())
}

// Write appends data to the computation. On error the returned count
// reflects the bytes absorbed before the failure; as all failure modes
// are fatal, the computation itself is only usable again after Reset.
func (h *Hasher) Write(p []byte) (int, error) {
	before := h.state.BitsProcessed()
	err := h.state.Append(p)
	return int((h.state.BitsProcessed() - before) / 8), err
}

// Digest finishes the computation and returns exactly
// ceil(digestBits/8) bytes. After Digest has been called, Write and
// Digest are rejected until Reset.
func (h *Hasher) Digest() ([]byte, error) {
	return h.state.Final()
}

// Sum appends the digest of the data written so far to b. The
// computation itself is left intact: finalization happens on a copy of
// the state, so more data may be written afterwards.
func (h *Hasher) Sum(b []byte) []byte {
	digest, err := h.state.Clone().Final()
	if err != nil {
		// Only reachable when the scheduler violates its own
		// invariants; there is no meaningful partial result.
		panic(err)
	}
	return append(b, digest...)
}

// Reset returns the Hasher to its initial state, keeping the digest
// length and key.
func (h *Hasher) Reset() {
	state, err := newLevelStack(h.digestBits, h.key)
	if err != nil {
		panic(err)
	}
	h.state = state
}

// Size returns the digest size in bytes.
func (h *Hasher) Size() int {
	return (h.digestBits + 7) / 8
}

// BlockSize returns the size of the blocks absorbed by the underlying
// compression function.
func (h *Hasher) BlockSize() int {
	return compression.BlockWords * compression.WordSizeBytes
}

// BitsProcessed returns the total number of message bits written so
// far.
func (h *Hasher) BitsProcessed() uint64 {
	return h.state.BitsProcessed()
}
