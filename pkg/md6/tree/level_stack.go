package tree

import (
	"encoding/binary"

	"github.com/buildbarn/go-md6/pkg/md6/compression"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	// Sizes of one level's accumulation buffer and of the chaining
	// values that flow between levels.
	blockSizeBytes         = compression.BlockWords * compression.WordSizeBytes
	blockSizeBits          = blockSizeBytes * 8
	chainingValueSizeBytes = compression.ChainingValueWords * compression.WordSizeBytes
	chainingValueSizeBits  = chainingValueSizeBytes * 8

	// maximumStackHeight bounds the number of levels, and with it
	// the maximum message size representable by one computation.
	// Each level multiplies capacity by a factor of four, so the
	// bound is only reachable with a small mode parameter.
	maximumStackHeight = 29

	// MaximumDigestBits is the largest digest length the control
	// word can represent.
	MaximumDigestBits = 512

	// MaximumModeParameter is the largest mode parameter the
	// control word can represent.
	MaximumModeParameter = 255
)

// level is one slot of the scheduler's stack: a fixed-capacity block
// buffer together with its occupancy in bits and the number of
// compressions already performed at this level. Bytes of the buffer
// beyond the occupancy are always zero, so a partial block is
// implicitly zero-padded; the control word records the padding amount
// explicitly.
type level struct {
	block        [blockSizeBytes]byte
	bits         int
	compressions uint64
}

// LevelStack is the state of one incremental MD6 computation: a
// bounded stack of levels reduced through a Compressor.
//
// Level 0 absorbs raw message bytes. Whenever a level's buffer fills
// and more input follows, the level is compressed and its chaining
// value becomes input to the level above, cascading as far up as
// needed. Finalization drains every pending level bottom-to-top; the
// topmost compression carries the root flag and its chaining value is
// truncated to the requested digest length.
//
// With mode parameter 0 the tree collapses to a single sequential
// level: the first 16 words of every level-0 block hold the previous
// block's chaining value (an all-zero value for the first block), so
// the computation behaves like a classic iterated hash.
//
// A LevelStack must not be used concurrently. Independent instances
// share nothing and may be driven from separate goroutines.
type LevelStack struct {
	compressor    Compressor
	digestBits    int
	rounds        int
	modeParameter int
	key           compression.Key
	keySizeBytes  int

	levels        [maximumStackHeight]level
	top           int
	bitsProcessed uint64
	finalized     bool
	root          compression.ChainingValue
}

// NewLevelStack creates the state for one hash computation. The digest
// length must lie in [1, MaximumDigestBits] and the key may be at most
// compression.MaximumKeySizeBytes long; both are validated here, and
// no state exists when validation fails.
func NewLevelStack(digestBits int, key []byte, modeParameter, rounds int, compressor Compressor) (*LevelStack, error) {
	if digestBits < 1 || digestBits > MaximumDigestBits {
		return nil, status.Errorf(codes.InvalidArgument, "Digest length %d bits is not in range [1, %d]", digestBits, MaximumDigestBits)
	}
	if len(key) > compression.MaximumKeySizeBytes {
		return nil, status.Errorf(codes.InvalidArgument, "Key of %d bytes exceeds maximum size of %d bytes", len(key), compression.MaximumKeySizeBytes)
	}
	if modeParameter < 0 || modeParameter > MaximumModeParameter {
		return nil, status.Errorf(codes.InvalidArgument, "Mode parameter %d is not in range [0, %d]", modeParameter, MaximumModeParameter)
	}
	if rounds < 1 || rounds > compression.MaximumRounds {
		return nil, status.Errorf(codes.InvalidArgument, "Round count %d is not in range [1, %d]", rounds, compression.MaximumRounds)
	}

	s := &LevelStack{
		compressor:    compressor,
		digestBits:    digestBits,
		rounds:        rounds,
		modeParameter: modeParameter,
		keySizeBytes:  len(key),
	}
	var keyBytes [compression.MaximumKeySizeBytes]byte
	copy(keyBytes[:], key)
	for i := range s.key {
		s.key[i] = binary.BigEndian.Uint64(keyBytes[i*compression.WordSizeBytes:])
	}
	if modeParameter == 0 {
		// Purely sequential operation: reserve space for the
		// all-zero chaining value that seeds the chain.
		s.levels[0].bits = chainingValueSizeBits
	}
	return s, nil
}

// Append deposits message bytes into level 0, compressing full blocks
// as soon as it is known that more input follows. A block that is
// exactly full at the end of a call stays buffered, so that it can
// still become the root (or absorb the chain seed's successor) if no
// further input arrives. This deferral is what makes the final digest
// independent of how the message was chunked across calls.
func (s *LevelStack) Append(data []byte) error {
	if s.finalized {
		return status.Error(codes.FailedPrecondition, "Cannot append to a finalized hash computation")
	}
	for {
		l := &s.levels[0]
		n := copy(l.block[l.bits/8:], data)
		data = data[n:]
		l.bits += n * 8
		s.bitsProcessed += uint64(n) * 8
		if len(data) == 0 {
			return nil
		}

		// Level 0 is full and more input follows.
		if err := s.process(0, false); err != nil {
			return err
		}
	}
}

// Final drains the stack and returns the digest: exactly
// ceil(digestBits/8) bytes holding the low-order digestBits bits of
// the root chaining value. The empty message is handled here as well,
// by compressing level 0's all-padding block as the root.
//
// Final consumes the computation: it can be invoked once, and Append
// is rejected afterwards.
func (s *LevelStack) Final() ([]byte, error) {
	if s.finalized {
		return nil, status.Error(codes.FailedPrecondition, "Hash computation is already finalized")
	}

	// Drain starts at the lowest level still holding data. For the
	// empty message no level holds anything and level 0 is
	// compressed as an all-padding root block.
	idx := 0
	for idx < s.top && s.levels[idx].bits == 0 {
		idx++
	}
	if err := s.process(idx, true); err != nil {
		return nil, err
	}
	s.finalized = true
	return extractDigest(&s.root, s.digestBits), nil
}

// Clone returns an independent copy of the computation, so that a
// digest can be produced without consuming the original state. Level
// buffers are held by value, making this a plain copy.
func (s *LevelStack) Clone() *LevelStack {
	c := *s
	return &c
}

// DigestBits returns the digest length this computation was created
// with.
func (s *LevelStack) DigestBits() int {
	return s.digestBits
}

// BitsProcessed returns the total number of message bits appended so
// far.
func (s *LevelStack) BitsProcessed() uint64 {
	return s.bitsProcessed
}

// process compresses the block at the given level and feeds the
// chaining value upward, repeating at the receiving level for as long
// as compressions keep getting triggered. During finalization every
// visited level is compressed regardless of occupancy, and the
// compression at the top level carries the root flag.
func (s *LevelStack) process(idx int, final bool) error {
	for {
		if !final && s.levels[idx].bits < blockSizeBits {
			return nil
		}

		root := final && idx == s.top
		chainingValue, err := s.compressLevel(idx, root)
		if err != nil {
			return err
		}
		if root {
			s.root = chainingValue
			return nil
		}

		// Interior chaining values go one level up, except past
		// the mode parameter, where the tree stops growing and
		// the topmost level absorbs its own output sequentially.
		next := idx + 1
		if next > s.modeParameter {
			next = s.modeParameter
		}
		if next >= maximumStackHeight {
			return status.Errorf(codes.Internal, "Level stack of height %d exhausted: message too large for mode parameter %d", maximumStackHeight, s.modeParameter)
		}
		nl := &s.levels[next]
		if next == s.modeParameter && nl.bits == 0 && nl.compressions == 0 {
			// First use of the sequential level: reserve
			// space for the all-zero chain seed.
			nl.bits = chainingValueSizeBits
		}
		for i, w := range chainingValue {
			binary.BigEndian.PutUint64(nl.block[nl.bits/8+i*compression.WordSizeBytes:], w)
		}
		nl.bits += chainingValueSizeBits
		if next > s.top {
			s.top = next
		}
		idx = next
	}
}

// compressLevel invokes the Compressor on one level's block and resets
// the level. The control word carries the amount of zero padding in
// the block, and the node identifier the level's compression count,
// which is never reused within a computation.
func (s *LevelStack) compressLevel(idx int, root bool) (compression.ChainingValue, error) {
	l := &s.levels[idx]
	controlWord := compression.NewControlWord(s.rounds, s.modeParameter, root, blockSizeBits-l.bits, s.keySizeBytes, s.digestBits)
	nodeID := compression.NewNodeID(idx+1, l.compressions)
	var block compression.Block
	for i := range block {
		block[i] = binary.BigEndian.Uint64(l.block[i*compression.WordSizeBytes:])
	}
	chainingValue, err := s.compressor.Compress(controlWord, nodeID, &s.key, &block)
	if err != nil {
		return compression.ChainingValue{}, err
	}
	l.block = [blockSizeBytes]byte{}
	l.bits = 0
	l.compressions++
	return chainingValue, nil
}

// extractDigest truncates the root chaining value to its low-order
// digestBits bits, left-aligned into ceil(digestBits/8) bytes.
func extractDigest(root *compression.ChainingValue, digestBits int) []byte {
	var buf [chainingValueSizeBytes]byte
	for i, w := range root {
		binary.BigEndian.PutUint64(buf[i*compression.WordSizeBytes:], w)
	}
	digest := make([]byte, (digestBits+7)/8)
	copy(digest, buf[len(buf)-len(digest):])
	if partial := uint(digestBits % 8); partial != 0 {
		for i := range digest {
			digest[i] <<= 8 - partial
			if i+1 < len(digest) {
				digest[i] |= digest[i+1] >> partial
			}
		}
	}
	return digest
}
