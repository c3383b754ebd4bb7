package compression

import (
	"math/bits"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Constants and algorithms copied from the MD6 report.
// http://groups.csail.mit.edu/cis/md6/

const (
	// WordSizeBytes is the size of a single machine word on which
	// MD6 operates. All larger units are measured in these words.
	WordSizeBytes = 8

	// Dimensions of the compression function's input, in words: the
	// sqrt(6) constant Q, the key K, the unique node identifier U
	// and the control word V, followed by the data block B.
	constantWords = 15
	KeyWords      = 8
	nodeIDWords   = 1
	controlWords  = 1
	BlockWords    = 64
	inputWords    = constantWords + KeyWords + nodeIDWords + controlWords + BlockWords

	// ChainingValueWords is the size of the compression function's
	// output. Sixteen steps of the mixing recurrence form one
	// round, so the output is exactly the last round's worth of
	// tape words.
	ChainingValueWords = 16

	// MaximumKeySizeBytes is the largest key the 8-word key input
	// can hold.
	MaximumKeySizeBytes = KeyWords * WordSizeBytes

	// MaximumRounds bounds the round count representable in the
	// control word's 12-bit field and accepted by Compress().
	MaximumRounds = 255

	// Parameters of the mixing step, as specified in the MD6
	// report: the initial round constant, the mask controlling its
	// evolution, and the feedback tap positions.
	initialRoundConstant = 0x0123456789abcdef
	roundConstantMask    = 0x7311c2812425cfa0
	tap0                 = 17
	tap1                 = 18
	tap2                 = 21
	tap3                 = 31
	tap4                 = 67
)

// Key is the 8-word key input of the compression function. An unkeyed
// hash simply uses the all-zero key with key length zero in the
// control word.
type Key [KeyWords]uint64

// Block is the 64-word data input of one compression: raw message
// words at the leaves, concatenated chaining values above them.
type Block [BlockWords]uint64

// ChainingValue is the 16-word output of one compression.
type ChainingValue [ChainingValueWords]uint64

// The constant Q: the first 960 bits of the fractional part of
// sqrt(6), as specified in the MD6 report.
var q = [constantWords]uint64{
	0x7311c2812425cfa0, 0x6432286434aac8e7,
	0xb60450e9ef68b7c1, 0xe8fb23908d9f06f1,
	0xdd2e76cba691e5bf, 0x0cd0d63b2c30bc41,
	0x1f8ccf6823058f8a, 0x54e5ed5b88e3775d,
	0x4ad12aae0a6d6031, 0x3e7f16bb88222e0d,
	0x8af8671d3fb50c2c, 0x995ad1178bd25c31,
	0xc878c1dd04c4b633, 0x3b72066c7a1552ac,
	0x0d6f3522631effcb,
}

// Per-step right and left shift amounts, repeating with period 16.
var rightShifts = [16]uint{10, 5, 13, 10, 11, 12, 2, 7, 14, 15, 7, 13, 11, 7, 6, 12}
var leftShifts = [16]uint{11, 24, 9, 16, 15, 9, 27, 15, 6, 2, 29, 8, 15, 5, 31, 9}

// Compress applies the MD6 compression function to a single 64-word
// block, producing its 16-word chaining value. The node identifier and
// control word are mixed in as input words, so two compressions at
// different tree positions, or with different finalization or padding
// metadata, never see identical inputs.
//
// The round count is carried by the control word. Compress is pure: it
// retains no state between calls.
func Compress(controlWord uint64, nodeID uint64, key *Key, block *Block) (ChainingValue, error) {
	rounds := int(controlWord >> 48 & 0xfff)
	if rounds < 1 || rounds > MaximumRounds {
		return ChainingValue{}, status.Errorf(codes.Internal, "Round count %d is not in range [1, %d]", rounds, MaximumRounds)
	}

	// Lay out the input words on the front of the mixing tape, as
	// specified in the MD6 report: Q, K, U, V, B.
	a := make([]uint64, inputWords+rounds*16)
	copy(a, q[:])
	copy(a[constantWords:], key[:])
	a[constantWords+KeyWords] = nodeID
	a[constantWords+KeyWords+nodeIDWords] = controlWord
	copy(a[constantWords+KeyWords+nodeIDWords+controlWords:], block[:])

	// The mixing recurrence. Each step combines five earlier tape
	// words through two quadratic terms and an intra-word
	// diffusion; the round constant evolves once per 16 steps.
	s := uint64(initialRoundConstant)
	for i := inputWords; i < len(a); i++ {
		step := i - inputWords
		x := s ^ a[i-inputWords] ^ a[i-tap0]
		x ^= a[i-tap1] & a[i-tap2]
		x ^= a[i-tap3] & a[i-tap4]
		x ^= x >> rightShifts[step&15]
		a[i] = x ^ x<<leftShifts[step&15]
		if step&15 == 15 {
			s = bits.RotateLeft64(s, 1) ^ s&roundConstantMask
		}
	}

	var chainingValue ChainingValue
	copy(chainingValue[:], a[len(a)-ChainingValueWords:])
	return chainingValue, nil
}
