package compression_test

import (
	"testing"

	"github.com/buildbarn/go-md6/pkg/md6/compression"
	"github.com/stretchr/testify/require"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestNewControlWord(t *testing.T) {
	// Bit layout from the MD6 report: reserved, rounds, mode
	// parameter, root flag, pad bits, key bytes, digest bits.
	require.Equal(t,
		uint64(0x0068400000000100),
		compression.NewControlWord(104, 64, false, 0, 0, 256))
	require.Equal(t,
		uint64(0x0068401100000100),
		compression.NewControlWord(104, 64, true, 4096, 0, 256))
	require.Equal(t,
		uint64(0x00a80010bf808200),
		compression.NewControlWord(168, 0, true, 3064, 8, 512))
}

func TestNewNodeID(t *testing.T) {
	require.Equal(t, uint64(0x0100000000000000), compression.NewNodeID(1, 0))
	require.Equal(t, uint64(0x0200000000000005), compression.NewNodeID(2, 5))
	require.Equal(t, uint64(0x1c00ffffffffffff), compression.NewNodeID(28, 0x00ffffffffffff))
}

func TestCompressRoundCountValidation(t *testing.T) {
	var key compression.Key
	var block compression.Block

	// The round count travels in the control word; zero rounds
	// would yield no output words at all.
	for name, rounds := range map[string]int{
		"Zero":    0,
		"TooHigh": 256,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := compression.Compress(compression.NewControlWord(rounds, 64, false, 0, 0, 256), compression.NewNodeID(1, 0), &key, &block)
			require.Equal(t, codes.Internal, status.Code(err))
		})
	}
}

func TestCompressDeterminism(t *testing.T) {
	var key compression.Key
	var block compression.Block
	for i := range block {
		block[i] = uint64(i) * 0x9e3779b97f4a7c15
	}

	controlWord := compression.NewControlWord(104, 64, false, 0, 0, 256)
	first, err := compression.Compress(controlWord, compression.NewNodeID(1, 0), &key, &block)
	require.NoError(t, err)
	second, err := compression.Compress(controlWord, compression.NewNodeID(1, 0), &key, &block)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestCompressInputSeparation(t *testing.T) {
	// Two compressions differing only in tree position, or only in
	// finalization metadata, must not collide.
	var key compression.Key
	var block compression.Block

	controlWord := compression.NewControlWord(104, 64, false, 0, 0, 256)
	base, err := compression.Compress(controlWord, compression.NewNodeID(1, 0), &key, &block)
	require.NoError(t, err)

	t.Run("NodeID", func(t *testing.T) {
		other, err := compression.Compress(controlWord, compression.NewNodeID(1, 1), &key, &block)
		require.NoError(t, err)
		require.NotEqual(t, base, other)

		other, err = compression.Compress(controlWord, compression.NewNodeID(2, 0), &key, &block)
		require.NoError(t, err)
		require.NotEqual(t, base, other)
	})

	t.Run("RootFlag", func(t *testing.T) {
		other, err := compression.Compress(compression.NewControlWord(104, 64, true, 0, 0, 256), compression.NewNodeID(1, 0), &key, &block)
		require.NoError(t, err)
		require.NotEqual(t, base, other)
	})

	t.Run("PadBits", func(t *testing.T) {
		other, err := compression.Compress(compression.NewControlWord(104, 64, false, 8, 0, 256), compression.NewNodeID(1, 0), &key, &block)
		require.NoError(t, err)
		require.NotEqual(t, base, other)
	})

	t.Run("Key", func(t *testing.T) {
		keyed := compression.Key{0x4120736563726574}
		other, err := compression.Compress(controlWord, compression.NewNodeID(1, 0), &keyed, &block)
		require.NoError(t, err)
		require.NotEqual(t, base, other)
	})
}
