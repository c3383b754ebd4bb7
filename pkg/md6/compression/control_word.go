package compression

// NewControlWord packs the metadata of a single compression into the
// input word V, as specified in the MD6 report. From high to low bits:
// four reserved zero bits, the 12-bit round count, the 8-bit mode
// parameter, the 4-bit final/root flag, the 16-bit count of padding
// bits in the data block, the 8-bit key length in bytes, and the
// 12-bit digest length in bits.
//
// Folding this metadata into the compressed input is what makes a root
// compression cryptographically distinguishable from an interior one,
// and a padded block distinguishable from one that genuinely ends in
// zero bytes.
func NewControlWord(rounds, modeParameter int, root bool, padBits, keyBytes, digestBits int) uint64 {
	var z uint64
	if root {
		z = 1
	}
	return uint64(rounds)<<48 |
		uint64(modeParameter)<<40 |
		z<<36 |
		uint64(padBits)<<20 |
		uint64(keyBytes)<<12 |
		uint64(digestBits)
}

// NewNodeID packs the position of a single compression into the input
// word U: the one-based level number in the high byte and the number
// of earlier compressions at that level in the low 56 bits. Node
// identifiers are unique for the lifetime of one hash computation.
func NewNodeID(level int, index uint64) uint64 {
	return uint64(level)<<56 | index
}
