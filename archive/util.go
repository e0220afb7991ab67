package archive

import "github.com/sergev/haf/bitio"

func ceilDiv(a, b int64) int64 {
	return (a + b - 1) / b
}

// codedSize returns the total on-disk byte size of a member's coded
// stream (FileMeta immediately followed by FileBody, both coded at word
// length w), per the archive's Invariant 2.
func codedSize(w int, nameLen int, bodyLen int64) (int64, error) {
	p, err := bitio.ParityBits(w)
	if err != nil {
		return 0, err
	}
	logicalBits := 8 * (1 + int64(nameLen) + 4 + bodyLen)
	blocks := ceilDiv(logicalBits, int64(w))
	codedBits := blocks * int64(w+p)
	return ceilDiv(codedBits, 8), nil
}
