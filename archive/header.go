package archive

import (
	"encoding/binary"
	"io"

	"github.com/sergev/haf/bitio"
)

const (
	// HeaderWordLength is the word length the Global Header is always
	// coded at, independent of the archive's own WordLength field.
	HeaderWordLength = 11

	// CodedHeaderSize is the fixed on-disk size, in bytes, of the coded
	// Global Header: the 11-byte logical header coded at w=11, p=4
	// produces ceil(ceil(88/11)*15/8) = 15 bytes.
	CodedHeaderSize = 15

	// DefaultWordLength is the word length used when the caller does not
	// request one explicitly.
	DefaultWordLength = 11
)

var magic = [2]byte{'H', 'A'}

// GlobalHeader is the 11-byte logical Global Header: magic, total on-disk
// archive size, member count, and the word length members are coded at.
type GlobalHeader struct {
	Magic       [2]byte
	ArchiveSize uint32
	MemberCount uint32
	WordLength  uint8
}

// writeGlobalHeader emits hdr through a fresh Encoder at HeaderWordLength.
func writeGlobalHeader(w io.Writer, hdr GlobalHeader) error {
	enc, err := bitio.NewEncoder(w, HeaderWordLength)
	if err != nil {
		return err
	}
	if err := binary.Write(enc, binary.LittleEndian, hdr); err != nil {
		return err
	}
	return enc.Close()
}

// readGlobalHeader decodes the first CodedHeaderSize bytes of r and
// validates the magic.
func readGlobalHeader(r io.Reader) (GlobalHeader, error) {
	dec, err := bitio.NewDecoder(r, HeaderWordLength)
	if err != nil {
		return GlobalHeader{}, err
	}
	var hdr GlobalHeader
	if err := binary.Read(dec, binary.LittleEndian, &hdr); err != nil {
		return GlobalHeader{}, err
	}
	if hdr.Magic != magic {
		return GlobalHeader{}, ErrNotAnArchive
	}
	return hdr, nil
}
