package archive

import (
	"encoding/binary"
	"io"

	"github.com/sergev/haf/bitio"
)

// memberMeta is the decoded FileMeta of one member, plus the coded byte
// count still remaining in its FileBody.
type memberMeta struct {
	Name           string
	BodyLen        uint32
	CodedBodyBytes int64
}

// readMemberMeta decodes a member's FileMeta (AwaitNameLen ->
// AwaitNameAndBodyLen transitions) from dec and computes how many more
// raw on-disk bytes its FileBody occupies, using the byte count dec has
// already consumed from its source for this member.
func readMemberMeta(dec *bitio.Decoder, w, p int) (memberMeta, error) {
	var nameLen uint8
	if err := binary.Read(dec, binary.LittleEndian, &nameLen); err != nil {
		return memberMeta{}, err
	}

	nameBytes, err := dec.DecodeExact(int(nameLen))
	if err != nil {
		return memberMeta{}, err
	}

	var bodyLen uint32
	if err := binary.Read(dec, binary.LittleEndian, &bodyLen); err != nil {
		return memberMeta{}, err
	}

	total, err := codedSize(w, int(nameLen), int64(bodyLen))
	if err != nil {
		return memberMeta{}, err
	}

	return memberMeta{
		Name:           string(nameBytes),
		BodyLen:        bodyLen,
		CodedBodyBytes: total - dec.BytesConsumed(),
	}, nil
}

// memberVisitor is invoked once per member, in AwaitBody state, after its
// meta has been decoded. It must either decode meta.BodyLen bytes through
// dec (Extract, Verify) or call dec.SkipCodedBytes(meta.CodedBodyBytes)
// (List), so the source lands exactly on the next member's
// boundary (Done) before iterMembers continues.
type memberVisitor func(index int, meta memberMeta, dec *bitio.Decoder) error

// iterMembers decodes hdr.MemberCount members from r in sequence, each
// through its own Decoder instance at hdr.WordLength, and hands each one
// to visit once its meta has been read.
func iterMembers(r io.Reader, hdr GlobalHeader, visit memberVisitor) error {
	w := int(hdr.WordLength)
	p, err := bitio.ParityBits(w)
	if err != nil {
		return err
	}
	for i := 0; i < int(hdr.MemberCount); i++ {
		dec, err := bitio.NewDecoder(r, w)
		if err != nil {
			return err
		}
		meta, err := readMemberMeta(dec, w, p)
		if err != nil {
			return err
		}
		if err := visit(i, meta, dec); err != nil {
			return err
		}
	}
	return nil
}
