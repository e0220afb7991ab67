package archive

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sergev/haf/bitio"
)

// writeMember encodes one FileMeta+FileBody stream — a length-prefixed
// basename, a body length, then the streamed body — through a single
// Encoder instance at word length w, reading the body from path. A fresh
// Encoder is used per member; members are never carried through a shared
// one, so each member's coded stream pads and ends on its own byte
// boundary.
func writeMember(dst io.Writer, w int, path, basename string) error {
	if len(basename) == 0 || len(basename) > 255 {
		return fmt.Errorf("archive: member name %q has invalid length", basename)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrFileNotFound, path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrFileNotFound, path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a regular file", ErrFileNotFound, path)
	}

	enc, err := bitio.NewEncoder(dst, w)
	if err != nil {
		return err
	}

	if err := binary.Write(enc, binary.LittleEndian, uint8(len(basename))); err != nil {
		return err
	}
	if _, err := enc.Write([]byte(basename)); err != nil {
		return err
	}
	if err := binary.Write(enc, binary.LittleEndian, uint32(info.Size())); err != nil {
		return err
	}
	if _, err := io.Copy(enc, f); err != nil {
		return err
	}
	return enc.Close()
}

// basenameOf strips directory components, per Invariant 3: member names
// are stored basename-only.
func basenameOf(path string) string {
	return filepath.Base(path)
}
