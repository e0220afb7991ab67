package archive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sergev/haf/bitio"
)

// Member describes one file packed into an archive, as reported by List.
type Member struct {
	Name    string
	BodyLen uint32
}

// memberSource pairs the on-disk file to read a member's body from with
// the name it should be stored under, so Concatenate can feed
// createFromSources temp-file paths while keeping the original member
// names.
type memberSource struct {
	Path string
	Name string
}

// streamChunkBytes bounds how much of a member body Extract buffers at
// once, so bodies stream through memory rather than being held whole.
const streamChunkBytes = 32 * 1024

// Create packs inputs into a new archive at outPath, coded at word length
// w. Member names are the basenames of inputs, in the given order.
func Create(outPath string, inputs []string, w uint8) (int64, error) {
	sources := make([]memberSource, len(inputs))
	for i, path := range inputs {
		sources[i] = memberSource{Path: path, Name: basenameOf(path)}
	}
	return createFromSources(outPath, sources, w)
}

func createFromSources(outPath string, sources []memberSource, w uint8) (int64, error) {
	var predicted int64 = CodedHeaderSize
	for _, src := range sources {
		info, err := os.Stat(src.Path)
		if err != nil || !info.Mode().IsRegular() {
			return 0, fmt.Errorf("%w: %s", ErrFileNotFound, src.Path)
		}
		size, err := codedSize(int(w), len(src.Name), info.Size())
		if err != nil {
			return 0, err
		}
		predicted += size
	}

	out, err := os.Create(outPath)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrOpenFailed, outPath, err)
	}
	defer out.Close()

	hdr := GlobalHeader{Magic: magic, ArchiveSize: uint32(predicted), MemberCount: uint32(len(sources)), WordLength: w}
	if err := writeGlobalHeader(out, hdr); err != nil {
		return 0, err
	}
	for _, src := range sources {
		if err := writeMember(out, int(w), src.Path, src.Name); err != nil {
			return 0, err
		}
	}

	info, err := out.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// List reads an archive's Global Header and every member's FileMeta,
// skipping each body, and returns (name, body_len) pairs in member order.
func List(arcPath string) ([]Member, error) {
	f, err := os.Open(arcPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrOpenFailed, arcPath, err)
	}
	defer f.Close()

	hdr, err := readGlobalHeader(f)
	if err != nil {
		return nil, err
	}

	members := make([]Member, 0, hdr.MemberCount)
	err = iterMembers(f, hdr, func(_ int, meta memberMeta, dec *bitio.Decoder) error {
		if err := dec.SkipCodedBytes(meta.CodedBodyBytes); err != nil {
			return err
		}
		members = append(members, Member{Name: meta.Name, BodyLen: meta.BodyLen})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return members, nil
}

// extractedFile is one member written to disk by extractTo.
type extractedFile struct {
	Name string
	Path string
}

// extractTo decodes every member of arcPath to destDir/<name><suffix>,
// streaming each body in bounded chunks.
func extractTo(arcPath, destDir, suffix string) ([]extractedFile, error) {
	f, err := os.Open(arcPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrOpenFailed, arcPath, err)
	}
	defer f.Close()

	hdr, err := readGlobalHeader(f)
	if err != nil {
		return nil, err
	}

	var files []extractedFile
	err = iterMembers(f, hdr, func(_ int, meta memberMeta, dec *bitio.Decoder) error {
		outPath := filepath.Join(destDir, meta.Name+suffix)
		out, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrOpenFailed, outPath, err)
		}
		defer out.Close()

		remaining := int64(meta.BodyLen)
		for remaining > 0 {
			n := int64(streamChunkBytes)
			if n > remaining {
				n = remaining
			}
			chunk, err := dec.DecodeExact(int(n))
			if err != nil {
				return err
			}
			if _, err := out.Write(chunk); err != nil {
				return err
			}
			remaining -= n
		}
		files = append(files, extractedFile{Name: meta.Name, Path: outPath})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// Extract decodes every member of arcPath into dirname(arcPath)/<name><suffix>
// and returns the member names in archive order.
func Extract(arcPath, suffix string) ([]string, error) {
	files, err := extractTo(arcPath, filepath.Dir(arcPath), suffix)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}
	return names, nil
}

// Append adds inputs to the end of an existing archive, rewriting the
// Global Header in place over the first CodedHeaderSize bytes.
func Append(arcPath string, inputs []string) (int64, error) {
	for _, path := range inputs {
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			return 0, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
	}

	f, err := os.OpenFile(arcPath, os.O_RDWR, 0)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrOpenFailed, arcPath, err)
	}
	defer f.Close()

	hdr, err := readGlobalHeader(f)
	if err != nil {
		return 0, err
	}

	added := int64(0)
	for _, path := range inputs {
		info, err := os.Stat(path)
		if err != nil {
			return 0, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		size, err := codedSize(int(hdr.WordLength), len(basenameOf(path)), info.Size())
		if err != nil {
			return 0, err
		}
		added += size
	}

	oldSize := int64(hdr.ArchiveSize)
	newHdr := GlobalHeader{
		Magic:       magic,
		ArchiveSize: uint32(oldSize + added),
		MemberCount: hdr.MemberCount + uint32(len(inputs)),
		WordLength:  hdr.WordLength,
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}
	if err := writeGlobalHeader(f, newHdr); err != nil {
		return 0, err
	}

	if _, err := f.Seek(oldSize, io.SeekStart); err != nil {
		return 0, err
	}
	for _, path := range inputs {
		if err := writeMember(f, int(hdr.WordLength), path, basenameOf(path)); err != nil {
			return 0, err
		}
	}

	return int64(newHdr.ArchiveSize), nil
}

// Delete rewrites arcPath without the named members. It builds the result
// in arcPath+".tmp" and atomically replaces the original on success. If a
// requested name is never found, the temp file is removed and
// ErrMemberNotFound is returned with the original archive untouched.
func Delete(arcPath string, names []string) error {
	pending := make(map[string]bool, len(names))
	for _, n := range names {
		pending[n] = true
	}

	src, err := os.Open(arcPath)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrOpenFailed, arcPath, err)
	}
	defer src.Close()

	hdr, err := readGlobalHeader(src)
	if err != nil {
		return err
	}

	tmpPath := arcPath + ".tmp"
	tmp, err := os.OpenFile(tmpPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrOpenFailed, tmpPath, err)
	}
	abort := func(cause error) error {
		tmp.Close()
		os.Remove(tmpPath)
		return cause
	}

	placeholder := GlobalHeader{Magic: magic, ArchiveSize: 0, MemberCount: 0, WordLength: hdr.WordLength}
	if err := writeGlobalHeader(tmp, placeholder); err != nil {
		return abort(err)
	}

	deleted := 0
	for i := 0; i < int(hdr.MemberCount); i++ {
		startPos, err := src.Seek(0, io.SeekCurrent)
		if err != nil {
			return abort(err)
		}

		w := int(hdr.WordLength)
		p, err := bitio.ParityBits(w)
		if err != nil {
			return abort(err)
		}
		dec, err := bitio.NewDecoder(src, w)
		if err != nil {
			return abort(err)
		}
		meta, err := readMemberMeta(dec, w, p)
		if err != nil {
			return abort(err)
		}
		metaConsumed := dec.BytesConsumed()
		total := metaConsumed + meta.CodedBodyBytes

		if pending[meta.Name] {
			delete(pending, meta.Name)
			deleted++
			if err := dec.SkipCodedBytes(meta.CodedBodyBytes); err != nil {
				return abort(err)
			}
			continue
		}

		if _, err := src.Seek(startPos, io.SeekStart); err != nil {
			return abort(err)
		}
		if _, err := io.CopyN(tmp, src, total); err != nil {
			return abort(err)
		}
	}

	if len(pending) > 0 {
		return abort(ErrMemberNotFound)
	}

	finalHdr := GlobalHeader{
		Magic:       magic,
		MemberCount: hdr.MemberCount - uint32(deleted),
		WordLength:  hdr.WordLength,
	}
	size, err := tmp.Seek(0, io.SeekEnd)
	if err != nil {
		return abort(err)
	}
	finalHdr.ArchiveSize = uint32(size)

	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return abort(err)
	}
	if err := writeGlobalHeader(tmp, finalHdr); err != nil {
		return abort(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := src.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, arcPath)
}

// Concatenate extracts the members of every archive in arcs into the
// output archive's directory under a reserved ".tmp" suffix, packs them
// into a fresh archive at outPath at DefaultWordLength, and removes the
// temporaries. Not atomic: a failure partway through leaves temporaries
// in the output directory for the caller to clean up.
func Concatenate(outPath string, arcs []string) ([]string, error) {
	const tmpSuffix = ".tmp"
	destDir := filepath.Dir(outPath)

	var all []extractedFile
	for _, arcPath := range arcs {
		files, err := extractTo(arcPath, destDir, tmpSuffix)
		if err != nil {
			return nil, err
		}
		all = append(all, files...)
	}

	sources := make([]memberSource, len(all))
	for i, f := range all {
		sources[i] = memberSource{Path: f.Path, Name: f.Name}
	}

	if _, err := createFromSources(outPath, sources, DefaultWordLength); err != nil {
		return nil, err
	}

	names := make([]string, len(all))
	for i, f := range all {
		names[i] = f.Name
		os.Remove(f.Path)
	}
	return names, nil
}

// Verify walks every member of an archive through FrameReader without
// writing any output, exercising the decoder's single-bit correction
// path end to end and reporting a structural error if the archive does
// not parse cleanly.
func Verify(arcPath string) error {
	f, err := os.Open(arcPath)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrOpenFailed, arcPath, err)
	}
	defer f.Close()

	hdr, err := readGlobalHeader(f)
	if err != nil {
		return err
	}

	return iterMembers(f, hdr, func(_ int, meta memberMeta, dec *bitio.Decoder) error {
		remaining := int64(meta.BodyLen)
		for remaining > 0 {
			n := int64(streamChunkBytes)
			if n > remaining {
				n = remaining
			}
			if _, err := dec.DecodeExact(int(n)); err != nil {
				return err
			}
			remaining -= n
		}
		return nil
	})
}
