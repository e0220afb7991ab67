// Package archive implements the HAF container format: a Global Header
// followed by a sequence of Hamming-coded member records, and the six
// operations (plus a read-only Verify) that compose over bitio's codec to
// create, list, extract, append to, delete from, and concatenate archives.
package archive

import "errors"

// ErrNotAnArchive is returned when a file's header magic is not "HA".
var ErrNotAnArchive = errors.New("archive: not a HAF archive")

// ErrFileNotFound is returned when an input path is missing or not a
// regular file.
var ErrFileNotFound = errors.New("archive: file not found")

// ErrOpenFailed is returned when the underlying filesystem refuses a
// handle needed by an operation.
var ErrOpenFailed = errors.New("archive: open failed")

// ErrMemberNotFound is returned by Delete when a requested member name is
// absent from the archive.
var ErrMemberNotFound = errors.New("archive: member not found")
