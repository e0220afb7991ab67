// Package bitio implements a single-error-correcting Hamming codec over a
// byte stream: an Encoder packs data bits into fixed-size (w+p)-bit blocks
// with interleaved parity, and a Decoder reverses the process, correcting
// any single flipped bit per block along the way.
package bitio

import "errors"

// ErrInvalidWordLength is returned by ParityBits and by NewEncoder/NewDecoder
// when the requested word length is zero or exceeds the codec's range.
var ErrInvalidWordLength = errors.New("bitio: invalid word length")

// ErrUnexpectedEOF is returned by the Decoder when fewer than w+p bits
// remain in the source to complete a demanded block.
var ErrUnexpectedEOF = errors.New("bitio: unexpected end of coded stream")
