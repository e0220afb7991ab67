package bitio

import "io"

// Encoder consumes a byte stream and emits fixed-size Hamming-coded blocks
// of w+p bits each, packed MSB-first into whole output bytes. Create one
// per logical coded stream (one archive header, one member's meta+body);
// Close must be called exactly once to pad and flush the final block.
type Encoder struct {
	w, p    int
	dst     *byteBitWriter
	pending []byte // buffered data bits (0/1), length < w between blocks
	closed  bool
}

// NewEncoder returns an Encoder writing Hamming(w+p, w)-coded blocks to dst.
func NewEncoder(dst io.Writer, w int) (*Encoder, error) {
	p, err := ParityBits(w)
	if err != nil {
		return nil, err
	}
	return &Encoder{
		w:       w,
		p:       p,
		dst:     newByteBitWriter(dst),
		pending: make([]byte, 0, w),
	}, nil
}

// Write feeds raw bytes into the encoder, MSB-first, emitting a coded block
// every time w data bits accumulate.
func (e *Encoder) Write(p []byte) (int, error) {
	for _, b := range p {
		for i := 7; i >= 0; i-- {
			e.pending = append(e.pending, (b>>uint(i))&1)
			if len(e.pending) == e.w {
				if err := e.emitBlock(e.pending); err != nil {
					return 0, err
				}
				e.pending = e.pending[:0]
			}
		}
	}
	return len(p), nil
}

// emitBlock lays w data bits into the non-parity positions of a w+p block,
// computes each parity bit over the positions whose index has the
// corresponding bit set, and writes the block MSB-first.
func (e *Encoder) emitBlock(dataBits []byte) error {
	n := e.w + e.p
	block := make([]byte, n)
	di := 0
	for pos := 1; pos <= n; pos++ {
		if isPowerOfTwo(pos) {
			continue
		}
		block[pos-1] = dataBits[di]
		di++
	}

	for k := 0; k < e.p; k++ {
		shift := 1 << uint(k)
		var parity byte
		for start := shift; start <= n; start += 2 * shift {
			for pos := start; pos < start+shift && pos <= n; pos++ {
				parity ^= block[pos-1]
			}
		}
		block[shift-1] = parity
	}

	for _, bit := range block {
		if err := e.dst.writeBit(bit); err != nil {
			return err
		}
	}
	return nil
}

// Close pads any partial block to w bits with zeros, emits it, and flushes
// the trailing output byte. Safe to call once; subsequent calls are no-ops.
func (e *Encoder) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	if len(e.pending) > 0 {
		for len(e.pending) < e.w {
			e.pending = append(e.pending, 0)
		}
		if err := e.emitBlock(e.pending); err != nil {
			return err
		}
		e.pending = e.pending[:0]
	}
	return e.dst.flush()
}
