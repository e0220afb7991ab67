package bitio

import (
	"bytes"
	"testing"
)

func encodeAll(t *testing.T, s []byte, w int) []byte {
	t.Helper()
	var buf bytes.Buffer
	enc, err := NewEncoder(&buf, w)
	if err != nil {
		t.Fatalf("NewEncoder(w=%d): %v", w, err)
	}
	if _, err := enc.Write(s); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return buf.Bytes()
}

func decodeAll(t *testing.T, coded []byte, w int, nBytes int) []byte {
	t.Helper()
	dec, err := NewDecoder(bytes.NewReader(coded), w)
	if err != nil {
		t.Fatalf("NewDecoder(w=%d): %v", w, err)
	}
	out, err := dec.DecodeExact(nBytes)
	if err != nil {
		t.Fatalf("DecodeExact(%d): %v", nBytes, err)
	}
	return out
}

// Property 1: decode(encode(s, w), w) == s, modulo the trailing pad bits
// that DecodeExact never asks for.
func TestRoundTrip(t *testing.T) {
	words := []int{1, 2, 3, 4, 7, 8, 11, 12, 26, 27, 57, 58, 120, 121, 247, 248, 255}
	payloads := [][]byte{
		{},
		{0x00},
		{0xFF},
		[]byte("hi"),
		[]byte("the quick brown fox jumps over the lazy dog"),
		bytes.Repeat([]byte{0xA5}, 37),
	}

	for _, w := range words {
		for _, s := range payloads {
			coded := encodeAll(t, s, w)
			got := decodeAll(t, coded, w, len(s))
			if !bytes.Equal(got, s) {
				t.Errorf("w=%d payload=%q: round trip = %q, want %q", w, s, got, s)
			}
		}
	}
}

// Property 2: flipping any single bit in the coded output still decodes
// correctly, for every bit position and several word lengths.
func TestSingleBitFlipCorrected(t *testing.T) {
	words := []int{1, 4, 11, 27, 120, 255}
	s := []byte("flip me")

	for _, w := range words {
		coded := encodeAll(t, s, w)
		for bitPos := 0; bitPos < len(coded)*8; bitPos++ {
			flipped := append([]byte(nil), coded...)
			flipped[bitPos/8] ^= 1 << uint(7-bitPos%8)

			got := decodeAll(t, flipped, w, len(s))
			if !bytes.Equal(got, s) {
				t.Fatalf("w=%d bit=%d: decode after flip = %q, want %q", w, bitPos, got, s)
			}
		}
	}
}

// w=1 expands every data bit into a 3-bit block (p=2).
func TestSingleByteWordLengthOne(t *testing.T) {
	s := []byte{0x5A}
	coded := encodeAll(t, s, 1)
	if len(coded) != 3 {
		t.Fatalf("len(coded) = %d, want 3 for 8 data bits at w=1 (8 3-bit blocks = %d bits)", len(coded), 8*3)
	}
	got := decodeAll(t, coded, 1, 1)
	if !bytes.Equal(got, s) {
		t.Fatalf("decode = %x, want %x", got, s)
	}
}

func TestWordLength255(t *testing.T) {
	p, err := ParityBits(255)
	if err != nil || p != 9 {
		t.Fatalf("ParityBits(255) = (%d, %v), want (9, nil)", p, err)
	}
	s := bytes.Repeat([]byte{0x3C}, 64)
	coded := encodeAll(t, s, 255)
	got := decodeAll(t, coded, 255, len(s))
	if !bytes.Equal(got, s) {
		t.Fatalf("round trip at w=255 failed")
	}
}

// DecodeExact must support being called repeatedly with small byte counts,
// leaving surplus decoded bits buffered across calls.
func TestDecodeExactIncremental(t *testing.T) {
	w := 11
	s := []byte("ABCDEFGH")
	coded := encodeAll(t, s, w)

	dec, err := NewDecoder(bytes.NewReader(coded), w)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}

	var got []byte
	for _, n := range []int{1, 2, 3, 2} {
		chunk, err := dec.DecodeExact(n)
		if err != nil {
			t.Fatalf("DecodeExact(%d): %v", n, err)
		}
		got = append(got, chunk...)
	}
	if !bytes.Equal(got, s) {
		t.Fatalf("incremental decode = %q, want %q", got, s)
	}
}

func TestDecodeTruncatedStreamErrors(t *testing.T) {
	w := 11
	coded := encodeAll(t, []byte("hello"), w)
	dec, err := NewDecoder(bytes.NewReader(coded[:1]), w)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}
	if _, err := dec.DecodeExact(5); err == nil {
		t.Fatal("DecodeExact on truncated stream: want error, got nil")
	}
}
