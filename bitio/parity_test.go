package bitio

import "testing"

// Verify ParityBits against the closed-form ranges from the format spec.
func TestParityBitsRanges(t *testing.T) {
	cases := []struct {
		wLo, wHi int
		want     int
	}{
		{1, 1, 2},
		{2, 4, 3},
		{5, 11, 4},
		{12, 26, 5},
		{27, 57, 6},
		{58, 120, 7},
		{121, 247, 8},
		{248, 255, 9},
	}

	for _, c := range cases {
		for w := c.wLo; w <= c.wHi; w++ {
			got, err := ParityBits(w)
			if err != nil {
				t.Fatalf("ParityBits(%d) returned error: %v", w, err)
			}
			if got != c.want {
				t.Errorf("ParityBits(%d) = %d, want %d", w, got, c.want)
			}
		}
	}
}

// ParityBits(w) must be the minimum p with 2^p >= w+p+1, for every w in range.
func TestParityBitsIsMinimal(t *testing.T) {
	for w := 1; w <= MaxWordLength; w++ {
		p, err := ParityBits(w)
		if err != nil {
			t.Fatalf("ParityBits(%d) returned error: %v", w, err)
		}
		if (1 << uint(p)) < w+p+1 {
			t.Fatalf("ParityBits(%d) = %d does not satisfy 2^p >= w+p+1", w, p)
		}
		if p > 0 {
			pm1 := p - 1
			if (1 << uint(pm1)) >= w+pm1+1 {
				t.Fatalf("ParityBits(%d) = %d is not minimal; p-1=%d already satisfies the bound", w, p, pm1)
			}
		}
	}
}

func TestParityBitsInvalidWordLength(t *testing.T) {
	if _, err := ParityBits(0); err != ErrInvalidWordLength {
		t.Fatalf("ParityBits(0) error = %v, want ErrInvalidWordLength", err)
	}
	if _, err := ParityBits(256); err != ErrInvalidWordLength {
		t.Fatalf("ParityBits(256) error = %v, want ErrInvalidWordLength", err)
	}
}
