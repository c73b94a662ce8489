package bitfx

import (
	"strings"
	"testing"
)

// seedZeroBits is the first 32 bits drawn from a source seeded with 0.
const seedZeroBits = "00101110010110100011100101101010"

func TestRandomSourceSeedZeroOutputs(t *testing.T) {
	r := NewRandomSource(0)

	want := []uint64{
		0x7283e4c96896188c,
		0x706b7f2de031bf37,
		0xfad96ea1180d0e12,
		0x76509766802e6373,
	}
	for i, w := range want {
		if got := r.Uint64(); got != w {
			t.Errorf("Uint64() #%d = %#x, want %#x", i, got, w)
		}
	}
}

func TestRandomSourceSeedZeroBits(t *testing.T) {
	r := NewRandomSource(DefaultSeed)

	var sb strings.Builder
	for range len(seedZeroBits) {
		b := r.Bit()
		if b > 1 {
			t.Fatalf("Bit() = %d, want 0 or 1", b)
		}
		sb.WriteByte('0' + b)
	}

	if got := sb.String(); got != seedZeroBits {
		t.Errorf("bits = %s, want %s", got, seedZeroBits)
	}
	if r.Draws() != uint64(len(seedZeroBits)) {
		t.Errorf("Draws() = %d, want %d", r.Draws(), len(seedZeroBits))
	}
}

func TestRandomSourceDeterministic(t *testing.T) {
	for _, seed := range []uint64{0, 1, 42, 1 << 63} {
		a := NewRandomSource(seed)
		b := NewRandomSource(seed)
		for i := 0; i < 1000; i++ {
			if a.Uint64() != b.Uint64() {
				t.Fatalf("seed %d: sequences diverge at %d", seed, i)
			}
		}
	}
}

func TestRandomSourceReseed(t *testing.T) {
	r := NewRandomSource(7)
	first := r.Uint64()
	r.Bit()

	r.Seed(7)
	if r.Draws() != 0 {
		t.Errorf("Draws() after Seed = %d, want 0", r.Draws())
	}
	if got := r.Uint64(); got != first {
		t.Errorf("Uint64() after reseed = %#x, want %#x", got, first)
	}
}

func TestRandomSourceBitBalance(t *testing.T) {
	r := NewRandomSource(DefaultSeed)

	const n = 100000
	ones := 0
	for i := 0; i < n; i++ {
		ones += int(r.Bit())
	}

	// A fair coin lands within a few percent of n/2 at this sample size.
	if ones < n*48/100 || ones > n*52/100 {
		t.Errorf("ones = %d of %d, want roughly half", ones, n)
	}
}

func TestSplitMixStateNonZero(t *testing.T) {
	if splitMixState(0) == [4]uint64{} {
		t.Error("splitMixState(0) returned the all-zero state")
	}
}
