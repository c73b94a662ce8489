package bitfx

import (
	"encoding/binary"
	"math/bits"
)

// DefaultSeed is the fixed seed used for every run.
const DefaultSeed uint64 = 0

// BitSource produces uniformly distributed bits.
// GenerateGrid consumes exactly one Bit per cell.
type BitSource interface {
	Bit() uint8
}

// RandomSource is a deterministic xoshiro256++ generator.
//
// Seeding fills the 256-bit state from a 64-bit seed with PCG32 steps,
// four bytes at a time, little-endian. A Bit is the top bit of the next
// 64-bit output (the upper 32-bit word scaled onto {0, 1}). These rules fix
// the glyph sequence for a given seed; changing any of them changes every
// rendered frame.
//
// RandomSource is not safe for concurrent use. One source threads through
// all frames of a run.
type RandomSource struct {
	s     [4]uint64
	draws uint64
}

// NewRandomSource creates a source seeded from seed.
func NewRandomSource(seed uint64) *RandomSource {
	r := &RandomSource{}
	r.Seed(seed)
	return r
}

// Seed resets the generator state from seed.
func (r *RandomSource) Seed(seed uint64) {
	const (
		pcgMul = 6364136223846793005
		pcgInc = 11634580027462260723
	)

	var buf [32]byte
	state := seed
	for i := 0; i < len(buf); i += 4 {
		state = state*pcgMul + pcgInc
		xorshifted := uint32(((state >> 18) ^ state) >> 27)
		rot := int(state >> 59)
		binary.LittleEndian.PutUint32(buf[i:], bits.RotateLeft32(xorshifted, -rot))
	}

	for i := range r.s {
		r.s[i] = binary.LittleEndian.Uint64(buf[i*8:])
	}
	if r.s == [4]uint64{} {
		// xoshiro must never run from the all-zero state.
		r.s = splitMixState(0)
	}
	r.draws = 0
}

// splitMixState expands a seed with SplitMix64.
func splitMixState(seed uint64) [4]uint64 {
	var s [4]uint64
	for i := range s {
		seed += 0x9e3779b97f4a7c15
		z := seed
		z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
		z = (z ^ (z >> 27)) * 0x94d049bb133111eb
		s[i] = z ^ (z >> 31)
	}
	return s
}

// Uint64 returns the next 64-bit output.
func (r *RandomSource) Uint64() uint64 {
	s := &r.s
	result := bits.RotateLeft64(s[0]+s[3], 23) + s[0]
	t := s[1] << 17

	s[2] ^= s[0]
	s[3] ^= s[1]
	s[1] ^= s[2]
	s[0] ^= s[3]

	s[2] ^= t
	s[3] = bits.RotateLeft64(s[3], 45)

	return result
}

// Uint32 returns the upper half of the next 64-bit output.
// The low bits of xoshiro256++ are weaker, so they are discarded.
func (r *RandomSource) Uint32() uint32 {
	return uint32(r.Uint64() >> 32)
}

// Bit draws a value uniformly from {0, 1}.
func (r *RandomSource) Bit() uint8 {
	r.draws++
	// Widening multiply of a 32-bit sample by the range size 2 keeps the
	// upper word, which is the sample's top bit.
	hi, _ := bits.Mul32(r.Uint32(), 2)
	return uint8(hi)
}

// Draws returns the number of bits drawn since the last Seed.
func (r *RandomSource) Draws() uint64 {
	return r.draws
}
