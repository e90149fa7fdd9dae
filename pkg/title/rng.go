package title

import "unicode/utf16"

const (
	// fnvOffsetBasis is the 32-bit FNV-1a offset basis. It is also the seed of the empty string.
	fnvOffsetBasis uint32 = 2166136261
	// fnvPrime is the 32-bit FNV prime.
	fnvPrime uint32 = 16777619
	// mulberryIncrement is the odd constant the RNG state advances by on every draw.
	mulberryIncrement uint32 = 0x6D2B79F5
)

// SeedFromString hashes s into a 32-bit seed using FNV-1a.
//
// The string is consumed as UTF-16 code units rather than bytes, so text
// outside the Basic Multilingual Plane (most emoji) contributes both halves of
// its surrogate pair. This keeps seeds identical to those computed by browser
// clients for links that are already in circulation.
func SeedFromString(s string) uint32 {
	h := fnvOffsetBasis
	for _, unit := range utf16.Encode([]rune(s)) {
		h ^= uint32(unit)
		h *= fnvPrime
	}
	return h
}

// RNG is a Mulberry32 pseudo-random generator. Its only state is a single
// 32-bit counter, so a copy of an RNG continues the same sequence independently.
// An RNG is not safe for concurrent use; every Build call owns its own.
type RNG struct {
	state uint32
}

// NewRNG returns an RNG positioned at the start of the sequence for seed.
func NewRNG(seed uint32) *RNG {
	return &RNG{state: seed}
}

// Next advances the generator and returns a float in [0, 1).
func (r *RNG) Next() float64 {
	r.state += mulberryIncrement
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

// Pick returns one element of list chosen by a single draw from rng.
// The modulo keeps the index in range even if Next ever returned exactly 1.
// list must not be empty.
func Pick[T any](list []T, rng *RNG) T {
	n := len(list)
	return list[int(rng.Next()*float64(n))%n]
}

// PickMany draws from list until it has collected n distinct elements and
// returns them in the order they were first drawn. The caller must ensure that
// list holds at least n distinct values, otherwise PickMany never returns.
func PickMany[T comparable](list []T, n int, rng *RNG) []T {
	out := make([]T, 0, n)
	seen := make(map[T]struct{}, n)
	for len(out) < n {
		v := Pick(list, rng)
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
