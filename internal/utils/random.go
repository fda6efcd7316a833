package utils

import (
	"crypto/rand"
	"encoding/binary"
	mrand "math/rand/v2"
)

// NewRand returns a PCG-backed generator. A zero seed draws one from crypto/rand.
func NewRand(seed uint64) *mrand.Rand {
	if seed == 0 {
		seed = RandomSeed()
	}
	return mrand.New(mrand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RandomSeed returns a non-zero seed from the operating system's CSPRNG.
func RandomSeed() uint64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 1
	}
	seed := binary.LittleEndian.Uint64(buf[:])
	if seed == 0 {
		seed = 1
	}
	return seed
}

// DeriveRand returns an independent child generator seeded from r.
// Deriving children in a fixed order keeps concurrent work reproducible.
func DeriveRand(r *mrand.Rand) *mrand.Rand {
	return mrand.New(mrand.NewPCG(r.Uint64(), r.Uint64()))
}

// IntBetween returns a uniform integer in [min, max]. It returns min when max < min.
func IntBetween(r *mrand.Rand, min, max int) int {
	if max <= min {
		return min
	}
	return min + r.IntN(max-min+1)
}

// Chance reports true with probability p.
func Chance(r *mrand.Rand, p float64) bool {
	return r.Float64() < p
}

// Choice returns a uniformly chosen element. items must not be empty.
func Choice[T any](r *mrand.Rand, items []T) T {
	return items[r.IntN(len(items))]
}

// Sample returns n distinct elements chosen uniformly without replacement.
// n is clamped to len(items). The input slice is not modified.
func Sample[T any](r *mrand.Rand, items []T, n int) []T {
	if n > len(items) {
		n = len(items)
	}
	if n <= 0 {
		return nil
	}
	pool := make([]T, len(items))
	copy(pool, items)
	for i := 0; i < n; i++ {
		j := i + r.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}

// Shuffle permutes items in place.
func Shuffle[T any](r *mrand.Rand, items []T) {
	r.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}

// WeightedIndex draws an index with probability proportional to weights.
// It returns -1 when every weight is zero.
func WeightedIndex(r *mrand.Rand, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return -1
	}
	target := r.Float64() * total
	last := -1
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		last = i
		if target < w {
			return i
		}
		target -= w
	}
	return last
}
