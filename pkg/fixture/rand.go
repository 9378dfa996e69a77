package fixture

import "math/rand/v2"

// pcgStream is the fixed second word of every PCG state so a single uint64 seed
// identifies a run.
const pcgStream = 0x7a1e_47f1_c5d0_2b13

// NewRand returns a deterministic source for seed
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, pcgStream))
}

// RandomSeed draws a seed from the process-wide source
func RandomSeed() uint64 {
	return rand.Uint64()
}

// Sample returns k distinct elements of pool in random order.
// It panics if k > len(pool).
func Sample(r *rand.Rand, pool []string, k int) []string {
	if k > len(pool) {
		panic("fixture: sample larger than population")
	}

	// Partial Fisher-Yates over a copy; pool is left untouched
	work := make([]string, len(pool))
	copy(work, pool)
	for i := 0; i < k; i++ {
		j := i + r.IntN(len(work)-i)
		work[i], work[j] = work[j], work[i]
	}
	return work[:k:k]
}

// Choice returns one element of pool chosen uniformly
func Choice(r *rand.Rand, pool []string) string {
	return pool[r.IntN(len(pool))]
}

// between returns a uniform integer in [lo, hi]
func between(r *rand.Rand, lo, hi int) int {
	return lo + r.IntN(hi-lo+1)
}
