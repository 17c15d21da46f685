package core

// Rand is a small xorshift64 generator used wherever the engine needs
// seed-derived values (world generation, scenario shuffling). Every instance
// seeded identically produces the identical sequence on every platform, which
// is why it is used instead of math/rand.
type Rand struct {
	state uint64
}

// NewRand creates a generator from a seed. A zero seed is remapped so the
// generator never gets stuck on the all-zero state.
func NewRand(seed int64) *Rand {
	s := uint64(seed)
	if s == 0 {
		s = 0x9e3779b97f4a7c15
	}
	return &Rand{state: s}
}

// Next returns the next raw 64-bit value.
func (r *Rand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// Intn returns a value in [0, n). Returns 0 when n <= 0.
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Float64 returns a value in [0, 1) with 53 bits of precision.
func (r *Rand) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}
