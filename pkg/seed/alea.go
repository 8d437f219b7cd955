package seed

import "math"

// mash implements the Mash 0.9 hash used by the Alea PRNG, reproducing
// its JavaScript double-precision semantics bit-for-bit so that a given
// seed string always yields the same board.
type mash struct {
	s float64
}

func newMash() *mash {
	return &mash{s: 4022871197.0}
}

func (m *mash) hash(data string) float64 {
	for _, ch := range []byte(data) {
		m.s += float64(ch)
		d := 0.02519603282416938 * m.s

		m.s = float64(uint32(d))
		d -= m.s

		d *= m.s
		m.s = float64(uint32(d))
		d -= m.s

		m.s += d * 4294967296.0 // 2^32
	}

	u32 := math.Mod(m.s, 4294967296.0)
	if u32 < 0 {
		u32 += 4294967296.0
	}
	return float64(uint32(u32)) * 2.3283064365386963e-10 // 2^-32
}

// alea is a port of the Alea PRNG (Johannes Baagøe's algorithm, as
// popularized by the alea.js library), seeded from a single string.
type alea struct {
	s0, s1, s2 float64
	c          uint32
}

func newAlea(seedStr string) *alea {
	m := newMash()
	a := &alea{c: 1}

	a.s0 = m.hash(" ")
	a.s1 = m.hash(" ")
	a.s2 = m.hash(" ")

	a.s0 -= m.hash(seedStr)
	if a.s0 < 0 {
		a.s0 += 1
	}
	a.s1 -= m.hash(seedStr)
	if a.s1 < 0 {
		a.s1 += 1
	}
	a.s2 -= m.hash(seedStr)
	if a.s2 < 0 {
		a.s2 += 1
	}
	return a
}

// next returns the next pseudo-random value in [0, 1).
func (a *alea) next() float64 {
	p := 2091639.0*a.s0 + float64(a.c)*2.3283064365386963e-10
	a.s0 = a.s1
	a.s1 = a.s2

	ip := uint32(p)
	a.c = ip
	a.s2 = p - float64(ip)

	return a.s2
}
