// Package seeding computes the first-round bracket arrangement for a seeded
// knockout: which league-position seeds share a match in round one, using
// the bit-reversal dealing pattern described in spec section 4.3.
package seeding

import "math"

// bitMask returns an n-bit mask of 1s.
func bitMask(n int) int {
	return (1 << uint(n)) - 1
}

// reverseBits reverses the low `width` bits of n.
func reverseBits(n, width int) int {
	result := 0
	for i := 0; i < width; i++ {
		result <<= 1
		result |= n & 1
		n >>= 1
	}
	return result
}

// FirstRoundSeeding returns the seed arrangement for the first round of a
// knockout with nTeams entrants: a list of groups (up to 4 seed indices
// each) covering 0..nTeams-1 without repetition. Padding of short groups to
// the arena's team-count with empty slots happens at match construction
// time, not here (spec open question (c)).
func FirstRoundSeeding(nTeams int) [][]int {
	if nTeams <= 0 {
		return nil
	}

	roundedTeams := int(math.Pow(2, math.Ceil(math.Log2(float64(nTeams)))))

	const perMatch = 4
	nMatches := int(math.Ceil(float64(roundedTeams) / perMatch))
	if nMatches < 1 {
		nMatches = 1
	}
	matchBits := int(math.Ceil(math.Log2(float64(nMatches))))
	if matchBits < 0 {
		matchBits = 0
	}

	insOrder := make([]int, nMatches)
	v := 0
	for n := 0; n < nMatches; n++ {
		if n%2 == 0 {
			v = reverseBits(n, matchBits)
		} else {
			v ^= bitMask(matchBits)
		}
		insOrder[n] = v
	}

	matches := make([][]int, nMatches)
	for t := 0; t < nTeams; t++ {
		bucket := insOrder[t%nMatches]
		matches[bucket] = append(matches[bucket], t)
	}

	return matches
}
