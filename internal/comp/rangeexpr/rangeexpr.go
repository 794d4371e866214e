// Package rangeexpr parses the comma/hyphen range expressions used for
// extra_spacing's match_numbers field (spec section 6).
package rangeexpr

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse parses a comma-separated list of integers and inclusive hyphen
// ranges (e.g. "1,3-5,9") into the set of integers it denotes.
func Parse(expr string) (map[int]struct{}, error) {
	result := map[int]struct{}{}

	for _, part := range strings.Split(expr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if strings.Contains(part, "-") {
			bounds := strings.SplitN(part, "-", 2)
			if len(bounds) != 2 {
				return nil, fmt.Errorf("rangeexpr: invalid range %q", part)
			}
			a, err := strconv.Atoi(strings.TrimSpace(bounds[0]))
			if err != nil {
				return nil, fmt.Errorf("rangeexpr: invalid range %q: %w", part, err)
			}
			b, err := strconv.Atoi(strings.TrimSpace(bounds[1]))
			if err != nil {
				return nil, fmt.Errorf("rangeexpr: invalid range %q: %w", part, err)
			}
			if b < a {
				return nil, fmt.Errorf("rangeexpr: invalid range %q: end before start", part)
			}
			for n := a; n <= b; n++ {
				result[n] = struct{}{}
			}
			continue
		}

		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("rangeexpr: invalid number %q: %w", part, err)
		}
		result[n] = struct{}{}
	}

	return result, nil
}
