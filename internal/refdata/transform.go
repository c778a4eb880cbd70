package refdata

import (
	"fmt"
	"strconv"
	"strings"
)

// splitCoordinates parses a combined "(lat,lng)" value into its two numeric
// components. The parentheses are optional; both parts must parse as floats.
func splitCoordinates(raw string) (lat, lng float64, err error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimSuffix(s, ")")

	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed coordinate pair %q", raw)
	}
	lat, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad latitude in %q: %w", raw, err)
	}
	lng, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad longitude in %q: %w", raw, err)
	}
	return lat, lng, nil
}
