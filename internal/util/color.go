package util

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseHexColor parses "#rrggbb" or "#rrggbbaa" (leading '#' optional) into
// normalized RGBA components. Alpha defaults to 1 when absent.
func ParseHexColor(s string) ([4]float64, error) {
	var c [4]float64

	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return c, fmt.Errorf("invalid color %q: want rrggbb or rrggbbaa", s)
	}

	c[3] = 1
	for i := 0; i*2 < len(hex); i++ {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return c, fmt.Errorf("invalid color %q: %w", s, err)
		}
		c[i] = float64(v) / 255
	}
	return c, nil
}
