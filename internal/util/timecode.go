package util

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsePlaybackTime parses a playback position into seconds. Accepted forms:
// plain seconds ("90", "90.25"), minutes:seconds ("1:30", "1:30.5") and
// hours:minutes:seconds ("0:01:30").
func ParsePlaybackTime(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty playback time")
	}

	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("invalid playback time %q", s)
	}

	var total float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(part, 64)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("invalid playback time %q", s)
		}
		// Only the last component may be fractional
		if i < len(parts)-1 && v != float64(int64(v)) {
			return 0, fmt.Errorf("invalid playback time %q", s)
		}
		total = total*60 + v
	}
	return total, nil
}

// FrameTime converts a frame index at the given frame rate into seconds.
func FrameTime(frame int, fps float64) (float64, error) {
	if fps <= 0 {
		return 0, fmt.Errorf("invalid frame rate %g", fps)
	}
	if frame < 0 {
		return 0, fmt.Errorf("invalid frame index %d", frame)
	}
	return float64(frame) / fps, nil
}
