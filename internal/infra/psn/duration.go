package psn

import (
	"fmt"
	"regexp"
	"strconv"
)

// playDurationPattern matches the ISO-8601-style durations the PSN API
// reports, e.g. "PT228H56M33S". Every component is optional. Anchored so
// surrounding junk does not pass as a valid duration.
var playDurationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ConvertPlayDuration converts a PSN play duration into the human-readable
// form the feed exposes: "0h" when nothing was played, "{m}m" for under an
// hour, "{h}h" for whole hours, "{h}h {m}m" otherwise. Seconds are
// discarded. The second return value is false for input that did not match
// the pattern at all; the caller logs it and the result degrades to "0h".
func ConvertPlayDuration(duration string) (string, bool) {
	match := playDurationPattern.FindStringSubmatch(duration)
	if match == nil {
		return "0h", false
	}

	hours := atoiOrZero(match[1])
	minutes := atoiOrZero(match[2])

	switch {
	case hours == 0 && minutes == 0:
		return "0h", true
	case hours == 0:
		return fmt.Sprintf("%dm", minutes), true
	case minutes > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes), true
	default:
		return fmt.Sprintf("%dh", hours), true
	}
}

func atoiOrZero(s string) int {
	if s == "" {
		return 0
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}

	return n
}
