package calc

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatTime renders seconds as "M:SS.mmm" (e.g. 65.25 -> "1:05.250").
// Minutes are not zero padded and are not folded into hours.
func FormatTime(seconds float64) string {
	minutes := math.Floor(seconds / 60)
	rest := math.Mod(seconds, 60)
	if rest < 0 {
		rest += 60
	}
	return fmt.Sprintf("%d:%06.3f", int(minutes), rest)
}

// ParseTime is the inverse of FormatTime. It accepts "M:SS.mmm" as well as
// plain seconds ("SS.mmm"), which is how sector times are recorded.
func ParseTime(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty time", ErrInvalidArgument)
	}
	minPart, secPart, hasMinutes := strings.Cut(s, ":")
	if !hasMinutes {
		secPart = minPart
		minPart = "0"
	}
	minutes, err := strconv.Atoi(minPart)
	if err != nil || minutes < 0 {
		return 0, fmt.Errorf("%w: invalid minutes in %q", ErrInvalidArgument, s)
	}
	secs, err := strconv.ParseFloat(secPart, 64)
	if err != nil || secs < 0 || math.IsNaN(secs) || math.IsInf(secs, 0) {
		return 0, fmt.Errorf("%w: invalid seconds in %q", ErrInvalidArgument, s)
	}
	if hasMinutes && secs >= 60 {
		return 0, fmt.Errorf("%w: seconds out of range in %q", ErrInvalidArgument, s)
	}
	return float64(minutes)*60 + secs, nil
}
