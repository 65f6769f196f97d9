package helpers

import (
	"strconv"
	"strings"
)

// -----------------------------------------------------------------------------

// FormatFloat prints v with the shortest round-trip digits and always a
// decimal point ("0.0", "2.0", "1.11"). Log lines and run summaries use it.
func FormatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
