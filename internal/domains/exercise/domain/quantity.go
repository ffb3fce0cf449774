package domain

import (
	"math"
	"strings"
	"unicode"
)

// ParseQuantity reads free-form quantity input the way a browser number field
// hands it over: leading whitespace and an optional sign are skipped, then the
// leading run of digits is used. Input without leading digits yields 0, which
// the order later clamps to 1. Values beyond int32 saturate.
func ParseQuantity(raw string) int {
	s := strings.TrimLeftFunc(raw, unicode.IsSpace)
	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}
	value := 0
	digits := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		digits++
		if value < math.MaxInt32 {
			value = value*10 + int(r-'0')
		}
	}
	if digits == 0 {
		return 0
	}
	if value > math.MaxInt32 {
		value = math.MaxInt32
	}
	if negative {
		return -value
	}
	return value
}
