package util

import (
	"strconv"
	"strings"
)

var sizeSuffixes = []struct {
	suffix     string
	multiplier int64
}{
	{"GB", 1 << 30},
	{"MB", 1 << 20},
	{"KB", 1 << 10},
	{"B", 1},
}

// ParseSize parses a human-readable size string (e.g. "10MB", "512KB", "2GB")
// into bytes. Returns defaultBytes if the string cannot be parsed.
func ParseSize(s string, defaultBytes int64) int64 {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return defaultBytes
	}

	var multiplier int64 = 1
	for _, su := range sizeSuffixes {
		if strings.HasSuffix(s, su.suffix) {
			multiplier = su.multiplier
			s = strings.TrimSpace(s[:len(s)-len(su.suffix)])
			break
		}
	}

	val, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return defaultBytes
	}
	return val * multiplier
}
