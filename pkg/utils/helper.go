package utils

import (
	"strconv"
	"strings"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// ParseInt64 converts a path or query parameter to int64. Returns
// 0 and false when the value is missing or not a positive integer.
func ParseInt64(value string) (int64, bool) {
	result, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || result < 1 {
		return 0, false
	}
	return result, true
}
