package utils

import (
	"crypto/rand"
	"strconv"
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

// GenerateConfirmationCode creates a numeric single-use code. The code
// acts as an auth secret so it comes from crypto/rand.
func GenerateConfirmationCode(length int) string {
	if length <= 0 {
		length = 6
	}

	const digits = "0123456789"

	buf := make([]byte, length)
	_, _ = rand.Read(buf)
	for i := range buf {
		buf[i] = digits[int(buf[i])%len(digits)]
	}

	return string(buf)
}
