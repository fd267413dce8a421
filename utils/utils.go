package utils

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// GenerateBadgeCode returns a printable badge code, e.g. "V-9F2C41D07A3E".
func GenerateBadgeCode() string {
	b := make([]byte, 6) // 6 bytes = 12 characters
	_, _ = rand.Read(b)
	return "V-" + strings.ToUpper(hex.EncodeToString(b))
}

func StringPtr(s string) *string {
	return &s
}

func BoolPtr(b bool) *bool {
	return &b
}

func IntPtr(i int) *int {
	return &i
}
