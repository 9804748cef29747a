package common

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"strings"
)

const (
	ENABLED  = "enabled"
	DISABLED = "disabled"
)

// FileExists reports whether path exists and is not a directory.
func FileExists(path string) bool {
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !fi.IsDir()
}

// Sha256Hash returns the hex encoded sha256 of src.
func Sha256Hash(src string) string {
	h := sha256.New()
	h.Write([]byte(src))
	return hex.EncodeToString(h.Sum(nil))
}

// IsEmptyOrNA treats "", "N/A" and whitespace as empty.
func IsEmptyOrNA(val string) bool {
	val = strings.TrimSpace(val)
	return val == "" || strings.EqualFold(val, "n/a")
}
