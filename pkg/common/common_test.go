package common

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextID(t *testing.T) {
	a := NextID("P")
	b := NextID("P")
	assert.True(t, strings.HasPrefix(a, "P"))
	assert.NotEqual(t, a, b)
	assert.Less(t, a, b, "ids are monotonic per process")
}

func TestUUIDint64Unique(t *testing.T) {
	seen := make(map[int64]bool)
	for i := 0; i < 1000; i++ {
		id := UUIDint64()
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestIsEmptyOrNA(t *testing.T) {
	assert.True(t, IsEmptyOrNA(""))
	assert.True(t, IsEmptyOrNA("  "))
	assert.True(t, IsEmptyOrNA("N/A"))
	assert.True(t, IsEmptyOrNA("n/a"))
	assert.False(t, IsEmptyOrNA("P123"))
}

func TestSha256Hash(t *testing.T) {
	assert.Equal(t,
		"2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
		Sha256Hash("hello"))
}
