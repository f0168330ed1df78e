package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitEndpoints(t *testing.T) {
	assert.Empty(t, splitEndpoints(""))
	assert.Equal(t, []string{"https://a.example"}, splitEndpoints("https://a.example"))
	assert.Equal(t,
		[]string{"https://a.example", "https://b.example"},
		splitEndpoints("https://a.example, https://b.example"))
	assert.Equal(t, []string{"https://a.example"}, splitEndpoints(",https://a.example,,"))
}

func TestParseStoredTime(t *testing.T) {
	assert.Nil(t, parseStoredTime(""))
	assert.Nil(t, parseStoredTime("yesterday"))

	got := parseStoredTime("2025-03-12T09:15:00Z")
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2025, 3, 12, 9, 15, 0, 0, time.UTC), got.UTC())
}

func TestValueFallbacks(t *testing.T) {
	all := map[string]string{
		"present": "value",
		"empty":   "",
		"number":  "12",
		"junk":    "twelve",
	}

	assert.Equal(t, "value", valueOr(all, "present", "fallback"))
	assert.Equal(t, "fallback", valueOr(all, "empty", "fallback"))
	assert.Equal(t, "fallback", valueOr(all, "missing", "fallback"))

	assert.Equal(t, 12, intValueOr(all, "number", 7))
	assert.Equal(t, 7, intValueOr(all, "junk", 7))
	assert.Equal(t, 7, intValueOr(all, "missing", 7))
}
