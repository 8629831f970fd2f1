package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatTimeSortsLexically(t *testing.T) {
	earlier := FormatTime(time.Date(2025, 1, 2, 3, 4, 5, 0, time.FixedZone("CET", 3600)))
	later := FormatTime(time.Date(2025, 1, 2, 3, 4, 5, 1000, time.UTC))

	assert.Equal(t, "2025-01-02T02:04:05.000000Z", earlier)
	assert.Len(t, later, len(earlier))
	assert.Less(t, earlier, later)
}
