package numerator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var aug2026 = time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

func TestFormat_DefaultConfig(t *testing.T) {
	cfg := DefaultConfig("DEV")

	assert.Equal(t, "DEV-2026-0001", cfg.Format(aug2026, 1))
	assert.Equal(t, "DEV-2026-0042", cfg.Format(aug2026, 42))
	assert.Equal(t, "DEV-2026-12345", cfg.Format(aug2026, 12345))
}

func TestFormat_WithoutYear(t *testing.T) {
	cfg := Config{Prefix: "CMD", PadWidth: 4}
	assert.Equal(t, "CMD-0007", cfg.Format(aug2026, 7))
}

func TestFormat_ZeroPadWidthDefaultsToFour(t *testing.T) {
	cfg := Config{Prefix: "DEV", IncludeYear: true}
	assert.Equal(t, "DEV-2026-0001", cfg.Format(aug2026, 1))
}

func TestKey_YearlyReset(t *testing.T) {
	cfg := DefaultConfig("DEV")

	assert.Equal(t, "DEV_2026", cfg.Key(aug2026))
	assert.Equal(t, "DEV_2027", cfg.Key(aug2026.AddDate(1, 0, 0)))
}

func TestKey_NoReset(t *testing.T) {
	cfg := Config{Prefix: "GLB", ResetPeriod: "never"}

	assert.Equal(t, "GLB", cfg.Key(aug2026))
	assert.Equal(t, cfg.Key(aug2026), cfg.Key(aug2026.AddDate(1, 0, 0)))
}
