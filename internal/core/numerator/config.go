package numerator

import (
	"fmt"
	"time"
)

// Config holds numbering configuration.
type Config struct {
	// Prefix added to all references (e.g. "DEV" for quotes)
	Prefix string

	// IncludeYear adds the period year to the reference
	IncludeYear bool

	// PadWidth is the minimum sequence width (default 4)
	PadWidth int

	// ResetPeriod: "year" or "never"
	ResetPeriod string
}

// DefaultConfig returns sensible defaults: yearly reset, 4-digit sequence.
func DefaultConfig(prefix string) Config {
	return Config{
		Prefix:      prefix,
		IncludeYear: true,
		PadWidth:    4,
		ResetPeriod: "year",
	}
}

// Key builds the sequence key for the config and period.
func (c Config) Key(period time.Time) string {
	if c.ResetPeriod == "year" {
		return fmt.Sprintf("%s_%s", c.Prefix, period.Format("2006"))
	}
	return c.Prefix
}

// Format renders the final reference string for a sequence number.
func (c Config) Format(period time.Time, num int64) string {
	padWidth := c.PadWidth
	if padWidth == 0 {
		padWidth = 4
	}
	if c.IncludeYear {
		return fmt.Sprintf("%s-%s-%0*d", c.Prefix, period.Format("2006"), padWidth, num)
	}
	return fmt.Sprintf("%s-%0*d", c.Prefix, padWidth, num)
}
