// Package glucose classifies blood-sugar readings against the target range
// for their meal timing and builds the alert shown to the user.
package glucose

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MealTiming says whether a reading was taken before or after eating.
type MealTiming int

const (
	MealTimingUnknown MealTiming = iota
	MealTimingPreMeal
	MealTimingPostMeal
)

const (
	preMealLabel  = "Pre-meal"
	postMealLabel = "Post-meal"
)

func (m MealTiming) String() string {
	switch m {
	case MealTimingPreMeal:
		return preMealLabel
	case MealTimingPostMeal:
		return postMealLabel
	}
	return ""
}

// ParseMealTiming maps the labels used by the logging forms ("Pre-meal",
// "Post-meal") and their common spellings. Anything else is Unknown.
func ParseMealTiming(s string) MealTiming {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer("-", "", "_", "", " ", "").Replace(normalized)

	switch normalized {
	case "premeal", "beforemeal":
		return MealTimingPreMeal
	case "postmeal", "aftermeal":
		return MealTimingPostMeal
	}
	return MealTimingUnknown
}

func (m MealTiming) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *MealTiming) UnmarshalText(text []byte) error {
	*m = ParseMealTiming(string(text))
	return nil
}

// Thresholds are the target-range bounds in mmol/L.
type Thresholds struct {
	Low          decimal.Decimal
	PreMealHigh  decimal.Decimal
	PostMealHigh decimal.Decimal
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		Low:          decimal.RequireFromString("4.0"),
		PreMealHigh:  decimal.RequireFromString("7.0"),
		PostMealHigh: decimal.RequireFromString("11.0"),
	}
}

// NewThresholds builds Thresholds from float settings (config, env).
func NewThresholds(low, preMealHigh, postMealHigh float64) (Thresholds, error) {
	t := Thresholds{
		Low:          decimal.NewFromFloat(low),
		PreMealHigh:  decimal.NewFromFloat(preMealHigh),
		PostMealHigh: decimal.NewFromFloat(postMealHigh),
	}
	return t, t.Validate()
}

// Validate enforces 0 < Low < PreMealHigh < PostMealHigh.
func (t Thresholds) Validate() error {
	if !t.Low.IsPositive() {
		return fmt.Errorf("low threshold must be positive, got %s", t.Low)
	}
	if !t.Low.LessThan(t.PreMealHigh) {
		return fmt.Errorf("low threshold %s must be below pre-meal high %s", t.Low, t.PreMealHigh)
	}
	if !t.PreMealHigh.LessThan(t.PostMealHigh) {
		return fmt.Errorf("pre-meal high %s must be below post-meal high %s", t.PreMealHigh, t.PostMealHigh)
	}
	return nil
}

// High returns the upper bound that applies to timing, and false when the
// timing has no target range.
func (t Thresholds) High(timing MealTiming) (decimal.Decimal, bool) {
	switch timing {
	case MealTimingPreMeal:
		return t.PreMealHigh, true
	case MealTimingPostMeal:
		return t.PostMealHigh, true
	}
	return decimal.Zero, false
}
