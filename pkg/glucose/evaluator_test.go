package glucose

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"liyu1981.xyz/dialog-service/pkg/common"
	_ "liyu1981.xyz/dialog-service/pkg/testing"
)

func newTestEvaluator(t *testing.T) *Evaluator {
	t.Helper()
	e, err := NewEvaluator(DefaultThresholds())
	require.NoError(t, err)
	return e
}

func TestEvaluate_Scenarios(t *testing.T) {
	common.SetTestLoggerNop()
	e := newTestEvaluator(t)

	tests := []struct {
		name       string
		value      string
		timing     MealTiming
		outOfRange bool
		direction  Direction
		contains   string
	}{
		{"pre-meal low", "3.5", MealTimingPreMeal, true, DirectionLow, "lower than the target range"},
		{"pre-meal high", "8.0", MealTimingPreMeal, true, DirectionHigh, "greater than the target range"},
		{"pre-meal in range", "6.5", MealTimingPreMeal, false, DirectionNone, ""},
		{"post-meal high", "12.0", MealTimingPostMeal, true, DirectionHigh, "greater than"},
		{"post-meal in range", "10.9", MealTimingPostMeal, false, DirectionNone, ""},
		{"post-meal low", "3.9", MealTimingPostMeal, true, DirectionLow, "lower than"},
		{"bounds are inclusive low", "4.0", MealTimingPreMeal, false, DirectionNone, ""},
		{"bounds are inclusive pre", "7", MealTimingPreMeal, false, DirectionNone, ""},
		{"bounds are inclusive post", "11.00", MealTimingPostMeal, false, DirectionNone, ""},
		{"unknown timing is permissive", "25", MealTimingUnknown, false, DirectionNone, ""},
		{"unknown timing low is permissive", "1.2", MealTimingUnknown, false, DirectionNone, ""},
		{"whitespace is trimmed", " 8.1 ", MealTimingPreMeal, true, DirectionHigh, "greater than"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := e.Evaluate(tt.value, tt.timing)
			require.NoError(t, err)

			assert.Equal(t, tt.outOfRange, result.OutOfRange)
			assert.Equal(t, tt.direction, result.Direction)

			if !tt.outOfRange {
				assert.Nil(t, result.Alert)
				return
			}

			require.NotNil(t, result.Alert)
			assert.Equal(t, "Warning", result.Alert.Title)
			assert.Equal(t, "OK, I have understood", result.Alert.DismissLabel)
			assert.Contains(t, result.Alert.Message, tt.contains)
			assert.NotEmpty(t, result.Alert.ID)
		})
	}
}

func TestEvaluate_ValidationFailures(t *testing.T) {
	common.SetTestLoggerNop()
	e := newTestEvaluator(t)

	for _, value := range []string{"", "   ", "abc", "7.0.1", "NaN", "Inf", "0", "-3.2", "0.000"} {
		t.Run(fmt.Sprintf("%q", value), func(t *testing.T) {
			result, err := e.Evaluate(value, MealTimingPreMeal)
			require.Error(t, err)
			assert.True(t, IsValidationError(err))
			assert.False(t, result.OutOfRange)
			assert.Nil(t, result.Alert)
		})
	}

	assert.False(t, IsValidationError(fmt.Errorf("other")))
	assert.True(t, IsValidationError(fmt.Errorf("wrapped: %w", &ValidationError{Value: "x", Reason: "y"})))
}

func TestEvaluate_Property(t *testing.T) {
	common.SetTestLoggerNop()
	e := newTestEvaluator(t)

	low := decimal.RequireFromString("4.0")
	pre := decimal.RequireFromString("7.0")
	post := decimal.RequireFromString("11.0")

	// every tenth from 0.1 to 30.0
	for i := 1; i <= 300; i++ {
		v := decimal.New(int64(i), -1)
		for _, timing := range []MealTiming{MealTimingPreMeal, MealTimingPostMeal} {
			result, err := e.Evaluate(v.String(), timing)
			require.NoError(t, err)

			expected := v.LessThan(low) ||
				(timing == MealTimingPreMeal && v.GreaterThan(pre)) ||
				(timing == MealTimingPostMeal && v.GreaterThan(post))

			assert.Equal(t, expected, result.OutOfRange, "value %s timing %s", v, timing)
			assert.Equal(t, expected, result.Alert != nil, "value %s timing %s", v, timing)
		}
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	common.SetTestLoggerNop()
	e := newTestEvaluator(t)

	first, err := e.Evaluate("2.0", MealTimingPostMeal)
	require.NoError(t, err)
	second, err := e.Evaluate("2.0", MealTimingPostMeal)
	require.NoError(t, err)

	assert.Equal(t, first.Alert.Title, second.Alert.Title)
	assert.Equal(t, first.Alert.Message, second.Alert.Message)
	assert.Equal(t, first.Alert.DismissLabel, second.Alert.DismissLabel)
	assert.NotEqual(t, first.Alert.ID, second.Alert.ID)
}

func TestEvaluate_InjectedThresholds(t *testing.T) {
	common.SetTestLoggerNop()

	thresholds, err := NewThresholds(3.5, 8.0, 12.0)
	require.NoError(t, err)
	e, err := NewEvaluator(thresholds)
	require.NoError(t, err)

	result, err := e.Evaluate("7.5", MealTimingPreMeal)
	require.NoError(t, err)
	assert.False(t, result.OutOfRange)

	result, err = e.EvaluateReading(Reading{Value: "3.6", MealTiming: MealTimingPostMeal})
	require.NoError(t, err)
	assert.False(t, result.OutOfRange)
}

func TestThresholds_Validate(t *testing.T) {
	assert.NoError(t, DefaultThresholds().Validate())

	_, err := NewThresholds(7, 4, 11)
	assert.Error(t, err)
	_, err = NewThresholds(4, 11, 7)
	assert.Error(t, err)
	_, err = NewThresholds(0, 7, 11)
	assert.Error(t, err)

	_, err = NewEvaluator(Thresholds{})
	assert.Error(t, err)
}

func TestParseMealTiming(t *testing.T) {
	tests := map[string]MealTiming{
		"Pre-meal":    MealTimingPreMeal,
		"pre-meal":    MealTimingPreMeal,
		"PreMeal":     MealTimingPreMeal,
		" pre_meal ":  MealTimingPreMeal,
		"Post-meal":   MealTimingPostMeal,
		"after meal":  MealTimingPostMeal,
		"":            MealTimingUnknown,
		"Fasting":     MealTimingUnknown,
		"Before-Meal": MealTimingPreMeal,
	}

	for input, expected := range tests {
		assert.Equal(t, expected, ParseMealTiming(input), "input %q", input)
	}

	assert.Equal(t, "Pre-meal", MealTimingPreMeal.String())
	assert.Equal(t, "Post-meal", MealTimingPostMeal.String())
	assert.Equal(t, "", MealTimingUnknown.String())
}

func TestReadingJSON(t *testing.T) {
	var r Reading
	require.NoError(t, json.Unmarshal([]byte(`{"value":"8.2","mealTiming":"Pre-meal"}`), &r))
	assert.Equal(t, Reading{Value: "8.2", MealTiming: MealTimingPreMeal}, r)

	body, err := json.Marshal(Reading{Value: "5", MealTiming: MealTimingPostMeal})
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":"5","mealTiming":"Post-meal"}`, string(body))
}

func TestEvaluationJSON(t *testing.T) {
	e := newTestEvaluator(t)

	evaluation, err := e.Evaluate("12.4", MealTimingPostMeal)
	require.NoError(t, err)

	body, err := json.Marshal(evaluation)
	require.NoError(t, err)

	var decoded Evaluation
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, DirectionHigh, decoded.Direction)
	assert.True(t, decoded.OutOfRange)
	assert.True(t, evaluation.Value.Equal(decoded.Value))
	require.NotNil(t, decoded.Alert)
	assert.Equal(t, evaluation.Alert.ID, decoded.Alert.ID)

	var d Direction
	assert.Error(t, d.UnmarshalText([]byte("sideways")))
}

func TestEvaluate_WithLog(t *testing.T) {
	buf := &bytes.Buffer{}
	common.SetTestCaptureLogger(buf, zapcore.InfoLevel)

	e := newTestEvaluator(t)
	_, err := e.Evaluate("12.5", MealTimingPostMeal)
	require.NoError(t, err)

	logs := buf.String()
	assert.Contains(t, logs, `"msg":"Reading evaluated"`)
	assert.Contains(t, logs, `"category":"glucose"`)
	assert.Contains(t, logs, `"direction":"high"`)
}
