package glucose

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"liyu1981.xyz/dialog-service/pkg/common"
)

const (
	AlertTitle        = "Warning"
	AlertDismissLabel = "OK, I have understood"

	MessageBelowRange = "Your blood sugar is lower than the target range. We have already emailed your doctor for further assistance."
	MessageAboveRange = "Your blood sugar is greater than the target range. We have already emailed your doctor for further assistance."
)

// Reading is one glucose value as typed by the user, with its meal timing.
type Reading struct {
	Value      string     `json:"value"`
	MealTiming MealTiming `json:"mealTiming"`
}

// Alert is what the user sees when a reading is out of range.
type Alert struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Message      string `json:"message"`
	DismissLabel string `json:"dismissButtonTitle"`
}

type Direction int

const (
	DirectionNone Direction = iota
	DirectionLow
	DirectionHigh
)

func (d Direction) String() string {
	switch d {
	case DirectionLow:
		return "low"
	case DirectionHigh:
		return "high"
	}
	return "none"
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	switch string(text) {
	case "low":
		*d = DirectionLow
	case "high":
		*d = DirectionHigh
	case "none", "":
		*d = DirectionNone
	default:
		return fmt.Errorf("unknown direction %q", text)
	}
	return nil
}

// Evaluation is the outcome of a successful classification. Alert is set
// exactly when OutOfRange is true.
type Evaluation struct {
	OutOfRange bool            `json:"outOfRange"`
	Direction  Direction       `json:"direction"`
	Value      decimal.Decimal `json:"value"`
	Alert      *Alert          `json:"alert,omitempty"`
}

// ValidationError means the reading could not be evaluated at all.
type ValidationError struct {
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid blood sugar level %q: %s", e.Value, e.Reason)
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Evaluator has no mutable state; build one at startup and share it.
type Evaluator struct {
	thresholds Thresholds
	newID      func() string
}

func NewEvaluator(thresholds Thresholds) (*Evaluator, error) {
	if err := thresholds.Validate(); err != nil {
		return nil, err
	}
	return &Evaluator{thresholds: thresholds, newID: uuid.NewString}, nil
}

func (e *Evaluator) Thresholds() Thresholds {
	return e.thresholds
}

// ParseLevel turns user input into a positive, finite mmol/L value.
func ParseLevel(value string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return decimal.Zero, &ValidationError{Value: value, Reason: "value is empty"}
	}

	level, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, &ValidationError{Value: value, Reason: "not a number"}
	}
	if !level.IsPositive() {
		return decimal.Zero, &ValidationError{Value: value, Reason: "must be greater than zero"}
	}
	return level, nil
}

func (e *Evaluator) EvaluateReading(r Reading) (Evaluation, error) {
	return e.Evaluate(r.Value, r.MealTiming)
}

func (e *Evaluator) Evaluate(value string, timing MealTiming) (Evaluation, error) {
	logger := common.GetCategoryLogger(common.LoggerNameDialogCore, common.LoggerCategoryGlucose)

	level, err := ParseLevel(value)
	if err != nil {
		logger.Info("Reading rejected", zap.String("value", value), zap.Error(err))
		return Evaluation{}, err
	}

	result := Evaluation{Value: level, Direction: e.classify(level, timing)}

	switch result.Direction {
	case DirectionLow:
		result.OutOfRange = true
		result.Alert = e.newAlert(MessageBelowRange)
	case DirectionHigh:
		result.OutOfRange = true
		result.Alert = e.newAlert(MessageAboveRange)
	}

	logger.Info("Reading evaluated",
		zap.String("value", level.String()),
		zap.Stringer("mealTiming", timing),
		zap.Bool("outOfRange", result.OutOfRange),
		zap.Stringer("direction", result.Direction),
	)

	return result, nil
}

func (e *Evaluator) classify(level decimal.Decimal, timing MealTiming) Direction {
	high, known := e.thresholds.High(timing)
	if !known {
		return DirectionNone
	}
	if level.LessThan(e.thresholds.Low) {
		return DirectionLow
	}
	if level.GreaterThan(high) {
		return DirectionHigh
	}
	return DirectionNone
}

func (e *Evaluator) newAlert(message string) *Alert {
	return &Alert{
		ID:           e.newID(),
		Title:        AlertTitle,
		Message:      message,
		DismissLabel: AlertDismissLabel,
	}
}
