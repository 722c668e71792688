// Package dialog ties a submitted logging form to its two outputs: the
// condition batch sent to the backend and the glucose check that may alert
// the user's doctor. The two run independently; a failure of one never
// suppresses the other.
package dialog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"liyu1981.xyz/dialog-service/pkg/api"
	"liyu1981.xyz/dialog-service/pkg/common"
	"liyu1981.xyz/dialog-service/pkg/condition"
	"liyu1981.xyz/dialog-service/pkg/dateutil"
	"liyu1981.xyz/dialog-service/pkg/glucose"
)

const DefaultTimeout = 10 * time.Second

type Dialog struct {
	Evaluator *glucose.Evaluator
	API       api.Port
	Timestamp func() string
	Timeout   time.Duration
}

type Option func(*Dialog)

func WithTimeout(d time.Duration) Option {
	return func(dl *Dialog) {
		if d > 0 {
			dl.Timeout = d
		}
	}
}

// WithTimestamp replaces the submission clock.
func WithTimestamp(fn func() string) Option {
	return func(dl *Dialog) {
		if fn != nil {
			dl.Timestamp = fn
		}
	}
}

func New(evaluator *glucose.Evaluator, port api.Port, opts ...Option) *Dialog {
	d := &Dialog{
		Evaluator: evaluator,
		API:       port,
		Timestamp: dateutil.CurrentTimestamp,
		Timeout:   DefaultTimeout,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

type CheckResult struct {
	Evaluation glucose.Evaluation
	// Notified is true when the doctor alert request was accepted.
	Notified bool
	Warnings []string
}

type SubmitResult struct {
	Batch    condition.Batch
	Response *api.SubmitConditionsResponse
	// Check is nil when the form carries no blood sugar value or the value
	// could not be evaluated; ReadingErr says which.
	Check      *CheckResult
	ReadingErr error
	Warnings   []string
}

// CheckReading evaluates r and, when it is out of range, asks the backend
// once to alert the doctor. A failed alert comes back as a warning next to
// the Alert, never instead of it. Only a glucose.ValidationError is
// returned as an error.
func (d *Dialog) CheckReading(ctx context.Context, userID string, r glucose.Reading) (CheckResult, error) {
	logger := common.GetCategoryLogger(common.LoggerNameDialogCore, common.LoggerCategoryNotify)

	evaluation, err := d.Evaluator.EvaluateReading(r)
	if err != nil {
		return CheckResult{}, err
	}

	result := CheckResult{Evaluation: evaluation}
	if !evaluation.OutOfRange {
		return result, nil
	}

	logger.Info("Alert raised",
		zap.String("userId", userID),
		zap.String("value", evaluation.Value.String()),
		zap.Stringer("direction", evaluation.Direction),
	)

	callCtx, cancel := context.WithTimeout(ctx, d.Timeout)
	defer cancel()

	resp, err := d.API.AlertDoctor(callCtx, api.AlertDoctorRequest{
		UserID:          userID,
		BloodSugarLevel: strings.TrimSpace(r.Value),
	})
	if err != nil {
		logger.Warn("Doctor alert failed", zap.String("userId", userID), zap.Error(err))
		result.Warnings = append(result.Warnings, fmt.Sprintf("doctor was not notified: %v", err))
		return result, nil
	}

	result.Notified = true
	fields := []zap.Field{zap.String("userId", userID)}
	if resp != nil {
		fields = append(fields, zap.String("status", resp.Status))
	}
	logger.Info("Doctor alert sent", fields...)
	return result, nil
}

// Submit sends the form's conditions once, stamped with a single
// submission timestamp, and independently checks its blood sugar reading.
// It only fails for a nil form.
func (d *Dialog) Submit(ctx context.Context, userID string, form condition.Form) (SubmitResult, error) {
	if form == nil {
		return SubmitResult{}, errors.New("nothing to submit")
	}
	logger := common.GetCategoryLogger(common.LoggerNameDialogCore, common.LoggerCategorySubmit)

	result := SubmitResult{
		Batch: condition.BuildBatch(userID, form.Fields(), d.Timestamp()),
	}

	if reading := form.Reading(); reading.Value != "" {
		check, err := d.CheckReading(ctx, userID, reading)
		if err != nil {
			result.ReadingErr = err
			result.Warnings = append(result.Warnings, err.Error())
		} else {
			result.Check = &check
			result.Warnings = append(result.Warnings, check.Warnings...)
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, d.Timeout)
	defer cancel()

	resp, err := d.API.SubmitConditions(callCtx, result.Batch)
	if err != nil {
		logger.Warn("Submitting conditions failed",
			zap.String("userId", userID),
			zap.Stringer("mode", form.Mode()),
			zap.Error(err),
		)
		result.Warnings = append(result.Warnings, fmt.Sprintf("conditions were not saved: %v", err))
		return result, nil
	}

	result.Response = resp
	if resp == nil || !resp.Success {
		message := "no response body"
		if resp != nil {
			message = resp.Message
		}
		logger.Warn("Backend did not confirm conditions",
			zap.String("userId", userID),
			zap.String("message", message),
		)
		result.Warnings = append(result.Warnings, fmt.Sprintf("conditions were not confirmed: %s", message))
		return result, nil
	}

	logger.Info("Conditions submitted",
		zap.String("userId", userID),
		zap.Stringer("mode", form.Mode()),
		zap.Int("conditions", result.Batch.Len()),
	)
	return result, nil
}
