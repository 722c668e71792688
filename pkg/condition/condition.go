// Package condition turns the fields of a logging form into the batch of
// conditions sent to the backend. Every logging mode goes through the same
// BuildBatch; modes differ only in the field tables they hand it.
package condition

import (
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"liyu1981.xyz/dialog-service/pkg/common"
	"liyu1981.xyz/dialog-service/pkg/dateutil"
)

const compositeKeySeparator = "#"

// Field is one loggable entry of a form. Date is the moment the entry
// refers to, not when it was submitted.
type Field struct {
	DataType string
	Value    Optional[string]
	Date     time.Time
}

// FieldMapping is iterated in declaration order.
type FieldMapping []Field

type Condition struct {
	CompositeKey string `json:"userIdDataType"`
	DataType     string `json:"datatype"`
	Value        string `json:"value"`
	EventDate    string `json:"date"`
	RecordedAt   string `json:"timestamp"`
}

type Batch struct {
	UserID     string      `json:"user_id"`
	Conditions []Condition `json:"conditions"`
}

func (b Batch) MarshalJSON() ([]byte, error) {
	type wire Batch
	w := wire(b)
	if w.Conditions == nil {
		w.Conditions = []Condition{}
	}
	return json.Marshal(w)
}

func (b Batch) Len() int {
	return len(b.Conditions)
}

// Find returns the first condition with the given data type.
func (b Batch) Find(dataType string) (Condition, bool) {
	for _, c := range b.Conditions {
		if c.DataType == dataType {
			return c, true
		}
	}
	return Condition{}, false
}

func CompositeKey(userID, dataType string) string {
	return userID + compositeKeySeparator + dataType
}

// ParseCompositeKey splits "user#dataType" at the first separator.
func ParseCompositeKey(key string) (userID, dataType string, ok bool) {
	userID, dataType, ok = strings.Cut(key, compositeKeySeparator)
	if !ok || dataType == "" {
		return "", "", false
	}
	return userID, dataType, true
}

// FormatEventDate renders t the way conditions carry their dates.
func FormatEventDate(t time.Time) string {
	return dateutil.FormatDate(t, dateutil.ISOLocalPattern)
}

func NewCondition(userID, dataType, value string, date time.Time, timestamp string) Condition {
	return Condition{
		CompositeKey: CompositeKey(userID, dataType),
		DataType:     dataType,
		Value:        value,
		EventDate:    FormatEventDate(date),
		RecordedAt:   timestamp,
	}
}

// BuildBatch keeps every field that has a non-empty value, in order, and
// stamps all of them with the same submission timestamp. A form with
// nothing filled in gives an empty batch.
func BuildBatch(userID string, fields FieldMapping, timestamp string) Batch {
	batch := Batch{UserID: userID, Conditions: make([]Condition, 0, len(fields))}

	for _, f := range fields {
		value, ok := f.Value.Get()
		if !ok || value == "" {
			continue
		}
		batch.Conditions = append(batch.Conditions, NewCondition(userID, f.DataType, value, f.Date, timestamp))
	}

	common.GetCategoryLogger(common.LoggerNameDialogCore, common.LoggerCategoryCondition).Debug("Batch built",
		zap.String("userId", userID),
		zap.Int("fields", len(fields)),
		zap.Int("conditions", len(batch.Conditions)),
		zap.String("timestamp", timestamp),
	)

	return batch
}
