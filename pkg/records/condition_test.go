package records

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"liyu1981.xyz/dialog-service/pkg/common"
	"liyu1981.xyz/dialog-service/pkg/condition"
	"liyu1981.xyz/dialog-service/pkg/models"
	_ "liyu1981.xyz/dialog-service/pkg/testing"
)

const testTimestamp = "2025-01-10T12:00:00Z"

func newBatch(userID string, entries ...[2]string) condition.Batch {
	batch := condition.Batch{UserID: userID}
	base := time.Date(2025, time.January, 10, 8, 0, 0, 0, time.UTC)
	for i, e := range entries {
		batch.Conditions = append(batch.Conditions,
			condition.NewCondition(userID, e[0], e[1], base.Add(time.Duration(i)*time.Minute), testTimestamp))
	}
	return batch
}

func TestSaveBatch(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, r, _ := GetMockRecordsWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	userID := uuid.NewString()
	batch := newBatch(userID, [2]string{"bloodSugar", "8.2"}, [2]string{"exerciseType", "walk"})

	saved, err := r.Condition.SaveBatch(batch)
	require.NoError(t, err)
	assert.Equal(t, 2, saved)

	rows, err := r.Condition.GetConditions(userID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "bloodSugar", rows[0].DataType)
	assert.Equal(t, "8.2", rows[0].Value)
	assert.Equal(t, condition.CompositeKey(userID, "bloodSugar"), rows[0].CompositeKey)
	assert.Equal(t, testTimestamp, rows[0].RecordedAt)
	assert.Equal(t, "walk", rows[1].Value)
}

func TestSaveBatch_UpsertSameKeyAndDate(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, r, _ := GetMockRecordsWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	userID := uuid.NewString()

	_, err := r.Condition.SaveBatch(newBatch(userID, [2]string{"bloodSugar", "8.2"}))
	require.NoError(t, err)
	_, err = r.Condition.SaveBatch(newBatch(userID, [2]string{"bloodSugar", "9.1"}))
	require.NoError(t, err)

	rows, err := r.Condition.GetConditions(userID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "9.1", rows[0].Value)
}

func TestSaveBatch_Empty(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, r, _ := GetMockRecordsWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	saved, err := r.Condition.SaveBatch(condition.Batch{UserID: uuid.NewString()})
	assert.NoError(t, err)
	assert.Equal(t, 0, saved)
}

func TestSaveBatch_Invalid(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, r, _ := GetMockRecordsWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	userID := uuid.NewString()
	good := condition.NewCondition(userID, "bloodSugar", "8.2", time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC), testTimestamp)

	tests := []struct {
		name  string
		batch condition.Batch
		want  error
	}{
		{"missing user", condition.Batch{Conditions: []condition.Condition{good}}, ErrMissingUserID},
		{"missing value", condition.Batch{UserID: userID, Conditions: []condition.Condition{
			good, {DataType: "food", EventDate: "2025-01-10T08:00:00"},
		}}, ErrInvalidCondition},
		{"missing datatype", condition.Batch{UserID: userID, Conditions: []condition.Condition{
			{Value: "1", EventDate: "2025-01-10T08:00:00"},
		}}, ErrInvalidCondition},
		{"bad date", condition.Batch{UserID: userID, Conditions: []condition.Condition{
			good, {DataType: "food", Value: "toast", EventDate: "10/01/2025"},
		}}, ErrInvalidCondition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Condition.SaveBatch(tt.batch)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	// nothing from a rejected batch is written
	_, err := r.Condition.GetConditions(userID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveBatch_WithLog(t *testing.T) {
	var buf = &bytes.Buffer{}
	common.SetTestCaptureLogger(buf, zapcore.InfoLevel)

	ctrl, r, _ := GetMockRecordsWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	userID := uuid.NewString()
	_, err := r.Condition.SaveBatch(newBatch(userID, [2]string{"bloodSugar", "5.5"}))
	require.NoError(t, err)

	entry := findLog(ParseLogs(buf), "Conditions saved")
	require.NotNil(t, entry, "expected a 'Conditions saved' log entry")
	assert.Equal(t, common.LoggerCategoryCondition, entry[common.LoggerFieldCategory])
	assert.Equal(t, userID, entry["userId"])
	assert.Equal(t, float64(1), entry["count"])
}

func TestGetConditions_NotFound(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, r, _ := GetMockRecordsWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	_, err := r.Condition.GetConditions(uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateCondition(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, r, _ := GetMockRecordsWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	userID := uuid.NewString()
	_, err := r.Condition.SaveBatch(newBatch(userID, [2]string{"weight", "80"}))
	require.NoError(t, err)

	row, err := r.Condition.UpdateCondition(userID, "weight", "79.5", "2025-01-11T07:30:00")
	require.NoError(t, err)
	assert.Equal(t, "79.5", row.Value)
	assert.Equal(t, time.Date(2025, time.January, 11, 7, 30, 0, 0, time.UTC), row.EventDate.UTC())

	var stored models.ConditionRecord
	require.NoError(t, r.Db.Conn.First(&stored, row.ID).Error)
	assert.Equal(t, "79.5", stored.Value)
}

func TestUpdateCondition_Errors(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, r, _ := GetMockRecordsWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	userID := uuid.NewString()

	_, err := r.Condition.UpdateCondition(userID, "weight", "", "2025-01-11T07:30:00")
	assert.ErrorIs(t, err, ErrInvalidCondition)

	_, err = r.Condition.UpdateCondition(userID, "weight", "70", "yesterday")
	assert.ErrorIs(t, err, ErrInvalidCondition)

	_, err = r.Condition.UpdateCondition(userID, "weight", "70", "2025-01-11T07:30:00")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestQueryRange(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, r, _ := GetMockRecordsWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	userID := uuid.NewString()
	batch := newBatch(userID,
		[2]string{"bloodSugar", "6.1"},
		[2]string{"bloodSugar", "high"},
		[2]string{"bloodSugar", "7.4"},
		[2]string{"food", "toast"},
	)
	_, err := r.Condition.SaveBatch(batch)
	require.NoError(t, err)

	points, err := r.Condition.QueryRange(userID, "bloodSugar", "2025-01-10T00:00:00", "2025-01-10T23:59:59")
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, "2025-01-10T08:00:00", points[0].Date)
	assert.Equal(t, 6.1, points[0].Value)
	assert.Equal(t, "2025-01-10T08:02:00", points[1].Date)
	assert.Equal(t, 7.4, points[1].Value)

	points, err = r.Condition.QueryRange(userID, "bloodSugar", "2025-01-10T08:01:00", "2025-01-10T08:01:30")
	require.NoError(t, err)
	assert.Empty(t, points)

	_, err = r.Condition.QueryRange(userID, "bloodSugar", "today", "2025-01-10T23:59:59")
	assert.ErrorIs(t, err, ErrInvalidCondition)
}

func TestQueryRange_Limit(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, r, _ := GetMockRecordsWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	userID := uuid.NewString()
	entries := make([][2]string, 0, MaxGraphPoints+20)
	for i := range MaxGraphPoints + 20 {
		entries = append(entries, [2]string{"bloodSugar", fmt.Sprintf("%d.5", i%20+1)})
	}
	_, err := r.Condition.SaveBatch(newBatch(userID, entries...))
	require.NoError(t, err)

	points, err := r.Condition.QueryRange(userID, "bloodSugar", "2025-01-01T00:00:00", "2025-12-31T00:00:00")
	require.NoError(t, err)
	assert.Len(t, points, MaxGraphPoints)
	assert.Equal(t, "2025-01-10T08:00:00", points[0].Date)
}

func TestToConditions(t *testing.T) {
	rows := []models.ConditionRecord{{
		CompositeKey: "u1#bloodSugar",
		UserID:       "u1",
		DataType:     "bloodSugar",
		Value:        "7.7",
		EventDate:    time.Date(2025, time.March, 2, 18, 30, 0, 0, time.UTC),
		RecordedAt:   testTimestamp,
	}}

	assert.Equal(t, []condition.Condition{{
		CompositeKey: "u1#bloodSugar",
		DataType:     "bloodSugar",
		Value:        "7.7",
		EventDate:    "2025-03-02T18:30:00",
		RecordedAt:   testTimestamp,
	}}, ToConditions(rows))
	assert.Empty(t, ToConditions(nil))
}
