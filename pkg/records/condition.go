package records

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"liyu1981.xyz/dialog-service/pkg/api"
	"liyu1981.xyz/dialog-service/pkg/common"
	"liyu1981.xyz/dialog-service/pkg/condition"
	"liyu1981.xyz/dialog-service/pkg/dateutil"
	"liyu1981.xyz/dialog-service/pkg/models"
)

const MaxGraphPoints = 500

func parseEventDate(date string) (time.Time, error) {
	return dateutil.Parse(date, dateutil.ISOLocalPattern)
}

func (r *Records) saveBatch(batch condition.Batch) (int, error) {
	logger := common.GetCategoryLogger(common.LoggerNameRecordsCore, common.LoggerCategoryCondition)

	if batch.UserID == "" {
		return 0, ErrMissingUserID
	}

	now := time.Now().UTC()
	rows := make([]models.ConditionRecord, 0, len(batch.Conditions))

	// reject the whole batch before writing any of it
	for i, c := range batch.Conditions {
		if c.DataType == "" || c.Value == "" || c.EventDate == "" {
			return 0, fmt.Errorf("%w: condition %d: each condition must have datatype, value, and date", ErrInvalidCondition, i)
		}
		eventDate, err := parseEventDate(c.EventDate)
		if err != nil {
			return 0, fmt.Errorf("%w: condition %d: invalid date format %q", ErrInvalidCondition, i, c.EventDate)
		}
		rows = append(rows, models.ConditionRecord{
			CompositeKey: condition.CompositeKey(batch.UserID, c.DataType),
			UserID:       batch.UserID,
			DataType:     c.DataType,
			Value:        c.Value,
			EventDate:    eventDate,
			RecordedAt:   c.RecordedAt,
			ReceivedAt:   now,
		})
	}

	if len(rows) == 0 {
		logger.Info("Empty batch, nothing to save", zap.String("userId", batch.UserID))
		return 0, nil
	}

	err := r.Db.Conn.Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "composite_key"}, {Name: "event_date"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "recorded_at", "received_at"}),
		}).Create(&rows).Error
	})
	if err != nil {
		return 0, err
	}

	logger.Info("Conditions saved", zap.String("userId", batch.UserID), zap.Int("count", len(rows)))
	return len(rows), nil
}

func (r *Records) getConditions(userID string) ([]models.ConditionRecord, error) {
	var rows []models.ConditionRecord
	err := r.Db.Conn.
		Where("user_id = ?", userID).
		Order("event_date asc, id asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows, nil
}

// updateCondition rewrites the latest row of the user's data type.
func (r *Records) updateCondition(userID, dataType, value, date string) (*models.ConditionRecord, error) {
	logger := common.GetCategoryLogger(common.LoggerNameRecordsCore, common.LoggerCategoryCondition)

	if value == "" || date == "" {
		return nil, fmt.Errorf("%w: condition data (value and date) is required", ErrInvalidCondition)
	}
	eventDate, err := parseEventDate(date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date format %q", ErrInvalidCondition, date)
	}

	var row models.ConditionRecord
	err = r.Db.Conn.
		Where("composite_key = ?", condition.CompositeKey(userID, dataType)).
		Order("event_date desc, id desc").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	row.Value = value
	row.EventDate = eventDate
	row.ReceivedAt = time.Now().UTC()
	if err := r.Db.Conn.Save(&row).Error; err != nil {
		return nil, err
	}

	logger.Info("Condition updated", zap.String("userId", userID), zap.String("datatype", dataType))
	return &row, nil
}

// queryRange returns the numeric values of one data type in [start, end],
// oldest first. Rows whose value is not a number are left out.
func (r *Records) queryRange(userID, dataType, start, end string) ([]api.GraphPoint, error) {
	from, err := parseEventDate(start)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start_datetime %q", ErrInvalidCondition, start)
	}
	to, err := parseEventDate(end)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end_datetime %q", ErrInvalidCondition, end)
	}

	var rows []models.ConditionRecord
	err = r.Db.Conn.
		Where("composite_key = ? AND event_date BETWEEN ? AND ?", condition.CompositeKey(userID, dataType), from, to).
		Order("event_date asc").
		Limit(MaxGraphPoints).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	points := make([]api.GraphPoint, 0, len(rows))
	for _, row := range rows {
		v, err := decimal.NewFromString(row.Value)
		if err != nil {
			continue
		}
		points = append(points, api.GraphPoint{
			Date:  condition.FormatEventDate(row.EventDate),
			Value: v.InexactFloat64(),
		})
	}
	return points, nil
}

// ToConditions renders stored rows in the wire shape they were sent in.
func ToConditions(rows []models.ConditionRecord) []condition.Condition {
	return common.Mapper(rows, func(row models.ConditionRecord) condition.Condition {
		return condition.Condition{
			CompositeKey: row.CompositeKey,
			DataType:     row.DataType,
			Value:        row.Value,
			EventDate:    condition.FormatEventDate(row.EventDate),
			RecordedAt:   row.RecordedAt,
		}
	})
}

type IConditionImpl struct {
	records *Records
}

func (ic *IConditionImpl) SaveBatch(batch condition.Batch) (int, error) {
	return ic.records.saveBatch(batch)
}

func (ic *IConditionImpl) GetConditions(userID string) ([]models.ConditionRecord, error) {
	return ic.records.getConditions(userID)
}

func (ic *IConditionImpl) UpdateCondition(userID, dataType, value, date string) (*models.ConditionRecord, error) {
	return ic.records.updateCondition(userID, dataType, value, date)
}

func (ic *IConditionImpl) QueryRange(userID, dataType, start, end string) ([]api.GraphPoint, error) {
	return ic.records.queryRange(userID, dataType, start, end)
}

func (r *Records) GetICondition() ICondition {
	return &IConditionImpl{records: r}
}
