package records

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"liyu1981.xyz/dialog-service/pkg/common"
	"liyu1981.xyz/dialog-service/pkg/glucose"
	"liyu1981.xyz/dialog-service/pkg/models"
)

func doctorAlertMessage(p *models.Patient, level string) string {
	return fmt.Sprintf("Your patient, %s %s, has recorded an unsafe blood sugar level of %s mmol/L.",
		p.FirstName, p.LastName, level)
}

func (r *Records) alertDoctor(ctx context.Context, userID, bloodSugarLevel string) (*models.DoctorAlert, error) {
	logger := common.GetCategoryLogger(common.LoggerNameRecordsCore, common.LoggerCategoryNotify)

	if userID == "" {
		return nil, ErrMissingUserID
	}
	level := strings.TrimSpace(bloodSugarLevel)
	if _, err := glucose.ParseLevel(level); err != nil {
		return nil, err
	}

	var (
		patient *models.Patient
		err     error
	)
	if r.Patient != nil {
		patient, err = r.Patient.GetPatient(userID)
	} else {
		patient, err = r.getPatient(userID)
	}
	if errors.Is(err, ErrNotFound) {
		return nil, ErrIncompletePatient
	}
	if err != nil {
		return nil, err
	}
	if patient.FirstName == "" || patient.LastName == "" || patient.DoctorEmail == "" {
		return nil, ErrIncompletePatient
	}

	alert := models.DoctorAlert{
		UserID:          userID,
		BloodSugarLevel: level,
		DoctorEmail:     patient.DoctorEmail,
		Message:         doctorAlertMessage(patient, level),
		Status:          models.AlertStatusSent,
	}

	notifier := r.Notifier
	if notifier == nil {
		notifier = LogNotifier{}
	}
	notifyErr := notifier.Notify(ctx, models.Notification{
		UserID:  userID,
		To:      patient.DoctorEmail,
		Subject: AlertSubject,
		Body:    alert.Message,
	})
	if notifyErr != nil {
		alert.Status = models.AlertStatusFailed
	}

	if err := r.Db.Conn.Create(&alert).Error; err != nil {
		return nil, err
	}

	if notifyErr != nil {
		logger.Warn("Doctor alert failed", zap.String("userId", userID), zap.Error(notifyErr))
		return &alert, fmt.Errorf("notifying doctor: %w", notifyErr)
	}

	logger.Info("Doctor alert sent", zap.String("userId", userID), zap.Uint("alertId", alert.ID))
	return &alert, nil
}

func (r *Records) getDoctorAlerts(userID string) ([]models.DoctorAlert, error) {
	var alerts []models.DoctorAlert
	err := r.Db.Conn.
		Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Find(&alerts).Error
	return alerts, err
}

type IAlertImpl struct {
	records *Records
}

func (ia *IAlertImpl) AlertDoctor(ctx context.Context, userID, bloodSugarLevel string) (*models.DoctorAlert, error) {
	return ia.records.alertDoctor(ctx, userID, bloodSugarLevel)
}

func (ia *IAlertImpl) GetDoctorAlerts(userID string) ([]models.DoctorAlert, error) {
	return ia.records.getDoctorAlerts(userID)
}

func (r *Records) GetIAlert() IAlert {
	return &IAlertImpl{records: r}
}
