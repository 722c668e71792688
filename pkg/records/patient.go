package records

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"liyu1981.xyz/dialog-service/pkg/common"
	"liyu1981.xyz/dialog-service/pkg/models"
)

func (r *Records) upsertPatient(userID string, input *models.Patient) error {
	logger := common.GetCategoryLogger(common.LoggerNameRecordsCore, common.LoggerCategoryPatient)

	if userID == "" {
		return ErrMissingUserID
	}

	patient := models.Patient{
		UserID:      userID,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		DoctorName:  input.DoctorName,
		DoctorEmail: input.DoctorEmail,
		LowerBound:  input.LowerBound,
		UpperBound:  input.UpperBound,
		BSUnit:      input.BSUnit,

		DiabetesType:     input.DiabetesType,
		DiagnoseDate:     input.DiagnoseDate,
		InsulinType:      input.InsulinType,
		AdminRoute:       input.AdminRoute,
		MedicalCondition: input.MedicalCondition,
		Medication:       input.Medication,
	}

	logger.Info("Received patient profile", zap.String("userId", userID))

	err := r.Db.Conn.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(&patient).Error

	if err == nil {
		logger.Info("Upserted patient profile", zap.String("userId", userID))
	}

	return err
}

func (r *Records) getPatient(userID string) (*models.Patient, error) {
	var patient models.Patient
	err := r.Db.Conn.First(&patient, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

type IPatientImpl struct {
	records *Records
}

func (ip *IPatientImpl) UpsertPatient(userID string, input *models.Patient) error {
	return ip.records.upsertPatient(userID, input)
}

func (ip *IPatientImpl) GetPatient(userID string) (*models.Patient, error) {
	return ip.records.getPatient(userID)
}

func (r *Records) GetIPatient() IPatient {
	return &IPatientImpl{records: r}
}

// HasProfileRange reports whether the user's profile sets its own target
// range. The evaluator does not apply it.
func (r *Records) HasProfileRange(userID string) bool {
	if userID == "" || r.Patient == nil {
		return false
	}
	patient, err := r.Patient.GetPatient(userID)
	if err != nil {
		return false
	}
	return patient.LowerBound != nil || patient.UpperBound != nil
}
