package records

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"liyu1981.xyz/dialog-service/pkg/common"
	"liyu1981.xyz/dialog-service/pkg/models"
	_ "liyu1981.xyz/dialog-service/pkg/testing"
)

func TestUpsertPatient(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, r, _ := GetMockRecordsWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	userID := uuid.NewString()
	lower, upper := 4.5, 9.0

	err := r.Patient.UpsertPatient(userID, &models.Patient{
		FirstName:  "Ada",
		LastName:   "Lovelace",
		LowerBound: &lower,
		UpperBound: &upper,
		BSUnit:     "mmol/L",

		DiabetesType:     "Type 2",
		MedicalCondition: "Hypertension",
		Medication:       "Metformin",
	})
	require.NoError(t, err)

	saved, err := r.Patient.GetPatient(userID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", saved.FirstName)
	assert.Equal(t, "Type 2", saved.DiabetesType)
	assert.Equal(t, "Hypertension", saved.MedicalCondition)
	assert.Equal(t, "Metformin", saved.Medication)
	require.NotNil(t, saved.LowerBound)
	assert.Equal(t, 4.5, *saved.LowerBound)
	assert.Equal(t, "", saved.DoctorEmail)

	err = r.Patient.UpsertPatient(userID, &models.Patient{
		FirstName:   "Ada",
		LastName:    "King",
		DoctorEmail: "doctor@example.com",
	})
	require.NoError(t, err)

	updated, err := r.Patient.GetPatient(userID)
	require.NoError(t, err)
	assert.Equal(t, "King", updated.LastName)
	assert.Equal(t, "doctor@example.com", updated.DoctorEmail)
	assert.Nil(t, updated.LowerBound)
	assert.Empty(t, updated.Medication)

	var count int64
	require.NoError(t, r.Db.Conn.Model(&models.Patient{}).Where("user_id = ?", userID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpsertPatient_MissingUser(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, r, _ := GetMockRecordsWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	err := r.Patient.UpsertPatient("", &models.Patient{FirstName: "Ada"})
	assert.ErrorIs(t, err, ErrMissingUserID)
}

func TestGetPatient_NotFound(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, r, _ := GetMockRecordsWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	_, err := r.Patient.GetPatient(uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpsertPatient_WithLog(t *testing.T) {
	var buf = &bytes.Buffer{}
	common.SetTestCaptureLogger(buf, zapcore.InfoLevel)

	ctrl, r, _ := GetMockRecordsWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	userID := uuid.NewString()
	require.NoError(t, r.Patient.UpsertPatient(userID, &models.Patient{FirstName: "Ada"}))

	logs := ParseLogs(buf)
	for _, msg := range []string{"Received patient profile", "Upserted patient profile"} {
		entry := findLog(logs, msg)
		require.NotNil(t, entry, "expected log entry %q", msg)
		assert.Equal(t, userID, entry["userId"])
		assert.Equal(t, common.LoggerCategoryPatient, entry[common.LoggerFieldCategory])
	}
}

func TestHasProfileRange(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, r, _ := GetMockRecordsWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	withRange := uuid.NewString()
	upper := 10.0
	require.NoError(t, r.Patient.UpsertPatient(withRange, &models.Patient{FirstName: "Ada", UpperBound: &upper}))

	withoutRange := uuid.NewString()
	require.NoError(t, r.Patient.UpsertPatient(withoutRange, &models.Patient{FirstName: "Ada"}))

	assert.True(t, r.HasProfileRange(withRange))
	assert.False(t, r.HasProfileRange(withoutRange))
	assert.False(t, r.HasProfileRange(uuid.NewString()))
	assert.False(t, r.HasProfileRange(""))
}
