package models

import "time"

type AlertStatus string

const (
	AlertStatusSent   AlertStatus = "sent"
	AlertStatusFailed AlertStatus = "failed"
)

// ConditionRecord is one stored condition. A resubmitted condition with the
// same composite key and event date replaces the earlier row.
type ConditionRecord struct {
	ID           uint      `gorm:"primaryKey"`
	CompositeKey string    `gorm:"uniqueIndex:idx_condition_key_date;not null"`
	UserID       string    `gorm:"index;not null"`
	DataType     string    `gorm:"index;not null"`
	Value        string    `gorm:"not null"`
	EventDate    time.Time `gorm:"uniqueIndex:idx_condition_key_date;not null"`
	RecordedAt   string
	ReceivedAt   time.Time
}

// Patient holds the profile needed to alert a doctor, plus the target
// range picked during onboarding. Conditions are not tied to a patient row:
// a user may log before filling in a profile.
type Patient struct {
	UserID      string `gorm:"primaryKey"`
	FirstName   string
	LastName    string
	DoctorName  string
	DoctorEmail string
	LowerBound  *float64
	UpperBound  *float64
	BSUnit      string

	DiabetesType string
	// DiagnoseDate is kept as the app sent it.
	DiagnoseDate     string
	InsulinType      string
	AdminRoute       string
	MedicalCondition string `gorm:"column:medical_condition"`
	Medication       string

	UpdatedAt time.Time
}

type DoctorAlert struct {
	ID              uint   `gorm:"primaryKey"`
	UserID          string `gorm:"index"`
	BloodSugarLevel string
	DoctorEmail     string
	Message         string
	Status          AlertStatus `gorm:"type:varchar(10);check:status IN ('sent','failed')"`
	CreatedAt       time.Time
}

// Notification is an outgoing doctor alert. It is not persisted.
type Notification struct {
	UserID  string
	To      string
	Subject string
	Body    string
}
