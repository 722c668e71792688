package records

import (
	"context"
	"errors"

	"liyu1981.xyz/dialog-service/pkg/api"
	"liyu1981.xyz/dialog-service/pkg/condition"
	"liyu1981.xyz/dialog-service/pkg/db"
	"liyu1981.xyz/dialog-service/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_records.go -package=mocks . ICondition,IAlert,IPatient,Notifier

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidCondition  = errors.New("invalid condition")
	ErrMissingUserID     = errors.New("user ID is required")
	ErrIncompletePatient = errors.New("user data incomplete, unable to send alert")
)

type ICondition interface {
	SaveBatch(batch condition.Batch) (int, error)
	GetConditions(userID string) ([]models.ConditionRecord, error)
	UpdateCondition(userID, dataType, value, date string) (*models.ConditionRecord, error)
	QueryRange(userID, dataType, start, end string) ([]api.GraphPoint, error)
}

type IAlert interface {
	AlertDoctor(ctx context.Context, userID, bloodSugarLevel string) (*models.DoctorAlert, error)
	GetDoctorAlerts(userID string) ([]models.DoctorAlert, error)
}

type IPatient interface {
	UpsertPatient(userID string, input *models.Patient) error
	GetPatient(userID string) (*models.Patient, error)
}

type Records struct {
	Db        db.DB
	Condition ICondition
	Alert     IAlert
	Patient   IPatient
	Notifier  Notifier
}

type ServiceOpts struct {
	Condition ICondition
	Alert     IAlert
	Patient   IPatient
	Notifier  Notifier
}

func (r *Records) WithServices(opts ServiceOpts) *Records {
	if opts.Condition != nil {
		r.Condition = opts.Condition
	}
	if opts.Alert != nil {
		r.Alert = opts.Alert
	}
	if opts.Patient != nil {
		r.Patient = opts.Patient
	}
	if opts.Notifier != nil {
		r.Notifier = opts.Notifier
	}
	return r
}

// New wires the database backed services and the log notifier.
func New(database db.DB) *Records {
	r := &Records{Db: database}
	return r.WithServices(ServiceOpts{
		Condition: r.GetICondition(),
		Alert:     r.GetIAlert(),
		Patient:   r.GetIPatient(),
		Notifier:  LogNotifier{},
	})
}
