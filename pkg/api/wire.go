// Package api is the client side of the DiaLog backend: typed request and
// response records, the Port the app core talks to, and an HTTP/JSON Client
// implementing it.
package api

import (
	"context"

	"liyu1981.xyz/dialog-service/pkg/condition"
)

//go:generate mockgen -destination=mocks/mock_port.go -package=mocks . Port,TokenSource

const (
	PathConditions  = "/conditions"
	PathAlertDoctor = "/alert-doctor"
	PathGraphs      = "/graphs"
)

type SubmitConditionsRequest = condition.Batch

type SubmitConditionsResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type AlertDoctorRequest struct {
	UserID          string `json:"userid"`
	BloodSugarLevel string `json:"bloodSugarLevel"`
}

type AlertDoctorResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

type GraphPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type GraphResponse struct {
	Data []GraphPoint `json:"data"`
}

// GraphQuery selects one data type over [Start, End]. Dates use the
// condition event date layout.
type GraphQuery struct {
	UserID   string
	DataType string
	Start    string
	End      string
}

// ErrorResponse is the body the backend sends with a non-2xx status.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Port is everything the app core sends to the backend.
type Port interface {
	SubmitConditions(ctx context.Context, batch SubmitConditionsRequest) (*SubmitConditionsResponse, error)
	AlertDoctor(ctx context.Context, req AlertDoctorRequest) (*AlertDoctorResponse, error)
}
