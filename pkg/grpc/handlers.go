package grpc

import (
	"context"
	"errors"

	z "github.com/Oudwins/zog"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"liyu1981.xyz/dialog-service/pkg/api"
	"liyu1981.xyz/dialog-service/pkg/common"
	"liyu1981.xyz/dialog-service/pkg/condition"
	"liyu1981.xyz/dialog-service/pkg/glucose"
	"liyu1981.xyz/dialog-service/pkg/records"
)

const (
	messageConditionsSaved = "User conditions saved successfully!"
	messageAlertSent       = "Alert sent to doctor successfully!"
)

func validateUserID(userID *string) z.ZogIssueList {
	var userIDValidator = z.String().Min(1).Required()
	return userIDValidator.Validate(userID)
}

func toStatus(err error) error {
	switch {
	case glucose.IsValidationError(err),
		errors.Is(err, records.ErrInvalidCondition),
		errors.Is(err, records.ErrMissingUserID),
		errors.Is(err, records.ErrIncompletePatient):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, records.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	}
	common.GetLoggerWith(common.LoggerNameGrpcServer).Error("Request failed", zap.Error(err))
	return status.Error(codes.Internal, err.Error())
}

// userFor fills an empty user id from the token subject.
func userFor(ctx context.Context, userID string) string {
	if userID == "" {
		return claimsFromContext(ctx).UserID()
	}
	return userID
}

func (s *DialogServer) SubmitConditions(ctx context.Context, req *condition.Batch) (*api.SubmitConditionsResponse, error) {
	req.UserID = userFor(ctx, req.UserID)

	if _, err := s.Records.Condition.SaveBatch(*req); err != nil {
		return nil, toStatus(err)
	}

	return &api.SubmitConditionsResponse{Success: true, Message: messageConditionsSaved}, nil
}

func (s *DialogServer) AlertDoctor(ctx context.Context, req *api.AlertDoctorRequest) (*api.AlertDoctorResponse, error) {
	userID := userFor(ctx, req.UserID)
	if issues := validateUserID(&userID); issues != nil {
		return nil, toStatus(records.ErrMissingUserID)
	}

	if _, err := s.Records.Alert.AlertDoctor(ctx, userID, req.BloodSugarLevel); err != nil {
		return nil, toStatus(err)
	}

	return &api.AlertDoctorResponse{Message: messageAlertSent, Status: "success"}, nil
}

func (s *DialogServer) EvaluateReading(ctx context.Context, req *EvaluateReadingRequest) (*EvaluateReadingResponse, error) {
	evaluation, err := s.Evaluator.Evaluate(req.Value, req.MealTiming)
	if err != nil {
		return nil, toStatus(err)
	}

	return &EvaluateReadingResponse{
		Evaluation:          evaluation,
		ProfileRangeIgnored: s.Records.HasProfileRange(userFor(ctx, req.UserID)),
	}, nil
}

func (s *DialogServer) GetConditions(ctx context.Context, req *GetConditionsRequest) (*GetConditionsResponse, error) {
	userID := userFor(ctx, req.UserID)
	if issues := validateUserID(&userID); issues != nil {
		return nil, toStatus(records.ErrMissingUserID)
	}

	rows, err := s.Records.Condition.GetConditions(userID)
	if err != nil {
		return nil, toStatus(err)
	}

	return &GetConditionsResponse{Conditions: records.ToConditions(rows)}, nil
}
