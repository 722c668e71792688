package http

import (
	"errors"
	"fmt"
	"net/http"

	z "github.com/Oudwins/zog"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"liyu1981.xyz/dialog-service/pkg/api"
	"liyu1981.xyz/dialog-service/pkg/common"
	"liyu1981.xyz/dialog-service/pkg/condition"
	"liyu1981.xyz/dialog-service/pkg/glucose"
	"liyu1981.xyz/dialog-service/pkg/models"
	"liyu1981.xyz/dialog-service/pkg/records"
)

const (
	MessageConditionsSaved   = "User conditions saved successfully!"
	MessageConditionUpdated  = "Condition updated successfully!"
	MessageAlertSent         = "Alert sent to doctor successfully!"
	MessagePatientSaved      = "Diabetes information added successfully!"
	AlertStatusSuccess       = "success"
	errorMessageInvalidJSON  = "invalid JSON body"
	errorMessageUserNotFound = "User not found"
	errorMessageOperatorOnly = "operator token required"
)

// statusFor maps core errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case glucose.IsValidationError(err),
		errors.Is(err, records.ErrInvalidCondition),
		errors.Is(err, records.ErrMissingUserID),
		errors.Is(err, records.ErrIncompletePatient):
		return http.StatusBadRequest
	case errors.Is(err, records.ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func abortWithError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		common.GetLoggerWith(common.LoggerNameRestfulServer).Error("Request failed",
			zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, api.ErrorResponse{Error: err.Error()})
}

func validationFailed(c *gin.Context, issues any) {
	c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: fmt.Sprintf("validation error: %v", issues)})
}

func (rs *RestfulServer) PostConditions(c *gin.Context) {
	var batch condition.Batch
	if err := c.ShouldBindJSON(&batch); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: errorMessageInvalidJSON})
		return
	}

	userID, ok := resolveUser(c, batch.UserID)
	if !ok {
		return
	}
	batch.UserID = userID

	if !rs.CheckUserLimiter(userID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	if _, err := rs.Records.Condition.SaveBatch(batch); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, api.SubmitConditionsResponse{Success: true, Message: MessageConditionsSaved})
}

func (rs *RestfulServer) GetConditions(c *gin.Context) {
	userID, ok := resolveUser(c, c.Param("user_id"))
	if !ok {
		return
	}

	if !rs.CheckUserLimiter(userID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	rows, err := rs.Records.Condition.GetConditions(userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, records.ToConditions(rows))
}

type ConditionUpdateRequest struct {
	Value string `json:"value"`
	Date  string `json:"date"`
}

var conditionUpdateSchema = z.Struct(z.Shape{
	"Value": z.String().Min(1).Required(),
	"Date":  z.String().Required(),
})

func (rs *RestfulServer) UpdateCondition(c *gin.Context) {
	userID, ok := resolveUser(c, c.Param("user_id"))
	if !ok {
		return
	}

	if !rs.CheckUserLimiter(userID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var req ConditionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: errorMessageInvalidJSON})
		return
	}
	if issues := conditionUpdateSchema.Validate(&req); issues != nil {
		validationFailed(c, issues)
		return
	}

	row, err := rs.Records.Condition.UpdateCondition(userID, c.Param("datatype"), req.Value, req.Date)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   MessageConditionUpdated,
		"condition": records.ToConditions([]models.ConditionRecord{*row})[0],
	})
}

type GraphRequest struct {
	UserID   string `form:"user_id"`
	DataType string `form:"datatype"`
	Start    string `form:"start_datetime"`
	End      string `form:"end_datetime"`
}

var graphRequestSchema = z.Struct(z.Shape{
	"DataType": z.String().Required(),
	"Start":    z.String().Required(),
	"End":      z.String().Required(),
})

func (rs *RestfulServer) GetGraph(c *gin.Context) {
	var req GraphRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	if issues := graphRequestSchema.Validate(&req); issues != nil {
		validationFailed(c, issues)
		return
	}

	userID, ok := resolveUser(c, req.UserID)
	if !ok {
		return
	}
	if userID == "" {
		abortWithError(c, records.ErrMissingUserID)
		return
	}

	if !rs.CheckUserLimiter(userID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	points, err := rs.Records.Condition.QueryRange(userID, req.DataType, req.Start, req.End)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.GraphResponse{Data: points})
}

var alertDoctorSchema = z.Struct(z.Shape{
	"UserID":          z.String().Required(z.Message("User ID is required")),
	"BloodSugarLevel": z.String().Required(z.Message("blood sugar level is required")),
})

func (rs *RestfulServer) PostAlertDoctor(c *gin.Context) {
	var req api.AlertDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: errorMessageInvalidJSON})
		return
	}
	if issues := alertDoctorSchema.Validate(&req); issues != nil {
		validationFailed(c, issues)
		return
	}

	userID, ok := resolveUser(c, req.UserID)
	if !ok {
		return
	}

	if !rs.CheckUserLimiter(userID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	if _, err := rs.Records.Alert.AlertDoctor(c.Request.Context(), userID, req.BloodSugarLevel); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.AlertDoctorResponse{Message: MessageAlertSent, Status: AlertStatusSuccess})
}

type EvaluateRequest struct {
	UserID     string             `json:"userId"`
	Value      string             `json:"value"`
	MealTiming glucose.MealTiming `json:"mealTiming"`
}

type EvaluateResponse struct {
	glucose.Evaluation
	// ProfileRangeIgnored is set when the user's profile carries its own
	// target range. The global thresholds are still the ones applied.
	ProfileRangeIgnored bool `json:"profileRangeIgnored"`
}

func (rs *RestfulServer) EvaluateReading(c *gin.Context) {
	var req EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: errorMessageInvalidJSON})
		return
	}

	userID, ok := resolveUser(c, req.UserID)
	if !ok {
		return
	}

	if !rs.CheckUserLimiter(userID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	evaluation, err := rs.Evaluator.Evaluate(req.Value, req.MealTiming)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, EvaluateResponse{
		Evaluation:          evaluation,
		ProfileRangeIgnored: rs.Records.HasProfileRange(userID),
	})
}

type PatientRequest struct {
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	DoctorName  string   `json:"doctor_name"`
	DoctorEmail string   `json:"doctor_email"`
	LowerBound  *float64 `json:"lower_bound,omitempty"`
	UpperBound  *float64 `json:"upper_bound,omitempty"`
	BSUnit      string   `json:"bs_unit"`

	DiabetesType string `json:"diabetes_type"`
	DiagnoseDate string `json:"diagnose_date"`
	InsulinType  string `json:"insulin_type"`
	AdminRoute   string `json:"admin_route"`
	Condition    string `json:"condition"`
	Medication   string `json:"medication"`
}

func (req PatientRequest) toPatient() *models.Patient {
	return &models.Patient{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		DoctorName:       req.DoctorName,
		DoctorEmail:      req.DoctorEmail,
		LowerBound:       req.LowerBound,
		UpperBound:       req.UpperBound,
		BSUnit:           req.BSUnit,
		DiabetesType:     req.DiabetesType,
		DiagnoseDate:     req.DiagnoseDate,
		InsulinType:      req.InsulinType,
		AdminRoute:       req.AdminRoute,
		MedicalCondition: req.Condition,
		Medication:       req.Medication,
	}
}

func patientInfo(p *models.Patient) PatientRequest {
	return PatientRequest{
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		DoctorName:   p.DoctorName,
		DoctorEmail:  p.DoctorEmail,
		LowerBound:   p.LowerBound,
		UpperBound:   p.UpperBound,
		BSUnit:       p.BSUnit,
		DiabetesType: p.DiabetesType,
		DiagnoseDate: p.DiagnoseDate,
		InsulinType:  p.InsulinType,
		AdminRoute:   p.AdminRoute,
		Condition:    p.MedicalCondition,
		Medication:   p.Medication,
	}
}

var patientRequestSchema = z.Struct(z.Shape{
	"DoctorEmail": z.String().Email().Optional(),
})

func (rs *RestfulServer) UpsertPatient(c *gin.Context) {
	userID, ok := resolveUser(c, c.Param("user_id"))
	if !ok {
		return
	}

	if !rs.CheckUserLimiter(userID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var req PatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: errorMessageInvalidJSON})
		return
	}
	if issues := patientRequestSchema.Validate(&req); issues != nil {
		validationFailed(c, issues)
		return
	}
	if req.LowerBound != nil && req.UpperBound != nil && *req.LowerBound >= *req.UpperBound {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "lower_bound must be below upper_bound"})
		return
	}

	if err := rs.Records.Patient.UpsertPatient(userID, req.toPatient()); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": MessagePatientSaved})
}

func (rs *RestfulServer) GetPatient(c *gin.Context) {
	userID, ok := resolveUser(c, c.Param("user_id"))
	if !ok {
		return
	}

	if !rs.CheckUserLimiter(userID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	patient, err := rs.Records.Patient.GetPatient(userID)
	if errors.Is(err, records.ErrNotFound) {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: errorMessageUserNotFound})
		return
	}
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userid":        userID,
		"diabetes_info": patientInfo(patient),
	})
}

func (rs *RestfulServer) GetDoctorAlerts(c *gin.Context) {
	userID, ok := resolveUser(c, c.Param("user_id"))
	if !ok {
		return
	}

	if !rs.CheckUserLimiter(userID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var alerts []models.DoctorAlert
	var err error
	if alerts, err = rs.Records.Alert.GetDoctorAlerts(userID); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, alerts)
}

type LimiterRequest struct {
	Rate  float64 `json:"rate"`
	Burst int     `json:"burst"`
}

var limiterRequestSchema = z.Struct(z.Shape{
	"Rate":  z.Float64().GT(0).Required(),
	"Burst": z.Int().GT(0).Required(),
})

// PostLimiter is an operator route, see RequireOperator.
func (rs *RestfulServer) PostLimiter(c *gin.Context) {
	userID := c.Param("user_id")

	var req LimiterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: errorMessageInvalidJSON})
		return
	}
	if issues := limiterRequestSchema.Validate(&req); issues != nil {
		validationFailed(c, issues)
		return
	}

	rs.SetLimiter(userID, req.Rate, req.Burst)

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
