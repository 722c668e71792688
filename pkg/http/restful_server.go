package http

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"liyu1981.xyz/dialog-service/pkg/auth"
	"liyu1981.xyz/dialog-service/pkg/glucose"
	"liyu1981.xyz/dialog-service/pkg/records"
)

type RestfulServer struct {
	Server           *gin.Engine
	Records          *records.Records
	Evaluator        *glucose.Evaluator
	RateLimiterStore *records.RateLimiterStore
	Auth             *auth.Verifier
}

func (rs *RestfulServer) GetLimiter(userID string) *rate.Limiter {
	if rs.RateLimiterStore == nil {
		return nil
	} else {
		return rs.RateLimiterStore.GetLimiter(userID)
	}
}

func (rs *RestfulServer) CheckUserLimiter(userID string) bool {
	limiter := rs.GetLimiter(userID)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}

func (rs *RestfulServer) SetLimiter(userID string, userRate float64, userBurst int) {
	if rs.RateLimiterStore == nil {
		return
	}
	rs.RateLimiterStore.SetLimiter(userID, rate.Limit(userRate), userBurst)
}

func (rs *RestfulServer) Setup() {
	rs.Server.GET("/healthz", rs.HealthCheck)

	api := rs.Server.Group("/", rs.Authenticate)
	{
		api.POST("/conditions", rs.PostConditions)
		api.GET("/conditions/:user_id", rs.GetConditions)
		api.PUT("/conditions/:user_id/:datatype", rs.UpdateCondition)
		api.GET("/graphs", rs.GetGraph)
		api.POST("/alert-doctor", rs.PostAlertDoctor)
		api.POST("/readings/evaluate", rs.EvaluateReading)
	}

	patients := api.Group("/patients/:user_id")
	{
		patients.POST("", rs.UpsertPatient)
		patients.GET("", rs.GetPatient)
		patients.GET("/alerts", rs.GetDoctorAlerts)
	}

	api.POST("/users/:user_id/limiter", rs.RequireOperator, rs.PostLimiter)
}
