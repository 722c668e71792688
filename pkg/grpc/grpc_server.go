package grpc

import (
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"liyu1981.xyz/dialog-service/pkg/api"
	"liyu1981.xyz/dialog-service/pkg/auth"
	"liyu1981.xyz/dialog-service/pkg/condition"
	"liyu1981.xyz/dialog-service/pkg/glucose"
	"liyu1981.xyz/dialog-service/pkg/records"
)

type DialogServer struct {
	Records          *records.Records
	Evaluator        *glucose.Evaluator
	RateLimiterStore *records.RateLimiterStore
	Auth             *auth.Verifier
}

func (s *DialogServer) GetLimiter(userID string) *rate.Limiter {
	if s.RateLimiterStore == nil {
		return nil
	} else {
		return s.RateLimiterStore.GetLimiter(userID)
	}
}

func (s *DialogServer) CheckUserLimiter(userID string) bool {
	limiter := s.GetLimiter(userID)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}

// NewServer builds a grpc.Server with auth and rate limiting in front of
// DialogService, plus the standard health service.
func (s *DialogServer) NewServer(opts ...grpc.ServerOption) *grpc.Server {
	interceptors := grpc.ChainUnaryInterceptor(
		s.CreateAuthInterceptor(),
		s.CreateRateLimitInterceptor([]any{
			&condition.Batch{},
			&api.AlertDoctorRequest{},
			&EvaluateReadingRequest{},
			&GetConditionsRequest{},
		}),
	)

	server := grpc.NewServer(append([]grpc.ServerOption{interceptors}, opts...)...)
	RegisterDialogServiceServer(server, s)

	healthServer := health.NewServer()
	healthServer.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(server, healthServer)

	return server
}
