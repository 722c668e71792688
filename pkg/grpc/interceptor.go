package grpc

import (
	"context"
	"reflect"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"liyu1981.xyz/dialog-service/pkg/api"
	"liyu1981.xyz/dialog-service/pkg/auth"
	"liyu1981.xyz/dialog-service/pkg/common"
	"liyu1981.xyz/dialog-service/pkg/condition"
)

type claimsContextKey struct{}

func claimsFromContext(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsContextKey{}).(*auth.Claims)
	return claims
}

// requestUserID returns the user a DialogService request acts for.
func requestUserID(req any) (string, bool) {
	switch r := req.(type) {
	case *condition.Batch:
		return r.UserID, true
	case *api.AlertDoctorRequest:
		return r.UserID, true
	case *EvaluateReadingRequest:
		return r.UserID, true
	case *GetConditionsRequest:
		return r.UserID, true
	}
	return "", false
}

func (s *DialogServer) CreateAuthInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		if s.Auth == nil {
			return handler(ctx, req)
		}

		logger := common.GetCategoryLogger(common.LoggerNameGrpcServer, common.LoggerCategoryAuth)

		var header string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if values := md.Get("authorization"); len(values) > 0 {
				header = values[0]
			}
		}

		claims, err := s.Auth.Authenticate(header)
		if err != nil {
			logger.Info("Request rejected", zap.String("method", info.FullMethod), zap.Error(err))
			return nil, status.Error(codes.Unauthenticated, err.Error())
		}
		if claims == nil {
			logger.Warn("Request without auth token", zap.String("method", info.FullMethod))
			return handler(ctx, req)
		}

		if userID, ok := requestUserID(req); ok && userID != "" && userID != claims.UserID() {
			return nil, status.Error(codes.PermissionDenied, "token does not belong to this user")
		}
		return handler(context.WithValue(ctx, claimsContextKey{}, claims), req)
	}
}

func (s *DialogServer) CreateRateLimitInterceptor(targetReqTypes []any) grpc.UnaryServerInterceptor {
	targetTypeMap := common.Reducer(targetReqTypes,
		func(m map[reflect.Type]bool, t any) map[reflect.Type]bool {
			m[reflect.TypeOf(t)] = true
			return m
		},
		map[reflect.Type]bool{},
	)

	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		if _, ok := targetTypeMap[reflect.TypeOf(req)]; ok {
			if userID, ok := requestUserID(req); ok {
				if userID == "" {
					userID = claimsFromContext(ctx).UserID()
				}
				if !s.CheckUserLimiter(userID) {
					return nil, status.Errorf(codes.ResourceExhausted, "rate limit exceeded")
				}
			}
		}

		return handler(ctx, req)
	}
}
