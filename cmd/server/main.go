package main

import (
	"fmt"
	"log"
	"net"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"liyu1981.xyz/dialog-service/pkg/auth"
	"liyu1981.xyz/dialog-service/pkg/common"
	"liyu1981.xyz/dialog-service/pkg/config"
	"liyu1981.xyz/dialog-service/pkg/db"
	"liyu1981.xyz/dialog-service/pkg/glucose"
	dialogGrpc "liyu1981.xyz/dialog-service/pkg/grpc"
	dialogHttp "liyu1981.xyz/dialog-service/pkg/http"
	"liyu1981.xyz/dialog-service/pkg/records"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration, copy .env.example to .env first if in development: %v", err)
	}

	dialector, ok := db.UseDialector(cfg.DBType, cfg.DBPath)
	if !ok {
		log.Fatal("Unknown " + common.EnvKeyDialogDBType + ": " + cfg.DBType)
	}
	dbInstance := db.GetInstance(dialector)

	thresholds, err := cfg.Thresholds()
	if err != nil {
		log.Fatalf("Invalid thresholds: %v", err)
	}
	evaluator, err := glucose.NewEvaluator(thresholds)
	if err != nil {
		log.Fatalf("Invalid thresholds: %v", err)
	}

	var verifier *auth.Verifier
	if cfg.JWTSecret != "" {
		verifier = auth.NewVerifier(cfg.JWTSecret, cfg.RequireAuth)
	}

	logger := common.GetLogger()
	if verifier == nil {
		logger.Warn(common.EnvKeyDialogJwtSecret + " not set, bearer tokens are not verified")
	}

	recordsCore := records.New(*dbInstance)
	limiterFields := zap.String("default_limiter",
		fmt.Sprintf("{\"default_rate\": %v, \"default_burst\": %v}", cfg.DefaultRate, cfg.DefaultBurst))

	if cfg.GRPCHostPort != "" {
		go func() {
			dialogGrpcServer := dialogGrpc.DialogServer{
				Records:          recordsCore,
				Evaluator:        evaluator,
				RateLimiterStore: records.NewRateLimiterStore(rate.Limit(cfg.DefaultRate), cfg.DefaultBurst),
				Auth:             verifier,
			}
			s := dialogGrpcServer.NewServer()
			logger.Info("gRPC server created with:", limiterFields)

			listener, err := net.Listen("tcp", cfg.GRPCHostPort)
			if err != nil {
				log.Fatalf("failed to listen: %v", err)
			}

			logger.Info("Starting gRPC server on: " + cfg.GRPCHostPort)
			if err := s.Serve(listener); err != nil {
				log.Fatalf("grpc server failed to serve: %v", err)
			}
		}()
	}

	if common.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	rs := &dialogHttp.RestfulServer{
		Server:           gin.Default(),
		Records:          recordsCore,
		Evaluator:        evaluator,
		RateLimiterStore: records.NewRateLimiterStore(rate.Limit(cfg.DefaultRate), cfg.DefaultBurst),
		Auth:             verifier,
	}
	rs.Setup()

	logger.Info("http server created with:", limiterFields)

	logger.Info("Starting HTTP server on: " + cfg.HTTPHostPort)
	if err := rs.Server.Run(cfg.HTTPHostPort); err != nil {
		log.Fatalf("http server failed to serve: %v", err)
	}
}
