package command

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"liyu1981.xyz/dialog-service/pkg/api"
	"liyu1981.xyz/dialog-service/pkg/common"
	"liyu1981.xyz/dialog-service/pkg/config"
	"liyu1981.xyz/dialog-service/pkg/glucose"
	dialogGrpc "liyu1981.xyz/dialog-service/pkg/grpc"
)

const (
	transportHTTP = "http"
	transportGRPC = "grpc"
)

var (
	cfg       *config.Config
	baseURL   string
	grpcAddr  string
	transport string
	token     string
	timeout   time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "dialogctl",
	Short:         "Command line client for the DiaLog service",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded

		if !cmd.Flags().Changed("base-url") {
			baseURL = cfg.APIBaseURL
		}
		if !cmd.Flags().Changed("grpc-addr") {
			grpcAddr = cfg.GRPCHostPort
		}
		if !cmd.Flags().Changed("timeout") {
			timeout = cfg.APITimeout
		}
		if !cmd.Flags().Changed("token") {
			token = cfg.Token
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "backend base URL (default $"+common.EnvKeyDialogAPIBaseURL+")")
	rootCmd.PersistentFlags().StringVar(&grpcAddr, "grpc-addr", "", "backend gRPC address (default $"+common.EnvKeyDialogGrpcHostPort+")")
	rootCmd.PersistentFlags().StringVar(&transport, "transport", transportHTTP, "transport to the backend: http or grpc")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "bearer token (default $"+common.EnvKeyDialogToken+")")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "per request timeout (default $"+common.EnvKeyDialogAPITimeout+")")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// tokenSource prefers an explicit token over client credentials.
func tokenSource() api.TokenSource {
	if token != "" {
		return api.StaticTokenSource(token)
	}
	if cfg != nil && cfg.OAuthTokenURL != "" {
		return api.ClientCredentialsTokenSource(context.Background(), cfg.OAuthTokenURL, cfg.OAuthClientID, cfg.OAuthClientSecret)
	}
	return nil
}

func newHTTPClient() *api.Client {
	return api.NewClient(baseURL, timeout, tokenSource())
}

// newPort returns the backend port for the selected transport and a func
// releasing it.
func newPort() (api.Port, func(), error) {
	switch transport {
	case transportHTTP:
		return newHTTPClient(), func() {}, nil
	case transportGRPC:
		if grpcAddr == "" {
			return nil, nil, fmt.Errorf("--grpc-addr is required with --transport grpc")
		}
		conn, err := grpc.NewClient(grpcAddr,
			grpc.WithTransportCredentials(insecure.NewCredentials()),
			grpc.WithPerRPCCredentials(bearerCredentials{tokens: tokenSource()}),
		)
		if err != nil {
			return nil, nil, err
		}
		return dialogGrpc.NewClient(conn), func() { _ = conn.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown transport %q", transport)
}

func newEvaluator() (*glucose.Evaluator, error) {
	thresholds, err := cfg.Thresholds()
	if err != nil {
		return nil, err
	}
	return glucose.NewEvaluator(thresholds)
}
