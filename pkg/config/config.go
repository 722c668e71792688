// Package config loads service and client settings from the environment,
// after merging a local .env file when one exists.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"liyu1981.xyz/dialog-service/pkg/common"
	"liyu1981.xyz/dialog-service/pkg/glucose"
)

const (
	DBTypeFile   = "file"
	DBTypeMemory = "memory"
)

type Config struct {
	DBType string `envconfig:"DIALOG_DB_TYPE" default:"file"`
	DBPath string `envconfig:"DIALOG_DB_PATH" default:"dialog.db"`

	HTTPHostPort string `envconfig:"DIALOG_HTTP_HOST_PORT" default:":1080"`
	GRPCHostPort string `envconfig:"DIALOG_GRPC_HOST_PORT"`

	DefaultRate  float64 `envconfig:"DIALOG_DEFAULT_RATE" default:"5"`
	DefaultBurst int     `envconfig:"DIALOG_DEFAULT_BURST" default:"10"`

	JWTSecret   string `envconfig:"DIALOG_JWT_SECRET"`
	RequireAuth bool   `envconfig:"DIALOG_REQUIRE_AUTH" default:"false"`

	APIBaseURL string        `envconfig:"DIALOG_API_BASE_URL" default:"http://127.0.0.1:1080"`
	APITimeout time.Duration `envconfig:"DIALOG_API_TIMEOUT" default:"10s"`
	Token      string        `envconfig:"DIALOG_TOKEN"`

	OAuthTokenURL     string `envconfig:"DIALOG_OAUTH_TOKEN_URL"`
	OAuthClientID     string `envconfig:"DIALOG_OAUTH_CLIENT_ID"`
	OAuthClientSecret string `envconfig:"DIALOG_OAUTH_CLIENT_SECRET"`

	ThresholdLow          float64 `envconfig:"DIALOG_THRESHOLD_LOW" default:"4.0"`
	ThresholdPreMealHigh  float64 `envconfig:"DIALOG_THRESHOLD_PRE_MEAL_HIGH" default:"7.0"`
	ThresholdPostMealHigh float64 `envconfig:"DIALOG_THRESHOLD_POST_MEAL_HIGH" default:"11.0"`
}

// Load reads .env (missing is fine outside production) and then the
// process environment, which wins over the file.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil {
		if !errors.Is(err, fs.ErrNotExist) || common.IsProduction() {
			return nil, fmt.Errorf("loading .env: %w", err)
		}
	}
	return FromEnv()
}

func FromEnv() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.DBType {
	case DBTypeFile, DBTypeMemory:
	default:
		return fmt.Errorf("unknown %s: %q", common.EnvKeyDialogDBType, c.DBType)
	}
	if c.HTTPHostPort == "" {
		return fmt.Errorf("%s is empty", common.EnvKeyDialogHttpHostPort)
	}
	if c.DefaultRate <= 0 {
		return fmt.Errorf("%s must be positive", common.EnvKeyDialogDefaultRate)
	}
	if c.DefaultBurst <= 0 {
		return fmt.Errorf("%s must be positive", common.EnvKeyDialogDefaultBurst)
	}
	if c.RequireAuth && c.JWTSecret == "" {
		return fmt.Errorf("%s needs %s", common.EnvKeyDialogRequireAuth, common.EnvKeyDialogJwtSecret)
	}
	if c.OAuthTokenURL != "" && c.OAuthClientID == "" {
		return fmt.Errorf("%s needs %s", common.EnvKeyDialogOAuthTokenURL, common.EnvKeyDialogOAuthClientID)
	}
	if _, err := c.Thresholds(); err != nil {
		return err
	}
	return nil
}

func (c *Config) Thresholds() (glucose.Thresholds, error) {
	return glucose.NewThresholds(c.ThresholdLow, c.ThresholdPreMealHigh, c.ThresholdPostMealHigh)
}
