package api

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// ErrNoToken means the session layer has no token to offer. Requests then
// go out without an Authorization header.
var ErrNoToken = errors.New("no auth token")

type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

type StaticTokenSource string

func (s StaticTokenSource) Token(_ context.Context) (string, error) {
	if s == "" {
		return "", ErrNoToken
	}
	return string(s), nil
}

// EnvTokenSource reads the token from an environment variable on every call.
type EnvTokenSource string

func (s EnvTokenSource) Token(_ context.Context) (string, error) {
	token := strings.TrimSpace(os.Getenv(string(s)))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

// FileTokenSource reads the token from a file on every call. A missing or
// empty file is ErrNoToken.
type FileTokenSource string

func (s FileTokenSource) Token(_ context.Context) (string, error) {
	data, err := os.ReadFile(string(s))
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("reading token file: %w", err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

// OAuth2TokenSource adapts an oauth2.TokenSource. Wrap it with
// oauth2.ReuseTokenSource to cache tokens until they expire.
type OAuth2TokenSource struct {
	Source oauth2.TokenSource
}

func (s OAuth2TokenSource) Token(_ context.Context) (string, error) {
	if s.Source == nil {
		return "", ErrNoToken
	}
	tok, err := s.Source.Token()
	if err != nil {
		return "", fmt.Errorf("fetching oauth2 token: %w", err)
	}
	if tok.AccessToken == "" {
		return "", ErrNoToken
	}
	return tok.AccessToken, nil
}

// ClientCredentialsTokenSource exchanges a client id and secret at tokenURL
// and reuses the token until it expires.
func ClientCredentialsTokenSource(ctx context.Context, tokenURL, clientID, clientSecret string) OAuth2TokenSource {
	config := clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}
	return OAuth2TokenSource{Source: config.TokenSource(ctx)}
}
