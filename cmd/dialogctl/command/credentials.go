package command

import (
	"context"
	"errors"

	"liyu1981.xyz/dialog-service/pkg/api"
)

// bearerCredentials sends the token as gRPC metadata. Without a token the
// call goes out anonymously.
type bearerCredentials struct {
	tokens api.TokenSource
}

func (b bearerCredentials) GetRequestMetadata(ctx context.Context, _ ...string) (map[string]string, error) {
	if b.tokens == nil {
		return map[string]string{}, nil
	}
	tok, err := b.tokens.Token(ctx)
	if errors.Is(err, api.ErrNoToken) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	return map[string]string{"authorization": "Bearer " + tok}, nil
}

func (b bearerCredentials) RequireTransportSecurity() bool {
	return false
}
