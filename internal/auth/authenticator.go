// Package auth obtains and holds the bearer token used by the transport.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/fivetwenty-io/zayo-client/internal/constants"
	"github.com/fivetwenty-io/zayo-client/pkg/zayo"
)

// OAuth2Config configures the client-credentials exchange.
type OAuth2Config struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scopes       []string
	HTTPClient   *http.Client
	Timeout      time.Duration
}

// Authenticate exchanges client credentials for a bearer token. The
// credentials travel in the form body alongside grant_type=client_credentials
// and the openid scope. Any failure is returned as *zayo.AuthError; it is not
// retried.
func Authenticate(ctx context.Context, cfg *OAuth2Config) (*Token, error) {
	if cfg.ClientID == "" {
		return nil, &zayo.ConfigError{Key: constants.EnvClientID}
	}

	if cfg.ClientSecret == "" {
		return nil, &zayo.ConfigError{Key: constants.EnvClientSecret}
	}

	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{constants.DefaultScope}
	}

	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
		Scopes:       scopes,
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = constants.DefaultAuthTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if cfg.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, cfg.HTTPClient)
	}

	tok, err := cc.Token(ctx)
	if err != nil {
		return nil, authError(err)
	}

	token := &Token{
		AccessToken:  tok.AccessToken,
		TokenType:    tok.TokenType,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    tok.Expiry,
	}

	if !tok.Expiry.IsZero() {
		token.ExpiresIn = int(time.Until(tok.Expiry).Seconds())
	}

	return token, nil
}

func authError(err error) error {
	retrieveErr := &oauth2.RetrieveError{}
	if errors.As(err, &retrieveErr) {
		authErr := &zayo.AuthError{Body: string(retrieveErr.Body), Err: err}
		if retrieveErr.Response != nil {
			authErr.StatusCode = retrieveErr.Response.StatusCode
		}

		return authErr
	}

	if strings.Contains(err.Error(), "missing access_token") {
		return &zayo.AuthError{Err: fmt.Errorf("%w: %w", zayo.ErrMissingAccessToken, err)}
	}

	return &zayo.AuthError{Err: err}
}
