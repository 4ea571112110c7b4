package session

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
)

// Auth0Resolver validates access tokens against an Auth0 tenant's JWKS
// and extracts the subject as the user identity.
type Auth0Resolver struct {
	validator *validator.Validator
}

var _ IdentityResolver = (*Auth0Resolver)(nil)

// NewAuth0Resolver builds a resolver for the given tenant domain and API
// audience.
func NewAuth0Resolver(auth0Domain, auth0Audience string) (*Auth0Resolver, error) {
	issuerURL, err := url.Parse("https://" + auth0Domain + "/")
	if err != nil {
		return nil, fmt.Errorf("failed to parse the issuer url: %w", err)
	}

	provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)
	jwtValidator, err := validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{auth0Audience},
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT validator: %w", err)
	}

	return &Auth0Resolver{validator: jwtValidator}, nil
}

// Resolve validates the token and returns its subject.
func (r *Auth0Resolver) Resolve(ctx context.Context, accessToken string) (string, error) {
	token, err := r.validator.ValidateToken(ctx, accessToken)
	if err != nil {
		return "", fmt.Errorf("invalid access token: %w", err)
	}

	claims := token.(*validator.ValidatedClaims)
	return claims.RegisteredClaims.Subject, nil
}
