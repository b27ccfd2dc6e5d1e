package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/condostore/pos-backend/internal/storeapi"
	pkgauth "github.com/condostore/pos-backend/pkg/auth"
	"github.com/condostore/pos-backend/pkg/config"
	pkgerrors "github.com/condostore/pos-backend/pkg/errors"
	"github.com/condostore/pos-backend/pkg/logger"
)

type upstreamAuthenticator interface {
	Login(ctx context.Context, input storeapi.LoginInput) (*storeapi.LoginResult, error)
}

// LoginInput is the operator credential payload.
type LoginInput struct {
	CPF      string `json:"cpf" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResult carries the local access token handed to the terminal. The
// upstream token never leaves this service except inside the signed claims.
type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	Operator    storeapi.OperatorDTO
}

// Service authenticates operators against the settlement backend and mints
// the local access token the terminal uses from then on.
type Service interface {
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
}

type service struct {
	cfg      config.JWTConfig
	upstream upstreamAuthenticator
	logg     *logger.Logger
	now      func() time.Time
}

// NewService builds the auth service.
func NewService(cfg config.JWTConfig, upstream upstreamAuthenticator, logg *logger.Logger) (Service, error) {
	if upstream == nil {
		return nil, fmt.Errorf("upstream authenticator required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{cfg: cfg, upstream: upstream, logg: logg, now: time.Now}, nil
}

// Login verifies the credentials upstream and wraps the upstream bearer in a
// locally signed token, so proxied calls can replay it without this service
// keeping any session state.
func (s *service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	cpf := strings.TrimSpace(input.CPF)
	if cpf == "" || input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cpf and password are required")
	}

	upstream, err := s.upstream.Login(ctx, storeapi.LoginInput{CPF: cpf, Password: input.Password})
	if err != nil {
		return nil, err
	}

	now := s.now()
	token, err := pkgauth.MintAccessToken(s.cfg, now, pkgauth.AccessTokenPayload{
		Operator:      upstream.User.Name,
		UpstreamToken: upstream.AccessToken,
		JTI:           uuid.NewString(),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	s.logg.Info(s.logg.WithOperator(ctx, upstream.User.Name), "operator logged in")
	return &LoginResult{
		AccessToken: token,
		ExpiresAt:   now.Add(s.cfg.AccessTokenTTL()),
		Operator:    upstream.User,
	}, nil
}
