package auth

import (
	"context"
	"io"
	"testing"

	"github.com/rs/zerolog"

	"github.com/condostore/pos-backend/internal/storeapi"
	pkgauth "github.com/condostore/pos-backend/pkg/auth"
	"github.com/condostore/pos-backend/pkg/config"
	pkgerrors "github.com/condostore/pos-backend/pkg/errors"
	"github.com/condostore/pos-backend/pkg/logger"
)

type fakeUpstream struct {
	result *storeapi.LoginResult
	err    error
	input  storeapi.LoginInput
}

func (f *fakeUpstream) Login(ctx context.Context, input storeapi.LoginInput) (*storeapi.LoginResult, error) {
	f.input = input
	return f.result, f.err
}

func testConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", Issuer: "condopos-test", ExpirationMinutes: 60}
}

func newService(t *testing.T, upstream *fakeUpstream) Service {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.ErrorLevel, Output: io.Discard})
	svc, err := NewService(testConfig(), upstream, logg)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestLoginMintsTokenCarryingUpstreamBearer(t *testing.T) {
	upstream := &fakeUpstream{result: &storeapi.LoginResult{
		AccessToken: "upstream-bearer",
		User:        storeapi.OperatorDTO{ID: "u-1", Name: "Ana", Role: "admin"},
	}}
	svc := newService(t, upstream)

	result, err := svc.Login(context.Background(), LoginInput{CPF: " 12345678900 ", Password: "secret"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if upstream.input.CPF != "12345678900" {
		t.Fatalf("cpf not trimmed: %q", upstream.input.CPF)
	}
	if result.Operator.Name != "Ana" {
		t.Fatalf("operator not carried: %+v", result.Operator)
	}

	claims, err := pkgauth.ParseAccessToken(testConfig(), result.AccessToken)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.Operator != "Ana" || claims.UpstreamToken != "upstream-bearer" {
		t.Fatalf("claims missing data: %+v", claims)
	}
}

func TestLoginValidation(t *testing.T) {
	svc := newService(t, &fakeUpstream{})

	if _, err := svc.Login(context.Background(), LoginInput{CPF: "", Password: "x"}); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.Login(context.Background(), LoginInput{CPF: "123", Password: ""}); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLoginPropagatesUpstreamRejection(t *testing.T) {
	upstream := &fakeUpstream{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")}
	svc := newService(t, upstream)

	if _, err := svc.Login(context.Background(), LoginInput{CPF: "123", Password: "wrong"}); !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}
