package interceptors

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/umalmyha/customer-registry/internal/auth"
	apperrors "github.com/umalmyha/customer-registry/internal/errors"
	"github.com/umalmyha/customer-registry/internal/model"
	"github.com/umalmyha/customer-registry/internal/validation"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const jwtIssuerClaim = "test-issuer"

var customerInfo = &grpc.UnaryServerInfo{FullMethod: "/customers.CustomerService/GetByID"}
var authInfo = &grpc.UnaryServerInfo{FullMethod: "/customers.AuthService/Login"}

func failingHandler(err error) grpc.UnaryHandler {
	return func(context.Context, any) (any, error) {
		return nil, err
	}
}

func okHandler(context.Context, any) (any, error) {
	return "ok", nil
}

func TestErrorUnaryInterceptor(t *testing.T) {
	interceptor := ErrorUnaryInterceptor()

	cases := []struct {
		name string
		err  error
		code codes.Code
	}{
		{"duplicate email", apperrors.ErrDuplicateEmail, codes.AlreadyExists},
		{"duplicate phone", apperrors.ErrDuplicatePhone, codes.AlreadyExists},
		{"country resolution", apperrors.ErrCountryResolution.Wrap(errors.New("lookup is down")), codes.FailedPrecondition},
		{"not found", apperrors.ErrCustomerNotFound, codes.NotFound},
		{"unauthorized", apperrors.ErrInvalidCredentials, codes.Unauthenticated},
		{"store write", apperrors.ErrStoreWrite, codes.Internal},
		{"id generation", apperrors.ErrIDGeneration, codes.Internal},
		{"payload", &validation.PayloadError{}, codes.InvalidArgument},
		{"echo bad request", echo.NewHTTPError(http.StatusBadRequest, "bad"), codes.InvalidArgument},
		{"already status", status.Error(codes.Unavailable, "unavailable"), codes.Unavailable},
		{"unknown", errors.New("connection reset"), codes.Internal},
	}

	for _, c := range cases {
		_, err := interceptor(context.Background(), nil, customerInfo, failingHandler(c.err))
		require.Equal(t, c.code, status.Code(err), "incorrect code for %s", c.name)

		if c.code == codes.Internal {
			require.Equal(t, "Internal server error", status.Convert(err).Message(), "internal details must be hidden for %s", c.name)
		}
	}

	res, err := interceptor(context.Background(), nil, customerInfo, okHandler)
	require.NoError(t, err, "successful call must pass through")
	require.Equal(t, "ok", res, "response must pass through")
}

func TestAuthUnaryInterceptor(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err, "failed to generate keys")

	issuer := auth.NewJwtIssuer(jwtIssuerClaim, jwt.SigningMethodEdDSA, time.Minute, priv)
	validator := auth.NewJwtValidator(jwtIssuerClaim, jwt.SigningMethodEdDSA, pub)

	token, err := issuer.Sign(&model.User{ID: "bdf2f837-75f6-462a-b9ec-5dfb2e8f8792", Email: "operator@email.com"}, time.Now())
	require.NoError(t, err, "failed to sign token")

	interceptor := AuthUnaryInterceptor(validator, UnaryApplicableForService("customers.CustomerService"))

	t.Log("no metadata")
	{
		_, err := interceptor(context.Background(), nil, customerInfo, okHandler)
		require.Equal(t, codes.Unauthenticated, status.Code(err), "metadata is missing")
	}

	t.Log("invalid token")
	{
		ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(AccessTokenMetadataKey, "garbage"))
		_, err := interceptor(ctx, nil, customerInfo, okHandler)
		require.Equal(t, codes.Unauthenticated, status.Code(err), "token is invalid")
	}

	t.Log("valid token")
	{
		ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(AccessTokenMetadataKey, token.Signed))
		res, err := interceptor(ctx, nil, customerInfo, okHandler)
		require.NoError(t, err, "token is valid")
		require.Equal(t, "ok", res, "handler must be called")
	}

	t.Log("auth service is not protected")
	{
		_, err := interceptor(context.Background(), nil, authInfo, okHandler)
		require.NoError(t, err, "auth methods must be reachable without token")
	}
}

func TestUnaryApplicableForService(t *testing.T) {
	applicable := UnaryApplicableForService("customers.CustomerService")
	require.True(t, applicable(customerInfo), "method belongs to service")
	require.False(t, applicable(authInfo), "method belongs to another service")
	require.False(t, applicable(&grpc.UnaryServerInfo{FullMethod: "/customers.CustomerServiceV2/GetByID"}), "prefix of service name is another service")
}
