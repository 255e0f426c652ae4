package middleware

import (
	"crypto/ed25519"
	"crypto/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"github.com/umalmyha/customer-registry/internal/auth"
	"github.com/umalmyha/customer-registry/internal/model"
)

const jwtIssuerClaim = "test-issuer"

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func TestAuthorize(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err, "failed to generate keys")

	issuer := auth.NewJwtIssuer(jwtIssuerClaim, jwt.SigningMethodEdDSA, time.Minute, priv)
	token, err := issuer.Sign(&model.User{ID: "bdf2f837-75f6-462a-b9ec-5dfb2e8f8792", Email: "operator@email.com"}, time.Now())
	require.NoError(t, err, "failed to sign token")

	e := echo.New()
	e.GET("/protected", okHandler, Authorize(auth.NewJwtValidator(jwtIssuerClaim, jwt.SigningMethodEdDSA, pub)))

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"missing scheme", token.Signed, http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token.Signed, http.StatusUnauthorized},
		{"invalid token", "Bearer garbage", http.StatusUnauthorized},
		{"valid token", "Bearer " + token.Signed, http.StatusOK},
	}

	for _, c := range cases {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if c.header != "" {
			req.Header.Set(echo.HeaderAuthorization, c.header)
		}

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		require.Equal(t, c.status, rec.Code, "incorrect status for %s", c.name)
	}
}

func TestLogger(t *testing.T) {
	logger, hook := test.NewNullLogger()

	e := echo.New()
	e.Use(Logger(logger))
	e.GET("/health", okHandler)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	e.ServeHTTP(httptest.NewRecorder(), req)

	entry := hook.LastEntry()
	require.NotNil(t, entry, "request must be logged")
	require.Equal(t, logrus.InfoLevel, entry.Level, "successful request is logged with info level")
	require.Equal(t, "/health", entry.Data["uri"], "uri must be logged")
	require.Equal(t, http.StatusOK, entry.Data["status"], "status must be logged")
}
