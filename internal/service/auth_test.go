package service

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/umalmyha/customer-registry/internal/auth"
	apperrors "github.com/umalmyha/customer-registry/internal/errors"
	"github.com/umalmyha/customer-registry/internal/model"
	"github.com/umalmyha/customer-registry/internal/repository/mocks"
)

const (
	jwtIssuerClaim = "test-issuer"
	jwtTimeToLive  = 3 * time.Minute
)

var testAuthCtx = context.Background()
var testNow = time.Now().UTC()
var testPassword = "secret_password"

type authServiceTestSuite struct {
	suite.Suite
	authSvc        AuthService
	jwtIssuer      *auth.JwtIssuer
	jwtValidator   *auth.JwtValidator
	testUser       *model.User
	transactorMock *mocks.Transactor
	userRpsMock    *mocks.UserRepository
}

func (s *authServiceTestSuite) SetupSuite() {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	s.Require().NoError(err, "failed to generate keys")

	s.jwtIssuer = auth.NewJwtIssuer(jwtIssuerClaim, jwt.SigningMethodEdDSA, jwtTimeToLive, priv)
	s.jwtValidator = auth.NewJwtValidator(jwtIssuerClaim, jwt.SigningMethodEdDSA, pub)

	hash, err := auth.HashPassword(testPassword)
	s.Require().NoError(err, "failed to hash password")

	s.testUser = &model.User{
		ID:           "bdf2f837-75f6-462a-b9ec-5dfb2e8f8792",
		Email:        "test@email.com",
		PasswordHash: hash,
	}
}

func (s *authServiceTestSuite) SetupTest() {
	t := s.T()
	s.transactorMock = mocks.NewTransactor(t)
	s.userRpsMock = mocks.NewUserRepository(t)
	s.authSvc = NewAuthService(s.jwtIssuer, s.transactorMock, s.userRpsMock)
}

func (s *authServiceTestSuite) withinTransaction() {
	s.transactorMock.On(
		"WithinTransaction",
		testAuthCtx,
		mock.AnythingOfType("func(context.Context) error"),
	).Return(func(ctx context.Context, txFunc func(ctx context.Context) error) error {
		return txFunc(ctx)
	}).Once()
}

func (s *authServiceTestSuite) TestSignupEmailReserved() {
	email := s.testUser.Email

	s.withinTransaction()
	s.userRpsMock.On("FindByEmail", testAuthCtx, email).Return(s.testUser, nil).Once()

	s.T().Logf("signup user %s, but email already reserved", email)
	{
		_, err := s.authSvc.Signup(testAuthCtx, email, testPassword)
		s.Assert().ErrorIs(err, apperrors.ErrUserEmailReserved, "user with email %s already exist but no error raised", email)
	}
}

func (s *authServiceTestSuite) TestSuccessfulSignup() {
	email := s.testUser.Email

	s.withinTransaction()
	s.userRpsMock.On("FindByEmail", testAuthCtx, email).Return(nil, nil).Once()
	s.userRpsMock.On("Create", testAuthCtx, mock.AnythingOfType("*model.User")).Return(nil).Once()

	s.T().Logf("signup user %s and it must be signed up successfully", email)
	{
		u, err := s.authSvc.Signup(testAuthCtx, email, testPassword)
		s.Require().NoError(err, "user with email %s must be signed up successfully", email)
		s.Assert().NotEmpty(u.ID, "user id must be generated")
		s.Assert().NoError(auth.ComparePassword(u.PasswordHash, testPassword), "password hash is incorrect")
	}
}

func (s *authServiceTestSuite) TestLoginBadUsername() {
	email := s.testUser.Email

	s.userRpsMock.On("FindByEmail", testAuthCtx, email).Return(nil, nil).Once()

	s.T().Logf("login user %s but email is not registered", email)
	{
		_, err := s.authSvc.Login(testAuthCtx, email, testPassword, testNow)
		s.Assert().ErrorIs(err, apperrors.ErrInvalidCredentials, "it must be unauthorized error")
	}
}

func (s *authServiceTestSuite) TestLoginBadPassword() {
	email := s.testUser.Email

	s.userRpsMock.On("FindByEmail", testAuthCtx, email).Return(s.testUser, nil).Once()

	s.T().Logf("login user %s but password is incorrect", email)
	{
		_, err := s.authSvc.Login(testAuthCtx, email, "invalid_password", testNow)
		s.Assert().ErrorIs(err, apperrors.ErrInvalidCredentials, "it must be unauthorized error")
	}
}

func (s *authServiceTestSuite) TestLoginSuccess() {
	email := s.testUser.Email

	s.userRpsMock.On("FindByEmail", testAuthCtx, email).Return(s.testUser, nil).Once()

	s.T().Logf("login user %s successfully", email)
	{
		token, err := s.authSvc.Login(testAuthCtx, email, testPassword, testNow)
		s.Require().NoError(err, "user login is correct but error was raised")
		s.Assert().Equal(testNow.Add(jwtTimeToLive).Unix(), token.ExpiresAt, "incorrect time to live was set for jwt")

		claims, err := s.jwtValidator.Verify(token.Signed)
		s.Require().NoError(err, "issued token must be valid")
		s.Assert().Equal(s.testUser.ID, claims.Subject, "token subject must be user id")
	}
}

// start auth service test suite
func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(authServiceTestSuite))
}
