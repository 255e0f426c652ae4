package auth

import (
	"crypto"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/umalmyha/customer-registry/internal/model"
)

// Claims are claims of operator access token
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// JwtIssuer signs access tokens for operators
type JwtIssuer struct {
	issuer     string
	method     jwt.SigningMethod
	timeToLive time.Duration
	privateKey crypto.PrivateKey
}

// NewJwtIssuer builds JwtIssuer
func NewJwtIssuer(issuer string, method jwt.SigningMethod, ttl time.Duration, key crypto.PrivateKey) *JwtIssuer {
	return &JwtIssuer{
		issuer:     issuer,
		method:     method,
		timeToLive: ttl,
		privateKey: key,
	}
}

// Sign issues access token for user, subject is user id
func (j *JwtIssuer) Sign(u *model.User, issuedAt time.Time) (*model.Jwt, error) {
	expiresAt := issuedAt.Add(j.timeToLive)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    j.issuer,
			Subject:   u.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
		Email: u.Email,
	}

	signed, err := jwt.NewWithClaims(j.method, claims).SignedString(j.privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token - %w", err)
	}
	return &model.Jwt{Signed: signed, ExpiresAt: expiresAt.Unix()}, nil
}

// JwtValidator verifies access tokens
type JwtValidator struct {
	issuer    string
	method    jwt.SigningMethod
	publicKey crypto.PublicKey
}

// NewJwtValidator builds JwtValidator
func NewJwtValidator(issuer string, method jwt.SigningMethod, key crypto.PublicKey) *JwtValidator {
	return &JwtValidator{issuer: issuer, method: method, publicKey: key}
}

// Verify parses token and checks signature, expiration and issuer
func (j *JwtValidator) Verify(rawToken string) (*Claims, error) {
	var claims Claims
	if _, err := jwt.ParseWithClaims(rawToken, &claims, j.keyFunc); err != nil {
		return nil, err
	}

	if !claims.VerifyIssuer(j.issuer, true) {
		return nil, fmt.Errorf("token issued by unknown issuer %q", claims.Issuer)
	}
	return &claims, nil
}

func (j *JwtValidator) keyFunc(token *jwt.Token) (any, error) {
	if token.Method.Alg() != j.method.Alg() {
		return nil, errors.New("unexpected signing algorithm")
	}
	return j.publicKey, nil
}
