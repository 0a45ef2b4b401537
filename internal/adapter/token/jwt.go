package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"blogapp/internal/core/domain"
	"blogapp/internal/core/port"
)

var errMissingSubject = errors.New("token has no subject")

// JWTCodec signs HS256 tokens carrying the user's email as subject.
type JWTCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type Option func(*JWTCodec)

// WithClock replaces time.Now for issuing and validating tokens.
func WithClock(now func() time.Time) Option {
	return func(j *JWTCodec) {
		j.now = now
	}
}

func NewJWTCodec(secret string, ttl time.Duration, opts ...Option) port.TokenCodec {
	j := &JWTCodec{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(j)
	}

	return j
}

func (j *JWTCodec) Issue(subject string) (string, error) {
	now := j.now()

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
}

func (j *JWTCodec) Subject(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return "", domain.WrapError(domain.KindInvalidToken, "Invalid token", err)
	}

	if claims.Subject == "" {
		return "", domain.WrapError(domain.KindInvalidToken, "Invalid token", errMissingSubject)
	}

	return claims.Subject, nil
}

// Verify fails closed: any parse or validation error yields false.
func (j *JWTCodec) Verify(tokenString string, expectedSubject string) bool {
	subject, err := j.Subject(tokenString)
	return err == nil && subject == expectedSubject
}
