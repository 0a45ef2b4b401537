package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	. "github.com/onsi/gomega"

	"blogapp/internal/core/domain"
)

func TestJWTCodec(t *testing.T) {
	t.Run("should issue a token that verifies for its subject only", func(t *testing.T) {
		RegisterTestingT(t)
		codec := NewJWTCodec("secret", time.Hour)

		tok, err := codec.Issue("u@x.io")
		Expect(err).To(BeNil())

		Expect(codec.Verify(tok, "u@x.io")).To(BeTrue())
		Expect(codec.Verify(tok, "other@x.io")).To(BeFalse())

		subject, err := codec.Subject(tok)
		Expect(err).To(BeNil())
		Expect(subject).To(Equal("u@x.io"))
	})

	t.Run("should reject expired tokens", func(t *testing.T) {
		RegisterTestingT(t)
		issuedAt := time.Now().Add(-2 * time.Hour)
		issuer := NewJWTCodec("secret", time.Hour, WithClock(func() time.Time { return issuedAt }))
		verifier := NewJWTCodec("secret", time.Hour)

		tok, err := issuer.Issue("u@x.io")
		Expect(err).To(BeNil())

		Expect(verifier.Verify(tok, "u@x.io")).To(BeFalse())
		_, err = verifier.Subject(tok)
		Expect(domain.IsKind(err, domain.KindInvalidToken)).To(BeTrue())
	})

	t.Run("should reject tokens signed with another secret", func(t *testing.T) {
		RegisterTestingT(t)
		tok, _ := NewJWTCodec("other", time.Hour).Issue("u@x.io")

		Expect(NewJWTCodec("secret", time.Hour).Verify(tok, "u@x.io")).To(BeFalse())
	})

	t.Run("should reject malformed tokens", func(t *testing.T) {
		RegisterTestingT(t)
		codec := NewJWTCodec("secret", time.Hour)

		Expect(codec.Verify("not-a-token", "u@x.io")).To(BeFalse())
		Expect(codec.Verify("", "u@x.io")).To(BeFalse())
	})

	t.Run("should reject unsigned and non hmac tokens", func(t *testing.T) {
		RegisterTestingT(t)
		claims := jwt.RegisteredClaims{
			Subject:   "u@x.io",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		Expect(err).To(BeNil())

		Expect(NewJWTCodec("secret", time.Hour).Verify(unsigned, "u@x.io")).To(BeFalse())
	})

	t.Run("should reject tokens without expiry", func(t *testing.T) {
		RegisterTestingT(t)
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "u@x.io"}).SignedString([]byte("secret"))
		Expect(err).To(BeNil())

		Expect(NewJWTCodec("secret", time.Hour).Verify(tok, "u@x.io")).To(BeFalse())
	})
}
