package helper

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"

	"blogapp/internal/core/domain"
)

func TestStatusFor(t *testing.T) {
	RegisterTestingT(t)

	cases := map[domain.ErrorKind]int{
		domain.KindValidation:         http.StatusBadRequest,
		domain.KindPasswordMismatch:   http.StatusBadRequest,
		domain.KindDuplicateEmail:     http.StatusBadRequest,
		domain.KindInvalidCode:        http.StatusBadRequest,
		domain.KindCodeExpired:        http.StatusBadRequest,
		domain.KindAccountNotVerified: http.StatusBadRequest,
		domain.KindMissingField:       http.StatusBadRequest,
		domain.KindBadCredentials:     http.StatusUnauthorized,
		domain.KindInvalidToken:       http.StatusUnauthorized,
		domain.KindUserNotFound:       http.StatusNotFound,
		domain.KindNotFound:           http.StatusNotFound,
		domain.KindConflict:           http.StatusConflict,
		domain.KindUnexpected:         http.StatusInternalServerError,
	}

	for kind, status := range cases {
		Expect(StatusFor(kind)).To(Equal(status), kind.String())
	}
}

func TestSendDomainError(t *testing.T) {
	RegisterTestingT(t)
	gin.SetMode(gin.TestMode)

	send := func(err error) *httptest.ResponseRecorder {
		rr := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rr)
		c.Request = httptest.NewRequest("GET", "/", nil)
		SendDomainError(c, err)
		return rr
	}

	rr := send(domain.NewError(domain.KindCodeExpired, "Verification code expired, please request a new one"))
	Expect(rr.Code).To(Equal(http.StatusBadRequest))
	Expect(rr.Body.String()).To(MatchJSON(`{
		"status": 400,
		"code": "CODE_EXPIRED",
		"message": "Verification code expired, please request a new one"
	}`))

	rr = send(domain.WrapError(domain.KindUnexpected, "could not save user", errors.New("disk I/O error")))
	Expect(rr.Code).To(Equal(http.StatusInternalServerError))
	Expect(rr.Body.String()).To(MatchJSON(`{
		"status": 500,
		"code": "UNEXPECTED_ERROR",
		"message": "An unexpected error occurred"
	}`))

	rr = send(errors.New("plain"))
	Expect(rr.Code).To(Equal(http.StatusInternalServerError))
}
