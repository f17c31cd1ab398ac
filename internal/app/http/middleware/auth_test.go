package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	id, _ := CompanyID(r.Context())
	_, _ = w.Write([]byte(strconv.FormatInt(id, 10)))
})

func TestInternalAuth(t *testing.T) {
	h := InternalAuth("secret")(okHandler)

	for token, want := range map[string]int{"secret": http.StatusOK, "wrong": http.StatusUnauthorized, "": http.StatusUnauthorized} {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("X-Internal-Token", token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, want, rec.Code, token)
	}

	rec := httptest.NewRecorder()
	InternalAuth("")(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCompanyJWT(t *testing.T) {
	secret := []byte("jwt-secret")
	token, err := IssueCompanyToken(secret, 42, "user-1", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	CompanyJWT(secret)(okHandler).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "42", rec.Body.String())
}

func TestCompanyJWTRejects(t *testing.T) {
	secret := []byte("jwt-secret")
	other, _ := IssueCompanyToken([]byte("other"), 42, "", time.Hour)
	expired, _ := IssueCompanyToken(secret, 42, "", -time.Minute)
	noCompany, _ := IssueCompanyToken(secret, 0, "", time.Hour)
	noExpiry, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, CompanyClaims{CompanyID: 42}).SignedString(secret)

	for name, header := range map[string]string{
		"missing":    "",
		"not bearer": "Basic abc",
		"bad sig":    "Bearer " + other,
		"expired":    "Bearer " + expired,
		"no company": "Bearer " + noCompany,
		"no expiry":  "Bearer " + noExpiry,
		"garbage":    "Bearer x.y.z",
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		CompanyJWT(secret)(okHandler).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, name)
	}
}

func TestCORSPreflight(t *testing.T) {
	rec := httptest.NewRecorder()
	CORS("https://app.example")(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))
}
