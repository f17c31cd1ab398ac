package middleware

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func InternalAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get("X-Internal-Token")
			if token == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CompanyClaims are carried by the tokens the web application issues to
// its users. CompanyID scopes every query.
type CompanyClaims struct {
	CompanyID int64 `json:"company_id"`
	jwt.RegisteredClaims
}

type companyKey struct{}

// CompanyID returns the company authenticated by CompanyJWT.
func CompanyID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(companyKey{}).(int64)
	return id, ok
}

func WithCompanyID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, companyKey{}, id)
}

// CompanyJWT accepts HS256 bearer tokens signed with secret.
func CompanyJWT(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || raw == "" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			claims, err := ParseCompanyToken(secret, raw)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithCompanyID(r.Context(), claims.CompanyID)))
		})
	}
}

func ParseCompanyToken(secret []byte, raw string) (*CompanyClaims, error) {
	if len(secret) == 0 {
		return nil, errors.New("jwt secret not configured")
	}
	claims := &CompanyClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if claims.CompanyID <= 0 {
		return nil, errors.New("token without company")
	}
	return claims, nil
}

// IssueCompanyToken signs a token for companyID valid for ttl.
func IssueCompanyToken(secret []byte, companyID int64, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := CompanyClaims{
		CompanyID: companyID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}
