package myauth

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MarcGrol/userarea/lib/mycontext"
	"github.com/MarcGrol/userarea/lib/myerrors"
	"github.com/MarcGrol/userarea/lib/myhttp"
	"github.com/MarcGrol/userarea/lib/mylog"
)

type Claims struct {
	jwt.RegisteredClaims
	Roles []string `json:"roles"`
}

type Authenticator struct {
	secret      []byte
	publicPaths []string
	logger      mylog.Logger
}

// NewAuthenticator validates HS256 bearer tokens; paths starting with one of publicPaths pass unauthenticated
func NewAuthenticator(secret string, publicPaths ...string) *Authenticator {
	return &Authenticator{
		secret:      []byte(secret),
		publicPaths: publicPaths,
		logger:      mylog.New("auth"),
	}
}

func (a *Authenticator) isPublic(path string) bool {
	for _, p := range a.publicPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func (a *Authenticator) Validate(tokenStr string) (Principal, error) {
	if len(a.secret) == 0 {
		return Principal{}, fmt.Errorf("authentication not configured")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Principal{}, fmt.Errorf("token validation failed: %w", err)
	}
	if !token.Valid {
		return Principal{}, fmt.Errorf("invalid token")
	}
	if claims.Subject == "" {
		return Principal{}, fmt.Errorf("token subject is required")
	}

	return Principal{
		Username: claims.Subject,
		Roles:    claims.Roles,
	}, nil
}

func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.isPublic(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(a.logger)

		authHeader := r.Header.Get("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			errorWriter.WriteError(c, w, 1, myerrors.NewAuthenticationError(fmt.Errorf("missing or malformed bearer token")))
			return
		}

		principal, err := a.Validate(parts[1])
		if err != nil {
			errorWriter.WriteError(c, w, 2, myerrors.NewAuthenticationError(err))
			return
		}

		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
	})
}

// NewToken issues a signed token for the given user, used by tooling and tests
func NewToken(secret string, username string, roles []string, expiresAt time.Time) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Roles: roles,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
