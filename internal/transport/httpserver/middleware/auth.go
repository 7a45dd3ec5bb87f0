package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"finance-tracker/internal/config"
	"finance-tracker/internal/domain/access"
	"finance-tracker/pkg/logger"
	"github.com/golang-jwt/jwt/v5"
)

const defaultTokenTTL = 24 * time.Hour

// Claims carries the caller identity in the subject and its role in "role".
type Claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// UserSaver records callers so owned rows can reference them.
type UserSaver interface {
	Remember(ctx context.Context, caller access.Caller) error
}

type JWTAuth struct {
	secret   []byte
	issuer   string
	users    UserSaver
	log      logger.Logger
	skipAuth bool
	mockUser access.Caller
}

func NewJWTAuth(cfg config.AuthConfig, users UserSaver, log logger.Logger) *JWTAuth {
	return &JWTAuth{
		secret:   []byte(cfg.JWTSecret),
		issuer:   strings.TrimSpace(cfg.JWTIssuer),
		users:    users,
		log:      log,
		skipAuth: cfg.SkipAuth,
		mockUser: access.Caller{
			ID:   strings.TrimSpace(cfg.MockUserID),
			Role: access.ParseRole(cfg.MockUserRole),
		},
	}
}

func (a *JWTAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.skipAuth {
			if a.mockUser.ID == "" {
				writeError(w, http.StatusInternalServerError, "auth_not_configured", "auth mock user id not configured")
				return
			}
			a.serve(next, w, r, a.mockUser)
			return
		}

		if len(a.secret) == 0 {
			writeError(w, http.StatusInternalServerError, "auth_not_configured", "auth not configured")
			return
		}

		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			unauthorized(w)
			return
		}

		caller, err := a.Parse(token)
		if err != nil {
			a.log.WithContext(r.Context()).Debug("auth: token rejected", "err", err)
			unauthorized(w)
			return
		}

		a.serve(next, w, r, caller)
	})
}

func (a *JWTAuth) serve(next http.Handler, w http.ResponseWriter, r *http.Request, caller access.Caller) {
	// Owned rows reference users, so a caller that cannot be recorded cannot write.
	if a.users != nil {
		if err := a.users.Remember(r.Context(), caller); err != nil {
			a.log.WithContext(r.Context()).InternalError("auth: upsert user failed", err, "user_id", caller.ID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
			return
		}
	}

	ctx := access.WithCaller(r.Context(), caller)
	ctx = logger.ContextWithAttrs(ctx, "user_id", caller.ID)
	next.ServeHTTP(w, r.WithContext(ctx))
}

// Parse validates an HS256 token and returns the caller it names.
func (a *JWTAuth) Parse(tokenString string) (access.Caller, error) {
	options := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if a.issuer != "" {
		options = append(options, jwt.WithIssuer(a.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, options...)
	if err != nil {
		return access.Caller{}, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return access.Caller{}, jwt.ErrTokenInvalidClaims
	}
	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return access.Caller{}, errors.New("token has no subject")
	}

	return access.Caller{ID: subject, Role: access.ParseRole(claims.Role)}, nil
}

// IssueToken signs a token for caller. Used for local development and tests.
func IssueToken(cfg config.AuthConfig, caller access.Caller, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	now := time.Now()
	claims := &Claims{
		Role: string(caller.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   caller.ID,
			Issuer:    cfg.JWTIssuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

func bearerToken(value string) (string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
