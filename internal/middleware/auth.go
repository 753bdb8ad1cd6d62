package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey contextKey = "user_id"
	EmailKey  contextKey = "email"
)

// JWTAuth verifies HS256 access tokens issued by the hosted auth provider.
// This backend never issues tokens of its own.
type JWTAuth struct {
	Secret []byte
}

func NewJWTAuth(secret string) *JWTAuth {
	return &JWTAuth{Secret: []byte(secret)}
}

// Middleware rejects requests without a valid bearer token and attaches the
// caller's identity to the context.
func (j *JWTAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, err := j.verify(r)
		if err != "" {
			code := "UNAUTHORIZED"
			if err == "Token has expired" {
				code = "TOKEN_EXPIRED"
			}
			writeError(w, http.StatusUnauthorized, code, err, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalMiddleware attaches identity when a valid token is present but
// lets anonymous requests through untouched. The assistant endpoint uses it
// to personalize replies without requiring sign-in.
func (j *JWTAuth) OptionalMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			if ctx, errMsg := j.verify(r); errMsg == "" {
				r = r.WithContext(ctx)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// verify returns the request context with identity attached, or a non-empty
// error message.
func (j *JWTAuth) verify(r *http.Request) (context.Context, string) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, "Missing authorization header"
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, "Invalid authorization format"
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return j.Secret, nil
	})
	if err != nil {
		if strings.Contains(err.Error(), "expired") {
			return nil, "Token has expired"
		}
		return nil, "Invalid token"
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, "Invalid token claims"
	}

	// The auth provider puts the user id in "sub"; older clients used
	// "user_id".
	sub, _ := claims["sub"].(string)
	if sub == "" {
		sub, _ = claims["user_id"].(string)
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, "Invalid user ID in token"
	}

	ctx := context.WithValue(r.Context(), UserIDKey, userID)
	if email, _ := claims["email"].(string); email != "" {
		ctx = context.WithValue(ctx, EmailKey, email)
	}
	return ctx, ""
}

// GetUserID extracts the caller's id from the request context.
func GetUserID(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(UserIDKey).(uuid.UUID)
	return id
}

// GetEmail extracts the caller's email from the request context.
func GetEmail(ctx context.Context) string {
	email, _ := ctx.Value(EmailKey).(string)
	return email
}

func writeError(w http.ResponseWriter, status int, code, message string, r *http.Request) {
	requestID := r.Header.Get("X-Request-ID")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]interface{}{
			"code":       code,
			"message":    message,
			"request_id": requestID,
		},
	})
}
