// Package middleware holds the HTTP middleware chain: authentication, role
// gates, request metrics and the public rate limit.
package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gleamnails/GN-BookingService/internal/api/authctx"
	"github.com/gleamnails/GN-BookingService/internal/api/handlers"
	"github.com/gleamnails/GN-BookingService/internal/domain"
)

// Auth validates the Bearer token and puts the actor in the context.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
				handlers.RespondUnauthorized(w, "missing bearer token")
				return
			}
			tokenStr := strings.TrimPrefix(auth, "Bearer ")
			token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				handlers.RespondUnauthorized(w, "invalid token")
				return
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				handlers.RespondUnauthorized(w, "invalid token")
				return
			}

			sub, _ := claims["sub"].(string)
			roleStr, _ := claims["role"].(string)
			role := domain.Role(roleStr)
			if sub == "" || !role.Valid() {
				handlers.RespondUnauthorized(w, "invalid token claims")
				return
			}

			actor := domain.Actor{
				UserID: sub,
				Role:   role,
			}
			if techID, ok := claims["assignedNailTechId"].(string); ok && techID != "" {
				actor.AssignedNailTechID = &techID
			}

			ctx := authctx.WithActor(r.Context(), actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth parses a Bearer token when present but lets anonymous
// requests through. Used on mixed routes like booking lookup, where
// customers come by code and staff by id.
func OptionalAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}
			tokenStr := strings.TrimPrefix(auth, "Bearer ")
			token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				// A token was offered but is bad; reject rather than degrade.
				handlers.RespondUnauthorized(w, "invalid token")
				return
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				handlers.RespondUnauthorized(w, "invalid token")
				return
			}
			sub, _ := claims["sub"].(string)
			roleStr, _ := claims["role"].(string)
			role := domain.Role(roleStr)
			if sub == "" || !role.Valid() {
				handlers.RespondUnauthorized(w, "invalid token claims")
				return
			}
			actor := domain.Actor{UserID: sub, Role: role}
			if techID, ok := claims["assignedNailTechId"].(string); ok && techID != "" {
				actor.AssignedNailTechID = &techID
			}
			next.ServeHTTP(w, r.WithContext(authctx.WithActor(r.Context(), actor)))
		})
	}
}

// RequireRole gates a route to actors holding at least the given role.
func RequireRole(min domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := authctx.ActorFrom(r.Context())
			if !ok {
				handlers.RespondForbidden(w, "forbidden")
				return
			}
			if !actor.Role.AtLeast(min) {
				handlers.RespondForbidden(w, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
