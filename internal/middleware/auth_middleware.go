package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	appauth "github.com/okandemir/librarium/internal/app/auth"
	"github.com/okandemir/librarium/internal/app/models"
	"github.com/okandemir/librarium/internal/app/models/dto"
	"github.com/okandemir/librarium/internal/pkg/auth"
)

// Context keys set by JWTAuth
const (
	ContextStudentID = "studentID"
	ContextUsername  = "username"
	ContextRole      = "role"
)

// AuthMiddleware handles authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
	policy     *appauth.Policy
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, policy *appauth.Policy) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		policy:     policy,
	}
}

// JWTAuth validates the bearer token and stores the caller identity in
// the request context. Only the Authorization header is accepted.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").
				WithDetails("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").
				WithDetails("Invalid token format")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			errorCode := dto.ErrorCodeInvalidToken
			details := "Invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				errorCode = dto.ErrorCodeExpiredToken
				details = "Token has expired"
			}

			errorDetail := dto.NewErrorDetail(errorCode, "Authentication failed").WithDetails(details)
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Set(ContextStudentID, claims.StudentID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextRole, claims.Role)

		c.Next()
	}
}

// Authorize gates the request on the access policy. It must run after
// JWTAuth on authenticated routes.
func (m *AuthMiddleware) Authorize(action appauth.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := CallerFromContext(c)
		if !m.policy.Allows(action, caller) {
			status := http.StatusForbidden
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied").
				WithDetails("You don't have sufficient permissions for this operation")
			if !caller.Authenticated {
				status = http.StatusUnauthorized
				errorDetail = dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			}
			c.AbortWithStatusJSON(status, dto.NewErrorResponse(errorDetail))
			return
		}
		c.Next()
	}
}

// CallerFromContext rebuilds the caller identity stored by JWTAuth.
// Unauthenticated requests yield a zero caller.
func CallerFromContext(c *gin.Context) appauth.Caller {
	studentID, ok := c.Get(ContextStudentID)
	if !ok {
		return appauth.Caller{}
	}
	id, ok := studentID.(int64)
	if !ok || id <= 0 {
		return appauth.Caller{}
	}

	caller := appauth.Caller{
		StudentID:     id,
		Authenticated: true,
	}
	if username, ok := c.Get(ContextUsername); ok {
		caller.Username, _ = username.(string)
	}
	if role, ok := c.Get(ContextRole); ok {
		if roleStr, ok := role.(string); ok {
			caller.Role = models.RoleType(roleStr)
		}
	}
	return caller
}
