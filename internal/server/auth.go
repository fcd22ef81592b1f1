package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tasktracker/internal/auth"
	"tasktracker/internal/common"
	"tasktracker/internal/models"
)

const claimsKey = "claims"

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// handleRegister creates an account and signs the user in.
func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" || strings.TrimSpace(req.Name) == "" {
		badRequest(c, "All fields are required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.respondError(c, err, "", "Server error")
		return
	}

	user, err := s.store.CreateUser(c.Request.Context(), req.Email, req.Name, hash)
	if err != nil {
		if errors.Is(err, common.ErrDuplicate) {
			badRequest(c, "Email already exists")
			return
		}
		s.respondError(c, err, "", "Failed to create user")
		return
	}

	s.issueSession(c, user.Public())
}

// handleLogin checks credentials. Unknown emails and wrong passwords get
// the same response.
func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		badRequest(c, "Email and password are required")
		return
	}

	user, err := s.store.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		s.respondError(c, err, "", "Server error")
		return
	}

	ok, err := auth.CheckPassword(user.PasswordHash, req.Password)
	if err != nil {
		s.respondError(c, err, "", "Server error")
		return
	}
	if !ok {
		s.respondError(c, common.ErrInvalidCredentials, "", "Server error")
		return
	}

	s.issueSession(c, user.Public())
}

// handleMe returns the user the presented token was issued for.
func (s *Server) handleMe(c *gin.Context) {
	respondSuccess(c, http.StatusOK, claimsFrom(c).User())
}

// handleLogout revokes the presented token.
func (s *Server) handleLogout(c *gin.Context) {
	claims := claimsFrom(c)
	if err := s.store.RevokeToken(c.Request.Context(), claims.ID, claims.UserID, claims.ExpiresAtTime()); err != nil {
		s.respondError(c, err, "", "Failed to log out")
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (s *Server) issueSession(c *gin.Context, user models.PublicUser) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		s.respondError(c, err, "", "Server error")
		return
	}
	respondSuccess(c, http.StatusOK, authResponse{Token: token, User: user})
}

// requireAuth verifies the bearer token and stores its claims on the
// context. A missing token answers 401, an invalid one 403.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			return
		}

		claims, err := s.tokens.Verify(c.Request.Context(), token)
		switch {
		case err == nil:
		case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired), errors.Is(err, common.ErrTokenRevoked):
			s.logger.Debug("token rejected", slog.String("path", c.FullPath()), slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid token"})
			return
		default:
			s.respondError(c, err, "", "Server error")
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func claimsFrom(c *gin.Context) *auth.Claims {
	return c.MustGet(claimsKey).(*auth.Claims)
}

// userID is the acting user of an authenticated request.
func userID(c *gin.Context) string {
	return claimsFrom(c).UserID
}
