package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/dcastillo-dev/usuarios-api/internal/application"
	"github.com/dcastillo-dev/usuarios-api/internal/domain/domainerr"
	"github.com/dcastillo-dev/usuarios-api/internal/interface/middleware"
	"github.com/dcastillo-dev/usuarios-api/pkg/helpers"
	"github.com/dcastillo-dev/usuarios-api/pkg/response"
	"github.com/dcastillo-dev/usuarios-api/pkg/validation"
)

// AuthHandler owns the session lifecycle: login, refresh, logout, profile.
// Sessions live in Redis keyed per usuario; tokens travel as httpOnly cookies.
type AuthHandler struct {
	Auth    *application.AuthenticationService
	JWT     *helpers.JWTManager
	Redis   *redis.Client
	Cookies *helpers.Manager
	Logger  *logrus.Logger
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	usuario, err := h.Auth.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// Unknown email and malformed email both collapse to 401 so the
		// endpoint does not reveal which addresses exist.
		if domainerr.IsDomain(err) {
			response.Error[any](c, http.StatusUnauthorized, "Credenciales inválidas", nil)
			return
		}
		h.Logger.WithError(err).Error("login failed")
		response.Error[any](c, http.StatusInternalServerError, "Error interno del servidor", nil)
		return
	}
	if usuario == nil {
		response.Error[any](c, http.StatusUnauthorized, "Credenciales inválidas", nil)
		return
	}
	if !usuario.Activo {
		response.Error[any](c, http.StatusUnauthorized, "Usuario inactivo", nil)
		return
	}

	if err := h.issueSession(c, usuario); err != nil {
		h.Logger.WithError(err).Error("session setup failed")
		response.Error[any](c, http.StatusInternalServerError, "Error interno del servidor", nil)
		return
	}
	response.Success(c, http.StatusOK, usuario, "login successful", nil)
}

// Refresh rotates the session id and reissues both tokens. The refresh
// token is only honoured while its sid matches the stored session.
func (h *AuthHandler) Refresh(c *gin.Context) {
	token, err := c.Cookie("refresh_token")
	if err != nil || token == "" {
		response.Error[any](c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}
	claims, err := h.JWT.ParseRefreshToken(token)
	if err != nil {
		response.Error[any](c, http.StatusUnauthorized, "invalid refresh token", nil)
		return
	}

	ctx := c.Request.Context()
	key := middleware.SessionKey(claims.UserID)
	data, err := h.Redis.HGetAll(ctx, key).Result()
	if err != nil || len(data) == 0 || data["sid"] != claims.SessionID {
		response.Error[any](c, http.StatusUnauthorized, "session not found", nil)
		return
	}

	usuario, err := h.Auth.GetAuthenticatedUser(ctx, claims.UserID)
	if err != nil {
		h.Logger.WithError(err).Error("refresh lookup failed")
		response.Error[any](c, http.StatusInternalServerError, "Error interno del servidor", nil)
		return
	}
	if usuario == nil || !usuario.Activo {
		h.Redis.Del(ctx, key)
		h.Cookies.Clear(c)
		response.Error[any](c, http.StatusUnauthorized, "session expired", nil)
		return
	}

	if err := h.issueSession(c, usuario); err != nil {
		h.Logger.WithError(err).Error("session rotation failed")
		response.Error[any](c, http.StatusInternalServerError, "Error interno del servidor", nil)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "token refreshed", nil)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if uid := c.GetInt64("userID"); uid != 0 {
		h.Redis.Del(c.Request.Context(), middleware.SessionKey(uid))
	}
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, nil, "logout successful", nil)
}

func (h *AuthHandler) Profile(c *gin.Context) {
	uid := c.GetInt64("userID")
	usuario, err := h.Auth.GetAuthenticatedUser(c.Request.Context(), uid)
	if err != nil {
		h.Logger.WithError(err).Error("profile lookup failed")
		response.Error[any](c, http.StatusInternalServerError, "Error interno del servidor", nil)
		return
	}
	if usuario == nil {
		response.Error[any](c, http.StatusNotFound, domainerr.NotFound(uid).Error(), nil)
		return
	}
	response.Success(c, http.StatusOK, usuario, "profile", nil)
}

// issueSession mints a fresh session id, writes the session hash to Redis
// and sets the token cookie pair. Rotating the sid invalidates any tokens
// minted for a previous session.
func (h *AuthHandler) issueSession(c *gin.Context, usuario *application.UsuarioResponse) error {
	sid := uuid.New().String()

	access, aexp, err := h.JWT.GenerateAccessToken(usuario.ID, sid)
	if err != nil {
		return err
	}
	refresh, rexp, err := h.JWT.GenerateRefreshToken(usuario.ID, sid)
	if err != nil {
		return err
	}

	ctx := c.Request.Context()
	key := middleware.SessionKey(usuario.ID)
	pipe := h.Redis.TxPipeline()
	pipe.HSet(ctx, key, map[string]interface{}{
		"sid":       sid,
		"user_id":   strconv.FormatInt(usuario.ID, 10),
		"email":     usuario.Email,
		"full_name": usuario.FullName,
		"logged_in": time.Now().UTC().Format(time.RFC3339),
	})
	pipe.Expire(ctx, key, h.JWT.RefreshTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}

	h.Cookies.SetPair(c, access, aexp, refresh, rexp)
	return nil
}
