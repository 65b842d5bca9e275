package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/apperror"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/request"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/response"
)

const (
	accessCookie  = "access_token"
	refreshCookie = "refresh_token"
)

type CookieConfig struct {
	Domain     string
	Secure     bool
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type Handler struct {
	service Service
	cookies CookieConfig
	logger  *zap.Logger
}

func NewHandler(s Service, cookies CookieConfig, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("auth.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.handler")
	}
	return &Handler{service: s, cookies: cookies, logger: l}
}

func writeError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperror.MapValidationError(err))
		return
	}

	pair, userResp, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	if h.isWeb(c) {
		h.setTokenCookies(c, pair)
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":          userResp,
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	}, nil)
}

func (h *Handler) Me(c *gin.Context) {
	actor, err := request.Actor(c)
	if err != nil {
		writeError(c, err)
		return
	}

	userResp, err := h.service.GetMe(c.Request.Context(), actor.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, userResp, nil)
}

func (h *Handler) Logout(c *gin.Context) {
	h.clearCookie(c, accessCookie)
	h.clearCookie(c, refreshCookie)
	response.Success(c, http.StatusOK, gin.H{"message": "logged out"}, nil)
}

// RefreshToken reads the refresh token from the cookie for web clients and
// from the JSON body for everyone else.
func (h *Handler) RefreshToken(c *gin.Context) {
	isWeb := h.isWeb(c)

	var refreshToken string
	if isWeb {
		var err error
		refreshToken, err = c.Cookie(refreshCookie)
		if err != nil || refreshToken == "" {
			writeError(c, apperror.ErrUnauthorized)
			return
		}
	} else {
		var req RefreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, apperror.MapValidationError(err))
			return
		}
		refreshToken = req.RefreshToken
	}

	pair, userResp, err := h.service.RefreshToken(c.Request.Context(), refreshToken)
	if err != nil {
		h.logger.Debug("refresh rejected", zap.Error(err))
		writeError(c, err)
		return
	}

	if isWeb {
		h.setTokenCookies(c, pair)
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":          userResp,
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	}, nil)
}

func (h *Handler) isWeb(c *gin.Context) bool {
	return request.IsWebClient(request.ResolveClientType(c.GetHeader("X-Client-Type"), c.GetHeader("User-Agent")))
}

func (h *Handler) setTokenCookies(c *gin.Context, pair TokenPair) {
	h.setCookie(c, accessCookie, pair.AccessToken, int(h.cookies.AccessTTL.Seconds()))
	h.setCookie(c, refreshCookie, pair.RefreshToken, int(h.cookies.RefreshTTL.Seconds()))
}

func (h *Handler) clearCookie(c *gin.Context, name string) {
	h.setCookie(c, name, "", -1)
}

func (h *Handler) setCookie(c *gin.Context, name, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   h.cookies.Domain,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
