package controller

import (
	"context"
	"net/http"

	"workmesh-backend/models"
	"workmesh-backend/services"
	"workmesh-backend/utils/logger"

	"github.com/gin-gonic/gin"
)

const refreshCookieName = "refresh_token"

// AuthController handles registration, login, token refresh and
// logout. The refresh token only ever travels in an httpOnly cookie
// scoped to the refresh path; response bodies carry the access token.
type AuthController struct {
	ctx         context.Context
	authService services.AuthServiceInterface
	config      *models.Config
	logger      logger.Logger
}

func NewAuthController(ctx context.Context, authService services.AuthServiceInterface, cfg *models.Config, log logger.Logger) *AuthController {
	return &AuthController{
		ctx:         ctx,
		authService: authService,
		config:      cfg,
		logger:      log,
	}
}

func (ac *AuthController) refreshCookiePath() string {
	return ac.config.BasePath + "/auth/refresh"
}

// setRefreshCookie attaches the refresh token. SameSite=None requires
// Secure, so dev (plain http) drops to Lax.
func (ac *AuthController) setRefreshCookie(c *gin.Context, token string) {
	if ac.config.IsProduction() {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(
		refreshCookieName,
		token,
		int(ac.config.JWTRefreshExpiresIn.Seconds()),
		ac.refreshCookiePath(),
		"",
		ac.config.IsProduction(),
		true,
	)
}

func (ac *AuthController) clearRefreshCookie(c *gin.Context) {
	if ac.config.IsProduction() {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(refreshCookieName, "", -1, ac.refreshCookiePath(), "", ac.config.IsProduction(), true)
}

// Register creates an organization with its first admin account
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	result, err := ac.authService.Register(c.Request.Context(), &req)
	if err != nil {
		ac.logger.Warnf("Registration failed for %s: %v", req.Email, err)
		respondServiceError(c, err)
		return
	}

	ac.setRefreshCookie(c, result.RefreshToken)
	respondOK(c, http.StatusCreated, gin.H{
		"user":        result.User,
		"accessToken": result.AccessToken,
	}, "Registration successful")
}

// Login authenticates an employee by email and password
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	result, err := ac.authService.Login(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	ac.setRefreshCookie(c, result.RefreshToken)
	respondOK(c, http.StatusOK, gin.H{
		"user":        result.User,
		"accessToken": result.AccessToken,
	}, "Login successful")
}

// Refresh exchanges the cookie-borne refresh token for a new access
// token. The refresh token itself is not rotated.
func (ac *AuthController) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(refreshCookieName)
	if err != nil || refreshToken == "" {
		respondError(c, http.StatusUnauthorized, "Refresh token missing")
		return
	}

	result, err := ac.authService.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		ac.clearRefreshCookie(c)
		respondServiceError(c, err)
		return
	}

	respondOK(c, http.StatusOK, gin.H{
		"user":        result.User,
		"accessToken": result.AccessToken,
	}, "Token refreshed")
}

// Logout clears the refresh cookie. Tokens are stateless, so the
// access token simply ages out.
func (ac *AuthController) Logout(c *gin.Context) {
	ac.clearRefreshCookie(c)
	respondOK(c, http.StatusOK, nil, "Logged out")
}
