package middelware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"workmesh-backend/models"
	"workmesh-backend/utils/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTManager handles JWT token operations. Access and refresh tokens
// are signed with separate secrets so one can never stand in for the
// other. Tokens are stateless; logout only clears the cookie.
type JWTManager struct {
	Config *models.Config
	Logger logger.Logger
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(cfg *models.Config, log logger.Logger) *JWTManager {
	return &JWTManager{
		Config: cfg,
		Logger: log,
	}
}

// IssueAccessToken generates a short-lived access token for an employee
func (j *JWTManager) IssueAccessToken(employee *models.Employee) (string, error) {
	now := time.Now()
	claims := models.AccessClaims{
		AccessRole:     employee.AccessRole,
		OrganizationID: employee.OrganizationID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   employee.ID,
			Issuer:    j.Config.AppName,
			ExpiresAt: jwt.NewNumericDate(now.Add(j.Config.JWTAccessExpiresIn)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(j.Config.JWTAccessSecret))
	if err != nil {
		j.Logger.Errorf("Failed to sign access token: %v", err)
		return "", err
	}

	j.Logger.Debugf("Issued access token for employee: %s", employee.ID)
	return tokenString, nil
}

// IssueRefreshToken generates a long-lived refresh token. Its claims
// are narrower than the access token's; the role is re-read from
// storage when the token is redeemed.
func (j *JWTManager) IssueRefreshToken(employee *models.Employee) (string, error) {
	now := time.Now()
	claims := models.RefreshClaims{
		OrganizationID: employee.OrganizationID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   employee.ID,
			Issuer:    j.Config.AppName,
			ExpiresAt: jwt.NewNumericDate(now.Add(j.Config.JWTRefreshExpiresIn)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(j.Config.JWTRefreshSecret))
	if err != nil {
		j.Logger.Errorf("Failed to sign refresh token: %v", err)
		return "", err
	}

	j.Logger.Debugf("Issued refresh token for employee: %s", employee.ID)
	return tokenString, nil
}

func keyFuncFor(secret string) jwt.Keyfunc {
	return func(token *jwt.Token) (interface{}, error) {
		// Prevent algorithm confusion attacks
		if method, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		} else if method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("invalid signing algorithm: %v", method.Alg())
		}
		return []byte(secret), nil
	}
}

// ValidateAccessToken validates an access token and returns its claims
func (j *JWTManager) ValidateAccessToken(tokenString string) (*models.AccessClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.AccessClaims{}, keyFuncFor(j.Config.JWTAccessSecret))
	if err != nil {
		j.Logger.Debugf("Failed to parse access token: %v", err)
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(*models.AccessClaims)
	if !ok {
		return nil, fmt.Errorf("invalid claims")
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return nil, fmt.Errorf("token expired")
	}

	return claims, nil
}

// ValidateRefreshToken validates a refresh token against the refresh
// secret. An access token presented here fails signature verification.
func (j *JWTManager) ValidateRefreshToken(tokenString string) (*models.RefreshClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.RefreshClaims{}, keyFuncFor(j.Config.JWTRefreshSecret))
	if err != nil {
		j.Logger.Debugf("Failed to parse refresh token: %v", err)
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(*models.RefreshClaims)
	if !ok {
		return nil, fmt.Errorf("invalid claims")
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return nil, fmt.Errorf("token expired")
	}

	return claims, nil
}

// AuthMiddleware validates the Bearer access token and stores the
// caller's identity in the request context. Every downstream handler
// reads the organization id from here, never from the request body.
func (j *JWTManager) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			j.Logger.Debug("Missing Authorization header")
			c.JSON(http.StatusUnauthorized, models.APIResponse{
				Success:    false,
				Message:    "Authentication required",
				StatusCode: http.StatusUnauthorized,
			})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			j.Logger.Debug("Invalid Authorization header format")
			c.JSON(http.StatusUnauthorized, models.APIResponse{
				Success:    false,
				Message:    "Invalid Authorization header format",
				StatusCode: http.StatusUnauthorized,
			})
			c.Abort()
			return
		}

		claims, err := j.ValidateAccessToken(strings.TrimSpace(parts[1]))
		if err != nil {
			j.Logger.Debugf("Token validation failed: %v", err)
			c.JSON(http.StatusUnauthorized, models.APIResponse{
				Success:    false,
				Message:    "Invalid or expired token",
				StatusCode: http.StatusUnauthorized,
			})
			c.Abort()
			return
		}

		c.Set("employee_id", claims.Subject)
		c.Set("access_role", claims.AccessRole)
		c.Set("organization_id", claims.OrganizationID)
		c.Set("jwt_claims", claims)

		j.Logger.Debugf("Employee authenticated: %s", claims.Subject)
		c.Next()
	}
}

// RequireRole checks the authenticated caller's role against an allow
// list. Must run after AuthMiddleware.
func (j *JWTManager) RequireRole(roles ...models.AccessRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, exists := c.Get("access_role")
		if !exists {
			c.JSON(http.StatusUnauthorized, models.APIResponse{
				Success:    false,
				Message:    "Authentication required",
				StatusCode: http.StatusUnauthorized,
			})
			c.Abort()
			return
		}

		role := raw.(models.AccessRole)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		j.Logger.Debugf("Role %s denied, requires one of %v", role, roles)
		c.JSON(http.StatusForbidden, models.APIResponse{
			Success:    false,
			Message:    "Insufficient permissions",
			StatusCode: http.StatusForbidden,
		})
		c.Abort()
	}
}
