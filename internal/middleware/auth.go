package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/andrefarias-dev/mensalista/pkg/token"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	AuthUserIDKey = "auth_user_id"
)

// AccessState is the outcome of the account access check.
type AccessState int

const (
	AccessOk AccessState = iota
	AccessBlocked
	AccessInvalid
)

// AccessResult is a tagged result consumed by explicit branching; access
// denial is a value, not a thrown error.
type AccessResult struct {
	State  AccessState
	UserID uint
	Reason string
}

// CheckAccess verifies the account exists and is not locked out by a
// BLOCKED team.
func CheckAccess(db *gorm.DB, userID uint) AccessResult {
	var found int64
	err := db.Table("users").
		Where("id = ? AND deleted_at IS NULL", userID).
		Count(&found).Error
	if err != nil || found == 0 {
		return AccessResult{State: AccessInvalid, UserID: userID, Reason: "account not found"}
	}

	var blocked int64
	err = db.Table("teams").
		Joins("JOIN team_users ON team_users.team_id = teams.id").
		Where("team_users.user_id = ? AND team_users.role = ? AND teams.status = ?", userID, "owner", "BLOCKED").
		Count(&blocked).Error
	if err != nil {
		return AccessResult{State: AccessInvalid, UserID: userID, Reason: "access check failed"}
	}
	if blocked > 0 {
		return AccessResult{State: AccessBlocked, UserID: userID, Reason: "team access blocked for non-payment"}
	}
	return AccessResult{State: AccessOk, UserID: userID}
}

// AuthMiddleware authenticates the bearer token and runs the access check.
func AuthMiddleware(jwtSecret string, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || strings.ToLower(bearerToken[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid Authorization header format. Expected: Bearer <token>"})
			return
		}

		claims, err := token.ValidateJWT(bearerToken[1], jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token: " + err.Error()})
			return
		}

		switch result := CheckAccess(db, claims.UserID); result.State {
		case AccessOk:
			c.Set(AuthUserIDKey, result.UserID)
			c.Next()
		case AccessBlocked:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": result.Reason})
		default:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found or inactive"})
		}
	}
}

// AdminMiddleware allows only admin accounts through.
func AdminMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := GetUserIDFromContext(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: " + err.Error()})
			return
		}

		var isAdmin bool
		if err := db.Table("users").Select("is_admin").Where("id = ?", userID).Scan(&isAdmin).Error; err != nil || !isAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You don't have permission to access this resource"})
			return
		}
		c.Next()
	}
}

// GetUserIDFromContext extracts the user ID from the context
func GetUserIDFromContext(c *gin.Context) (uint, error) {
	userID, exists := c.Get(AuthUserIDKey)
	if !exists {
		return 0, errors.New("user ID not found in context")
	}

	uid, ok := userID.(uint)
	if !ok {
		return 0, fmt.Errorf("user ID has unexpected type: %T", userID)
	}

	return uid, nil
}
