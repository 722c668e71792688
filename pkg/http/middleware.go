package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"liyu1981.xyz/dialog-service/pkg/auth"
	"liyu1981.xyz/dialog-service/pkg/common"
)

const claimsKey = "claims"

// Authenticate verifies the bearer token when one is sent. Without a
// verifier every request passes anonymously.
func (rs *RestfulServer) Authenticate(c *gin.Context) {
	if rs.Auth == nil {
		c.Next()
		return
	}

	logger := common.GetCategoryLogger(common.LoggerNameRestfulServer, common.LoggerCategoryAuth)

	claims, err := rs.Auth.Authenticate(c.GetHeader("Authorization"))
	if err != nil {
		logger.Info("Request rejected", zap.String("path", c.FullPath()), zap.Error(err))
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	if claims == nil {
		logger.Warn("Request without auth token", zap.String("path", c.FullPath()))
	} else {
		c.Set(claimsKey, claims)
	}
	c.Next()
}

// RequireOperator lets only operator tokens through. Without a verifier no
// token can be checked, so the route is closed.
func (rs *RestfulServer) RequireOperator(c *gin.Context) {
	claims := requestClaims(c)
	switch {
	case rs.Auth == nil:
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": errorMessageOperatorOnly})
	case claims == nil:
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrMissingToken.Error()})
	case !claims.IsOperator():
		common.GetCategoryLogger(common.LoggerNameRestfulServer, common.LoggerCategoryAuth).
			Warn("Operator route refused", zap.String("path", c.FullPath()), zap.String("subject", claims.UserID()))
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": errorMessageOperatorOnly})
	default:
		c.Next()
	}
}

func requestClaims(c *gin.Context) *auth.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}

// resolveUser picks the user a request acts for. A token may only act for
// its own subject; an empty userID falls back to the subject.
func resolveUser(c *gin.Context, userID string) (string, bool) {
	subject := requestClaims(c).UserID()
	if subject == "" {
		return userID, true
	}
	if userID == "" {
		return subject, true
	}
	if userID != subject {
		c.JSON(http.StatusForbidden, gin.H{"error": "token does not belong to this user"})
		return "", false
	}
	return userID, true
}
