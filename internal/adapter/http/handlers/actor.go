package handlers

import (
	"net/http"
	"strings"

	"fieldservice/internal/domain/entities"
	"fieldservice/internal/logger"
	"fieldservice/pkg"

	"github.com/gin-gonic/gin"
)

// Identity headers set by the authenticating gateway in front of the service.
const (
	HeaderUserID    = "X-User-ID"
	HeaderAccountID = "X-Account-ID"
	HeaderRole      = "X-Role"

	actorContextKey = "actor"
)

var (
	errUnauthenticated = pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Missing user or account identity", http.StatusUnauthorized)
	errUnknownRole     = pkg.NewDomainErrorSimple("FORBIDDEN_ROLE", "Unknown role", http.StatusForbidden)
)

// ActorMiddleware resolves the calling actor from the identity headers and
// rejects requests without one.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(HeaderUserID))
		accountID := strings.TrimSpace(c.GetHeader(HeaderAccountID))
		if userID == "" || accountID == "" {
			c.AbortWithStatusJSON(errUnauthenticated.HTTPStatus, errUnauthenticated.ToHTTPError())
			return
		}
		role, err := entities.ParseRole(c.GetHeader(HeaderRole))
		if err != nil {
			logger.Warnf("[actor][middleware] unknown role user_id=%s account_id=%s role=%q", userID, accountID, c.GetHeader(HeaderRole))
			c.AbortWithStatusJSON(errUnknownRole.HTTPStatus, errUnknownRole.ToHTTPError())
			return
		}
		c.Set(actorContextKey, entities.Actor{UserID: userID, AccountID: accountID, Role: role})
		c.Next()
	}
}

// actorFrom returns the actor stored by ActorMiddleware. A missing actor is
// answered with 401 and reported as false.
func actorFrom(c *gin.Context) (entities.Actor, bool) {
	v, ok := c.Get(actorContextKey)
	if ok {
		if actor, ok := v.(entities.Actor); ok {
			return actor, true
		}
	}
	c.JSON(errUnauthenticated.HTTPStatus, errUnauthenticated.ToHTTPError())
	return entities.Actor{}, false
}
