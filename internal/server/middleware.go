package server

import (
	"github.com/gin-gonic/gin"
	authdomain "github.com/harvestcover/seasonworker/internal/auth/domain"
)

const principalKey = "principal"

// AuthRequired re-verifies the caller's credentials on every request. The
// portal keeps no sessions; legacy clients replay the login fields as query
// parameters.
func (s *Server) AuthRequired(roles ...authdomain.Role) gin.HandlerFunc {
	allowed := make(map[authdomain.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(c *gin.Context) {
		var creds authdomain.Credentials
		if err := c.ShouldBindQuery(&creds); err != nil {
			AbortWithError(c, authdomain.ErrInvalidCredentials)
			return
		}

		principal, err := s.authsvc.Verify(c.Request.Context(), creds)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		if len(allowed) > 0 {
			if _, ok := allowed[principal.Role]; !ok {
				AbortWithError(c, ErrForbidden)
				return
			}
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

func (s *Server) authorizeAction(object, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := currentPrincipal(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		actor := string(principal.Role) + ":" + principal.ActorID()
		err := s.authzSvc.Authorize(c.Request.Context(), actor, string(principal.Role), object, action)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

func currentPrincipal(c *gin.Context) (authdomain.Principal, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		return authdomain.Principal{}, false
	}
	principal, ok := value.(authdomain.Principal)
	return principal, ok
}
