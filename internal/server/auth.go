package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	authdomain "github.com/harvestcover/seasonworker/internal/auth/domain"
)

func (s *Server) Login(c *gin.Context) {
	var creds authdomain.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		AbortWithError(c, authdomain.ErrMissingFields)
		return
	}

	result, err := s.authsvc.Login(c.Request.Context(), creds)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
