package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) ListRegionLocalGov(c *gin.Context) {
	resp, err := s.regionSvc.ListRegionLocalGov(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
