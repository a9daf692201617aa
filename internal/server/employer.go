package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	authdomain "github.com/harvestcover/seasonworker/internal/auth/domain"
	employerdomain "github.com/harvestcover/seasonworker/internal/employer/domain"
)

func (s *Server) ListEmployers(c *gin.Context) {
	var req employerdomain.ListEmployerRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	principal, ok := currentPrincipal(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	if principal.Role == authdomain.RoleGeneral {
		req.ManagerGeneralID = principal.ManagerGeneralID.String()
	}

	resp, err := s.employerSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) CreateEmployer(c *gin.Context) {
	var req employerdomain.CreateEmployerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, employerdomain.ErrMissingFields)
		return
	}

	created, err := s.employerSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) GetEmployerByID(c *gin.Context) {
	found, err := s.employerSvc.GetByID(c.Request.Context(), c.Param("employer_id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}
