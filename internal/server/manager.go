package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	managerdomain "github.com/harvestcover/seasonworker/internal/manager/domain"
)

func (s *Server) ListManagers(c *gin.Context) {
	resp, err := s.managerSvc.List(c.Request.Context(), managerdomain.Kind(c.Param("kind")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetManagerByID(c *gin.Context) {
	found, err := s.managerSvc.Get(c.Request.Context(), managerdomain.Kind(c.Param("kind")), c.Param("manager_id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

func (s *Server) CreateManager(c *gin.Context) {
	var req managerdomain.CreateManagerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, managerdomain.ErrMissingFields)
		return
	}

	created, err := s.managerSvc.Create(c.Request.Context(), managerdomain.Kind(c.Param("kind")), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) UpdateManager(c *gin.Context) {
	var req managerdomain.UpdateManagerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, managerdomain.ErrMissingFields)
		return
	}

	updated, err := s.managerSvc.Update(c.Request.Context(), managerdomain.Kind(c.Param("kind")), c.Param("manager_id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
