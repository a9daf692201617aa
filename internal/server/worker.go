package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	authdomain "github.com/harvestcover/seasonworker/internal/auth/domain"
	workerdomain "github.com/harvestcover/seasonworker/internal/worker/domain"
)

func (s *Server) ListWorkers(c *gin.Context) {
	var req workerdomain.ListWorkersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	principal, ok := currentPrincipal(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	// Managers only ever see their own cohort; admin sees everything.
	switch principal.Role {
	case authdomain.RolePublic:
		req.Scope.ManagerPublicID = principal.ManagerPublicID
	case authdomain.RoleGeneral:
		req.Scope.ManagerGeneralID = principal.ManagerGeneralID
	}

	resp, err := s.workerSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) RegisterWorker(c *gin.Context) {
	var req workerdomain.RegisterWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, workerdomain.ErrMissingFields)
		return
	}

	resp, err := s.workerSvc.Register(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (s *Server) GetWorkerByID(c *gin.Context) {
	detail, err := s.workerSvc.GetByID(c.Request.Context(), c.Param("worker_id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (s *Server) ListWorkerInsurances(c *gin.Context) {
	insurances, err := s.workerSvc.ListInsurances(c.Request.Context(), c.Param("worker_id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"insurances": insurances})
}
