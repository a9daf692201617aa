package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	authdomain "github.com/harvestcover/seasonworker/internal/auth/domain"
	cancellationdomain "github.com/harvestcover/seasonworker/internal/cancellation/domain"
)

// successEnvelope is the legacy shape of the cancellation endpoints:
// success flag, optional human-readable message, payload under data.
type successEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
}

const cancellationRequestedMessage = "해지 신청이 완료되었습니다."

func (s *Server) RequestWorkerCancellation(c *gin.Context) {
	workerID := c.Param("worker_id")
	if !s.mayActOnWorker(c, workerID) {
		return
	}

	var req cancellationdomain.RequestByWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, cancellationdomain.ErrMissingFields)
		return
	}
	req.WorkerID = workerID

	resp, err := s.cancellationSvc.RequestByWorker(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, successEnvelope{
		Success: true,
		Message: cancellationRequestedMessage,
		Data:    resp,
	})
}

func (s *Server) RequestInsuranceCancellation(c *gin.Context) {
	workerID := c.Param("worker_id")
	if !s.mayActOnWorker(c, workerID) {
		return
	}

	req := cancellationdomain.RequestByInsuranceRequest{
		WorkerID:    workerID,
		InsuranceID: c.Param("insurance_id"),
	}
	// The note body is optional.
	_ = c.ShouldBindJSON(&req)

	resp, err := s.cancellationSvc.RequestByInsurance(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, successEnvelope{
		Success: true,
		Message: cancellationRequestedMessage,
		Data:    resp,
	})
}

func (s *Server) ListCancellations(c *gin.Context) {
	var req cancellationdomain.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.cancellationSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) ApproveCancellation(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req cancellationdomain.ApproveRequest
	_ = c.ShouldBindJSON(&req)
	req.InsuranceID = c.Param("insurance_id")
	req.AdminID = principal.AdminID.String()

	resp, err := s.cancellationSvc.Approve(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, successEnvelope{Success: true, Data: resp})
}

func (s *Server) RejectCancellation(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req cancellationdomain.RejectRequest
	_ = c.ShouldBindJSON(&req)
	req.InsuranceID = c.Param("insurance_id")
	req.AdminID = principal.AdminID.String()

	resp, err := s.cancellationSvc.Reject(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, successEnvelope{Success: true, Data: resp})
}

// mayActOnWorker aborts when a worker tries to cancel on another worker's
// behalf. Admins may act for anyone.
func (s *Server) mayActOnWorker(c *gin.Context, workerID string) bool {
	principal, ok := currentPrincipal(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return false
	}
	if principal.Role == authdomain.RoleSeasonWorker && principal.WorkerID.String() != workerID {
		AbortWithError(c, ErrForbidden)
		return false
	}
	return true
}
