package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/harvestcover/seasonworker/internal/account"
	authdomain "github.com/harvestcover/seasonworker/internal/auth/domain"
	cancellationdomain "github.com/harvestcover/seasonworker/internal/cancellation/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthService struct {
	principal authdomain.Principal
}

func (s stubAuthService) Login(context.Context, authdomain.Credentials) (authdomain.LoginResult, error) {
	return authdomain.LoginResult{}, nil
}

func (s stubAuthService) Verify(context.Context, authdomain.Credentials) (authdomain.Principal, error) {
	return s.principal, nil
}

type allowAllAuthz struct{}

func (allowAllAuthz) Authorize(context.Context, string, string, string, string) error {
	return nil
}

type stubCancellationService struct {
	workerResp  cancellationdomain.RequestByWorkerResponse
	approveResp cancellationdomain.ApproveResponse
	rejectResp  cancellationdomain.RejectResponse
}

func (s stubCancellationService) RequestByWorker(context.Context, cancellationdomain.RequestByWorkerRequest) (cancellationdomain.RequestByWorkerResponse, error) {
	return s.workerResp, nil
}

func (s stubCancellationService) RequestByInsurance(context.Context, cancellationdomain.RequestByInsuranceRequest) (cancellationdomain.RequestByInsuranceResponse, error) {
	return cancellationdomain.RequestByInsuranceResponse{}, nil
}

func (s stubCancellationService) Approve(context.Context, cancellationdomain.ApproveRequest) (cancellationdomain.ApproveResponse, error) {
	return s.approveResp, nil
}

func (s stubCancellationService) Reject(context.Context, cancellationdomain.RejectRequest) (cancellationdomain.RejectResponse, error) {
	return s.rejectResp, nil
}

func (s stubCancellationService) List(context.Context, cancellationdomain.ListRequest) (cancellationdomain.ListResponse, error) {
	return cancellationdomain.ListResponse{}, nil
}

func newCancellationTestServer(t *testing.T, svc cancellationdomain.Service) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	srv := &Server{
		engine:          engine,
		authsvc:         stubAuthService{principal: authdomain.Principal{Role: authdomain.RoleAdmin, AdminID: 1}},
		authzSvc:        allowAllAuthz{},
		cancellationSvc: svc,
	}
	srv.registerAPIRoutes()
	return srv
}

type envelopeBody struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

func TestApproveCancellation_PatchWithEnvelope(t *testing.T) {
	srv := newCancellationTestServer(t, stubCancellationService{
		approveResp: cancellationdomain.ApproveResponse{
			InsuranceID:  "42",
			WorkerID:     "7",
			WorkerStatus: account.StatusCancel,
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/cancellation/42/approve", nil)
	srv.engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body envelopeBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "42", body.Data["insurance_id"])
	assert.Equal(t, string(account.StatusCancel), body.Data["worker_status"])

	// The old verb is gone.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/cancellation/42/approve", nil)
	srv.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRejectCancellation_PatchWithEnvelope(t *testing.T) {
	srv := newCancellationTestServer(t, stubCancellationService{
		rejectResp: cancellationdomain.RejectResponse{
			InsuranceID:     "42",
			WorkerID:        "7",
			WorkerStatus:    account.StatusActive,
			RejectionReason: "worker rescinded",
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/cancellation/42/reject", nil)
	srv.engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body envelopeBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, string(account.StatusActive), body.Data["worker_status"])
	assert.Equal(t, "worker rescinded", body.Data["rejection_reason"])
}

func TestRequestWorkerCancellation_EnvelopeEchoesBankAccount(t *testing.T) {
	srv := newCancellationTestServer(t, stubCancellationService{
		workerResp: cancellationdomain.RequestByWorkerResponse{
			WorkerID:      "7",
			AccountStatus: account.StatusCancelPending,
			DepartureDate: "2026-04-01",
			BankAccount:   "110-222-333",
		},
	})

	payload := `{"departure_date":"2026-04-01","bank_account":"110-222-333"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/season-worker/7/cancellation", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	srv.engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body envelopeBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.NotEmpty(t, body.Message)
	assert.Equal(t, "110-222-333", body.Data["bank_account"])
	assert.Equal(t, string(account.StatusCancelPending), body.Data["account_status"])
}
