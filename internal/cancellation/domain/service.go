package domain

import (
	"context"
	"errors"
	"time"

	"github.com/harvestcover/seasonworker/internal/account"
	"github.com/harvestcover/seasonworker/pkg/db/pagination"
)

// RequestByWorkerRequest asks to cancel the worker's entire enrollment.
// The departure date must be in the future and, when a bank account is on
// file, the presented account must match it.
type RequestByWorkerRequest struct {
	WorkerID      string `json:"-"`
	DepartureDate string `json:"departure_date"`
	BankAccount   string `json:"bank_account"`
}

type RequestByWorkerResponse struct {
	WorkerID      string         `json:"worker_id"`
	AccountStatus account.Status `json:"account_status"`
	DepartureDate string         `json:"departure_date"`
	BankAccount   string         `json:"bank_account"`
}

// RequestByInsuranceRequest targets a single insurance row; the worker in
// the path must own it.
type RequestByInsuranceRequest struct {
	WorkerID    string `json:"-"`
	InsuranceID string `json:"-"`
	Note        string `json:"note"`
}

type RequestByInsuranceResponse struct {
	InsuranceID             string         `json:"insurance_id"`
	PolicyNumber            string         `json:"policy_number,omitempty"`
	CancellationRequestDate time.Time      `json:"cancellation_request_date"`
	WorkerStatus            account.Status `json:"worker_status"`
}

type ApproveRequest struct {
	InsuranceID string `json:"-"`
	AdminID     string `json:"admin_id"`
	Note        string `json:"note"`
}

type ApproveResponse struct {
	InsuranceID             string         `json:"insurance_id"`
	PolicyNumber            string         `json:"policy_number,omitempty"`
	CancellationRequestDate *time.Time     `json:"cancellation_request_date,omitempty"`
	CancellationDate        time.Time      `json:"cancellation_date"`
	WorkerID                string         `json:"worker_id"`
	WorkerStatus            account.Status `json:"worker_status"`
}

type RejectRequest struct {
	InsuranceID string `json:"-"`
	AdminID     string `json:"admin_id"`
	Reason      string `json:"reason"`
}

type RejectResponse struct {
	InsuranceID     string         `json:"insurance_id"`
	PolicyNumber    string         `json:"policy_number,omitempty"`
	WorkerID        string         `json:"worker_id"`
	WorkerStatus    account.Status `json:"worker_status"`
	RejectionReason string         `json:"rejection_reason,omitempty"`
}

// StatusFilter selects which cancellation lists a status query returns.
type StatusFilter string

const (
	StatusApproved StatusFilter = "approved"
	StatusPending  StatusFilter = "pending"
	StatusAll      StatusFilter = "all"
)

func ParseStatusFilter(value string) (StatusFilter, bool) {
	if value == "" {
		return StatusAll, true
	}
	switch StatusFilter(value) {
	case StatusApproved, StatusPending, StatusAll:
		return StatusFilter(value), true
	}
	return "", false
}

type ListRequest struct {
	Status string `form:"status"`
	pagination.Pagination
}

type Summary struct {
	ApprovedCount int64 `json:"approved_count"`
	PendingCount  int64 `json:"pending_count"`
	TotalCount    int64 `json:"total_count"`
}

// Row is one cancellation entry flattened with its worker and employer.
type Row struct {
	InsuranceID             string     `json:"insurance_id"`
	PolicyNumber            string     `json:"policy_number,omitempty"`
	InsuranceStartDate      time.Time  `json:"insurance_start_date"`
	InsuranceEndDate        time.Time  `json:"insurance_end_date"`
	CancellationRequestDate *time.Time `json:"cancellation_request_date,omitempty"`
	CancellationDate        *time.Time `json:"cancellation_date,omitempty"`
	WorkerID                string     `json:"worker_id"`
	WorkerName              string     `json:"worker_name"`
	PassportID              string     `json:"passport_id"`
	AccountStatus           string     `json:"account_status"`
	OwnerName               string     `json:"owner_name,omitempty"`
}

type ListPagination struct {
	Page          int   `json:"page"`
	Limit         int   `json:"limit"`
	TotalApproved int64 `json:"total_approved"`
	TotalPending  int64 `json:"total_pending"`
}

type ListResponse struct {
	Summary    Summary        `json:"summary"`
	Approved   []Row          `json:"approved"`
	Pending    []Row          `json:"pending"`
	Pagination ListPagination `json:"pagination"`
}

// Service is the account lifecycle engine: the only code that moves
// account_status or touches cancellation timestamps. Each transition runs
// its guards and writes inside a single transaction.
type Service interface {
	RequestByWorker(ctx context.Context, req RequestByWorkerRequest) (RequestByWorkerResponse, error)
	RequestByInsurance(ctx context.Context, req RequestByInsuranceRequest) (RequestByInsuranceResponse, error)
	Approve(ctx context.Context, req ApproveRequest) (ApproveResponse, error)
	Reject(ctx context.Context, req RejectRequest) (RejectResponse, error)
	List(ctx context.Context, req ListRequest) (ListResponse, error)
}

var (
	ErrMissingFields      = errors.New("missing_cancellation_fields")
	ErrInvalidWorkerID    = errors.New("invalid_worker_id_param")
	ErrInvalidInsuranceID = errors.New("invalid_insurance_id_param")
	ErrWorkerNotFound     = errors.New("cancellation_worker_not_found")
	ErrInsuranceNotFound  = errors.New("cancellation_insurance_not_found")
	ErrAlreadyCancelling  = errors.New("already_cancelling")
	ErrNoOpenInsurance    = errors.New("no_open_insurance")
	ErrInvalidDeparture   = errors.New("invalid_departure_date")
	ErrBankMismatch       = errors.New("bank_account_mismatch")
	ErrNotOwned           = errors.New("insurance_not_owned")
	ErrAlreadyRequested   = errors.New("already_requested")
	ErrAlreadyApproved    = errors.New("already_approved")
	ErrNoRequest          = errors.New("no_cancellation_request")
	ErrInvalidStatus      = errors.New("invalid_status_filter")
)
