package domain

import (
	"context"
	"errors"

	"github.com/harvestcover/seasonworker/pkg/db/pagination"
)

type RegisterWorkerRequest struct {
	Pin             string `json:"pin"`
	Name            string `json:"name"`
	PassportID      string `json:"passport_id"`
	BirthDate       string `json:"birth_date"`
	Gender          string `json:"gender"`
	RegisterStatus  string `json:"register_status"`
	CountryCode     string `json:"country_code"`
	BankAccountNo   string `json:"bank_account_no"`
	BankName        string `json:"bank_name"`
	ManagerPublicID string `json:"manager_public_id"`
	EmployerID      string `json:"employer_id"`

	PolicyNumber       string `json:"policy_number"`
	InsuranceStartDate string `json:"insurance_start_date"`
	InsuranceEndDate   string `json:"insurance_end_date"`
}

type RegisterWorkerResponse struct {
	Worker    SeasonWorker `json:"worker"`
	Insurance Insurance    `json:"insurance"`
}

type ListWorkersRequest struct {
	// Scope resolved by the caller from the authenticated manager.
	Scope ListWorkerFilter

	Name        string `form:"name"`
	Passport    string `form:"passport"`
	Birth       string `form:"birth"`
	Country     string `form:"country"`
	InsuranceID string `form:"insurance_id"`
	Stay        string `form:"stay"`
	pagination.Pagination
}

type ListWorkersResponse struct {
	Workers  []WorkerRow         `json:"workers"`
	PageInfo pagination.PageInfo `json:"page_info"`
}

type WorkerDetail struct {
	Worker     SeasonWorker `json:"worker"`
	Insurances []Insurance  `json:"insurances"`
}

type Service interface {
	Register(ctx context.Context, req RegisterWorkerRequest) (RegisterWorkerResponse, error)
	List(ctx context.Context, req ListWorkersRequest) (ListWorkersResponse, error)
	GetByID(ctx context.Context, id string) (WorkerDetail, error)
	ListInsurances(ctx context.Context, workerID string) ([]Insurance, error)
}

var (
	ErrMissingFields      = errors.New("missing_worker_fields")
	ErrInvalidGender      = errors.New("invalid_gender")
	ErrInvalidRegister    = errors.New("invalid_register_status")
	ErrInvalidBirthDate   = errors.New("invalid_birth_date")
	ErrInvalidPeriod      = errors.New("invalid_insurance_period")
	ErrInvalidID          = errors.New("invalid_worker_id")
	ErrNotFound           = errors.New("worker_not_found")
	ErrInvalidInsuranceID = errors.New("invalid_insurance_id")
)
