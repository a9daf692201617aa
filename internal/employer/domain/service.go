package domain

import (
	"context"
	"errors"

	"github.com/harvestcover/seasonworker/pkg/db/pagination"
)

type ListEmployerRequest struct {
	OwnerName        string `form:"owner_name"`
	Phone            string `form:"phone"`
	ManagerGeneralID string `form:"manager_general_id"`
	pagination.Pagination
}

type ListEmployerResponse struct {
	Employers []Employer          `json:"employers"`
	PageInfo  pagination.PageInfo `json:"page_info"`
}

type CreateEmployerRequest struct {
	Pin               string `json:"pin"`
	OwnerName         string `json:"owner_name"`
	BusinessName      string `json:"business_name"`
	Phone             string `json:"phone"`
	ManagerPublicID   string `json:"manager_public_id"`
	ManagerGeneralID  string `json:"manager_general_id"`
	LocalGovernmentID string `json:"local_government_id"`
}

type Service interface {
	Create(ctx context.Context, req CreateEmployerRequest) (Employer, error)
	List(ctx context.Context, req ListEmployerRequest) (ListEmployerResponse, error)
	GetByID(ctx context.Context, id string) (Employer, error)
}

var (
	ErrMissingFields = errors.New("missing_employer_fields")
	ErrInvalidID     = errors.New("invalid_employer_id")
	ErrNotFound      = errors.New("employer_not_found")
)
