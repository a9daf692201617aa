package domain

import (
	"context"
	"errors"
)

// Kind selects which manager table an operation addresses.
type Kind string

const (
	KindPublic  Kind = "public"
	KindGeneral Kind = "general"
)

func (k Kind) Valid() bool {
	return k == KindPublic || k == KindGeneral
}

type CreateManagerRequest struct {
	AdminID       string `json:"admin_id"`
	Pin           string `json:"pin"`
	AccountStatus string `json:"account_status"`
}

type UpdateManagerRequest struct {
	Pin           string `json:"pin"`
	AccountStatus string `json:"account_status"`
}

type ListManagersResponse struct {
	Public  []PublicManager  `json:"public,omitempty"`
	General []GeneralManager `json:"general,omitempty"`
	Count   int              `json:"count"`
}

type Service interface {
	List(ctx context.Context, kind Kind) (ListManagersResponse, error)
	Get(ctx context.Context, kind Kind, id string) (any, error)
	Create(ctx context.Context, kind Kind, req CreateManagerRequest) (any, error)
	Update(ctx context.Context, kind Kind, id string, req UpdateManagerRequest) (any, error)
}

var (
	ErrInvalidKind    = errors.New("invalid_manager_kind")
	ErrInvalidID      = errors.New("invalid_manager_id")
	ErrMissingFields  = errors.New("missing_manager_fields")
	ErrInvalidStatus  = errors.New("invalid_account_status")
	ErrNotFound       = errors.New("manager_not_found")
	ErrInvalidAdminID = errors.New("invalid_admin_id")
)
