package domain

import (
	"context"
	"errors"
)

type ListRegionLocalGovResponse struct {
	Regions          []Region          `json:"regions"`
	LocalGovernments []LocalGovernment `json:"localGovernments"`
}

type Service interface {
	ListRegionLocalGov(ctx context.Context) (ListRegionLocalGovResponse, error)
}

var ErrScopeNotFound = errors.New("scope_not_found")
