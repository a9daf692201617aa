package domain

import (
	"context"

	"github.com/harvestcover/seasonworker/pkg/db/pagination"
)

// Entry is what callers record; request metadata is filled in from the
// context by the service.
type Entry struct {
	ActorType  string
	ActorID    string
	Action     string
	Resource   string
	ResourceID string
	Metadata   map[string]any
}

type ListAuditRequest struct {
	Resource   string `form:"resource"`
	ResourceID string `form:"resource_id"`
	Action     string `form:"action"`
	pagination.Pagination
}

type ListAuditResponse struct {
	Logs     []AuditLog          `json:"logs"`
	PageInfo pagination.PageInfo `json:"page_info"`
}

type Service interface {
	// Record never fails the caller's operation; persistence errors are
	// logged and swallowed.
	Record(ctx context.Context, entry Entry)
	List(ctx context.Context, req ListAuditRequest) (ListAuditResponse, error)
}
