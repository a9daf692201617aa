package authorization

import (
	"context"
	"errors"
)

// Service answers whether an authenticated principal may perform an action
// on an object. Role-to-permission policy is seeded at startup and enforced
// through casbin; per-request role bindings are derived from the login role.
type Service interface {
	Authorize(ctx context.Context, actor string, role string, object string, action string) error
}

var (
	ErrInvalidActor  = errors.New("invalid_actor")
	ErrInvalidRole   = errors.New("invalid_role")
	ErrInvalidObject = errors.New("invalid_object")
	ErrInvalidAction = errors.New("invalid_action")
	ErrForbidden     = errors.New("forbidden")
)
