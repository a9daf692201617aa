package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

// Credentials carries everything a login attempt may present. Which fields
// are required depends on the role; unused fields are ignored. The SMS code
// is accepted for employers but not verified anywhere yet.
type Credentials struct {
	Type            string `json:"type" form:"type"`
	Region          string `json:"region" form:"region"`
	LocalGovernment string `json:"local_government" form:"local_government"`
	PinCode         string `json:"pinCode" form:"pinCode"`
	Name            string `json:"name" form:"name"`
	PassportNo      string `json:"passportNo" form:"passportNo"`
	Birth           string `json:"birth" form:"birth"`
	Phone           string `json:"phone" form:"phone"`
	SMSCode         string `json:"smsCode" form:"smsCode"`
	Step            int    `json:"step" form:"step"`
}

// Principal identifies an authenticated caller. Exactly the IDs relevant
// to the role are set.
type Principal struct {
	Role             Role         `json:"role"`
	AdminID          snowflake.ID `json:"admin_id,omitempty"`
	ManagerPublicID  snowflake.ID `json:"manager_public_id,omitempty"`
	ManagerGeneralID snowflake.ID `json:"manager_general_id,omitempty"`
	WorkerID         snowflake.ID `json:"worker_id,omitempty"`
	EmployerID       snowflake.ID `json:"employer_id,omitempty"`
}

func (p Principal) ActorID() string {
	switch p.Role {
	case RoleAdmin:
		return p.AdminID.String()
	case RolePublic:
		return p.ManagerPublicID.String()
	case RoleGeneral:
		return p.ManagerGeneralID.String()
	case RoleSeasonWorker:
		return p.WorkerID.String()
	case RoleEmployer:
		return p.EmployerID.String()
	}
	return ""
}

type LoginResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	User    any    `json:"user,omitempty"`
	Group   Role   `json:"group,omitempty"`
}

type Service interface {
	// Login runs the full per-role verification and returns the matched
	// record. For two-step roles, step 1 confirms scope and PIN only and
	// returns no record.
	Login(ctx context.Context, creds Credentials) (LoginResult, error)

	// Verify authenticates without producing a response body. It backs the
	// per-request credential check on protected reads; nothing is cached
	// between requests.
	Verify(ctx context.Context, creds Credentials) (Principal, error)
}

var (
	ErrMissingFields      = errors.New("missing_credentials")
	ErrInvalidBirthFormat = errors.New("invalid_birth_format")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrUnsupportedRole    = errors.New("unsupported_login_type")
	ErrTooManyAttempts    = errors.New("too_many_attempts")
)
