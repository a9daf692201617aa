package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	authdomain "github.com/harvestcover/seasonworker/internal/auth/domain"
	"github.com/harvestcover/seasonworker/internal/authorization"
	cancellationdomain "github.com/harvestcover/seasonworker/internal/cancellation/domain"
	employerdomain "github.com/harvestcover/seasonworker/internal/employer/domain"
	managerdomain "github.com/harvestcover/seasonworker/internal/manager/domain"
	regiondomain "github.com/harvestcover/seasonworker/internal/region/domain"
	workerdomain "github.com/harvestcover/seasonworker/internal/worker/domain"
	"gorm.io/gorm"
)

type errorPayload struct {
	Type    string `json:"type"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
	ErrInternal       = errors.New("internal_error")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	switch {
	case isValidationError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Code:    err.Error(),
			Message: "invalid request",
		}
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrInvalidCredentials):
		// One message regardless of which credential failed.
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "invalid credentials",
		}
	case errors.Is(err, ErrForbidden),
		errors.Is(err, authorization.ErrForbidden),
		errors.Is(err, cancellationdomain.ErrNotOwned):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "forbidden",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, authdomain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, errorPayload{
			Type:    "too_many_attempts",
			Message: "too many login attempts",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, authdomain.ErrMissingFields),
		errors.Is(err, authdomain.ErrInvalidBirthFormat),
		errors.Is(err, authdomain.ErrUnsupportedRole),
		errors.Is(err, workerdomain.ErrMissingFields),
		errors.Is(err, workerdomain.ErrInvalidGender),
		errors.Is(err, workerdomain.ErrInvalidRegister),
		errors.Is(err, workerdomain.ErrInvalidBirthDate),
		errors.Is(err, workerdomain.ErrInvalidPeriod),
		errors.Is(err, workerdomain.ErrInvalidID),
		errors.Is(err, workerdomain.ErrInvalidInsuranceID),
		errors.Is(err, employerdomain.ErrMissingFields),
		errors.Is(err, employerdomain.ErrInvalidID),
		errors.Is(err, managerdomain.ErrInvalidKind),
		errors.Is(err, managerdomain.ErrInvalidID),
		errors.Is(err, managerdomain.ErrMissingFields),
		errors.Is(err, managerdomain.ErrInvalidStatus),
		errors.Is(err, managerdomain.ErrInvalidAdminID),
		errors.Is(err, cancellationdomain.ErrMissingFields),
		errors.Is(err, cancellationdomain.ErrInvalidWorkerID),
		errors.Is(err, cancellationdomain.ErrInvalidInsuranceID),
		errors.Is(err, cancellationdomain.ErrAlreadyCancelling),
		errors.Is(err, cancellationdomain.ErrNoOpenInsurance),
		errors.Is(err, cancellationdomain.ErrInvalidDeparture),
		errors.Is(err, cancellationdomain.ErrBankMismatch),
		errors.Is(err, cancellationdomain.ErrAlreadyRequested),
		errors.Is(err, cancellationdomain.ErrAlreadyApproved),
		errors.Is(err, cancellationdomain.ErrNoRequest),
		errors.Is(err, cancellationdomain.ErrInvalidStatus):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, workerdomain.ErrNotFound),
		errors.Is(err, employerdomain.ErrNotFound),
		errors.Is(err, managerdomain.ErrNotFound),
		errors.Is(err, regiondomain.ErrScopeNotFound),
		errors.Is(err, cancellationdomain.ErrWorkerNotFound),
		errors.Is(err, cancellationdomain.ErrInsuranceNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

// classifyErrorForLog labels request log lines without leaking messages.
func classifyErrorForLog(err error) (string, string) {
	status, payload := mapError(err)
	switch {
	case status >= http.StatusInternalServerError:
		return "internal", payload.Type
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return "auth", payload.Type
	case status == http.StatusTooManyRequests:
		return "throttle", payload.Type
	default:
		return "client", payload.Type
	}
}
