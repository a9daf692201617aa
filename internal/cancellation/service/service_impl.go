package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/harvestcover/seasonworker/internal/account"
	auditdomain "github.com/harvestcover/seasonworker/internal/audit/domain"
	"github.com/harvestcover/seasonworker/internal/cancellation/domain"
	"github.com/harvestcover/seasonworker/internal/clock"
	"github.com/harvestcover/seasonworker/internal/config"
	"github.com/harvestcover/seasonworker/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Clock   clock.Clock
	Repo    domain.Repository
	Metrics *metrics.PortalMetrics
	Audit   auditdomain.Service
	Portal  *config.PortalConfigHolder
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	clock   clock.Clock
	repo    domain.Repository
	metrics *metrics.PortalMetrics
	audit   auditdomain.Service
	portal  *config.PortalConfigHolder
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("cancellation.service"),
		clock:   p.Clock,
		repo:    p.Repo,
		metrics: p.Metrics,
		audit:   p.Audit,
		portal:  p.Portal,
	}
}

// RequestByWorker marks the worker CancelPending and stamps the request
// date on all of their open insurance rows. Every guard runs before the
// first write; a failed guard leaves no trace.
func (s *Service) RequestByWorker(ctx context.Context, req domain.RequestByWorkerRequest) (domain.RequestByWorkerResponse, error) {
	workerID, err := parseID(req.WorkerID, domain.ErrInvalidWorkerID)
	if err != nil {
		return domain.RequestByWorkerResponse{}, err
	}

	departure := strings.TrimSpace(req.DepartureDate)
	bankAccount := strings.TrimSpace(req.BankAccount)
	if departure == "" || bankAccount == "" {
		return domain.RequestByWorkerResponse{}, domain.ErrMissingFields
	}

	ctx, cancel := s.boundCtx(ctx)
	defer cancel()

	var resp domain.RequestByWorkerResponse
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		worker, err := s.repo.FindWorker(ctx, tx, workerID)
		if err != nil {
			return err
		}
		if worker == nil {
			return domain.ErrWorkerNotFound
		}
		if worker.AccountStatus.Cancelling() {
			return domain.ErrAlreadyCancelling
		}

		departureDate, err := time.Parse(dateLayout, departure)
		if err != nil {
			return domain.ErrInvalidDeparture
		}
		today := truncateToDay(s.clock.Now())
		if !departureDate.After(today) {
			return domain.ErrInvalidDeparture
		}

		if worker.BankAccountNo != "" && worker.BankAccountNo != bankAccount {
			return domain.ErrBankMismatch
		}

		// CancelPending promises at least one stampable row; with nothing
		// open the transition would leave the status orphaned.
		open, err := s.repo.CountOpenInsurances(ctx, tx, workerID)
		if err != nil {
			return err
		}
		if open == 0 {
			return domain.ErrNoOpenInsurance
		}

		now := s.clock.Now()
		if err := s.repo.UpdateWorkerStatus(ctx, tx, workerID, account.StatusCancelPending); err != nil {
			return err
		}
		if err := s.repo.MarkWorkerRequested(ctx, tx, workerID, now); err != nil {
			return err
		}

		resp = domain.RequestByWorkerResponse{
			WorkerID:      workerID.String(),
			AccountStatus: account.StatusCancelPending,
			DepartureDate: departure,
			BankAccount:   bankAccount,
		}
		return nil
	})
	if err != nil {
		s.metrics.RecordTransition("request", "failure")
		return domain.RequestByWorkerResponse{}, err
	}

	s.metrics.RecordTransition("request", "success")
	s.audit.Record(ctx, auditdomain.Entry{
		ActorType:  "seasonWorker",
		ActorID:    workerID.String(),
		Action:     "cancellation.request",
		Resource:   "worker",
		ResourceID: workerID.String(),
		Metadata:   map[string]any{"departure_date": departure},
	})
	return resp, nil
}

// RequestByInsurance targets one insurance row. The worker in the path
// must own the row; conflicts surface before any write.
func (s *Service) RequestByInsurance(ctx context.Context, req domain.RequestByInsuranceRequest) (domain.RequestByInsuranceResponse, error) {
	workerID, err := parseID(req.WorkerID, domain.ErrInvalidWorkerID)
	if err != nil {
		return domain.RequestByInsuranceResponse{}, err
	}
	insuranceID, err := parseID(req.InsuranceID, domain.ErrInvalidInsuranceID)
	if err != nil {
		return domain.RequestByInsuranceResponse{}, err
	}

	ctx, cancel := s.boundCtx(ctx)
	defer cancel()

	var resp domain.RequestByInsuranceResponse
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		insurance, err := s.repo.FindInsurance(ctx, tx, insuranceID)
		if err != nil {
			return err
		}
		if insurance == nil {
			return domain.ErrInsuranceNotFound
		}
		if insurance.WorkerID != workerID {
			return domain.ErrNotOwned
		}
		if insurance.CancellationRequestDate != nil {
			return domain.ErrAlreadyRequested
		}
		if insurance.CancellationDate != nil {
			return domain.ErrAlreadyApproved
		}

		now := s.clock.Now()
		if err := s.repo.MarkInsuranceRequested(ctx, tx, insuranceID, now); err != nil {
			return err
		}
		if err := s.repo.UpdateWorkerStatus(ctx, tx, workerID, account.StatusCancelPending); err != nil {
			return err
		}

		resp = domain.RequestByInsuranceResponse{
			InsuranceID:             insuranceID.String(),
			PolicyNumber:            insurance.PolicyNumber,
			CancellationRequestDate: now,
			WorkerStatus:            account.StatusCancelPending,
		}
		return nil
	})
	if err != nil {
		s.metrics.RecordTransition("request", "failure")
		return domain.RequestByInsuranceResponse{}, err
	}

	s.metrics.RecordTransition("request", "success")
	s.audit.Record(ctx, auditdomain.Entry{
		ActorType:  "seasonWorker",
		ActorID:    workerID.String(),
		Action:     "cancellation.request",
		Resource:   "insurance",
		ResourceID: insuranceID.String(),
		Metadata:   map[string]any{"note": strings.TrimSpace(req.Note)},
	})
	return resp, nil
}

// Approve finalizes a pending cancellation: the insurance row gets its
// cancellation date and the worker becomes Cancel.
func (s *Service) Approve(ctx context.Context, req domain.ApproveRequest) (domain.ApproveResponse, error) {
	insuranceID, err := parseID(req.InsuranceID, domain.ErrInvalidInsuranceID)
	if err != nil {
		return domain.ApproveResponse{}, err
	}

	ctx, cancel := s.boundCtx(ctx)
	defer cancel()

	var resp domain.ApproveResponse
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		insurance, err := s.repo.FindInsurance(ctx, tx, insuranceID)
		if err != nil {
			return err
		}
		if insurance == nil {
			return domain.ErrInsuranceNotFound
		}
		if insurance.CancellationRequestDate == nil {
			return domain.ErrNoRequest
		}
		if insurance.CancellationDate != nil {
			return domain.ErrAlreadyApproved
		}

		now := s.clock.Now()
		if err := s.repo.MarkInsuranceCancelled(ctx, tx, insuranceID, now); err != nil {
			return err
		}
		if err := s.repo.UpdateWorkerStatus(ctx, tx, insurance.WorkerID, account.StatusCancel); err != nil {
			return err
		}

		resp = domain.ApproveResponse{
			InsuranceID:             insuranceID.String(),
			PolicyNumber:            insurance.PolicyNumber,
			CancellationRequestDate: insurance.CancellationRequestDate,
			CancellationDate:        now,
			WorkerID:                insurance.WorkerID.String(),
			WorkerStatus:            account.StatusCancel,
		}
		return nil
	})
	if err != nil {
		s.metrics.RecordTransition("approve", "failure")
		return domain.ApproveResponse{}, err
	}

	s.metrics.RecordTransition("approve", "success")
	s.audit.Record(ctx, auditdomain.Entry{
		ActorType:  "admin",
		ActorID:    strings.TrimSpace(req.AdminID),
		Action:     "cancellation.approve",
		Resource:   "insurance",
		ResourceID: insuranceID.String(),
		Metadata:   map[string]any{"note": strings.TrimSpace(req.Note)},
	})
	return resp, nil
}

// Reject clears the pending request and restores the worker to Active.
func (s *Service) Reject(ctx context.Context, req domain.RejectRequest) (domain.RejectResponse, error) {
	insuranceID, err := parseID(req.InsuranceID, domain.ErrInvalidInsuranceID)
	if err != nil {
		return domain.RejectResponse{}, err
	}

	ctx, cancel := s.boundCtx(ctx)
	defer cancel()

	var resp domain.RejectResponse
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		insurance, err := s.repo.FindInsurance(ctx, tx, insuranceID)
		if err != nil {
			return err
		}
		if insurance == nil {
			return domain.ErrInsuranceNotFound
		}
		if insurance.CancellationRequestDate == nil {
			return domain.ErrNoRequest
		}
		if insurance.CancellationDate != nil {
			return domain.ErrAlreadyApproved
		}

		if err := s.repo.ClearInsuranceRequest(ctx, tx, insuranceID); err != nil {
			return err
		}
		if err := s.repo.UpdateWorkerStatus(ctx, tx, insurance.WorkerID, account.StatusActive); err != nil {
			return err
		}

		resp = domain.RejectResponse{
			InsuranceID:     insuranceID.String(),
			PolicyNumber:    insurance.PolicyNumber,
			WorkerID:        insurance.WorkerID.String(),
			WorkerStatus:    account.StatusActive,
			RejectionReason: strings.TrimSpace(req.Reason),
		}
		return nil
	})
	if err != nil {
		s.metrics.RecordTransition("reject", "failure")
		return domain.RejectResponse{}, err
	}

	s.metrics.RecordTransition("reject", "success")
	s.audit.Record(ctx, auditdomain.Entry{
		ActorType:  "admin",
		ActorID:    strings.TrimSpace(req.AdminID),
		Action:     "cancellation.reject",
		Resource:   "insurance",
		ResourceID: insuranceID.String(),
		Metadata:   map[string]any{"reason": strings.TrimSpace(req.Reason)},
	})
	return resp, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (domain.ListResponse, error) {
	status, ok := domain.ParseStatusFilter(strings.TrimSpace(req.Status))
	if !ok {
		return domain.ListResponse{}, domain.ErrInvalidStatus
	}

	portal := s.portal.Get()
	page := req.Pagination.Normalize(portal.DefaultPageSize, portal.MaxPageSize)

	ctx, cancel := context.WithTimeout(ctx, portal.StatementTimeout)
	defer cancel()

	summary, err := s.repo.Summary(ctx, s.db)
	if err != nil {
		return domain.ListResponse{}, err
	}

	approved := []domain.Row{}
	pending := []domain.Row{}

	if status == domain.StatusApproved || status == domain.StatusAll {
		approved, err = s.repo.ListApproved(ctx, s.db, page)
		if err != nil {
			return domain.ListResponse{}, err
		}
	}
	if status == domain.StatusPending || status == domain.StatusAll {
		pending, err = s.repo.ListPending(ctx, s.db, page)
		if err != nil {
			return domain.ListResponse{}, err
		}
	}

	return domain.ListResponse{
		Summary:  summary,
		Approved: approved,
		Pending:  pending,
		Pagination: domain.ListPagination{
			Page:          page.Page,
			Limit:         page.Limit,
			TotalApproved: summary.ApprovedCount,
			TotalPending:  summary.PendingCount,
		},
	}, nil
}

// boundCtx caps how long a transition may hold its transaction. A timeout
// surfaces to the caller as a context deadline error.
func (s *Service) boundCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.portal.Get().StatementTimeout)
}

func parseID(value string, invalid error) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, invalid
	}
	return id, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
