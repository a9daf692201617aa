package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/harvestcover/seasonworker/internal/account"
	"github.com/harvestcover/seasonworker/internal/clock"
	"github.com/harvestcover/seasonworker/internal/config"
	"github.com/harvestcover/seasonworker/internal/worker/domain"
	"github.com/harvestcover/seasonworker/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	GenID  *snowflake.Node
	Clock  clock.Clock
	Repo   domain.Repository
	Portal *config.PortalConfigHolder
}

type Service struct {
	db     *gorm.DB
	log    *zap.Logger
	genID  *snowflake.Node
	clock  clock.Clock
	repo   domain.Repository
	portal *config.PortalConfigHolder
}

func New(p Params) domain.Service {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("worker.service"),
		genID:  p.GenID,
		clock:  p.Clock,
		repo:   p.Repo,
		portal: p.Portal,
	}
}

// Register creates the worker together with the first insurance row in one
// transaction. New accounts always start as ActivePending; activation is a
// separate administrative step.
func (s *Service) Register(ctx context.Context, req domain.RegisterWorkerRequest) (domain.RegisterWorkerResponse, error) {
	pin := strings.TrimSpace(req.Pin)
	name := strings.TrimSpace(req.Name)
	passport := strings.TrimSpace(req.PassportID)
	birth := strings.TrimSpace(req.BirthDate)
	if pin == "" || name == "" || passport == "" || birth == "" || req.Gender == "" {
		return domain.RegisterWorkerResponse{}, domain.ErrMissingFields
	}

	if _, err := time.Parse(dateLayout, birth); err != nil {
		return domain.RegisterWorkerResponse{}, domain.ErrInvalidBirthDate
	}

	gender := domain.Gender(req.Gender)
	if !gender.Valid() {
		return domain.RegisterWorkerResponse{}, domain.ErrInvalidGender
	}

	registerStatus := domain.RegisterStatus(req.RegisterStatus)
	if req.RegisterStatus == "" {
		registerStatus = domain.RegisterNone
	}
	if !registerStatus.Valid() {
		return domain.RegisterWorkerResponse{}, domain.ErrInvalidRegister
	}

	now := s.clock.Now()
	start, end, err := s.insurancePeriod(req, now)
	if err != nil {
		return domain.RegisterWorkerResponse{}, err
	}

	managerPublicID, err := parseOptionalID(req.ManagerPublicID)
	if err != nil {
		return domain.RegisterWorkerResponse{}, domain.ErrInvalidID
	}
	employerID, err := parseOptionalID(req.EmployerID)
	if err != nil {
		return domain.RegisterWorkerResponse{}, domain.ErrInvalidID
	}

	worker := domain.SeasonWorker{
		ID:              s.genID.Generate(),
		Pin:             pin,
		Name:            name,
		PassportID:      passport,
		BirthDate:       birth,
		Gender:          gender,
		RegisterStatus:  registerStatus,
		AccountStatus:   account.StatusActivePending,
		CountryCode:     strings.TrimSpace(req.CountryCode),
		BankAccountNo:   strings.TrimSpace(req.BankAccountNo),
		BankName:        strings.TrimSpace(req.BankName),
		ManagerPublicID: managerPublicID,
		EmployerID:      employerID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	insurance := domain.Insurance{
		ID:                 s.genID.Generate(),
		PolicyNumber:       strings.TrimSpace(req.PolicyNumber),
		InsuranceStartDate: start,
		InsuranceEndDate:   end,
		WorkerID:           worker.ID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.InsertWorker(ctx, tx, &worker); err != nil {
			return err
		}
		return s.repo.InsertInsurance(ctx, tx, &insurance)
	})
	if err != nil {
		return domain.RegisterWorkerResponse{}, err
	}

	s.log.Info("worker registered",
		zap.String("worker_id", worker.ID.String()),
		zap.String("register_status", string(worker.RegisterStatus)),
	)
	return domain.RegisterWorkerResponse{Worker: worker, Insurance: insurance}, nil
}

func (s *Service) insurancePeriod(req domain.RegisterWorkerRequest, now time.Time) (time.Time, time.Time, error) {
	start := now
	end := now.AddDate(1, 0, 0)
	if v := strings.TrimSpace(req.InsuranceStartDate); v != "" {
		parsed, err := time.Parse(dateLayout, v)
		if err != nil {
			return time.Time{}, time.Time{}, domain.ErrInvalidPeriod
		}
		start = parsed
	}
	if v := strings.TrimSpace(req.InsuranceEndDate); v != "" {
		parsed, err := time.Parse(dateLayout, v)
		if err != nil {
			return time.Time{}, time.Time{}, domain.ErrInvalidPeriod
		}
		end = parsed
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, domain.ErrInvalidPeriod
	}
	return start, end, nil
}

func (s *Service) List(ctx context.Context, req domain.ListWorkersRequest) (domain.ListWorkersResponse, error) {
	filter := req.Scope
	filter.Name = strings.TrimSpace(req.Name)
	filter.Passport = strings.TrimSpace(req.Passport)
	filter.BirthYYMMDD = strings.TrimSpace(req.Birth)
	filter.CountryCode = strings.TrimSpace(req.Country)

	if v := strings.TrimSpace(req.InsuranceID); v != "" {
		id, err := snowflake.ParseString(v)
		if err != nil {
			return domain.ListWorkersResponse{}, domain.ErrInvalidInsuranceID
		}
		filter.InsuranceID = id
	}

	// stay is "start~end" with both sides in YYYY-MM-DD.
	if v := strings.TrimSpace(req.Stay); v != "" {
		parts := strings.SplitN(v, "~", 2)
		if len(parts) == 2 {
			start, errStart := time.Parse(dateLayout, strings.TrimSpace(parts[0]))
			end, errEnd := time.Parse(dateLayout, strings.TrimSpace(parts[1]))
			if errStart == nil && errEnd == nil {
				filter.StayStart = &start
				filter.StayEnd = &end
			}
		}
	}

	portal := s.portal.Get()
	page := req.Pagination.Normalize(portal.DefaultPageSize, portal.MaxPageSize)

	rows, total, err := s.repo.List(ctx, s.db, filter, page)
	if err != nil {
		return domain.ListWorkersResponse{}, err
	}

	return domain.ListWorkersResponse{
		Workers:  rows,
		PageInfo: pagination.BuildPageInfo(page, total),
	}, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.WorkerDetail, error) {
	workerID, err := parseID(id)
	if err != nil {
		return domain.WorkerDetail{}, err
	}

	worker, err := s.repo.FindByID(ctx, s.db, workerID)
	if err != nil {
		return domain.WorkerDetail{}, err
	}
	if worker == nil {
		return domain.WorkerDetail{}, domain.ErrNotFound
	}

	insurances, err := s.repo.ListInsurancesByWorker(ctx, s.db, workerID)
	if err != nil {
		return domain.WorkerDetail{}, err
	}

	return domain.WorkerDetail{Worker: *worker, Insurances: insurances}, nil
}

func (s *Service) ListInsurances(ctx context.Context, workerID string) ([]domain.Insurance, error) {
	id, err := parseID(workerID)
	if err != nil {
		return nil, err
	}

	worker, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if worker == nil {
		return nil, domain.ErrNotFound
	}

	return s.repo.ListInsurancesByWorker(ctx, s.db, id)
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func parseOptionalID(value string) (snowflake.ID, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	return snowflake.ParseString(value)
}
