package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/harvestcover/seasonworker/internal/account"
	"github.com/harvestcover/seasonworker/internal/config"
	"github.com/harvestcover/seasonworker/internal/employer/domain"
	"github.com/harvestcover/seasonworker/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	GenID  *snowflake.Node
	Repo   domain.Repository
	Portal *config.PortalConfigHolder
}

type Service struct {
	db     *gorm.DB
	log    *zap.Logger
	genID  *snowflake.Node
	repo   domain.Repository
	portal *config.PortalConfigHolder
}

func New(p Params) domain.Service {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("employer.service"),
		genID:  p.GenID,
		repo:   p.Repo,
		portal: p.Portal,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateEmployerRequest) (domain.Employer, error) {
	pin := strings.TrimSpace(req.Pin)
	ownerName := strings.TrimSpace(req.OwnerName)
	phone := strings.TrimSpace(req.Phone)
	if pin == "" || ownerName == "" || phone == "" {
		return domain.Employer{}, domain.ErrMissingFields
	}

	now := time.Now().UTC()
	employer := domain.Employer{
		ID:            s.genID.Generate(),
		Pin:           pin,
		OwnerName:     ownerName,
		BusinessName:  strings.TrimSpace(req.BusinessName),
		Phone:         phone,
		AccountStatus: account.StatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if id, err := parseOptionalID(req.ManagerPublicID); err == nil {
		employer.ManagerPublicID = id
	}
	if id, err := parseOptionalID(req.ManagerGeneralID); err == nil {
		employer.ManagerGeneralID = id
	}
	if id, err := parseOptionalID(req.LocalGovernmentID); err == nil {
		employer.LocalGovernmentID = id
	}

	if err := s.repo.Insert(ctx, s.db, &employer); err != nil {
		return domain.Employer{}, err
	}
	return employer, nil
}

func (s *Service) List(ctx context.Context, req domain.ListEmployerRequest) (domain.ListEmployerResponse, error) {
	portal := s.portal.Get()
	page := req.Pagination.Normalize(portal.DefaultPageSize, portal.MaxPageSize)

	filter := domain.ListEmployerFilter{
		OwnerName: strings.TrimSpace(req.OwnerName),
		Phone:     strings.TrimSpace(req.Phone),
	}
	if id, err := parseOptionalID(req.ManagerGeneralID); err == nil {
		filter.ManagerGeneralID = id
	}

	employers, total, err := s.repo.List(ctx, s.db, filter, page)
	if err != nil {
		return domain.ListEmployerResponse{}, err
	}

	return domain.ListEmployerResponse{
		Employers: employers,
		PageInfo:  pagination.BuildPageInfo(page, total),
	}, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Employer, error) {
	employerID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || employerID == 0 {
		return domain.Employer{}, domain.ErrInvalidID
	}

	employer, err := s.repo.FindByID(ctx, s.db, employerID)
	if err != nil {
		return domain.Employer{}, err
	}
	if employer == nil {
		return domain.Employer{}, domain.ErrNotFound
	}
	return *employer, nil
}

func parseOptionalID(value string) (snowflake.ID, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	return snowflake.ParseString(value)
}
