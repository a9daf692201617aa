package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/harvestcover/seasonworker/internal/account"
	"github.com/harvestcover/seasonworker/internal/manager/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("manager.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) List(ctx context.Context, kind domain.Kind) (domain.ListManagersResponse, error) {
	switch kind {
	case domain.KindPublic:
		managers, err := s.repo.ListPublic(ctx, s.db)
		if err != nil {
			return domain.ListManagersResponse{}, err
		}
		return domain.ListManagersResponse{Public: managers, Count: len(managers)}, nil
	case domain.KindGeneral:
		managers, err := s.repo.ListGeneral(ctx, s.db)
		if err != nil {
			return domain.ListManagersResponse{}, err
		}
		return domain.ListManagersResponse{General: managers, Count: len(managers)}, nil
	default:
		return domain.ListManagersResponse{}, domain.ErrInvalidKind
	}
}

func (s *Service) Get(ctx context.Context, kind domain.Kind, id string) (any, error) {
	managerID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	switch kind {
	case domain.KindPublic:
		manager, err := s.repo.FindPublicByID(ctx, s.db, managerID)
		if err != nil {
			return nil, err
		}
		if manager == nil {
			return nil, domain.ErrNotFound
		}
		return manager, nil
	case domain.KindGeneral:
		manager, err := s.repo.FindGeneralByID(ctx, s.db, managerID)
		if err != nil {
			return nil, err
		}
		if manager == nil {
			return nil, domain.ErrNotFound
		}
		return manager, nil
	default:
		return nil, domain.ErrInvalidKind
	}
}

func (s *Service) Create(ctx context.Context, kind domain.Kind, req domain.CreateManagerRequest) (any, error) {
	if !kind.Valid() {
		return nil, domain.ErrInvalidKind
	}

	pin := strings.TrimSpace(req.Pin)
	if pin == "" || strings.TrimSpace(req.AdminID) == "" || strings.TrimSpace(req.AccountStatus) == "" {
		return nil, domain.ErrMissingFields
	}

	status := account.Status(req.AccountStatus)
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	adminID, err := snowflake.ParseString(strings.TrimSpace(req.AdminID))
	if err != nil || adminID == 0 {
		return nil, domain.ErrInvalidAdminID
	}

	now := time.Now().UTC()
	if kind == domain.KindPublic {
		manager := domain.PublicManager{
			ID:            s.genID.Generate(),
			AdminID:       adminID,
			Pin:           pin,
			AccountStatus: status,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.repo.InsertPublic(ctx, s.db, &manager); err != nil {
			return nil, err
		}
		return &manager, nil
	}

	manager := domain.GeneralManager{
		ID:            s.genID.Generate(),
		AdminID:       adminID,
		Pin:           pin,
		AccountStatus: status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.InsertGeneral(ctx, s.db, &manager); err != nil {
		return nil, err
	}
	return &manager, nil
}

func (s *Service) Update(ctx context.Context, kind domain.Kind, id string, req domain.UpdateManagerRequest) (any, error) {
	managerID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	status := account.Status(req.AccountStatus)
	if req.AccountStatus != "" && !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	now := time.Now().UTC()
	switch kind {
	case domain.KindPublic:
		manager, err := s.repo.FindPublicByID(ctx, s.db, managerID)
		if err != nil {
			return nil, err
		}
		if manager == nil {
			return nil, domain.ErrNotFound
		}
		if pin := strings.TrimSpace(req.Pin); pin != "" {
			manager.Pin = pin
		}
		if req.AccountStatus != "" {
			manager.AccountStatus = status
		}
		manager.UpdatedAt = now
		if err := s.repo.UpdatePublic(ctx, s.db, manager); err != nil {
			return nil, err
		}
		return manager, nil
	case domain.KindGeneral:
		manager, err := s.repo.FindGeneralByID(ctx, s.db, managerID)
		if err != nil {
			return nil, err
		}
		if manager == nil {
			return nil, domain.ErrNotFound
		}
		if pin := strings.TrimSpace(req.Pin); pin != "" {
			manager.Pin = pin
		}
		if req.AccountStatus != "" {
			manager.AccountStatus = status
		}
		manager.UpdatedAt = now
		if err := s.repo.UpdateGeneral(ctx, s.db, manager); err != nil {
			return nil, err
		}
		return manager, nil
	default:
		return nil, domain.ErrInvalidKind
	}
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
