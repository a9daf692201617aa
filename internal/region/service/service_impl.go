package service

import (
	"context"

	"github.com/harvestcover/seasonworker/internal/region/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("region.service"),
		repo: p.Repo,
	}
}

func (s *Service) ListRegionLocalGov(ctx context.Context) (domain.ListRegionLocalGovResponse, error) {
	regions, err := s.repo.ListRegions(ctx, s.db)
	if err != nil {
		return domain.ListRegionLocalGovResponse{}, err
	}

	governments, err := s.repo.ListLocalGovernments(ctx, s.db)
	if err != nil {
		return domain.ListRegionLocalGovResponse{}, err
	}

	return domain.ListRegionLocalGovResponse{
		Regions:          regions,
		LocalGovernments: governments,
	}, nil
}
