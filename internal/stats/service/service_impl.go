package service

import (
	"context"

	"github.com/harvestcover/seasonworker/internal/stats/domain"
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
		log:  p.Log.Named("stats.service"),
		repo: p.Repo,
	}
}

func (s *Service) Stats(ctx context.Context) (domain.StatsResponse, error) {
	overview, err := s.repo.Overview(ctx, s.db)
	if err != nil {
		return domain.StatsResponse{}, err
	}

	breakdown, err := s.repo.WorkerBreakdown(ctx, s.db)
	if err != nil {
		return domain.StatsResponse{}, err
	}

	return domain.StatsResponse{
		Overview:  overview,
		Breakdown: breakdown,
	}, nil
}
