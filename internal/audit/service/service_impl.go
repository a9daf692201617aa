package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/harvestcover/seasonworker/internal/audit/domain"
	"github.com/harvestcover/seasonworker/internal/audit/masking"
	"github.com/harvestcover/seasonworker/internal/auditcontext"
	"github.com/harvestcover/seasonworker/internal/config"
	"github.com/harvestcover/seasonworker/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	GenID  *snowflake.Node
	Repo   auditdomain.Repository
	Portal *config.PortalConfigHolder
}

type Service struct {
	db     *gorm.DB
	log    *zap.Logger
	genID  *snowflake.Node
	repo   auditdomain.Repository
	portal *config.PortalConfigHolder
}

func NewService(p Params) auditdomain.Service {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("audit.service"),
		genID:  p.GenID,
		repo:   p.Repo,
		portal: p.Portal,
	}
}

func (s *Service) Record(ctx context.Context, entry auditdomain.Entry) {
	action := strings.TrimSpace(entry.Action)
	if action == "" {
		return
	}

	actorType := strings.TrimSpace(entry.ActorType)
	if actorType == "" {
		actorType = "system"
	}
	resource := strings.TrimSpace(entry.Resource)
	if resource == "" {
		resource = "unknown"
	}

	row := auditdomain.AuditLog{
		ID:         s.genID.Generate(),
		ActorType:  actorType,
		ActorID:    strings.TrimSpace(entry.ActorID),
		Action:     action,
		Resource:   resource,
		ResourceID: strings.TrimSpace(entry.ResourceID),
		Metadata:   datatypes.JSONMap(masking.MaskMetadata(entry.Metadata)),
		RequestID:  auditcontext.RequestIDFromContext(ctx),
		IPAddress:  auditcontext.IPAddressFromContext(ctx),
		UserAgent:  auditcontext.UserAgentFromContext(ctx),
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, s.db, &row); err != nil {
		s.log.Warn("failed to write audit log",
			zap.String("action", action),
			zap.String("resource", resource),
			zap.Error(err),
		)
	}
}

func (s *Service) List(ctx context.Context, req auditdomain.ListAuditRequest) (auditdomain.ListAuditResponse, error) {
	portal := s.portal.Get()
	page := req.Pagination.Normalize(portal.DefaultPageSize, portal.MaxPageSize)

	logs, total, err := s.repo.List(ctx, s.db, auditdomain.ListAuditFilter{
		Resource:   req.Resource,
		ResourceID: req.ResourceID,
		Action:     req.Action,
	}, page)
	if err != nil {
		return auditdomain.ListAuditResponse{}, err
	}

	return auditdomain.ListAuditResponse{
		Logs:     logs,
		PageInfo: pagination.BuildPageInfo(page, total),
	}, nil
}
