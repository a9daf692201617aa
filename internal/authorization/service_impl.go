package authorization

import (
	"context"
	_ "embed"
	"strings"

	auditdomain "github.com/harvestcover/seasonworker/internal/audit/domain"
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed model.conf
var modelText string

const (
	ObjectWorker       = "worker"
	ObjectEmployer     = "employer"
	ObjectManager      = "manager"
	ObjectCancellation = "cancellation"
	ObjectStats        = "stats"
	ObjectAuditLog     = "audit_log"
	ObjectRegion       = "region"
)

const (
	ActionWorkerView     = "worker.view"
	ActionWorkerRegister = "worker.register"

	ActionEmployerView   = "employer.view"
	ActionEmployerCreate = "employer.create"

	ActionManagerView   = "manager.view"
	ActionManagerCreate = "manager.create"
	ActionManagerUpdate = "manager.update"

	ActionCancellationRequest = "cancellation.request"
	ActionCancellationApprove = "cancellation.approve"
	ActionCancellationReject  = "cancellation.reject"
	ActionCancellationView    = "cancellation.view"

	ActionStatsView    = "stats.view"
	ActionAuditLogView = "audit_log.view"
	ActionRegionView   = "region.view"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Enforcer *casbin.SyncedEnforcer
	AuditSvc auditdomain.Service `optional:"true"`
}

type ServiceImpl struct {
	db       *gorm.DB
	log      *zap.Logger
	enforcer *casbin.SyncedEnforcer
	auditSvc auditdomain.Service
}

func NewEnforcer(db *gorm.DB) (*casbin.SyncedEnforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, err
	}
	enforcer.EnableAutoSave(true)
	enforcer.EnableAutoBuildRoleLinks(true)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, err
	}
	if err := seedPolicies(enforcer); err != nil {
		return nil, err
	}
	enforcer.BuildRoleLinks()
	return enforcer, nil
}

func NewService(p Params) Service {
	return &ServiceImpl{
		db:       p.DB,
		log:      p.Log.Named("authorization.service"),
		enforcer: p.Enforcer,
		auditSvc: p.AuditSvc,
	}
}

func (s *ServiceImpl) Authorize(ctx context.Context, actor string, role string, object string, action string) error {
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return ErrInvalidActor
	}
	role = strings.TrimSpace(role)
	if role == "" {
		return ErrInvalidRole
	}
	object = strings.TrimSpace(object)
	if object == "" {
		return ErrInvalidObject
	}
	action = strings.TrimSpace(action)
	if action == "" {
		return ErrInvalidAction
	}

	roleName := "role:" + role
	if err := s.ensureGrouping(actor, roleName); err != nil {
		return err
	}

	allowed, err := s.enforcer.Enforce(actor, object, action)
	if err != nil {
		return err
	}
	if !allowed {
		s.auditDenied(ctx, role, actor, object, action)
		return ErrForbidden
	}

	if shouldAuditGrant(action) {
		s.auditGranted(ctx, role, actor, object, action)
	}
	return nil
}

// ensureGrouping binds the actor to exactly one role. A principal whose
// role changed since the last request loses the stale binding.
func (s *ServiceImpl) ensureGrouping(subject string, roleName string) error {
	existing, err := s.enforcer.GetFilteredGroupingPolicy(0, subject)
	if err != nil {
		return err
	}
	for _, rule := range existing {
		if len(rule) < 2 {
			continue
		}
		if rule[1] != roleName {
			params := make([]interface{}, 0, len(rule))
			for _, value := range rule {
				params = append(params, value)
			}
			_, _ = s.enforcer.RemoveGroupingPolicy(params...)
		}
	}

	has, err := s.enforcer.HasGroupingPolicy(subject, roleName)
	if err != nil {
		return err
	}
	if has {
		return nil
	}
	_, err = s.enforcer.AddGroupingPolicy(subject, roleName)
	return err
}

func (s *ServiceImpl) auditDenied(ctx context.Context, role string, actor string, object string, action string) {
	if s.auditSvc == nil {
		return
	}
	s.auditSvc.Record(ctx, auditdomain.Entry{
		ActorType:  role,
		ActorID:    actor,
		Action:     "authorization.denied",
		Resource:   "authorization",
		ResourceID: object,
		Metadata: map[string]any{
			"object": object,
			"action": action,
		},
	})
}

func (s *ServiceImpl) auditGranted(ctx context.Context, role string, actor string, object string, action string) {
	if s.auditSvc == nil {
		return
	}
	s.auditSvc.Record(ctx, auditdomain.Entry{
		ActorType:  role,
		ActorID:    actor,
		Action:     "authorization.granted",
		Resource:   "authorization",
		ResourceID: object,
		Metadata: map[string]any{
			"object": object,
			"action": action,
		},
	})
}

func shouldAuditGrant(action string) bool {
	switch action {
	case ActionCancellationApprove, ActionCancellationReject, ActionManagerCreate, ActionManagerUpdate:
		return true
	default:
		return false
	}
}

func seedPolicies(enforcer *casbin.SyncedEnforcer) error {
	policies := [][]string{
		{"role:admin", ObjectWorker, ActionWorkerView},
		{"role:admin", ObjectWorker, ActionWorkerRegister},
		{"role:admin", ObjectEmployer, ActionEmployerView},
		{"role:admin", ObjectEmployer, ActionEmployerCreate},
		{"role:admin", ObjectManager, ActionManagerView},
		{"role:admin", ObjectManager, ActionManagerCreate},
		{"role:admin", ObjectManager, ActionManagerUpdate},
		{"role:admin", ObjectCancellation, ActionCancellationView},
		{"role:admin", ObjectCancellation, ActionCancellationApprove},
		{"role:admin", ObjectCancellation, ActionCancellationReject},
		{"role:admin", ObjectStats, ActionStatsView},
		{"role:admin", ObjectAuditLog, ActionAuditLogView},
		{"role:admin", ObjectRegion, ActionRegionView},

		{"role:public", ObjectWorker, ActionWorkerView},
		{"role:public", ObjectCancellation, ActionCancellationView},
		{"role:public", ObjectRegion, ActionRegionView},

		{"role:general", ObjectWorker, ActionWorkerView},
		{"role:general", ObjectEmployer, ActionEmployerView},
		{"role:general", ObjectCancellation, ActionCancellationView},
		{"role:general", ObjectRegion, ActionRegionView},

		{"role:seasonWorker", ObjectWorker, ActionWorkerRegister},
		{"role:seasonWorker", ObjectCancellation, ActionCancellationRequest},
		{"role:seasonWorker", ObjectRegion, ActionRegionView},

		{"role:employer", ObjectWorker, ActionWorkerRegister},
		{"role:employer", ObjectRegion, ActionRegionView},
	}

	for _, policy := range policies {
		if len(policy) < 3 {
			continue
		}
		if _, err := enforcer.AddPolicy(policy); err != nil {
			return err
		}
	}
	return nil
}
