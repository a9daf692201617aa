package service

import (
	"context"
	"strings"

	"github.com/harvestcover/seasonworker/internal/auth/domain"
	"github.com/harvestcover/seasonworker/internal/observability/metrics"
	"github.com/harvestcover/seasonworker/internal/ratelimit"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	auditdomain "github.com/harvestcover/seasonworker/internal/audit/domain"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Repo    domain.Repository
	Limiter ratelimit.Limiter
	Metrics *metrics.PortalMetrics
	Audit   auditdomain.Service
}

// verifier runs the full credential check for one role. The role is bound
// when the table below is built, so a login never re-branches on type after
// the initial dispatch.
type verifier func(ctx context.Context, creds domain.Credentials) (domain.LoginResult, domain.Principal, error)

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	repo    domain.Repository
	limiter ratelimit.Limiter
	metrics *metrics.PortalMetrics
	audit   auditdomain.Service

	verifiers map[domain.Role]verifier
}

func New(p Params) domain.Service {
	s := &Service{
		db:      p.DB,
		log:     p.Log.Named("auth.service"),
		repo:    p.Repo,
		limiter: p.Limiter,
		metrics: p.Metrics,
		audit:   p.Audit,
	}
	s.verifiers = map[domain.Role]verifier{
		domain.RoleAdmin:        s.verifyAdmin,
		domain.RolePublic:       s.verifyPublicManager,
		domain.RoleGeneral:      s.verifyGeneralManager,
		domain.RoleSeasonWorker: s.verifyWorker,
		domain.RoleEmployer:     s.verifyEmployer,
	}
	return s
}

func (s *Service) Login(ctx context.Context, creds domain.Credentials) (domain.LoginResult, error) {
	role, verify, err := s.dispatch(creds)
	if err != nil {
		return domain.LoginResult{}, err
	}

	allowed, limitErr := s.limiter.Allow(ctx, throttleKey(role, creds))
	if limitErr != nil {
		// A broken limiter must not lock everyone out.
		s.log.Warn("login limiter unavailable", zap.Error(limitErr))
	} else if !allowed {
		s.metrics.RecordLogin(string(role), "throttled")
		return domain.LoginResult{}, domain.ErrTooManyAttempts
	}

	result, principal, err := verify(ctx, creds)
	if err != nil {
		s.metrics.RecordLogin(string(role), "failure")
		s.audit.Record(ctx, auditdomain.Entry{
			ActorType: string(role),
			Action:    "login.failure",
			Resource:  "auth",
			Metadata:  map[string]any{"reason": err.Error(), "step": creds.Step},
		})
		return domain.LoginResult{}, err
	}

	s.metrics.RecordLogin(string(role), "success")
	s.audit.Record(ctx, auditdomain.Entry{
		ActorType: string(role),
		ActorID:   principal.ActorID(),
		Action:    "login.success",
		Resource:  "auth",
		Metadata:  map[string]any{"step": creds.Step},
	})
	return result, nil
}

func (s *Service) Verify(ctx context.Context, creds domain.Credentials) (domain.Principal, error) {
	_, verify, err := s.dispatch(creds)
	if err != nil {
		return domain.Principal{}, err
	}

	// Verification is always the final step; step 1 short-circuits exist
	// only for the interactive login flow.
	creds.Step = 0
	_, principal, err := verify(ctx, creds)
	if err != nil {
		return domain.Principal{}, err
	}
	return principal, nil
}

func (s *Service) dispatch(creds domain.Credentials) (domain.Role, verifier, error) {
	role, ok := domain.ParseRole(strings.TrimSpace(creds.Type))
	if !ok {
		return "", nil, domain.ErrUnsupportedRole
	}
	return role, s.verifiers[role], nil
}

func (s *Service) verifyAdmin(ctx context.Context, creds domain.Credentials) (domain.LoginResult, domain.Principal, error) {
	pin := strings.TrimSpace(creds.PinCode)
	if pin == "" {
		return domain.LoginResult{}, domain.Principal{}, domain.ErrMissingFields
	}

	admin, err := s.repo.FindAdminByPin(ctx, s.db, pin)
	if err != nil {
		return domain.LoginResult{}, domain.Principal{}, err
	}
	if admin == nil {
		return domain.LoginResult{}, domain.Principal{}, domain.ErrInvalidCredentials
	}

	principal := domain.Principal{Role: domain.RoleAdmin, AdminID: admin.ID}
	return domain.LoginResult{Success: true, User: admin, Group: domain.RoleAdmin}, principal, nil
}

func (s *Service) verifyPublicManager(ctx context.Context, creds domain.Credentials) (domain.LoginResult, domain.Principal, error) {
	region, localGov, pin, err := scopeFields(creds)
	if err != nil {
		return domain.LoginResult{}, domain.Principal{}, err
	}

	manager, err := s.repo.FindPublicManager(ctx, s.db, region, localGov, pin)
	if err != nil {
		return domain.LoginResult{}, domain.Principal{}, err
	}
	if manager == nil {
		return domain.LoginResult{}, domain.Principal{}, domain.ErrInvalidCredentials
	}

	principal := domain.Principal{Role: domain.RolePublic, ManagerPublicID: manager.ID}
	return domain.LoginResult{Success: true, User: manager, Group: domain.RolePublic}, principal, nil
}

func (s *Service) verifyGeneralManager(ctx context.Context, creds domain.Credentials) (domain.LoginResult, domain.Principal, error) {
	region, localGov, pin, err := scopeFields(creds)
	if err != nil {
		return domain.LoginResult{}, domain.Principal{}, err
	}

	manager, err := s.repo.FindGeneralManager(ctx, s.db, region, localGov, pin)
	if err != nil {
		return domain.LoginResult{}, domain.Principal{}, err
	}
	if manager == nil {
		return domain.LoginResult{}, domain.Principal{}, domain.ErrInvalidCredentials
	}

	principal := domain.Principal{Role: domain.RoleGeneral, ManagerGeneralID: manager.ID}
	return domain.LoginResult{Success: true, User: manager, Group: domain.RoleGeneral}, principal, nil
}

func (s *Service) verifyWorker(ctx context.Context, creds domain.Credentials) (domain.LoginResult, domain.Principal, error) {
	region, localGov, pin, err := scopeFields(creds)
	if err != nil {
		return domain.LoginResult{}, domain.Principal{}, err
	}

	if creds.Step == 1 {
		worker, err := s.repo.FindWorkerByScope(ctx, s.db, region, localGov, pin)
		if err != nil {
			return domain.LoginResult{}, domain.Principal{}, err
		}
		if worker == nil {
			return domain.LoginResult{}, domain.Principal{}, domain.ErrInvalidCredentials
		}
		// Step 1 confirms the account exists but discloses nothing about it.
		return domain.LoginResult{Success: true, Message: "step one verified"}, domain.Principal{}, nil
	}

	name := strings.TrimSpace(creds.Name)
	passportNo := strings.TrimSpace(creds.PassportNo)
	birth := strings.TrimSpace(creds.Birth)
	if name == "" || passportNo == "" || birth == "" {
		return domain.LoginResult{}, domain.Principal{}, domain.ErrMissingFields
	}
	if len(birth) != 6 {
		return domain.LoginResult{}, domain.Principal{}, domain.ErrInvalidBirthFormat
	}

	worker, err := s.repo.FindWorkerByIdentity(ctx, s.db, region, localGov, pin, name, passportNo)
	if err != nil {
		return domain.LoginResult{}, domain.Principal{}, err
	}
	if worker == nil || !birthMatches(worker.BirthDate, birth) {
		return domain.LoginResult{}, domain.Principal{}, domain.ErrInvalidCredentials
	}

	principal := domain.Principal{Role: domain.RoleSeasonWorker, WorkerID: worker.ID}
	return domain.LoginResult{Success: true, User: worker, Group: domain.RoleSeasonWorker}, principal, nil
}

func (s *Service) verifyEmployer(ctx context.Context, creds domain.Credentials) (domain.LoginResult, domain.Principal, error) {
	region, localGov, pin, err := scopeFields(creds)
	if err != nil {
		return domain.LoginResult{}, domain.Principal{}, err
	}

	if creds.Step == 1 {
		employer, err := s.repo.FindEmployerByScope(ctx, s.db, region, localGov, pin)
		if err != nil {
			return domain.LoginResult{}, domain.Principal{}, err
		}
		if employer == nil {
			return domain.LoginResult{}, domain.Principal{}, domain.ErrInvalidCredentials
		}
		return domain.LoginResult{Success: true, Message: "step one verified"}, domain.Principal{}, nil
	}

	name := strings.TrimSpace(creds.Name)
	phone := strings.TrimSpace(creds.Phone)
	if name == "" || phone == "" {
		return domain.LoginResult{}, domain.Principal{}, domain.ErrMissingFields
	}

	employer, err := s.repo.FindEmployerByIdentity(ctx, s.db, region, localGov, pin, name, phone)
	if err != nil {
		return domain.LoginResult{}, domain.Principal{}, err
	}
	if employer == nil {
		return domain.LoginResult{}, domain.Principal{}, domain.ErrInvalidCredentials
	}

	// The SMS code is accepted but not checked; there is no code issuer to
	// verify against yet.
	principal := domain.Principal{Role: domain.RoleEmployer, EmployerID: employer.ID}
	return domain.LoginResult{Success: true, User: employer, Group: domain.RoleEmployer}, principal, nil
}

func scopeFields(creds domain.Credentials) (string, string, string, error) {
	region := strings.TrimSpace(creds.Region)
	localGov := strings.TrimSpace(creds.LocalGovernment)
	pin := strings.TrimSpace(creds.PinCode)
	if region == "" || localGov == "" || pin == "" {
		return "", "", "", domain.ErrMissingFields
	}
	return region, localGov, pin, nil
}

// birthMatches compares the stored YYYY-MM-DD date against a YYMMDD input.
func birthMatches(birthDate, birth string) bool {
	compact := strings.ReplaceAll(birthDate, "-", "")
	if len(compact) < 6 {
		return false
	}
	return compact[len(compact)-6:] == birth
}

func throttleKey(role domain.Role, creds domain.Credentials) string {
	return string(role) + ":" + strings.TrimSpace(creds.Region) + ":" + strings.TrimSpace(creds.LocalGovernment)
}
