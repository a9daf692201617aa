package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	auditdomain "github.com/harvestcover/seasonworker/internal/audit/domain"
	"github.com/harvestcover/seasonworker/internal/auth/domain"
	"github.com/harvestcover/seasonworker/internal/auth/repository"
	employerdomain "github.com/harvestcover/seasonworker/internal/employer/domain"
	managerdomain "github.com/harvestcover/seasonworker/internal/manager/domain"
	regiondomain "github.com/harvestcover/seasonworker/internal/region/domain"
	workerdomain "github.com/harvestcover/seasonworker/internal/worker/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type noopAudit struct{}

func (noopAudit) Record(context.Context, auditdomain.Entry) {}
func (noopAudit) List(context.Context, auditdomain.ListAuditRequest) (auditdomain.ListAuditResponse, error) {
	return auditdomain.ListAuditResponse{}, nil
}

type stubLimiter struct {
	allow bool
	err   error
}

func (l stubLimiter) Allow(context.Context, string) (bool, error) {
	return l.allow, l.err
}

type loginFixture struct {
	db   *gorm.DB
	node *snowflake.Node

	publicManager  managerdomain.PublicManager
	generalManager managerdomain.GeneralManager
	worker         workerdomain.SeasonWorker
	employer       employerdomain.Employer
}

func setupLoginTest(t *testing.T, limiter stubLimiter) (domain.Service, *loginFixture) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Admin{},
		&regiondomain.Region{},
		&regiondomain.LocalGovernment{},
		&managerdomain.PublicManager{},
		&managerdomain.GeneralManager{},
		&employerdomain.Employer{},
		&workerdomain.SeasonWorker{},
	))

	node, err := snowflake.NewNode(2)
	require.NoError(t, err)

	f := &loginFixture{db: db, node: node}

	admin := domain.Admin{ID: node.Generate(), Name: "관리자", Pin: "99990000"}
	require.NoError(t, db.Create(&admin).Error)

	f.publicManager = managerdomain.PublicManager{ID: node.Generate(), AdminID: admin.ID, Pin: "pub-pin"}
	require.NoError(t, db.Create(&f.publicManager).Error)
	f.generalManager = managerdomain.GeneralManager{ID: node.Generate(), AdminID: admin.ID, Pin: "gen-pin"}
	require.NoError(t, db.Create(&f.generalManager).Error)

	region := regiondomain.Region{ID: node.Generate(), RegionName: "경기도"}
	require.NoError(t, db.Create(&region).Error)
	lg := regiondomain.LocalGovernment{
		ID:                  node.Generate(),
		RegionID:            region.ID,
		RegionName:          region.RegionName,
		LocalGovernmentName: "이천시",
		ManagerPublicID:     f.publicManager.ID,
		ManagerGeneralID:    f.generalManager.ID,
	}
	require.NoError(t, db.Create(&lg).Error)

	f.worker = workerdomain.SeasonWorker{
		ID:              node.Generate(),
		Pin:             "worker-pin",
		Name:            "NGUYEN VAN A",
		PassportID:      "C1234567",
		BirthDate:       "1994-05-21",
		Gender:          workerdomain.GenderMale,
		RegisterStatus:  workerdomain.RegisterMOU,
		ManagerPublicID: f.publicManager.ID,
	}
	require.NoError(t, db.Create(&f.worker).Error)

	f.employer = employerdomain.Employer{
		ID:               node.Generate(),
		Pin:              "emp-pin",
		OwnerName:        "김사장",
		Phone:            "010-1234-5678",
		ManagerGeneralID: f.generalManager.ID,
	}
	require.NoError(t, db.Create(&f.employer).Error)

	svc := New(Params{
		DB:      db,
		Log:     zap.NewNop(),
		Repo:    repository.Provide(),
		Limiter: limiter,
		Metrics: nil,
		Audit:   noopAudit{},
	})
	return svc, f
}

func TestLogin_AdminByPin(t *testing.T) {
	svc, _ := setupLoginTest(t, stubLimiter{allow: true})

	result, err := svc.Login(context.Background(), domain.Credentials{Type: "admin", PinCode: "99990000"})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, domain.RoleAdmin, result.Group)

	_, err = svc.Login(context.Background(), domain.Credentials{Type: "admin", PinCode: "wrong"})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), domain.Credentials{Type: "admin"})
	require.ErrorIs(t, err, domain.ErrMissingFields)
}

func TestLogin_ManagerScopeMustMatch(t *testing.T) {
	svc, _ := setupLoginTest(t, stubLimiter{allow: true})

	result, err := svc.Login(context.Background(), domain.Credentials{
		Type:            "public",
		Region:          "경기도",
		LocalGovernment: "이천시",
		PinCode:         "pub-pin",
	})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, domain.RolePublic, result.Group)

	// Right PIN in the wrong district fails.
	_, err = svc.Login(context.Background(), domain.Credentials{
		Type:            "public",
		Region:          "경기도",
		LocalGovernment: "포천시",
		PinCode:         "pub-pin",
	})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	// A general PIN does not open the public manager table.
	_, err = svc.Login(context.Background(), domain.Credentials{
		Type:            "public",
		Region:          "경기도",
		LocalGovernment: "이천시",
		PinCode:         "gen-pin",
	})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_WorkerTwoStep(t *testing.T) {
	svc, f := setupLoginTest(t, stubLimiter{allow: true})

	scope := domain.Credentials{
		Type:            "seasonWorker",
		Region:          "경기도",
		LocalGovernment: "이천시",
		PinCode:         "worker-pin",
	}

	// Step 1 confirms scope and PIN without returning the record.
	step1 := scope
	step1.Step = 1
	result, err := svc.Login(context.Background(), step1)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Nil(t, result.User)

	// Step 2 needs the full identity.
	step2 := scope
	step2.Name = f.worker.Name
	step2.PassportNo = f.worker.PassportID
	step2.Birth = "940521"
	result, err = svc.Login(context.Background(), step2)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, domain.RoleSeasonWorker, result.Group)
	assert.NotNil(t, result.User)

	// A birth value that is not six digits is rejected before any lookup.
	badBirth := step2
	badBirth.Birth = "1994-05-21"
	_, err = svc.Login(context.Background(), badBirth)
	require.ErrorIs(t, err, domain.ErrInvalidBirthFormat)

	wrongBirth := step2
	wrongBirth.Birth = "940522"
	_, err = svc.Login(context.Background(), wrongBirth)
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	missing := scope
	missing.Name = f.worker.Name
	_, err = svc.Login(context.Background(), missing)
	require.ErrorIs(t, err, domain.ErrMissingFields)
}

func TestLogin_EmployerTwoStep(t *testing.T) {
	svc, f := setupLoginTest(t, stubLimiter{allow: true})

	scope := domain.Credentials{
		Type:            "employer",
		Region:          "경기도",
		LocalGovernment: "이천시",
		PinCode:         "emp-pin",
	}

	step1 := scope
	step1.Step = 1
	result, err := svc.Login(context.Background(), step1)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Nil(t, result.User)

	step2 := scope
	step2.Name = f.employer.OwnerName
	step2.Phone = f.employer.Phone
	step2.SMSCode = "anything"
	result, err = svc.Login(context.Background(), step2)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, domain.RoleEmployer, result.Group)

	wrongPhone := step2
	wrongPhone.Phone = "010-0000-0000"
	_, err = svc.Login(context.Background(), wrongPhone)
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_UnknownTypeRejected(t *testing.T) {
	svc, _ := setupLoginTest(t, stubLimiter{allow: true})

	_, err := svc.Login(context.Background(), domain.Credentials{Type: "superuser", PinCode: "x"})
	require.ErrorIs(t, err, domain.ErrUnsupportedRole)
}

func TestLogin_Throttled(t *testing.T) {
	svc, _ := setupLoginTest(t, stubLimiter{allow: false})

	_, err := svc.Login(context.Background(), domain.Credentials{Type: "admin", PinCode: "99990000"})
	require.ErrorIs(t, err, domain.ErrTooManyAttempts)
}

func TestLogin_LimiterFailureDoesNotBlock(t *testing.T) {
	svc, _ := setupLoginTest(t, stubLimiter{allow: false, err: assert.AnError})

	result, err := svc.Login(context.Background(), domain.Credentials{Type: "admin", PinCode: "99990000"})
	require.NoError(t, err)
	assert.True(t, result.Success)
}

func TestVerify_IgnoresStepShortCircuit(t *testing.T) {
	svc, f := setupLoginTest(t, stubLimiter{allow: true})

	creds := domain.Credentials{
		Type:            "seasonWorker",
		Region:          "경기도",
		LocalGovernment: "이천시",
		PinCode:         "worker-pin",
		Name:            f.worker.Name,
		PassportNo:      f.worker.PassportID,
		Birth:           "940521",
		Step:            1,
	}
	principal, err := svc.Verify(context.Background(), creds)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleSeasonWorker, principal.Role)
	assert.Equal(t, f.worker.ID, principal.WorkerID)
}
