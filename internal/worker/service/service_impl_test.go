package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/harvestcover/seasonworker/internal/account"
	"github.com/harvestcover/seasonworker/internal/clock"
	"github.com/harvestcover/seasonworker/internal/config"
	employerdomain "github.com/harvestcover/seasonworker/internal/employer/domain"
	"github.com/harvestcover/seasonworker/internal/worker/domain"
	"github.com/harvestcover/seasonworker/internal/worker/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupWorkerTest(t *testing.T) (*gorm.DB, domain.Service, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.SeasonWorker{},
		&domain.Insurance{},
		&employerdomain.Employer{},
	))

	node, err := snowflake.NewNode(3)
	require.NoError(t, err)

	holder, err := config.NewPortalConfigHolder()
	require.NoError(t, err)

	svc := New(Params{
		DB:     db,
		Log:    zap.NewNop(),
		GenID:  node,
		Clock:  clock.NewFakeClock(time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)),
		Repo:   repository.Provide(),
		Portal: holder,
	})
	return db, svc, node
}

func TestRegister_CreatesWorkerAndInsuranceTogether(t *testing.T) {
	db, svc, _ := setupWorkerTest(t)

	resp, err := svc.Register(context.Background(), domain.RegisterWorkerRequest{
		Pin:          "1234",
		Name:         "PHAM THI B",
		PassportID:   "C7654321",
		BirthDate:    "1992-11-03",
		Gender:       "F",
		CountryCode:  "VN",
		PolicyNumber: "POL-42",
	})
	require.NoError(t, err)

	assert.Equal(t, account.StatusActivePending, resp.Worker.AccountStatus)
	assert.Equal(t, domain.RegisterNone, resp.Worker.RegisterStatus)
	assert.Equal(t, resp.Worker.ID, resp.Insurance.WorkerID)

	// Default period is one year from registration.
	assert.Equal(t, time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC), resp.Insurance.InsuranceStartDate)
	assert.Equal(t, time.Date(2027, 4, 1, 12, 0, 0, 0, time.UTC), resp.Insurance.InsuranceEndDate)

	var count int64
	require.NoError(t, db.Model(&domain.Insurance{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRegister_Validation(t *testing.T) {
	_, svc, _ := setupWorkerTest(t)

	base := domain.RegisterWorkerRequest{
		Pin:        "1234",
		Name:       "PHAM THI B",
		PassportID: "C7654321",
		BirthDate:  "1992-11-03",
		Gender:     "F",
	}

	missing := base
	missing.Name = ""
	_, err := svc.Register(context.Background(), missing)
	require.ErrorIs(t, err, domain.ErrMissingFields)

	badBirth := base
	badBirth.BirthDate = "921103"
	_, err = svc.Register(context.Background(), badBirth)
	require.ErrorIs(t, err, domain.ErrInvalidBirthDate)

	badGender := base
	badGender.Gender = "X"
	_, err = svc.Register(context.Background(), badGender)
	require.ErrorIs(t, err, domain.ErrInvalidGender)

	badRegister := base
	badRegister.RegisterStatus = "UNKNOWN"
	_, err = svc.Register(context.Background(), badRegister)
	require.ErrorIs(t, err, domain.ErrInvalidRegister)

	badPeriod := base
	badPeriod.InsuranceStartDate = "2026-06-01"
	badPeriod.InsuranceEndDate = "2026-05-01"
	_, err = svc.Register(context.Background(), badPeriod)
	require.ErrorIs(t, err, domain.ErrInvalidPeriod)

	// Malformed scope links are rejected, not silently dropped.
	badManager := base
	badManager.ManagerPublicID = "not-a-number"
	_, err = svc.Register(context.Background(), badManager)
	require.ErrorIs(t, err, domain.ErrInvalidID)

	badEmployer := base
	badEmployer.EmployerID = "xyz"
	_, err = svc.Register(context.Background(), badEmployer)
	require.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestList_ManagerScopeSeparatesCohorts(t *testing.T) {
	db, svc, node := setupWorkerTest(t)

	managerA := node.Generate()
	managerB := node.Generate()
	generalManager := node.Generate()

	employer := employerdomain.Employer{
		ID:               node.Generate(),
		Pin:              "emp",
		OwnerName:        "김사장",
		Phone:            "010-1111-2222",
		ManagerGeneralID: generalManager,
	}
	require.NoError(t, db.Create(&employer).Error)

	seed := func(name string, publicID, employerID snowflake.ID, birth string) snowflake.ID {
		worker := domain.SeasonWorker{
			ID:              node.Generate(),
			Pin:             "w",
			Name:            name,
			PassportID:      "P-" + name,
			BirthDate:       birth,
			Gender:          domain.GenderMale,
			RegisterStatus:  domain.RegisterPublic,
			ManagerPublicID: publicID,
			EmployerID:      employerID,
		}
		require.NoError(t, db.Create(&worker).Error)
		return worker.ID
	}

	inScopeA := seed("WORKER A", managerA, 0, "1990-01-15")
	seed("WORKER B", managerB, 0, "1991-02-20")
	viaEmployer := seed("WORKER C", 0, employer.ID, "1992-03-25")

	respA, err := svc.List(context.Background(), domain.ListWorkersRequest{
		Scope: domain.ListWorkerFilter{ManagerPublicID: managerA},
	})
	require.NoError(t, err)
	require.Len(t, respA.Workers, 1)
	assert.Equal(t, inScopeA, respA.Workers[0].ID)

	// General manager scope resolves through the employer link.
	respG, err := svc.List(context.Background(), domain.ListWorkersRequest{
		Scope: domain.ListWorkerFilter{ManagerGeneralID: generalManager},
	})
	require.NoError(t, err)
	require.Len(t, respG.Workers, 1)
	assert.Equal(t, viaEmployer, respG.Workers[0].ID)

	// Admin scope sees everyone.
	respAll, err := svc.List(context.Background(), domain.ListWorkersRequest{})
	require.NoError(t, err)
	assert.Len(t, respAll.Workers, 3)
	assert.Equal(t, int64(3), respAll.PageInfo.Total)
}

func TestList_BirthFilterMatchesYYMMDD(t *testing.T) {
	db, svc, node := setupWorkerTest(t)

	worker := domain.SeasonWorker{
		ID:             node.Generate(),
		Pin:            "w",
		Name:           "WORKER D",
		PassportID:     "P-D",
		BirthDate:      "1993-07-09",
		Gender:         domain.GenderFemale,
		RegisterStatus: domain.RegisterMOU,
	}
	require.NoError(t, db.Create(&worker).Error)

	resp, err := svc.List(context.Background(), domain.ListWorkersRequest{Birth: "930709"})
	require.NoError(t, err)
	require.Len(t, resp.Workers, 1)
	assert.Equal(t, worker.ID, resp.Workers[0].ID)

	empty, err := svc.List(context.Background(), domain.ListWorkersRequest{Birth: "930710"})
	require.NoError(t, err)
	assert.Empty(t, empty.Workers)
}

func TestList_LatestInsuranceJoinYieldsOneRowPerWorker(t *testing.T) {
	db, svc, node := setupWorkerTest(t)

	worker := domain.SeasonWorker{
		ID:             node.Generate(),
		Pin:            "w",
		Name:           "WORKER E",
		PassportID:     "P-E",
		BirthDate:      "1990-01-01",
		Gender:         domain.GenderMale,
		RegisterStatus: domain.RegisterMOU,
	}
	require.NoError(t, db.Create(&worker).Error)

	old := domain.Insurance{
		ID:                 node.Generate(),
		PolicyNumber:       "POL-OLD",
		InsuranceStartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		InsuranceEndDate:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		WorkerID:           worker.ID,
	}
	require.NoError(t, db.Create(&old).Error)
	latest := domain.Insurance{
		ID:                 node.Generate(),
		PolicyNumber:       "POL-NEW",
		InsuranceStartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		InsuranceEndDate:   time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		WorkerID:           worker.ID,
	}
	require.NoError(t, db.Create(&latest).Error)

	resp, err := svc.List(context.Background(), domain.ListWorkersRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Workers, 1)
	assert.Equal(t, "POL-NEW", resp.Workers[0].PolicyNumber)
}

func TestGetByID_ReturnsInsurancesNewestFirst(t *testing.T) {
	db, svc, node := setupWorkerTest(t)

	worker := domain.SeasonWorker{
		ID:             node.Generate(),
		Pin:            "w",
		Name:           "WORKER F",
		PassportID:     "P-F",
		BirthDate:      "1990-01-01",
		Gender:         domain.GenderMale,
		RegisterStatus: domain.RegisterMOU,
	}
	require.NoError(t, db.Create(&worker).Error)

	first := node.Generate()
	second := node.Generate()
	for _, id := range []snowflake.ID{first, second} {
		require.NoError(t, db.Create(&domain.Insurance{
			ID:                 id,
			InsuranceStartDate: time.Now().UTC(),
			InsuranceEndDate:   time.Now().UTC().AddDate(1, 0, 0),
			WorkerID:           worker.ID,
		}).Error)
	}

	detail, err := svc.GetByID(context.Background(), worker.ID.String())
	require.NoError(t, err)
	require.Len(t, detail.Insurances, 2)
	assert.Equal(t, second, detail.Insurances[0].ID)

	_, err = svc.GetByID(context.Background(), node.Generate().String())
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.GetByID(context.Background(), "not-a-number")
	require.ErrorIs(t, err, domain.ErrInvalidID)
}
