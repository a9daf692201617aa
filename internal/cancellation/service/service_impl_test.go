package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/harvestcover/seasonworker/internal/account"
	auditdomain "github.com/harvestcover/seasonworker/internal/audit/domain"
	"github.com/harvestcover/seasonworker/internal/cancellation/domain"
	"github.com/harvestcover/seasonworker/internal/cancellation/repository"
	"github.com/harvestcover/seasonworker/internal/clock"
	"github.com/harvestcover/seasonworker/internal/config"
	employerdomain "github.com/harvestcover/seasonworker/internal/employer/domain"
	workerdomain "github.com/harvestcover/seasonworker/internal/worker/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type auditRecorder struct {
	entries []auditdomain.Entry
}

func (a *auditRecorder) Record(_ context.Context, entry auditdomain.Entry) {
	a.entries = append(a.entries, entry)
}

func (a *auditRecorder) List(_ context.Context, _ auditdomain.ListAuditRequest) (auditdomain.ListAuditResponse, error) {
	return auditdomain.ListAuditResponse{}, nil
}

type fixture struct {
	db    *gorm.DB
	svc   domain.Service
	node  *snowflake.Node
	clock *clock.FakeClock
	audit *auditRecorder
}

func setupCancellationTest(t *testing.T) *fixture {
	return setupCancellationTestWithPortal(t, config.DefaultPortalConfig())
}

func setupCancellationTestWithPortal(t *testing.T, portalCfg config.PortalConfig) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&workerdomain.SeasonWorker{}, &workerdomain.Insurance{}, &employerdomain.Employer{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	holder, err := config.NewStaticPortalConfigHolder(portalCfg)
	require.NoError(t, err)

	fake := clock.NewFakeClock(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	recorder := &auditRecorder{}

	svc := New(Params{
		DB:      db,
		Log:     zap.NewNop(),
		Clock:   fake,
		Repo:    repository.Provide(),
		Metrics: nil,
		Audit:   recorder,
		Portal:  holder,
	})

	return &fixture{db: db, svc: svc, node: node, clock: fake, audit: recorder}
}

func (f *fixture) seedWorker(t *testing.T, status account.Status, bankAccount string) workerdomain.SeasonWorker {
	t.Helper()
	worker := workerdomain.SeasonWorker{
		ID:             f.node.Generate(),
		Pin:            "1234",
		Name:           "NGUYEN VAN A",
		PassportID:     "C1234567",
		BirthDate:      "1994-05-21",
		Gender:         workerdomain.GenderMale,
		RegisterStatus: workerdomain.RegisterMOU,
		AccountStatus:  status,
		BankAccountNo:  bankAccount,
	}
	require.NoError(t, f.db.Create(&worker).Error)
	return worker
}

func (f *fixture) seedInsurance(t *testing.T, workerID snowflake.ID, requested, cancelled *time.Time) workerdomain.Insurance {
	t.Helper()
	insurance := workerdomain.Insurance{
		ID:                      f.node.Generate(),
		PolicyNumber:            "POL-" + f.node.Generate().String(),
		InsuranceStartDate:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		InsuranceEndDate:        time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		CancellationRequestDate: requested,
		CancellationDate:        cancelled,
		WorkerID:                workerID,
	}
	require.NoError(t, f.db.Create(&insurance).Error)
	return insurance
}

func (f *fixture) reloadWorker(t *testing.T, id snowflake.ID) workerdomain.SeasonWorker {
	t.Helper()
	var worker workerdomain.SeasonWorker
	require.NoError(t, f.db.Where("worker_id = ?", id).First(&worker).Error)
	return worker
}

func (f *fixture) reloadInsurance(t *testing.T, id snowflake.ID) workerdomain.Insurance {
	t.Helper()
	var insurance workerdomain.Insurance
	require.NoError(t, f.db.Where("insurance_id = ?", id).First(&insurance).Error)
	return insurance
}

func TestRequestByWorker_StampsAllOpenInsurances(t *testing.T) {
	f := setupCancellationTest(t)
	worker := f.seedWorker(t, account.StatusActive, "110-222-333")

	open1 := f.seedInsurance(t, worker.ID, nil, nil)
	open2 := f.seedInsurance(t, worker.ID, nil, nil)
	done := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	closed := f.seedInsurance(t, worker.ID, &done, &done)

	resp, err := f.svc.RequestByWorker(context.Background(), domain.RequestByWorkerRequest{
		WorkerID:      worker.ID.String(),
		DepartureDate: "2026-03-20",
		BankAccount:   "110-222-333",
	})
	require.NoError(t, err)
	assert.Equal(t, account.StatusCancelPending, resp.AccountStatus)

	assert.Equal(t, account.StatusCancelPending, f.reloadWorker(t, worker.ID).AccountStatus)

	now := f.clock.Now()
	for _, id := range []snowflake.ID{open1.ID, open2.ID} {
		row := f.reloadInsurance(t, id)
		require.NotNil(t, row.CancellationRequestDate)
		assert.WithinDuration(t, now, *row.CancellationRequestDate, time.Second)
		assert.Nil(t, row.CancellationDate)
	}

	// The already cancelled row keeps its original timestamps.
	row := f.reloadInsurance(t, closed.ID)
	require.NotNil(t, row.CancellationRequestDate)
	assert.WithinDuration(t, done, *row.CancellationRequestDate, time.Second)
}

func TestRequestByWorker_GuardsRunBeforeAnyWrite(t *testing.T) {
	f := setupCancellationTest(t)
	worker := f.seedWorker(t, account.StatusActive, "110-222-333")
	insurance := f.seedInsurance(t, worker.ID, nil, nil)

	cases := []struct {
		name    string
		req     domain.RequestByWorkerRequest
		wantErr error
	}{
		{
			name: "missing fields",
			req: domain.RequestByWorkerRequest{
				WorkerID: worker.ID.String(),
			},
			wantErr: domain.ErrMissingFields,
		},
		{
			name: "departure today",
			req: domain.RequestByWorkerRequest{
				WorkerID:      worker.ID.String(),
				DepartureDate: "2026-03-10",
				BankAccount:   "110-222-333",
			},
			wantErr: domain.ErrInvalidDeparture,
		},
		{
			name: "departure in the past",
			req: domain.RequestByWorkerRequest{
				WorkerID:      worker.ID.String(),
				DepartureDate: "2026-02-01",
				BankAccount:   "110-222-333",
			},
			wantErr: domain.ErrInvalidDeparture,
		},
		{
			name: "bank mismatch",
			req: domain.RequestByWorkerRequest{
				WorkerID:      worker.ID.String(),
				DepartureDate: "2026-04-01",
				BankAccount:   "999-000-111",
			},
			wantErr: domain.ErrBankMismatch,
		},
		{
			name: "unknown worker",
			req: domain.RequestByWorkerRequest{
				WorkerID:      f.node.Generate().String(),
				DepartureDate: "2026-04-01",
				BankAccount:   "110-222-333",
			},
			wantErr: domain.ErrWorkerNotFound,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.RequestByWorker(context.Background(), tc.req)
			require.ErrorIs(t, err, tc.wantErr)

			// Nothing was written.
			assert.Equal(t, account.StatusActive, f.reloadWorker(t, worker.ID).AccountStatus)
			assert.Nil(t, f.reloadInsurance(t, insurance.ID).CancellationRequestDate)
		})
	}
}

func TestRequestByWorker_BankCheckSkippedWhenNoneOnFile(t *testing.T) {
	f := setupCancellationTest(t)
	worker := f.seedWorker(t, account.StatusActive, "")
	f.seedInsurance(t, worker.ID, nil, nil)

	_, err := f.svc.RequestByWorker(context.Background(), domain.RequestByWorkerRequest{
		WorkerID:      worker.ID.String(),
		DepartureDate: "2026-04-01",
		BankAccount:   "any-account",
	})
	require.NoError(t, err)
	assert.Equal(t, account.StatusCancelPending, f.reloadWorker(t, worker.ID).AccountStatus)
}

func TestRequestByWorker_EchoesBankAccount(t *testing.T) {
	f := setupCancellationTest(t)
	worker := f.seedWorker(t, account.StatusActive, "110-222-333")
	f.seedInsurance(t, worker.ID, nil, nil)

	resp, err := f.svc.RequestByWorker(context.Background(), domain.RequestByWorkerRequest{
		WorkerID:      worker.ID.String(),
		DepartureDate: "2026-04-01",
		BankAccount:   "110-222-333",
	})
	require.NoError(t, err)
	assert.Equal(t, "110-222-333", resp.BankAccount)
	assert.Equal(t, "2026-04-01", resp.DepartureDate)
}

func TestRequestByWorker_NeedsOpenInsurance(t *testing.T) {
	f := setupCancellationTest(t)

	// Every insurance row is already cancelled.
	worker := f.seedWorker(t, account.StatusActive, "")
	done := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	f.seedInsurance(t, worker.ID, &done, &done)

	req := domain.RequestByWorkerRequest{
		WorkerID:      worker.ID.String(),
		DepartureDate: "2026-04-01",
		BankAccount:   "any",
	}
	_, err := f.svc.RequestByWorker(context.Background(), req)
	require.ErrorIs(t, err, domain.ErrNoOpenInsurance)
	assert.Equal(t, account.StatusActive, f.reloadWorker(t, worker.ID).AccountStatus)

	// Same story for a worker with no insurance rows at all.
	bare := f.seedWorker(t, account.StatusActive, "")
	req.WorkerID = bare.ID.String()
	_, err = f.svc.RequestByWorker(context.Background(), req)
	require.ErrorIs(t, err, domain.ErrNoOpenInsurance)
	assert.Equal(t, account.StatusActive, f.reloadWorker(t, bare.ID).AccountStatus)
}

func TestRequestByWorker_BoundedByStatementTimeout(t *testing.T) {
	portalCfg := config.DefaultPortalConfig()
	portalCfg.StatementTimeout = time.Nanosecond
	f := setupCancellationTestWithPortal(t, portalCfg)

	worker := f.seedWorker(t, account.StatusActive, "")
	insurance := f.seedInsurance(t, worker.ID, nil, nil)

	_, err := f.svc.RequestByWorker(context.Background(), domain.RequestByWorkerRequest{
		WorkerID:      worker.ID.String(),
		DepartureDate: "2026-04-01",
		BankAccount:   "110-222-333",
	})
	require.ErrorIs(t, err, context.DeadlineExceeded)

	// The expired deadline aborted the transaction before any write.
	assert.Equal(t, account.StatusActive, f.reloadWorker(t, worker.ID).AccountStatus)
	assert.Nil(t, f.reloadInsurance(t, insurance.ID).CancellationRequestDate)
}

func TestRequestByWorker_RejectsSecondRequest(t *testing.T) {
	f := setupCancellationTest(t)
	worker := f.seedWorker(t, account.StatusActive, "110-222-333")
	f.seedInsurance(t, worker.ID, nil, nil)

	req := domain.RequestByWorkerRequest{
		WorkerID:      worker.ID.String(),
		DepartureDate: "2026-04-01",
		BankAccount:   "110-222-333",
	}
	_, err := f.svc.RequestByWorker(context.Background(), req)
	require.NoError(t, err)

	_, err = f.svc.RequestByWorker(context.Background(), req)
	require.ErrorIs(t, err, domain.ErrAlreadyCancelling)
}

func TestRequestByInsurance_OwnershipAndConflicts(t *testing.T) {
	f := setupCancellationTest(t)
	owner := f.seedWorker(t, account.StatusActive, "")
	other := f.seedWorker(t, account.StatusActive, "")
	insurance := f.seedInsurance(t, owner.ID, nil, nil)

	_, err := f.svc.RequestByInsurance(context.Background(), domain.RequestByInsuranceRequest{
		WorkerID:    other.ID.String(),
		InsuranceID: insurance.ID.String(),
	})
	require.ErrorIs(t, err, domain.ErrNotOwned)

	_, err = f.svc.RequestByInsurance(context.Background(), domain.RequestByInsuranceRequest{
		WorkerID:    owner.ID.String(),
		InsuranceID: f.node.Generate().String(),
	})
	require.ErrorIs(t, err, domain.ErrInsuranceNotFound)

	resp, err := f.svc.RequestByInsurance(context.Background(), domain.RequestByInsuranceRequest{
		WorkerID:    owner.ID.String(),
		InsuranceID: insurance.ID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, account.StatusCancelPending, resp.WorkerStatus)
	assert.Equal(t, account.StatusCancelPending, f.reloadWorker(t, owner.ID).AccountStatus)

	_, err = f.svc.RequestByInsurance(context.Background(), domain.RequestByInsuranceRequest{
		WorkerID:    owner.ID.String(),
		InsuranceID: insurance.ID.String(),
	})
	require.ErrorIs(t, err, domain.ErrAlreadyRequested)
}

func TestApprove_FinalizesCancellation(t *testing.T) {
	f := setupCancellationTest(t)
	worker := f.seedWorker(t, account.StatusCancelPending, "")
	requested := f.clock.Now().Add(-24 * time.Hour)
	insurance := f.seedInsurance(t, worker.ID, &requested, nil)

	resp, err := f.svc.Approve(context.Background(), domain.ApproveRequest{
		InsuranceID: insurance.ID.String(),
		AdminID:     f.node.Generate().String(),
	})
	require.NoError(t, err)
	assert.Equal(t, account.StatusCancel, resp.WorkerStatus)

	row := f.reloadInsurance(t, insurance.ID)
	require.NotNil(t, row.CancellationDate)
	assert.WithinDuration(t, f.clock.Now(), *row.CancellationDate, time.Second)
	assert.Equal(t, account.StatusCancel, f.reloadWorker(t, worker.ID).AccountStatus)

	_, err = f.svc.Approve(context.Background(), domain.ApproveRequest{
		InsuranceID: insurance.ID.String(),
		AdminID:     f.node.Generate().String(),
	})
	require.ErrorIs(t, err, domain.ErrAlreadyApproved)
}

func TestApprove_RequiresPendingRequest(t *testing.T) {
	f := setupCancellationTest(t)
	worker := f.seedWorker(t, account.StatusActive, "")
	insurance := f.seedInsurance(t, worker.ID, nil, nil)

	_, err := f.svc.Approve(context.Background(), domain.ApproveRequest{
		InsuranceID: insurance.ID.String(),
		AdminID:     f.node.Generate().String(),
	})
	require.ErrorIs(t, err, domain.ErrNoRequest)
}

func TestReject_RestoresWorkerAndAllowsReRequest(t *testing.T) {
	f := setupCancellationTest(t)
	worker := f.seedWorker(t, account.StatusCancelPending, "")
	requested := f.clock.Now().Add(-24 * time.Hour)
	insurance := f.seedInsurance(t, worker.ID, &requested, nil)

	resp, err := f.svc.Reject(context.Background(), domain.RejectRequest{
		InsuranceID: insurance.ID.String(),
		AdminID:     f.node.Generate().String(),
		Reason:      "worker rescinded",
	})
	require.NoError(t, err)
	assert.Equal(t, account.StatusActive, resp.WorkerStatus)

	row := f.reloadInsurance(t, insurance.ID)
	assert.Nil(t, row.CancellationRequestDate)
	assert.Nil(t, row.CancellationDate)
	assert.Equal(t, account.StatusActive, f.reloadWorker(t, worker.ID).AccountStatus)

	// The same insurance can be requested again after a rejection.
	_, err = f.svc.RequestByInsurance(context.Background(), domain.RequestByInsuranceRequest{
		WorkerID:    worker.ID.String(),
		InsuranceID: insurance.ID.String(),
	})
	require.NoError(t, err)
}

func TestList_SummaryAndStatusFilter(t *testing.T) {
	f := setupCancellationTest(t)
	worker := f.seedWorker(t, account.StatusCancelPending, "")

	requested := f.clock.Now().Add(-48 * time.Hour)
	approvedAt := f.clock.Now().Add(-24 * time.Hour)
	f.seedInsurance(t, worker.ID, &requested, nil)
	f.seedInsurance(t, worker.ID, &requested, &approvedAt)
	f.seedInsurance(t, worker.ID, nil, nil)

	resp, err := f.svc.List(context.Background(), domain.ListRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Summary.ApprovedCount)
	assert.Equal(t, int64(1), resp.Summary.PendingCount)
	assert.Equal(t, int64(2), resp.Summary.TotalCount)
	assert.Len(t, resp.Approved, 1)
	assert.Len(t, resp.Pending, 1)

	pendingOnly, err := f.svc.List(context.Background(), domain.ListRequest{Status: "pending"})
	require.NoError(t, err)
	assert.Empty(t, pendingOnly.Approved)
	assert.Len(t, pendingOnly.Pending, 1)

	_, err = f.svc.List(context.Background(), domain.ListRequest{Status: "bogus"})
	require.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestAuditTrailOnTransitions(t *testing.T) {
	f := setupCancellationTest(t)
	worker := f.seedWorker(t, account.StatusActive, "")
	f.seedInsurance(t, worker.ID, nil, nil)

	_, err := f.svc.RequestByWorker(context.Background(), domain.RequestByWorkerRequest{
		WorkerID:      worker.ID.String(),
		DepartureDate: "2026-04-01",
		BankAccount:   "110-222-333",
	})
	require.NoError(t, err)

	require.Len(t, f.audit.entries, 1)
	assert.Equal(t, "cancellation.request", f.audit.entries[0].Action)
	assert.Equal(t, worker.ID.String(), f.audit.entries[0].ActorID)
}
