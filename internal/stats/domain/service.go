package domain

import "context"

// Overview is the admin dashboard headline: totals per entity plus the
// cancellation queue depth.
type Overview struct {
	WorkerCount       int64 `json:"worker_count"`
	EmployerCount     int64 `json:"employer_count"`
	InsuranceCount    int64 `json:"insurance_count"`
	PendingCancels    int64 `json:"pending_cancellations"`
	ApprovedCancels   int64 `json:"approved_cancellations"`
	ActiveWorkers     int64 `json:"active_workers"`
	CancellingWorkers int64 `json:"cancelling_workers"`
}

// BreakdownEntry is one bucket of a grouped worker count.
type BreakdownEntry struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

type WorkerBreakdown struct {
	ByAccountStatus  []BreakdownEntry `json:"by_account_status"`
	ByGender         []BreakdownEntry `json:"by_gender"`
	ByRegisterStatus []BreakdownEntry `json:"by_register_status"`
	ByCountry        []BreakdownEntry `json:"by_country"`
}

type StatsResponse struct {
	Overview  Overview        `json:"overview"`
	Breakdown WorkerBreakdown `json:"breakdown"`
}

type Service interface {
	Stats(ctx context.Context) (StatsResponse, error)
}
