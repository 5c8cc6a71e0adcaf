package dto

import (
	"bookingpay/shared/constant"
	"time"
)

const (
	JobCreateUpcomingInvoices = "create_upcoming_invoices"
	JobMarkOverduePayments    = "mark_overdue_payments"
)

// RunResult summarises one batch run. Failed items were logged and skipped.
type RunResult struct {
	Job       string `json:"job"`
	RunDate   string `json:"run_date"`
	Selected  int    `json:"selected"`
	Succeeded int    `json:"succeeded"`
	Failed    int    `json:"failed"`
}

func NewRunResult(job string, runDate time.Time) RunResult {
	return RunResult{
		Job:     job,
		RunDate: runDate.Format(constant.DateOnlyFormat),
	}
}
