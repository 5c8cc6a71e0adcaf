package dto

import (
	"bookingpay/internal/domains/payment/model"
	"bookingpay/shared/constant"
	"bookingpay/shared/money"
	"time"
)

type StatusSummaryResponse struct {
	Status            string `json:"status"`
	Count             int    `json:"count"`
	ScheduledSumCents int64  `json:"scheduled_sum_cents"`
	ScheduledSum      string `json:"scheduled_sum"`
	PaidSumCents      int64  `json:"paid_sum_cents"`
	PaidSum           string `json:"paid_sum"`
}

type ReportResponse struct {
	ActiveBookings int                     `json:"active_bookings"`
	Payments       []StatusSummaryResponse `json:"payments"`
	GeneratedAt    string                  `json:"generated_at"`
}

func (r *ReportResponse) FromModels(activeBookings int, summaries []model.StatusSummary, generatedAt time.Time) {
	r.ActiveBookings = activeBookings
	r.GeneratedAt = generatedAt.Format(constant.DateFormat)
	r.Payments = make([]StatusSummaryResponse, len(summaries))

	for i, summary := range summaries {
		r.Payments[i] = StatusSummaryResponse{
			Status:            summary.Status,
			Count:             summary.Count,
			ScheduledSumCents: summary.ScheduledSumCents,
			ScheduledSum:      money.Format(summary.ScheduledSumCents),
			PaidSumCents:      summary.PaidSumCents,
			PaidSum:           money.Format(summary.PaidSumCents),
		}
	}
}
