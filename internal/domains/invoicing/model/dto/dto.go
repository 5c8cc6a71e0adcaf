package dto

import (
	"bookingpay/infras/xero"
	"bookingpay/internal/domains/invoicing/model"
	"bookingpay/shared/constant"
	"bookingpay/shared/money"
	"bookingpay/shared/timezone"
	"time"
)

type InvoiceRequest struct {
	ContactName  string
	ContactEmail string
	Description  string
	AmountCents  int64
	DueDate      time.Time
}

func (r InvoiceRequest) ToXero(issueDate time.Time) xero.InvoiceRequest {
	return xero.InvoiceRequest{
		ContactName:  r.ContactName,
		ContactEmail: r.ContactEmail,
		Description:  r.Description,
		AmountCents:  r.AmountCents,
		IssueDate:    issueDate,
		DueDate:      r.DueDate,
	}
}

// InvoiceResponse echoes what was invoiced alongside the Xero identifiers.
type InvoiceResponse struct {
	InvoiceID     string `json:"invoice_id"`
	InvoiceNumber string `json:"invoice_number"`
	Status        string `json:"status"`
	Description   string `json:"description"`
	AmountCents   int64  `json:"amount_cents"`
	Amount        string `json:"amount"`
	DueDate       string `json:"due_date"`
	ContactName   string `json:"contact_name"`
	ContactEmail  string `json:"contact_email"`
}

func (r *InvoiceResponse) FromResult(result xero.InvoiceResult, req InvoiceRequest) {
	r.InvoiceID = result.InvoiceID
	r.InvoiceNumber = result.InvoiceNumber
	r.Status = result.Status
	r.Description = req.Description
	r.AmountCents = req.AmountCents
	r.Amount = money.Format(req.AmountCents)
	r.DueDate = req.DueDate.Format(constant.DateOnlyFormat)
	r.ContactName = req.ContactName
	r.ContactEmail = req.ContactEmail
}

type CallbackRequest struct {
	Code  string
	State string
}

type StatusResponse struct {
	Connected            bool    `json:"connected"`
	TenantID             string  `json:"tenant_id,omitempty"`
	Scope                string  `json:"scope,omitempty"`
	AccessTokenExpiresAt *string `json:"access_token_expires_at,omitempty"`
	AccessTokenValid     bool    `json:"access_token_valid"`
}

func (r *StatusResponse) FromModel(auth model.XeroAuth, now time.Time) {
	r.Connected = auth.Connected()
	if !r.Connected {
		return
	}

	r.TenantID = auth.TenantID
	r.Scope = auth.Scope
	r.AccessTokenValid = auth.AccessTokenValid(now)

	if auth.AccessTokenExpiresAt != nil {
		expiresAt := timezone.Format(*auth.AccessTokenExpiresAt, constant.DateFormat)
		r.AccessTokenExpiresAt = &expiresAt
	}
}
