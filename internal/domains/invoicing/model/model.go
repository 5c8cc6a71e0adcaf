package model

import (
	"bookingpay/shared/model"
	"time"
)

const (
	TableName  = "xero_auth"
	EntityName = "xero_auth"

	FieldID                   = "id"
	FieldTenantID             = "tenant_id"
	FieldAccessToken          = "access_token"
	FieldRefreshToken         = "refresh_token"
	FieldAccessTokenExpiresAt = "access_token_expires_at"
	FieldScope                = "scope"
)

// SingletonID is the only row id the xero_auth table accepts.
const SingletonID = 1

type XeroAuth struct {
	ID                   int        `db:"id"`
	TenantID             string     `db:"tenant_id"`
	AccessToken          string     `db:"access_token"`
	RefreshToken         string     `db:"refresh_token"`
	AccessTokenExpiresAt *time.Time `db:"access_token_expires_at"`
	Scope                string     `db:"scope"`
	model.Metadata
}

// Connected reports whether invoices can be created with this credential.
func (x XeroAuth) Connected() bool {
	return x.ID == SingletonID && x.RefreshToken != "" && x.TenantID != ""
}

// AccessTokenValid reports whether the stored access token can be used as-is at now.
func (x XeroAuth) AccessTokenValid(now time.Time) bool {
	return x.AccessToken != "" && x.AccessTokenExpiresAt != nil && x.AccessTokenExpiresAt.After(now)
}
