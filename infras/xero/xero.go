package xero

//go:generate go run go.uber.org/mock/mockgen -source=./xero.go -destination=./mocks/xero_mock.go -package=mocks

import (
	"bookingpay/config"
	"bookingpay/infras/otel"
	"bookingpay/shared/constant"
	"bookingpay/shared/money"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const (
	invoicesPath     = "/api.xro/2.0/Invoices"
	invoiceType      = "ACCREC"
	invoiceStatus    = "DRAFT"
	lineAmountsTypes = "Exclusive"
	maxResponseBody  = 1 << 20
)

var ErrEmptyInvoiceResponse = errors.New("xero returned no invoice")

// Error is returned for any non-2xx answer from the Xero API.
type Error struct {
	StatusCode int
	Message    string
	Body       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("xero: %d: %s", e.StatusCode, e.Message)
}

type Token struct {
	AccessToken  string
	RefreshToken string
	Expiry       time.Time
	Scope        string
}

type Connection struct {
	ID         string `json:"id"`
	TenantID   string `json:"tenantId"`
	TenantType string `json:"tenantType"`
	TenantName string `json:"tenantName"`
}

type InvoiceRequest struct {
	ContactName  string
	ContactEmail string
	Description  string
	AmountCents  int64
	IssueDate    time.Time
	DueDate      time.Time
}

type InvoiceResult struct {
	InvoiceID     string `json:"InvoiceID"`
	InvoiceNumber string `json:"InvoiceNumber"`
	Status        string `json:"Status"`
}

// Client talks to the Xero identity and accounting APIs.
type Client interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (Token, error)
	Refresh(ctx context.Context, refreshToken string) (Token, error)
	Connections(ctx context.Context, accessToken string) ([]Connection, error)
	CreateInvoice(ctx context.Context, accessToken, tenantID string, req InvoiceRequest) (InvoiceResult, error)
}

type contact struct {
	Name         string `json:"Name"`
	EmailAddress string `json:"EmailAddress,omitempty"`
}

type lineItem struct {
	Description string      `json:"Description"`
	Quantity    int         `json:"Quantity"`
	UnitAmount  json.Number `json:"UnitAmount"`
	AccountCode string      `json:"AccountCode"`
}

type invoice struct {
	Type            string     `json:"Type"`
	Contact         contact    `json:"Contact"`
	Date            string     `json:"Date"`
	DueDate         string     `json:"DueDate"`
	LineAmountTypes string     `json:"LineAmountTypes"`
	LineItems       []lineItem `json:"LineItems"`
	Status          string     `json:"Status"`
}

type invoicesEnvelope struct {
	Invoices []invoice `json:"Invoices"`
}

type invoicesResponse struct {
	Invoices []InvoiceResult `json:"Invoices"`
}

type clientImpl struct {
	httpClient *http.Client
	oauth      *oauth2.Config
	config     *config.Config
	otel       otel.Otel
}

func New(cfg *config.Config, otl otel.Otel) Client {
	return NewWithHTTPClient(cfg, otl, &http.Client{Timeout: constant.ExternalHTTPTimeout})
}

func NewWithHTTPClient(cfg *config.Config, otl otel.Otel, httpClient *http.Client) Client {
	settings := cfg.External.Xero

	return &clientImpl{
		httpClient: httpClient,
		oauth: &oauth2.Config{
			ClientID:     settings.ClientID,
			ClientSecret: settings.ClientSecret,
			RedirectURL:  settings.RedirectURL,
			Scopes:       settings.Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   settings.AuthorizeURL,
				TokenURL:  settings.TokenURL,
				AuthStyle: oauth2.AuthStyleInHeader,
			},
		},
		config: cfg,
		otel:   otl,
	}
}

func (c *clientImpl) AuthCodeURL(state string) string {
	return c.oauth.AuthCodeURL(state)
}

func (c *clientImpl) Exchange(ctx context.Context, code string) (token Token, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".xero.Exchange")
	defer scope.End()
	defer scope.TraceIfError(err)

	tok, err := c.oauth.Exchange(c.withHTTPClient(ctx), code)
	if err != nil {
		log.Error().Err(err).Msg("failed to exchange xero authorization code")

		return token, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	return fromOAuthToken(tok), nil
}

// Refresh performs exactly one refresh-token grant.
func (c *clientImpl) Refresh(ctx context.Context, refreshToken string) (token Token, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".xero.Refresh")
	defer scope.End()
	defer scope.TraceIfError(err)

	source := c.oauth.TokenSource(c.withHTTPClient(ctx), &oauth2.Token{RefreshToken: refreshToken})

	tok, err := source.Token()
	if err != nil {
		log.Error().Err(err).Msg("failed to refresh xero token")

		return token, fmt.Errorf("failed to refresh token: %w", err)
	}

	token = fromOAuthToken(tok)
	if token.RefreshToken == "" {
		token.RefreshToken = refreshToken
	}

	return token, nil
}

func (c *clientImpl) Connections(ctx context.Context, accessToken string) (connections []Connection, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".xero.Connections")
	defer scope.End()
	defer scope.TraceIfError(err)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.External.Xero.ConnectionsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build connections request: %w", err)
	}

	req.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+accessToken)
	req.Header.Set(constant.RequestHeaderAccept, constant.ContentTypeJSON)

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	if err = json.Unmarshal(body, &connections); err != nil {
		return nil, fmt.Errorf("failed to decode connections: %w", err)
	}

	return connections, nil
}

func (c *clientImpl) CreateInvoice(ctx context.Context, accessToken, tenantID string, req InvoiceRequest) (result InvoiceResult, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".xero.CreateInvoice")
	defer scope.End()
	defer scope.TraceIfError(err)

	payload := invoicesEnvelope{
		Invoices: []invoice{
			{
				Type: invoiceType,
				Contact: contact{
					Name:         req.ContactName,
					EmailAddress: req.ContactEmail,
				},
				Date:            req.IssueDate.Format(constant.DateOnlyFormat),
				DueDate:         req.DueDate.Format(constant.DateOnlyFormat),
				LineAmountTypes: lineAmountsTypes,
				LineItems: []lineItem{
					{
						Description: req.Description,
						Quantity:    1,
						UnitAmount:  money.Number(req.AmountCents),
						AccountCode: c.config.External.Xero.SalesAccount,
					},
				},
				Status: invoiceStatus,
			},
		},
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return result, fmt.Errorf("failed to marshal invoice: %w", err)
	}

	endpoint := strings.TrimSuffix(c.config.External.Xero.APIBaseURL, "/") + invoicesPath

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(raw))
	if err != nil {
		return result, fmt.Errorf("failed to build invoice request: %w", err)
	}

	httpReq.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+accessToken)
	httpReq.Header.Set(constant.RequestHeaderXeroTenantID, tenantID)
	httpReq.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	httpReq.Header.Set(constant.RequestHeaderAccept, constant.ContentTypeJSON)

	body, err := c.do(httpReq)
	if err != nil {
		return result, err
	}

	var decoded invoicesResponse
	if err = json.Unmarshal(body, &decoded); err != nil {
		return result, fmt.Errorf("failed to decode invoice response: %w", err)
	}

	if len(decoded.Invoices) == 0 || decoded.Invoices[0].InvoiceID == "" {
		return result, ErrEmptyInvoiceResponse
	}

	return decoded.Invoices[0], nil
}

func (c *clientImpl) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Str("url", req.URL.String()).Msg("failed to call xero")

		return nil, fmt.Errorf("failed to call xero: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("failed to read xero response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		xeroErr := &Error{
			StatusCode: resp.StatusCode,
			Message:    extractMessage(body, resp.Status),
			Body:       string(body),
		}

		log.Error().Int("status", resp.StatusCode).Str("url", req.URL.String()).Str("body", xeroErr.Body).Msg("xero rejected request")

		return nil, xeroErr
	}

	return body, nil
}

func (c *clientImpl) withHTTPClient(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}

func fromOAuthToken(tok *oauth2.Token) Token {
	token := Token{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		Expiry:       tok.Expiry,
	}

	if scope, ok := tok.Extra("scope").(string); ok {
		token.Scope = scope
	}

	return token
}

func extractMessage(body []byte, fallback string) string {
	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err == nil {
		for _, key := range []string{"Message", "Detail", "message", "error", "Title"} {
			if msg, ok := fields[key].(string); ok && msg != "" {
				return msg
			}
		}
	}

	if raw := strings.TrimSpace(string(body)); raw != "" {
		return raw
	}

	return fallback
}
