package payadvantage

//go:generate go run go.uber.org/mock/mockgen -source=./payadvantage.go -destination=./mocks/payadvantage_mock.go -package=mocks

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
)

const (
	directDebitsPath = "/v3/direct_debits"
	maxErrorBody     = 64 << 10
)

var (
	ErrNotConfigured     = errors.New("configure PAYADVANTAGE_API_KEY or PAYADVANTAGE_USERNAME and PAYADVANTAGE_PASSWORD")
	ErrMalformedResponse = errors.New("payadvantage returned a malformed response")
)

// Error is returned for any non-2xx answer from the provider.
type Error struct {
	StatusCode int
	Message    string
	Body       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("payadvantage: %d: %s", e.StatusCode, e.Message)
}

type DirectDebitRequest struct {
	CustomerName         string
	Email                string
	Phone                string
	RecurringAmountCents int64
	Frequency            string
	Description          string
	RecurringDateStart   time.Time
	ReminderDays         int
	UpfrontAmountCents   int64
}

type DirectDebitResponse struct {
	ScheduleID string
	Raw        json.RawMessage
}

// Client creates direct-debit schedules at PayAdvantage.
type Client interface {
	CreateDirectDebit(ctx context.Context, req DirectDebitRequest) (DirectDebitResponse, error)
}

type customer struct {
	Name   string `json:"Name"`
	Email  string `json:"Email"`
	Mobile string `json:"Mobile"`
}

type directDebitPayload struct {
	Customer           customer     `json:"Customer"`
	Description        string       `json:"Description"`
	RecurringAmount    json.Number  `json:"RecurringAmount"`
	RecurringDateStart string       `json:"RecurringDateStart"`
	Frequency          string       `json:"Frequency"`
	ReminderDays       int          `json:"ReminderDays"`
	UpfrontAmount      *json.Number `json:"UpfrontAmount,omitempty"`
}

type clientImpl struct {
	httpClient *http.Client
	config     *config.Config
	otel       otel.Otel
}

func New(cfg *config.Config, otl otel.Otel) Client {
	return NewWithHTTPClient(cfg, otl, &http.Client{Timeout: constant.ExternalHTTPTimeout})
}

func NewWithHTTPClient(cfg *config.Config, otl otel.Otel, httpClient *http.Client) Client {
	return &clientImpl{
		httpClient: httpClient,
		config:     cfg,
		otel:       otl,
	}
}

func (c *clientImpl) CreateDirectDebit(ctx context.Context, req DirectDebitRequest) (res DirectDebitResponse, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".payadvantage.CreateDirectDebit")
	defer scope.End()
	defer scope.TraceIfError(err)

	settings := c.config.External.PayAdvantage
	if settings.APIKey == "" && (settings.Username == "" || settings.Password == "") {
		return res, ErrNotConfigured
	}

	payload := directDebitPayload{
		Customer: customer{
			Name:   req.CustomerName,
			Email:  req.Email,
			Mobile: req.Phone,
		},
		Description:        req.Description,
		RecurringAmount:    money.Number(req.RecurringAmountCents),
		RecurringDateStart: req.RecurringDateStart.Format(constant.DateOnlyFormat),
		Frequency:          req.Frequency,
		ReminderDays:       req.ReminderDays,
	}

	if req.UpfrontAmountCents > 0 {
		upfront := money.Number(req.UpfrontAmountCents)
		payload.UpfrontAmount = &upfront
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return res, fmt.Errorf("failed to marshal direct debit payload: %w", err)
	}

	endpoint := strings.TrimSuffix(settings.BaseURL, "/") + directDebitsPath

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return res, fmt.Errorf("failed to build direct debit request: %w", err)
	}

	httpReq.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	httpReq.Header.Set(constant.RequestHeaderAccept, constant.ContentTypeJSON)

	if settings.APIKey != "" {
		httpReq.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+settings.APIKey)
	} else {
		httpReq.SetBasicAuth(settings.Username, settings.Password)
	}

	scope.SetAttribute("http.url", endpoint)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		log.Error().Err(err).Msg("failed to call payadvantage")

		return res, fmt.Errorf("failed to call payadvantage: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return res, fmt.Errorf("failed to read payadvantage response: %w", err)
	}

	scope.SetAttribute("http.status_code", resp.StatusCode)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		providerErr := &Error{
			StatusCode: resp.StatusCode,
			Message:    ExtractMessage(respBody, resp.Status),
			Body:       string(respBody),
		}

		log.Error().Int("status", resp.StatusCode).Str("body", providerErr.Body).Msg("payadvantage rejected direct debit")

		return res, providerErr
	}

	var fields map[string]any
	if err = json.Unmarshal(respBody, &fields); err != nil || fields == nil {
		log.Error().Err(err).Int("status", resp.StatusCode).Str("body", string(respBody)).Msg("payadvantage returned a malformed response")

		return res, fmt.Errorf("%w: %s", ErrMalformedResponse, ExtractMessage(respBody, resp.Status))
	}

	res.Raw = json.RawMessage(respBody)
	res.ScheduleID = scheduleID(fields)

	return res, nil
}

// ExtractMessage prefers the provider's message fields and falls back to the raw body.
func ExtractMessage(body []byte, fallback string) string {
	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err == nil {
		for _, key := range []string{"message", "error", "Message", "Error"} {
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

func scheduleID(fields map[string]any) string {
	for _, key := range []string{"schedule_id", "Code", "code", "Id", "id"} {
		switch v := fields[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("%.0f", v)
		}
	}

	return ""
}
