package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"bookingpay/config"
	"bookingpay/infras/otel/mocks"
	"bookingpay/infras/xero"
	xeroMocks "bookingpay/infras/xero/mocks"
	invoicingMocks "bookingpay/internal/domains/invoicing/mocks"
	"bookingpay/internal/domains/invoicing/model"
	"bookingpay/internal/domains/invoicing/model/dto"
	"bookingpay/internal/domains/invoicing/service"
	"bookingpay/shared/event"
	eventMocks "bookingpay/shared/event/mocks"
	"bookingpay/shared/failure"
	"bookingpay/shared/session"
	sessionMocks "bookingpay/shared/session/mocks"
)

type fixture struct {
	repo      *invoicingMocks.MockXeroAuth
	client    *xeroMocks.MockClient
	sessions  *sessionMocks.MockStore
	publisher *eventMocks.MockPublisher
	svc       service.Invoicing
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.External.Xero.StateTTLSeconds = 600

	f := fixture{
		repo:      invoicingMocks.NewMockXeroAuth(ctrl),
		client:    xeroMocks.NewMockClient(ctrl),
		sessions:  sessionMocks.NewMockStore(ctrl),
		publisher: eventMocks.NewMockPublisher(ctrl),
	}
	f.svc = service.New(f.repo, f.client, f.sessions, f.publisher, cfg, mocks.NewOtel())

	return f
}

func connected(expiresAt time.Time) model.XeroAuth {
	return model.XeroAuth{
		ID:                   model.SingletonID,
		TenantID:             "tenant-1",
		AccessToken:          "stored-access",
		RefreshToken:         "stored-refresh",
		AccessTokenExpiresAt: &expiresAt,
		Scope:                "offline_access",
	}
}

func invoiceRequest() dto.InvoiceRequest {
	return dto.InvoiceRequest{
		ContactName:  "Jane Citizen",
		ContactEmail: "jane@example.com",
		Description:  "Upfront payment for booking #b-1",
		AmountCents:  5000,
		DueDate:      time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateInvoice_ValidTokenSkipsRefresh(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any()).Return(connected(time.Now().Add(time.Hour)), nil)
	f.client.EXPECT().Refresh(gomock.Any(), gomock.Any()).Times(0)
	f.client.EXPECT().
		CreateInvoice(gomock.Any(), "stored-access", "tenant-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, req xero.InvoiceRequest) (xero.InvoiceResult, error) {
			assert.Equal(t, int64(5000), req.AmountCents)
			assert.Equal(t, "Jane Citizen", req.ContactName)

			return xero.InvoiceResult{InvoiceID: "inv-1", InvoiceNumber: "INV-0001", Status: "DRAFT"}, nil
		})
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	res, err := f.svc.CreateInvoice(context.Background(), invoiceRequest())

	assert.NoError(t, err)
	assert.Equal(t, "inv-1", res.InvoiceID)
	assert.Equal(t, "50.00", res.Amount)
	assert.Equal(t, "2026-10-16", res.DueDate)
	assert.Equal(t, "jane@example.com", res.ContactEmail)
}

func TestCreateInvoice_ExpiredTokenRefreshesOnce(t *testing.T) {
	f := newFixture(t)

	newExpiry := time.Now().Add(30 * time.Minute)

	f.repo.EXPECT().Get(gomock.Any()).Return(connected(time.Now().Add(-time.Minute)), nil)
	f.client.EXPECT().
		Refresh(gomock.Any(), "stored-refresh").
		Return(xero.Token{AccessToken: "fresh-access", RefreshToken: "rotated-refresh", Expiry: newExpiry}, nil).
		Times(1)
	f.repo.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any) error {
			assert.Equal(t, "fresh-access", fields[model.FieldAccessToken])
			assert.Equal(t, "rotated-refresh", fields[model.FieldRefreshToken])
			assert.Equal(t, newExpiry.Add(-60*time.Second), fields[model.FieldAccessTokenExpiresAt])
			assert.NotContains(t, fields, model.FieldScope)

			return nil
		})
	f.client.EXPECT().
		CreateInvoice(gomock.Any(), "fresh-access", "tenant-1", gomock.Any()).
		Return(xero.InvoiceResult{InvoiceID: "inv-2"}, nil)

	res, err := f.svc.CreateInvoice(context.Background(), invoiceRequest())

	assert.NoError(t, err)
	assert.Equal(t, "inv-2", res.InvoiceID)
}

func TestCreateInvoice_MissingAccessTokenRefreshes(t *testing.T) {
	f := newFixture(t)

	auth := connected(time.Now().Add(time.Hour))
	auth.AccessToken = ""

	f.repo.EXPECT().Get(gomock.Any()).Return(auth, nil)
	f.client.EXPECT().
		Refresh(gomock.Any(), "stored-refresh").
		Return(xero.Token{AccessToken: "fresh-access", RefreshToken: "stored-refresh", Expiry: time.Now().Add(time.Hour), Scope: "accounting.transactions"}, nil)
	f.repo.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any) error {
			assert.Equal(t, "accounting.transactions", fields[model.FieldScope])

			return nil
		})
	f.client.EXPECT().CreateInvoice(gomock.Any(), "fresh-access", "tenant-1", gomock.Any()).Return(xero.InvoiceResult{InvoiceID: "inv-3"}, nil)

	_, err := f.svc.CreateInvoice(context.Background(), invoiceRequest())

	assert.NoError(t, err)
}

func TestAnnounceCreated(t *testing.T) {
	f := newFixture(t)

	first := dto.InvoiceResponse{InvoiceID: "inv-1", Amount: "50.00"}
	second := dto.InvoiceResponse{InvoiceID: "inv-2", Amount: "20.00"}

	gomock.InOrder(
		f.publisher.EXPECT().Publish(gomock.Any(), "inv-1", event.InvoiceCreated, first),
		f.publisher.EXPECT().Publish(gomock.Any(), "inv-2", event.InvoiceCreated, second),
	)

	f.svc.AnnounceCreated(context.Background(), first, second)
	f.svc.AnnounceCreated(context.Background())
}

func TestCreateInvoice_Failures(t *testing.T) {
	tests := []struct {
		name         string
		setup        func(f fixture)
		expectedCode int
	}{
		{
			name: "never connected",
			setup: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any()).Return(model.XeroAuth{}, nil)
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "missing tenant",
			setup: func(f fixture) {
				auth := connected(time.Now().Add(time.Hour))
				auth.TenantID = ""

				f.repo.EXPECT().Get(gomock.Any()).Return(auth, nil)
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "credential lookup fails",
			setup: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any()).Return(model.XeroAuth{}, errors.New("db down"))
			},
			expectedCode: http.StatusInternalServerError,
		},
		{
			name: "refresh rejected",
			setup: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any()).Return(connected(time.Now().Add(-time.Hour)), nil)
				f.client.EXPECT().Refresh(gomock.Any(), "stored-refresh").Return(xero.Token{}, errors.New("invalid_grant"))
			},
			expectedCode: http.StatusBadGateway,
		},
		{
			name: "refreshed token cannot be saved",
			setup: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any()).Return(connected(time.Now().Add(-time.Hour)), nil)
				f.client.EXPECT().Refresh(gomock.Any(), "stored-refresh").Return(xero.Token{AccessToken: "a", RefreshToken: "r", Expiry: time.Now().Add(time.Hour)}, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			expectedCode: http.StatusInternalServerError,
		},
		{
			name: "xero rejects invoice",
			setup: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any()).Return(connected(time.Now().Add(time.Hour)), nil)
				f.client.EXPECT().
					CreateInvoice(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(xero.InvoiceResult{}, &xero.Error{StatusCode: http.StatusBadRequest, Message: "Account code '200' is not valid"})
			},
			expectedCode: http.StatusBadGateway,
		},
		{
			name: "transport failure",
			setup: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any()).Return(connected(time.Now().Add(time.Hour)), nil)
				f.client.EXPECT().
					CreateInvoice(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(xero.InvoiceResult{}, errors.New("connection reset"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			_, err := f.svc.CreateInvoice(context.Background(), invoiceRequest())

			assert.Error(t, err)
			assert.Equal(t, tt.expectedCode, failure.GetCode(err))
		})
	}
}

func TestConnectURL(t *testing.T) {
	f := newFixture(t)

	var stored string

	f.sessions.EXPECT().
		Set(gomock.Any(), "sid-1", gomock.Any(), gomock.Any(), 600).
		DoAndReturn(func(_ context.Context, _, _, value string, _ int) error {
			stored = value

			return nil
		})
	f.client.EXPECT().
		AuthCodeURL(gomock.Any()).
		DoAndReturn(func(state string) string {
			assert.Equal(t, stored, state)

			return "https://login.xero.test/authorize?state=" + state
		})

	url, err := f.svc.ConnectURL(context.Background(), "sid-1")

	assert.NoError(t, err)
	assert.NotEmpty(t, stored)
	assert.Contains(t, url, stored)
}

func TestConnectURL_SessionError(t *testing.T) {
	f := newFixture(t)

	f.sessions.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	_, err := f.svc.ConnectURL(context.Background(), "sid-1")

	assert.Error(t, err)
}

func TestCallback_Success(t *testing.T) {
	f := newFixture(t)

	expiry := time.Now().Add(30 * time.Minute)

	f.sessions.EXPECT().Pop(gomock.Any(), "sid-1", gomock.Any()).Return("state-1", nil)
	f.client.EXPECT().Exchange(gomock.Any(), "code-1").Return(xero.Token{AccessToken: "access", RefreshToken: "refresh", Expiry: expiry, Scope: "offline_access"}, nil)
	f.client.EXPECT().Connections(gomock.Any(), "access").Return([]xero.Connection{
		{TenantID: "tenant-1", TenantName: "Demo Co"},
		{TenantID: "tenant-2", TenantName: "Other Co"},
	}, nil)
	f.repo.EXPECT().
		Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, auth model.XeroAuth) error {
			assert.Equal(t, model.SingletonID, auth.ID)
			assert.Equal(t, "tenant-1", auth.TenantID)
			assert.Equal(t, "refresh", auth.RefreshToken)
			assert.Equal(t, expiry.Add(-60*time.Second), *auth.AccessTokenExpiresAt)

			return nil
		})
	f.sessions.EXPECT().
		AddFlash(gomock.Any(), "sid-1", session.Flash{Category: session.CategorySuccess, Message: "Xero connected to Demo Co."}).
		Return(nil)

	flash := f.svc.Callback(context.Background(), "sid-1", dto.CallbackRequest{Code: "code-1", State: "state-1"})

	assert.Equal(t, session.CategorySuccess, flash.Category)
}

func TestCallback_Failures(t *testing.T) {
	tests := []struct {
		name  string
		req   dto.CallbackRequest
		setup func(f fixture)
	}{
		{
			name: "state mismatch",
			req:  dto.CallbackRequest{Code: "code-1", State: "forged"},
			setup: func(f fixture) {
				f.sessions.EXPECT().Pop(gomock.Any(), "sid-1", gomock.Any()).Return("state-1", nil)
			},
		},
		{
			name: "no state in session",
			req:  dto.CallbackRequest{Code: "code-1", State: ""},
			setup: func(f fixture) {
				f.sessions.EXPECT().Pop(gomock.Any(), "sid-1", gomock.Any()).Return("", nil)
			},
		},
		{
			name: "missing code",
			req:  dto.CallbackRequest{State: "state-1"},
			setup: func(f fixture) {
				f.sessions.EXPECT().Pop(gomock.Any(), "sid-1", gomock.Any()).Return("state-1", nil)
			},
		},
		{
			name: "exchange rejected",
			req:  dto.CallbackRequest{Code: "code-1", State: "state-1"},
			setup: func(f fixture) {
				f.sessions.EXPECT().Pop(gomock.Any(), "sid-1", gomock.Any()).Return("state-1", nil)
				f.client.EXPECT().Exchange(gomock.Any(), "code-1").Return(xero.Token{}, errors.New("invalid_grant"))
			},
		},
		{
			name: "no tenants",
			req:  dto.CallbackRequest{Code: "code-1", State: "state-1"},
			setup: func(f fixture) {
				f.sessions.EXPECT().Pop(gomock.Any(), "sid-1", gomock.Any()).Return("state-1", nil)
				f.client.EXPECT().Exchange(gomock.Any(), "code-1").Return(xero.Token{AccessToken: "access"}, nil)
				f.client.EXPECT().Connections(gomock.Any(), "access").Return(nil, nil)
			},
		},
		{
			name: "credential not saved",
			req:  dto.CallbackRequest{Code: "code-1", State: "state-1"},
			setup: func(f fixture) {
				f.sessions.EXPECT().Pop(gomock.Any(), "sid-1", gomock.Any()).Return("state-1", nil)
				f.client.EXPECT().Exchange(gomock.Any(), "code-1").Return(xero.Token{AccessToken: "access"}, nil)
				f.client.EXPECT().Connections(gomock.Any(), "access").Return([]xero.Connection{{TenantID: "tenant-1"}}, nil)
				f.repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			f.sessions.EXPECT().AddFlash(gomock.Any(), "sid-1", gomock.Any()).Return(errors.New("redis down"))

			flash := f.svc.Callback(context.Background(), "sid-1", tt.req)

			assert.Equal(t, session.CategoryError, flash.Category)
			assert.Contains(t, flash.Message, "Xero connection failed")
		})
	}
}

func TestStatus(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any()).Return(connected(time.Now().Add(time.Hour)), nil)

	res, err := f.svc.Status(context.Background())

	assert.NoError(t, err)
	assert.True(t, res.Connected)
	assert.True(t, res.AccessTokenValid)
	assert.Equal(t, "tenant-1", res.TenantID)
	assert.NotNil(t, res.AccessTokenExpiresAt)
}

func TestStatus_NotConnected(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any()).Return(model.XeroAuth{}, nil)

	res, err := f.svc.Status(context.Background())

	assert.NoError(t, err)
	assert.False(t, res.Connected)
	assert.Empty(t, res.TenantID)
}
