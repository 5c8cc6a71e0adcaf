package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"bookingpay/config"
	"bookingpay/infras/otel"
	"bookingpay/infras/xero"
	"bookingpay/internal/domains/invoicing/model"
	"bookingpay/internal/domains/invoicing/model/dto"
	"bookingpay/internal/domains/invoicing/repository"
	"bookingpay/shared"
	"bookingpay/shared/constant"
	"bookingpay/shared/event"
	"bookingpay/shared/failure"
	gModel "bookingpay/shared/model"
	"bookingpay/shared/session"
	"bookingpay/shared/timezone"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	// tokenExpiryMargin is subtracted from the provider's expiry before it is stored.
	tokenExpiryMargin = 60 * time.Second

	sessionKeyState = "xero_oauth_state"

	errNotConnected = "xero is not connected"
)

type Invoicing interface {
	// CreateInvoice may run inside a caller's transaction; callers announce
	// the created invoices with AnnounceCreated once they have committed.
	CreateInvoice(ctx context.Context, req dto.InvoiceRequest) (dto.InvoiceResponse, error)
	AnnounceCreated(ctx context.Context, invoices ...dto.InvoiceResponse)
	ConnectURL(ctx context.Context, sessionID string) (string, error)
	Callback(ctx context.Context, sessionID string, req dto.CallbackRequest) session.Flash
	Status(ctx context.Context) (dto.StatusResponse, error)
}

type serviceImpl struct {
	repo      repository.XeroAuth
	client    xero.Client
	sessions  session.Store
	publisher event.Publisher
	cfg       *config.Config
	otel      otel.Otel

	// refreshMu serialises token refreshes inside this process.
	refreshMu sync.Mutex
}

func New(repo repository.XeroAuth, client xero.Client, sessions session.Store, publisher event.Publisher, cfg *config.Config, otel otel.Otel) Invoicing {
	return &serviceImpl{
		repo:      repo,
		client:    client,
		sessions:  sessions,
		publisher: publisher,
		cfg:       cfg,
		otel:      otel,
	}
}

func (s *serviceImpl) CreateInvoice(ctx context.Context, req dto.InvoiceRequest) (res dto.InvoiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateInvoice")
	defer scope.End()
	defer scope.TraceIfError(err)

	auth, err := s.credential(ctx)
	if err != nil {
		return res, err
	}

	result, err := s.client.CreateInvoice(ctx, auth.AccessToken, auth.TenantID, req.ToXero(timezone.Today()))
	if err != nil {
		log.Error().Err(err).Str("description", req.Description).Msg("failed to create xero invoice")

		var xeroErr *xero.Error
		if errors.As(err, &xeroErr) {
			return res, failure.BadGateway(xeroErr.Message) // nolint:wrapcheck
		}

		return res, fmt.Errorf("failed to create xero invoice: %w", err)
	}

	res.FromResult(result, req)

	return res, nil
}

func (s *serviceImpl) AnnounceCreated(ctx context.Context, invoices ...dto.InvoiceResponse) {
	for _, invoice := range invoices {
		s.publisher.Publish(ctx, invoice.InvoiceID, event.InvoiceCreated, invoice)
	}
}

// credential returns a usable credential, refreshing the access token at most once.
func (s *serviceImpl) credential(ctx context.Context) (auth model.XeroAuth, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".credential")
	defer scope.End()
	defer scope.TraceIfError(err)

	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	auth, err = s.repo.Get(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get xero credential")

		return auth, fmt.Errorf("failed to get xero credential: %w", err)
	}

	if !auth.Connected() {
		return auth, failure.BadRequestFromString(errNotConnected) // nolint:wrapcheck
	}

	now := timezone.Now()
	if auth.AccessTokenValid(now) {
		return auth, nil
	}

	token, err := s.client.Refresh(ctx, auth.RefreshToken)
	if err != nil {
		log.Error().Err(err).Msg("failed to refresh xero access token")

		return auth, failure.BadGateway("failed to refresh xero access token, reconnect xero") // nolint:wrapcheck
	}

	expiresAt := token.Expiry.Add(-tokenExpiryMargin)

	auth.AccessToken = token.AccessToken
	auth.RefreshToken = token.RefreshToken
	auth.AccessTokenExpiresAt = &expiresAt

	fields := map[string]any{
		model.FieldAccessToken:          auth.AccessToken,
		model.FieldRefreshToken:         auth.RefreshToken,
		model.FieldAccessTokenExpiresAt: expiresAt,
		constant.FieldModifiedAt:        now,
		constant.FieldModifiedBy:        shared.Actor(ctx),
	}

	if token.Scope != "" {
		auth.Scope = token.Scope
		fields[model.FieldScope] = token.Scope
	}

	if err = s.repo.Update(ctx, fields); err != nil {
		log.Error().Err(err).Msg("failed to persist refreshed xero token")

		return auth, fmt.Errorf("failed to persist refreshed xero token: %w", err)
	}

	log.Info().Time("expires_at", expiresAt).Msg("xero access token refreshed")

	return auth, nil
}

func (s *serviceImpl) ConnectURL(ctx context.Context, sessionID string) (url string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ConnectURL")
	defer scope.End()
	defer scope.TraceIfError(err)

	state := uuid.NewString()

	if err = s.sessions.Set(ctx, sessionID, sessionKeyState, state, s.cfg.External.Xero.StateTTLSeconds); err != nil {
		log.Error().Err(err).Msg("failed to store xero oauth state")

		return "", fmt.Errorf("failed to store xero oauth state: %w", err)
	}

	return s.client.AuthCodeURL(state), nil
}

// Callback never fails: every outcome becomes a flash message for the operator.
func (s *serviceImpl) Callback(ctx context.Context, sessionID string, req dto.CallbackRequest) (flash session.Flash) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Callback")
	defer scope.End()

	tenantName, err := s.connect(ctx, sessionID, req)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("xero authorisation failed")

		flash = session.Flash{Category: session.CategoryError, Message: "Xero connection failed: " + err.Error()}
	} else {
		flash = session.Flash{Category: session.CategorySuccess, Message: "Xero connected to " + tenantName + "."}
	}

	if err := s.sessions.AddFlash(ctx, sessionID, flash); err != nil {
		log.Warn().Err(err).Msg("failed to store flash message")
	}

	return flash
}

func (s *serviceImpl) connect(ctx context.Context, sessionID string, req dto.CallbackRequest) (string, error) {
	expected, err := s.sessions.Pop(ctx, sessionID, sessionKeyState)
	if err != nil {
		return "", fmt.Errorf("could not read session: %w", err)
	}

	if expected == constant.Empty || req.State != expected {
		return "", errors.New("state mismatch, start the connection again")
	}

	if req.Code == constant.Empty {
		return "", errors.New("missing authorization code")
	}

	token, err := s.client.Exchange(ctx, req.Code)
	if err != nil {
		return "", fmt.Errorf("could not exchange authorization code: %w", err)
	}

	connections, err := s.client.Connections(ctx, token.AccessToken)
	if err != nil {
		return "", fmt.Errorf("could not list tenant connections: %w", err)
	}

	if len(connections) == 0 {
		return "", errors.New("no organisation was authorised")
	}

	tenant := connections[0]
	expiresAt := token.Expiry.Add(-tokenExpiryMargin)

	auth := model.XeroAuth{
		ID:                   model.SingletonID,
		TenantID:             tenant.TenantID,
		AccessToken:          token.AccessToken,
		RefreshToken:         token.RefreshToken,
		AccessTokenExpiresAt: &expiresAt,
		Scope:                token.Scope,
		Metadata:             gModel.NewMetadata(shared.Actor(ctx), timezone.Now()),
	}

	if err = s.repo.Upsert(ctx, auth); err != nil {
		return "", fmt.Errorf("could not save credential: %w", err)
	}

	if tenant.TenantName != constant.Empty {
		return tenant.TenantName, nil
	}

	return tenant.TenantID, nil
}

func (s *serviceImpl) Status(ctx context.Context) (res dto.StatusResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Status")
	defer scope.End()
	defer scope.TraceIfError(err)

	auth, err := s.repo.Get(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get xero credential")

		return res, fmt.Errorf("failed to get xero credential: %w", err)
	}

	res.FromModel(auth, timezone.Now())

	return res, nil
}
