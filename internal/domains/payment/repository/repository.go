package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"bookingpay/infras/otel"
	"bookingpay/infras/postgres"
	"bookingpay/internal/domains/payment/model"
	"bookingpay/shared/constant"
	gDto "bookingpay/shared/dto"
	"bookingpay/shared/logger"
	gRepo "bookingpay/shared/repository"
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const summaryQuery = `SELECT status,
	COUNT(id) AS count,
	COALESCE(SUM(scheduled_amount_cents), 0) AS scheduled_sum_cents,
	COALESCE(SUM(paid_amount_cents), 0) AS paid_sum_cents
FROM payments
GROUP BY status
ORDER BY status`

type Payment interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, payment model.Payment) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Payment, error)
	GetAllWithBookingTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) ([]model.PaymentWithBooking, error)
	GetByProviderPaymentIDTx(ctx context.Context, tx *sqlx.Tx, providerPaymentID string) (model.Payment, error)
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Summary(ctx context.Context) ([]model.StatusSummary, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Payment]
	withBooking gRepo.Repository[model.PaymentWithBooking]
	db          *postgres.Connection
	otel        otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Payment {
	return &repositoryImpl{
		Repository:  gRepo.NewRepository[model.Payment](model.EntityName, model.TableName, model.FieldID, db, otel),
		withBooking: gRepo.NewRepository[model.PaymentWithBooking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:          db,
		otel:        otel,
	}
}

func (r *repositoryImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Payment, error) {
	return r.Repository.GetAll(ctx, params, filter) //nolint:wrapcheck
}

// GetAllWithBookingTx returns matching payments joined with their booking, oldest first.
func (r *repositoryImpl) GetAllWithBookingTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) ([]model.PaymentWithBooking, error) {
	params := gDto.QueryParams{
		SortBy:  model.FieldScheduledDate,
		SortDir: gDto.SortDirAsc,
	}

	return r.withBooking.GetAllTx(ctx, tx, params, filter) //nolint:wrapcheck
}

// GetByProviderPaymentIDTx returns the earliest scheduled payment carrying the provider id.
// Duplicates are possible; the zero value means no match.
func (r *repositoryImpl) GetByProviderPaymentIDTx(ctx context.Context, tx *sqlx.Tx, providerPaymentID string) (model.Payment, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".GetByProviderPaymentIDTx")
	defer scope.End()

	params := gDto.QueryParams{
		Limit:   1,
		SortBy:  model.FieldScheduledDate,
		SortDir: gDto.SortDirAsc,
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldProviderPaymentID,
				Value:    providerPaymentID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}

	payments, err := r.Repository.GetAllTx(ctx, tx, params, filter)
	if err != nil {
		return model.Payment{}, err //nolint:wrapcheck
	}

	if len(payments) == 0 {
		return model.Payment{}, nil
	}

	return payments[0], nil
}

func (r *repositoryImpl) Summary(ctx context.Context) ([]model.StatusSummary, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".Summary")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, summaryQuery)

	var summaries []model.StatusSummary

	if err := r.db.Read.SelectContext(ctx, &summaries, summaryQuery); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to summarise data (%s): %w", model.EntityName, err)
	}

	return summaries, nil
}
