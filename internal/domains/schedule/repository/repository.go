package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"bookingpay/infras/otel"
	"bookingpay/infras/postgres"
	"bookingpay/internal/domains/schedule/model"
	"bookingpay/shared/constant"
	gDto "bookingpay/shared/dto"
	"bookingpay/shared/logger"
	gRepo "bookingpay/shared/repository"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

type PaymentSchedule interface {
	Get(ctx context.Context, filter gDto.FilterGroup) (model.PaymentSchedule, error)
	UpsertTx(ctx context.Context, tx *sqlx.Tx, schedule model.PaymentSchedule) (model.PaymentSchedule, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.PaymentSchedule]
	otel        otel.Otel
	upsertQuery string
}

// upsertReturning is what survives from an existing row on conflict.
type upsertReturning struct {
	ID        string    `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	CreatedBy string    `db:"created_by"`
}

func New(db *postgres.Connection, otel otel.Otel) PaymentSchedule {
	repo := gRepo.NewRepository[model.PaymentSchedule](model.EntityName, model.TableName, model.FieldID, db, otel)

	return &repositoryImpl{
		Repository:  repo,
		otel:        otel,
		upsertQuery: buildUpsertQuery(repo.InsertColumns),
	}
}

// buildUpsertQuery keys the upsert on booking_id so a booking never owns two schedules.
func buildUpsertQuery(columns []string) string {
	immutable := []string{model.FieldID, model.FieldBookingID, constant.FieldCreatedAt, constant.FieldCreatedBy}

	placeholders := make([]string, 0, len(columns))
	updates := make([]string, 0, len(columns))

	for _, col := range columns {
		placeholders = append(placeholders, ":"+col)

		if !slices.Contains(immutable, col) {
			updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
		}
	}

	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO UPDATE SET %s RETURNING %s, %s, %s",
		model.TableName,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
		model.FieldBookingID,
		strings.Join(updates, ", "),
		model.FieldID, constant.FieldCreatedAt, constant.FieldCreatedBy,
	)
}

func (r *repositoryImpl) Get(ctx context.Context, filter gDto.FilterGroup) (model.PaymentSchedule, error) {
	return r.Repository.Get(ctx, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) UpsertTx(ctx context.Context, tx *sqlx.Tx, schedule model.PaymentSchedule) (model.PaymentSchedule, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".UpsertTx")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, r.upsertQuery)

	prepare, err := tx.PrepareNamedContext(ctx, r.upsertQuery)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return schedule, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	var returned upsertReturning

	if err = prepare.GetContext(ctx, &returned, schedule); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return schedule, fmt.Errorf("failed to upsert data (%s): %w", model.EntityName, err)
	}

	schedule.ID = returned.ID
	schedule.CreatedAt = returned.CreatedAt
	schedule.CreatedBy = returned.CreatedBy

	return schedule, nil
}
