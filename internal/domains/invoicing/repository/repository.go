package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"bookingpay/infras/otel"
	"bookingpay/infras/postgres"
	"bookingpay/internal/domains/invoicing/model"
	"bookingpay/shared/constant"
	gDto "bookingpay/shared/dto"
	"bookingpay/shared/logger"
	gRepo "bookingpay/shared/repository"
	"context"
	"fmt"
)

// upsertQuery overwrites the singleton on re-authorisation and keeps its creation stamp.
const upsertQuery = `INSERT INTO xero_auth
	(id, tenant_id, access_token, refresh_token, access_token_expires_at, scope, created_at, modified_at, created_by, modified_by)
VALUES
	(:id, :tenant_id, :access_token, :refresh_token, :access_token_expires_at, :scope, :created_at, :modified_at, :created_by, :modified_by)
ON CONFLICT (id) DO UPDATE SET
	tenant_id = EXCLUDED.tenant_id,
	access_token = EXCLUDED.access_token,
	refresh_token = EXCLUDED.refresh_token,
	access_token_expires_at = EXCLUDED.access_token_expires_at,
	scope = EXCLUDED.scope,
	modified_at = EXCLUDED.modified_at,
	modified_by = EXCLUDED.modified_by`

// XeroAuth persists the single Xero credential row.
type XeroAuth interface {
	Get(ctx context.Context) (model.XeroAuth, error)
	Upsert(ctx context.Context, auth model.XeroAuth) error
	Update(ctx context.Context, req map[string]any) error
}

type repositoryImpl struct {
	gRepo.Repository[model.XeroAuth]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) XeroAuth {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.XeroAuth](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func singletonFilter() gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Value:    model.SingletonID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}
}

// Get returns the zero value when Xero has never been connected.
func (r *repositoryImpl) Get(ctx context.Context) (model.XeroAuth, error) {
	return r.Repository.Get(ctx, singletonFilter()) //nolint:wrapcheck
}

func (r *repositoryImpl) Upsert(ctx context.Context, auth model.XeroAuth) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".Upsert")
	defer scope.End()

	auth.ID = model.SingletonID

	scope.SetAttribute(constant.OtelQueryAttributeKey, upsertQuery)

	if _, err := r.db.Write.NamedExecContext(ctx, upsertQuery, auth); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to upsert data (%s): %w", model.EntityName, err)
	}

	return nil
}

func (r *repositoryImpl) Update(ctx context.Context, req map[string]any) error {
	return r.Repository.Update(ctx, req, singletonFilter()) //nolint:wrapcheck
}
