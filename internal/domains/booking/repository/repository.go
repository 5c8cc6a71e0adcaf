package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"bookingpay/infras/otel"
	"bookingpay/infras/postgres"
	"bookingpay/internal/domains/booking/model"
	gDto "bookingpay/shared/dto"
	gRepo "bookingpay/shared/repository"
	"context"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

func (r *repositoryImpl) Get(ctx context.Context, filter gDto.FilterGroup) (model.Booking, error) {
	return r.Repository.Get(ctx, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Booking, error) {
	return r.Repository.GetAll(ctx, params, filter) //nolint:wrapcheck
}
