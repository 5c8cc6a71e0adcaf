package mocks

import (
	"bookingpay/infras/postgres"
	"context"
)

type transactorImpl struct {
	err error
}

// WithTx implements postgres.Transactor. fn runs with a nil transaction.
func (t *transactorImpl) WithTx(ctx context.Context, fn postgres.TxFunc) error {
	if t.err != nil {
		return t.err
	}

	return fn(ctx, nil)
}

func NewTransactor() postgres.Transactor {
	return &transactorImpl{}
}

// NewFailingTransactor returns a transactor that fails to begin.
func NewFailingTransactor(err error) postgres.Transactor {
	return &transactorImpl{err: err}
}
