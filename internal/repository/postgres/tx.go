package postgres

import (
	"context"
	"database/sql"
	"errors"

	"ticketresale/internal/domain"
)

type transactor struct {
	DB *sql.DB
}

func NewTransactor(db *sql.DB) domain.Transactor {
	return &transactor{
		DB: db,
	}
}

// WithinTx runs fn with repositories bound to one transaction. fn's error rolls it back.
func (t *transactor) WithinTx(ctx context.Context, fn func(ctx context.Context, repos domain.Repositories) error) error {
	tx, err := t.DB.BeginTx(ctx, nil)
	if err != nil {
		return translateError(ctx, "begin transaction", err, false)
	}
	repos := domain.Repositories{
		Events:  &eventRepository{DB: tx},
		Sellers: &sellerRepository{DB: tx},
	}
	if err := fn(ctx, repos); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return errors.Join(err, translateError(ctx, "rollback transaction", rbErr, false))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return translateError(ctx, "commit transaction", err, true)
	}
	return nil
}
