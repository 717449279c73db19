package storage

import (
	"context"
	"fmt"

	"sashambhu/internal/domain/bookings"
	"sashambhu/internal/domain/prices"
	"sashambhu/internal/domain/pushtokens"
	"sashambhu/internal/domain/users"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Container struct {
	pool       *pgxpool.Pool // IMPORTANT: set the pool so WithTx works
	Bookings   bookings.Store
	Prices     prices.Store
	Users      users.Store
	PushTokens pushtokens.Store
}

func NewContainer(db *pgxpool.Pool, refs *bookings.ReferenceCodec) *Container {
	return &Container{
		pool:       db,
		Bookings:   bookings.NewRepository(db, refs),
		Prices:     prices.NewRepository(db),
		Users:      users.NewRepository(db),
		PushTokens: pushtokens.NewRepository(db),
	}
}

// StaffTx is a temporary, tx-scoped set of repos for atomic staff changes.
type StaffTx struct {
	Users      users.Store
	PushTokens pushtokens.Store
}

// WithStaffTx runs a staff unit-of-work atomically.
func (c *Container) WithStaffTx(ctx context.Context, fn func(s *StaffTx) error) error {
	if c.pool == nil {
		return fmt.Errorf("storage container pool is nil (did you forget to set pool in NewContainer?)")
	}

	tx, err := c.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}

	defer func() {
		_ = tx.Rollback(ctx) // safe even if already committed
	}()

	s := &StaffTx{
		Users:      users.NewRepository(tx),
		PushTokens: pushtokens.NewRepository(tx),
	}

	if err := fn(s); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
