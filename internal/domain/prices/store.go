package prices

import (
	"context"
	"errors"
	"time"

	"sashambhu/internal/infra/dbx"
	"sashambhu/internal/pricing"

	"github.com/jackc/pgx/v5"
)

var QueryTimeoutDuration = time.Second * 5

// Settings is the saved price table with its audit fields.
type Settings struct {
	pricing.PriceTable
	UpdatedBy *int64     `json:"updated_by,omitempty" swaggertype:"integer"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type Store interface {
	// Current returns the saved prices, or pricing.DefaultTable when none
	// have been saved yet.
	Current(ctx context.Context) (*Settings, error)
	Save(ctx context.Context, table pricing.PriceTable, updatedBy int64) (*Settings, error)
}

type Repository struct {
	db dbx.Querier
}

func NewRepository(db dbx.Querier) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Current(ctx context.Context) (*Settings, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		SELECT playzone_1hr_cents, playzone_unlimited_cents, skatepark_30min_cents,
		       skatepark_1hr_cents, skatepark_extra_hour_cents, updated_by, updated_at
		FROM price_settings
		WHERE id = 1
	`
	var s Settings
	err := r.db.QueryRow(ctx, query).Scan(
		&s.Playzone1hrCents,
		&s.PlayzoneUnlimitedCents,
		&s.Skatepark30minCents,
		&s.Skatepark1hrCents,
		&s.SkateparkExtraHourCents,
		&s.UpdatedBy,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &Settings{PriceTable: pricing.DefaultTable()}, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *Repository) Save(ctx context.Context, table pricing.PriceTable, updatedBy int64) (*Settings, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		INSERT INTO price_settings (
			id, playzone_1hr_cents, playzone_unlimited_cents, skatepark_30min_cents,
			skatepark_1hr_cents, skatepark_extra_hour_cents, updated_by, updated_at
		) VALUES (1, $1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (id) DO UPDATE SET
			playzone_1hr_cents = EXCLUDED.playzone_1hr_cents,
			playzone_unlimited_cents = EXCLUDED.playzone_unlimited_cents,
			skatepark_30min_cents = EXCLUDED.skatepark_30min_cents,
			skatepark_1hr_cents = EXCLUDED.skatepark_1hr_cents,
			skatepark_extra_hour_cents = EXCLUDED.skatepark_extra_hour_cents,
			updated_by = EXCLUDED.updated_by,
			updated_at = EXCLUDED.updated_at
		RETURNING updated_at
	`
	s := Settings{PriceTable: table, UpdatedBy: &updatedBy}
	var updatedAt time.Time
	err := r.db.QueryRow(ctx, query,
		table.Playzone1hrCents,
		table.PlayzoneUnlimitedCents,
		table.Skatepark30minCents,
		table.Skatepark1hrCents,
		table.SkateparkExtraHourCents,
		updatedBy,
	).Scan(&updatedAt)
	if err != nil {
		return nil, err
	}
	s.UpdatedAt = &updatedAt
	return &s, nil
}
