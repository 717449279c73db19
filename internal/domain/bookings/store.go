package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sashambhu/internal/infra/dbx"
	"sashambhu/internal/token"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// tokenLockKey serializes token allocation across every API instance
// sharing the database.
const tokenLockKey int64 = 0x53_41_53_48_54_4f_4b // "SASHTOK"

const bookingColumns = `
	id, client_ref, token_number, name, phone_number, gender, age, address,
	number_of_persons, date_english::text, date_nepali, date_confidence,
	game_type, playzone_package, skatepark_base_package, skatepark_extra_hours,
	price_cents, status, created_by, created_at, started_at, ended_at,
	actual_duration_minutes`

type Repository struct {
	db   dbx.Beginner
	refs *ReferenceCodec
}

func NewRepository(db dbx.Beginner, refs *ReferenceCodec) *Repository {
	return &Repository{db: db, refs: refs}
}

func (r *Repository) scan(row pgx.Row) (*Booking, error) {
	var b Booking
	err := row.Scan(
		&b.ID, &b.ClientRef, &b.TokenNumber, &b.Name, &b.PhoneNumber, &b.Gender, &b.Age, &b.Address,
		&b.NumberOfPersons, &b.DateEnglish, &b.DateNepali, &b.DateConfidence,
		&b.GameType, &b.PlayzonePackage, &b.SkateparkBasePackage, &b.SkateparkExtraHours,
		&b.PriceCents, &b.Status, &b.CreatedBy, &b.CreatedAt, &b.StartedAt, &b.EndedAt,
		&b.ActualDurationMinutes,
	)
	if err != nil {
		return nil, err
	}
	if r.refs != nil {
		b.Reference = r.refs.Encode(b.ID)
	}
	return &b, nil
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Booking{}
	for rows.Next() {
		b, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

// Create inserts b inside a transaction holding the token lock, so two
// concurrent creates can never read the same maximum token.
func (r *Repository) Create(ctx context.Context, b *Booking) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	if b.ClientRef == uuid.Nil {
		b.ClientRef = uuid.New()
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer func() {
		_ = tx.Rollback(ctx) // safe even if already committed
	}()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, tokenLockKey); err != nil {
		return false, fmt.Errorf("acquire token lock: %w", err)
	}

	// A retried submit with the same client_ref gets the stored booking back.
	existing, err := r.scan(tx.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE client_ref = $1`, b.ClientRef))
	switch {
	case err == nil:
		*b = *existing
		return false, tx.Commit(ctx)
	case !errors.Is(err, pgx.ErrNoRows):
		return false, err
	}

	if strings.TrimSpace(b.TokenNumber) == "" {
		b.TokenNumber = r.allocateToken(ctx, tx)
	}
	if b.Status == "" {
		b.Status = StatusPending
	}

	query := `
		INSERT INTO bookings (
			client_ref, token_number, name, phone_number, gender, age, address,
			number_of_persons, date_english, date_nepali, date_confidence,
			game_type, playzone_package, skatepark_base_package, skatepark_extra_hours,
			price_cents, status, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::date, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id, created_at
	`
	err = tx.QueryRow(ctx, query,
		b.ClientRef, b.TokenNumber, b.Name, b.PhoneNumber, b.Gender, b.Age, b.Address,
		b.NumberOfPersons, b.DateEnglish, b.DateNepali, b.DateConfidence,
		b.GameType, b.PlayzonePackage, b.SkateparkBasePackage, b.SkateparkExtraHours,
		b.PriceCents, b.Status, b.CreatedBy,
	).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err, "bookings_token_number_key") {
			return false, ErrDuplicateToken
		}
		return false, err
	}

	if r.refs != nil {
		b.Reference = r.refs.Encode(b.ID)
	}
	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// allocateToken reads the existing tokens under a savepoint. If that read
// fails the savepoint is rolled back, leaving tx usable, and the fallback
// token is returned; the unique index still rejects it if it is taken.
func (r *Repository) allocateToken(ctx context.Context, tx pgx.Tx) string {
	sp, err := tx.Begin(ctx)
	if err != nil {
		return token.Fallback
	}

	tok, err := token.NewAllocator(&Repository{db: sp}).Next(ctx)
	if err != nil {
		_ = sp.Rollback(ctx)
		return tok
	}
	if err := sp.Commit(ctx); err != nil {
		return token.Fallback
	}
	return tok
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	b, err := r.scan(r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// List returns every booking, newest first.
func (r *Repository) List(ctx context.Context) ([]Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return r.list(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY created_at DESC`)
}

func (r *Repository) ListByDate(ctx context.Context, dateEnglish string) ([]Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return r.list(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE date_english = $1::date ORDER BY created_at DESC`, dateEnglish)
}

// ListTokens returns the token of every booking ever created.
func (r *Repository) ListTokens(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT token_number FROM bookings`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}

// SearchHistory finds past bookings whose name or phone number equals term.
func (r *Repository) SearchHistory(ctx context.Context, term string) ([]CustomerVisit, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []CustomerVisit{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		SELECT id, name, phone_number, gender, number_of_persons, date_english::text, status,
		       game_type, playzone_package, skatepark_base_package, skatepark_extra_hours
		FROM bookings
		WHERE name = $1 OR phone_number = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, term)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	visits := []CustomerVisit{}
	for rows.Next() {
		var v CustomerVisit
		if err := rows.Scan(
			&v.ID, &v.Name, &v.PhoneNumber, &v.Gender, &v.NumberOfPersons, &v.DateEnglish, &v.Status,
			&v.GameType, &v.PlayzonePackage, &v.SkateparkBasePackage, &v.SkateparkExtraHours,
		); err != nil {
			return nil, err
		}
		visits = append(visits, v)
	}
	return visits, rows.Err()
}

func (r *Repository) Advance(ctx context.Context, id int64, status Status, at time.Time) (*Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	b, err := r.scan(tx.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := b.Advance(status, at); err != nil {
		return nil, err
	}

	query := `
		UPDATE bookings
		SET status = $1, started_at = $2, ended_at = $3, actual_duration_minutes = $4
		WHERE id = $5
	`
	if _, err := tx.Exec(ctx, query, b.Status, b.StartedAt, b.EndedAt, b.ActualDurationMinutes, b.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return b, nil
}

// ConfirmAllPending confirms every pending booking and returns how many changed.
func (r *Repository) ConfirmAllPending(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `UPDATE bookings SET status = $1 WHERE status = $2`, StatusConfirmed, StatusPending)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
