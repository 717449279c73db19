package pushtokens

import (
	"context"
	"fmt"
	"time"

	"sashambhu/internal/infra/dbx"
)

var QueryTimeoutDuration = time.Second * 5

// Store keeps the Expo push tokens of staff devices.
type Store interface {
	Register(ctx context.Context, userID int64, token string) error
	Unregister(ctx context.Context, userID int64, token string) error
	// DeleteUserTokens forgets every device of a staff member and returns how many were removed.
	DeleteUserTokens(ctx context.Context, userID int64) (int64, error)
	TokensByUser(ctx context.Context, userIDs []int64) (map[int64][]string, error)
	PruneStale(ctx context.Context, olderThan time.Duration) (int64, error)
}

type Repository struct {
	db dbx.Querier
}

func NewRepository(db dbx.Querier) Store {
	return &Repository{db: db}
}

// Register stores a device token for userID. Registering a known token
// again only refreshes last_updated, which keeps it clear of PruneStale.
func (r *Repository) Register(ctx context.Context, userID int64, token string) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	q := `
		INSERT INTO user_push_tokens (user_id, expo_push_token, last_updated)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id, expo_push_token)
		DO UPDATE SET last_updated = NOW()
	`
	_, err := r.db.Exec(ctx, q, userID, token)
	return err
}

func (r *Repository) Unregister(ctx context.Context, userID int64, token string) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	_, err := r.db.Exec(ctx, `DELETE FROM user_push_tokens WHERE user_id = $1 AND expo_push_token = $2`, userID, token)
	return err
}

func (r *Repository) DeleteUserTokens(ctx context.Context, userID int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM user_push_tokens WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// TokensByUser groups the registered tokens of userIDs by user. Users with
// no device are absent from the map.
func (r *Repository) TokensByUser(ctx context.Context, userIDs []int64) (map[int64][]string, error) {
	byUser := make(map[int64][]string)
	if len(userIDs) == 0 {
		return byUser, nil
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT user_id, expo_push_token
		FROM user_push_tokens
		WHERE user_id = ANY($1)
		ORDER BY user_id, last_updated DESC
	`, userIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var uid int64
		var tok string
		if err := rows.Scan(&uid, &tok); err != nil {
			return nil, err
		}
		byUser[uid] = append(byUser[uid], tok)
	}
	return byUser, rows.Err()
}

// PruneStale deletes tokens whose device has not re-registered within
// olderThan, so a reinstalled or retired phone stops receiving alerts.
func (r *Repository) PruneStale(ctx context.Context, olderThan time.Duration) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	interval := fmt.Sprintf("%d seconds", int64(olderThan.Seconds()))
	tag, err := r.db.Exec(ctx, `DELETE FROM user_push_tokens WHERE last_updated < NOW() - $1::interval`, interval)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
