package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// FriendRepository defines the interface for friendship reads. Only
// accepted friendships count toward statistics and the friends leaderboard.
type FriendRepository interface {
	ListFriendIDs(ctx context.Context, userID string) ([]string, error)
	CountFriends(ctx context.Context, userID string) (int, error)
}

type sqlxFriendRepository struct {
	db *sqlx.DB
}

// NewSQLXFriendRepository creates a new instance of sqlxFriendRepository.
func NewSQLXFriendRepository(db *sqlx.DB) FriendRepository {
	return &sqlxFriendRepository{db: db}
}

func (r *sqlxFriendRepository) ListFriendIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	query := `SELECT friend_id FROM user_friends WHERE user_id = $1 AND status = 'accepted'`

	if err := r.db.SelectContext(ctx, &ids, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list friend ids: %w", err)
	}
	return ids, nil
}

func (r *sqlxFriendRepository) CountFriends(ctx context.Context, userID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM user_friends WHERE user_id = $1 AND status = 'accepted'`

	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("failed to count friends: %w", err)
	}
	return count, nil
}
