package store

import (
	"context"
	"time"
)

// Collection names used for fallback key derivation. They mirror the
// remote store's table names.
const (
	CollectionProgress     = "course_progress"
	CollectionLeaderboard  = "leaderboard"
	CollectionAchievements = "user_achievements"
)

// withTimeout bounds a remote store call. Operations that outlive the
// deadline are treated the same as failed ones: the caller moves on to the
// fallback path.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
