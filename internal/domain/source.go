package domain

// Source tags a result with where its data came from. Degraded reads are
// served from the local fallback store or from fixed illustrative data;
// callers must be able to tell those apart from live records.
type Source string

const (
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
)
