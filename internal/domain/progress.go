package domain

import "time"

// ProgressPayload holds the mutable part of a progress record.
type ProgressPayload struct {
	Started      bool       `json:"started"`
	Completed    bool       `json:"completed"`
	LastAccessed time.Time  `json:"last_accessed"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// ProgressRecord tracks a user's progress on a single module. There is at
// most one record per (user, course, module); it is created on first start
// and mutated in place afterwards.
type ProgressRecord struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	CourseID  string          `json:"course_id"`
	ModuleID  string          `json:"module_id"`
	Progress  ProgressPayload `json:"progress"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CourseProgress is the tagged result of a per-course progress read. Source
// tells the caller whether the records came from the remote store or the
// local fallback.
type CourseProgress struct {
	Source  Source           `json:"source"`
	Records []ProgressRecord `json:"records"`
}
