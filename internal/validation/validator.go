package validation

import (
	"regexp"
	"strings"

	"gamelearn/internal/domain"
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateModuleRef validates a (course_id, module_id) pair.
func (v *Validator) ValidateModuleRef(courseID, moduleID string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(courseID) == "" {
		errors = append(errors, domain.NewMissingFieldError("course_id"))
	} else if !isValidSlug(courseID) {
		errors = append(errors, domain.NewInvalidFormatError("course_id", courseID))
	}

	if strings.TrimSpace(moduleID) == "" {
		errors = append(errors, domain.NewMissingFieldError("module_id"))
	} else if !isValidSlug(moduleID) {
		errors = append(errors, domain.NewInvalidFormatError("module_id", moduleID))
	}

	return errors
}

// ValidateAddScore validates a score delta request.
func (v *Validator) ValidateAddScore(points, currentStreak int) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if points < 0 || points > 10000 {
		errors = append(errors, domain.NewOutOfRangeError("points", points, 0, 10000))
	}
	if currentStreak < 0 || currentStreak > 3650 {
		errors = append(errors, domain.NewOutOfRangeError("current_streak", currentStreak, 0, 3650))
	}

	return errors
}

// ValidateAchievementID validates an achievement identifier.
func (v *Validator) ValidateAchievementID(achievementID string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(achievementID) == "" {
		errors = append(errors, domain.NewMissingFieldError("achievement_id"))
	} else if !isValidSlug(achievementID) {
		errors = append(errors, domain.NewInvalidFormatError("achievement_id", achievementID))
	}

	return errors
}

// Helper functions for validation

// isValidSlug checks identifiers like course, module and achievement IDs:
// alphanumeric, hyphens and underscores, 1-50 characters.
func isValidSlug(s string) bool {
	if len(s) == 0 || len(s) > 50 {
		return false
	}
	validSlug := regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	return validSlug.MatchString(s)
}
