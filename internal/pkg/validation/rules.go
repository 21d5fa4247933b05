package validation

import (
	"regexp"

	"github.com/aurel/sportcourse/internal/app/models"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[\w\-.]+@([\w-]+\.)+[\w-]{2,4}$`

	// Password min length
	PasswordMinLength = 8

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email *regexp.Regexp
}{
	Email: regexp.MustCompile(EmailPattern),
}

// ValidEmail reports whether the email matches the accepted format.
func ValidEmail(email string) bool {
	return CompiledPatterns.Email.MatchString(email)
}

// ValidPassword reports whether the password satisfies the minimum rules.
func ValidPassword(password string) bool {
	return len(password) >= PasswordMinLength
}

// CheckLevels verifies every value is a known level. It returns the first
// unknown value and false when one is found.
func CheckLevels(levels []models.Level) (models.Level, bool) {
	for _, l := range levels {
		if !models.ValidLevel(l) {
			return l, false
		}
	}
	return "", true
}
