// Package username implements the display-name safety predicate applied
// on every entry point that persists a name.
package username

import (
	"regexp"
	"strings"
)

const (
	// MinLength and MaxLength bound accepted display names
	MinLength = 3
	MaxLength = 20
)

// allowedPattern permits letters, numbers, spaces, and basic punctuation
var allowedPattern = regexp.MustCompile(`^[A-Za-z0-9 _.,-]+$`)

// dangerousPatterns are rejected as substrings, case-sensitive. The word
// patterns pass the allowed character class, so this check is separate.
var dangerousPatterns = []string{
	";", "&", "|", ">", "<", "$", "`", "\\",
	"eval", "exec", "System", "bash", "cmd",
	"powershell", "script", "function",
}

// Validate checks a display name against the safety predicate.
// It returns whether the name is acceptable and, if not, a
// human-readable reason.
func Validate(name string) (bool, string) {
	if name == "" {
		return false, "Username cannot be empty"
	}

	if len(name) < MinLength || len(name) > MaxLength {
		return false, "Username must be between 3 and 20 characters"
	}

	if !allowedPattern.MatchString(name) {
		return false, "Username contains invalid characters. Use only letters, numbers, spaces, and basic punctuation"
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return false, "Username contains invalid characters"
		}
	}

	return true, ""
}
