// Package catalog holds the reference entities a submission is resolved
// against: clients, their projects and the service (test) types.
package catalog

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	MaxClientCodeLen       = 5
	MaxServiceNomenclature = 10
	MaxProjectCodeLen      = 20
	MaxProjectNomenclature = 10
	MaxNameLen             = 255
)

// Codes become ticket code segments, which are hyphen separated.
var codePattern = regexp.MustCompile(`^[A-Z0-9_]+$`)

// NormalizeCode trims and upper-cases a short code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func validateCode(kind, code string, maxLen int) error {
	if code == "" {
		return fmt.Errorf("%s is required", kind)
	}
	if len(code) > maxLen {
		return fmt.Errorf("%s cannot exceed %d characters", kind, maxLen)
	}
	if !codePattern.MatchString(code) {
		return fmt.Errorf("%s may only contain letters, digits and underscores", kind)
	}
	return nil
}

func validateName(kind, name string) error {
	if name == "" {
		return fmt.Errorf("%s is required", kind)
	}
	if len(name) > MaxNameLen {
		return fmt.Errorf("%s cannot exceed %d characters", kind, MaxNameLen)
	}
	return nil
}

func now() time.Time {
	return time.Now().UTC()
}
