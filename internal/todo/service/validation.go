package service

import (
	"strings"
	"time"

	"github.com/aussiebroadwan/taskhub/internal/todo/domain"
)

// validString reports whether an argument is usable: present and not blank.
func validString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// parseDate parses a wire-format date, converting a parse failure into the
// user-visible validation error that names the expected pattern.
func parseDate(s string) (time.Time, error) {
	date, err := domain.ParseDate(s)
	if err != nil {
		return time.Time{}, domain.Errorf(domain.KindValidation,
			"Date must be in valid format : (%s)", domain.DatePattern)
	}
	return date, nil
}
