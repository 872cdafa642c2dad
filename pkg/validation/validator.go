// Package validation wraps a single go-playground/validator instance shared by
// the tracker's request and value checks.
package validation

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// IsIP reports whether s is a syntactically valid IPv4 or IPv6 address.
func IsIP(s string) bool {
	return s != "" && instance().Var(s, "ip") == nil
}

// IsURL reports whether s is an absolute URL with a scheme.
func IsURL(s string) bool {
	return s != "" && instance().Var(s, "url") == nil
}

// Struct validates the `validate` tags of v.
func Struct(v interface{}) error {
	return instance().Struct(v)
}
