package middleware

import (
	"strings"
)

// WhitelistValidator allows an exact, case-insensitive list of origins.
type WhitelistValidator struct {
	allowedOrigins []string
}

// NewWhitelistValidator creates a validator for origins.
// Entries are trimmed, lowercased and stripped of a trailing slash; empty entries are skipped.
func NewWhitelistValidator(origins []string) *WhitelistValidator {
	normalized := make([]string, 0, len(origins))
	for _, origin := range origins {
		if origin = normalizeOrigin(origin); origin != "" {
			normalized = append(normalized, origin)
		}
	}
	return &WhitelistValidator{allowedOrigins: normalized}
}

// IsAllowed reports whether origin is on the whitelist.
func (v *WhitelistValidator) IsAllowed(origin string) bool {
	origin = normalizeOrigin(origin)
	if origin == "" {
		return false
	}
	for _, allowed := range v.allowedOrigins {
		if origin == allowed {
			return true
		}
	}
	return false
}

// AllowedOrigins returns a copy of the normalized whitelist.
func (v *WhitelistValidator) AllowedOrigins() []string {
	out := make([]string, len(v.allowedOrigins))
	copy(out, v.allowedOrigins)
	return out
}

func normalizeOrigin(origin string) string {
	origin = strings.ToLower(strings.TrimSpace(origin))
	return strings.TrimSuffix(origin, "/")
}
