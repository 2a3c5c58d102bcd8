package validators

import "strings"

// NormalizeEmail folds an address to the form it is stored and looked
// up in: trimmed, lowercase. The unique index on users.email works on
// this form only.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
