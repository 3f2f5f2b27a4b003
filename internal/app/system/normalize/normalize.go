// Package normalize canonicalizes user-entered identity fields before they
// are stored or used in lookups. Every write path and every lookup must go
// through the same normalization or case differences will create duplicate
// accounts.
package normalize

import "strings"

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace, preserving interior case and spacing.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Role lowercases and trims a role name so "Teacher" and "teacher" compare
// equal. It does not validate membership; see inputval.IsValidRole.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Status lowercases and trims an account status.
func Status(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Department trims a department name, collapsing interior runs of spaces.
func Department(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
