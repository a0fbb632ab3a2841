package domain

import (
	"strings"
	"time"
)

// Party is a political party that sources are attributed to.
// Parties are seeded once at database creation and never deleted
// by normal ingestion.
type Party struct {
	// ID is the database identifier.
	ID int64

	// Name is the full party name, e.g. "Liberal Party of Canada".
	Name string

	// Abbreviation is the short form, e.g. "LPC".
	Abbreviation string

	// CreatedAt is when the party row was created.
	CreatedAt time.Time
}

// Matches reports whether the given hint refers to this party.
// A hint matches on a case-insensitive substring of the name or an
// exact case-insensitive abbreviation.
func (p Party) Matches(hint string) bool {
	hint = strings.TrimSpace(hint)
	if hint == "" {
		return false
	}
	if strings.Contains(strings.ToLower(p.Name), strings.ToLower(hint)) {
		return true
	}
	return p.Abbreviation != "" && strings.EqualFold(p.Abbreviation, hint)
}
