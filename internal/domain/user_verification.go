package domain

import (
	"strings"
	"time"
)

// VerificationEntry is the projection row login consults.
type VerificationEntry struct {
	Username   string     `json:"username"`
	Email      string     `json:"email1"`
	Verified   bool       `json:"verified"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`
}

func (e *VerificationEntry) HasContact() bool {
	return strings.TrimSpace(e.Username) != "" && strings.TrimSpace(e.Email) != ""
}

// MatchesEmail compares case-insensitively.
func (e *VerificationEntry) MatchesEmail(email string) bool {
	email = NormalizeEmail(email)
	return email != "" && NormalizeEmail(e.Email) == email
}
