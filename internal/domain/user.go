package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// UserRecord is the authoritative signup record. It is written once and never changed.
type UserRecord struct {
	Username     string    `json:"username"`
	Email1       string    `json:"email1"`
	Email2       string    `json:"email2"`
	PasswordHash string    `json:"password"`
	Birthdate    string    `json:"birthdate"`
	TaxID        string    `json:"tax_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// Normalize trims the identity fields and lower-cases both emails.
func (u *UserRecord) Normalize() {
	u.Username = strings.TrimSpace(u.Username)
	u.Email1 = NormalizeEmail(u.Email1)
	u.Email2 = NormalizeEmail(u.Email2)
	u.Birthdate = strings.TrimSpace(u.Birthdate)
	u.TaxID = strings.TrimSpace(u.TaxID)
}

func (u *UserRecord) Validate() error {
	switch {
	case u.Username == "":
		return fmt.Errorf("%w: empty username", ErrInvalidRecord)
	case u.Email1 == "":
		return fmt.Errorf("%w: empty email1", ErrInvalidRecord)
	case u.Email1 != u.Email2:
		return fmt.Errorf("%w: email2 does not match email1", ErrInvalidRecord)
	case u.PasswordHash == "":
		return fmt.Errorf("%w: empty password hash", ErrInvalidRecord)
	case NormalizeTaxID(u.TaxID) == "":
		return fmt.Errorf("%w: empty tax id", ErrInvalidRecord)
	}

	return nil
}

// Collides returns the first unique field other shares with u, or "".
func (u *UserRecord) Collides(other *UserRecord) string {
	if u.Username == other.Username {
		return FieldUsername
	}

	mine := []string{NormalizeEmail(u.Email1), NormalizeEmail(u.Email2)}
	for _, theirs := range []string{NormalizeEmail(other.Email1), NormalizeEmail(other.Email2)} {
		if theirs == "" {
			continue
		}
		if theirs == mine[0] || theirs == mine[1] {
			return FieldEmail
		}
	}

	if tax := NormalizeTaxID(u.TaxID); tax != "" && tax == NormalizeTaxID(other.TaxID) {
		return FieldTaxID
	}

	return ""
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeTaxID keeps digits only, so "111.444.777-35" and "11144477735" are the same id.
func NormalizeTaxID(taxID string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, taxID)
}
