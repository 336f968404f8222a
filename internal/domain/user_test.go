package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeTaxID(t *testing.T) {
	require.Equal(t, "11144477735", NormalizeTaxID("111.444.777-35"))
	require.Equal(t, "", NormalizeTaxID("abc"))
}

func TestUserRecordNormalizeValidate(t *testing.T) {
	u := UserRecord{
		Username:     " ana ",
		Email1:       "A@X.com ",
		Email2:       "a@x.COM",
		PasswordHash: "h",
		TaxID:        "111",
	}
	u.Normalize()
	require.Equal(t, "ana", u.Username)
	require.Equal(t, "a@x.com", u.Email1)
	require.NoError(t, u.Validate())

	u.Email2 = "b@x.com"
	require.ErrorIs(t, u.Validate(), ErrInvalidRecord)
}

func TestUserRecordCollides(t *testing.T) {
	ana := UserRecord{Username: "ana", Email1: "a@x.com", Email2: "a@x.com", TaxID: "111.444"}

	require.Equal(t, FieldUsername, ana.Collides(&UserRecord{Username: "ana"}))
	require.Equal(t, FieldEmail, ana.Collides(&UserRecord{Username: "bob", Email1: "b@x.com", Email2: "A@X.com"}))
	require.Equal(t, FieldTaxID, ana.Collides(&UserRecord{Username: "bob", Email1: "b@x.com", TaxID: "111444"}))
	require.Equal(t, "", ana.Collides(&UserRecord{Username: "bob", Email1: "b@x.com", TaxID: "222"}))
}

func TestDuplicateFieldError(t *testing.T) {
	var err error = &DuplicateFieldError{Field: FieldEmail}

	require.True(t, errors.Is(err, ErrDuplicateEntry))
	require.EqualError(t, err, "duplicate email")

	var dup *DuplicateFieldError
	require.True(t, errors.As(err, &dup))
	require.Equal(t, FieldEmail, dup.Field)
}
