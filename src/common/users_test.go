package common

import (
	"errors"
	"testing"

	"cbs/src/db"
	"cbs/src/types"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		ok       bool
	}{
		{"valid", "Sup3r$ecret", true},
		{"too short", "Ab1!", false},
		{"no uppercase", "sup3r$ecret", false},
		{"no lowercase", "SUP3R$ECRET", false},
		{"no digit", "Super$ecret", false},
		{"no special", "Sup3rSecret", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePassword(tt.password)
			if tt.ok {
				assert.Nil(t, err)
			} else {
				assert.True(t, errors.Is(err, types.ErrPayloadInvalid))
			}
		})
	}
}

func TestCreateUserRejectsWeakPassword(t *testing.T) {
	_, err := CreateUser("someone@example.com", "weak", types.ROLE_STUDENT)
	assert.True(t, errors.Is(err, types.ErrPayloadInvalid))
}

func TestAuthenticateUserWrongPassword(t *testing.T) {
	d, mock := NewMockDB()
	db.NewDB(d)

	hash, err := bcrypt.GenerateFromPassword([]byte("Sup3r$ecret"), bcrypt.DefaultCost)
	assert.Nil(t, err)
	rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "role"}).
		AddRow(1, "someone@example.com", string(hash), string(types.ROLE_STUDENT))
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(rows)

	_, err = AuthenticateUser("someone@example.com", "wrong")
	assert.True(t, errors.Is(err, types.ErrUnauthorized))
}

func TestAuthenticateUserUnknownEmail(t *testing.T) {
	d, mock := NewMockDB()
	db.NewDB(d)

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "role"}))

	_, err := AuthenticateUser("nobody@example.com", "Sup3r$ecret")
	assert.True(t, errors.Is(err, types.ErrUnauthorized))
}
