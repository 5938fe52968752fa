package common

import (
	"strings"
	"unicode"

	"cbs/src/db"
	"cbs/src/models"
	"cbs/src/types"
	"cbs/src/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const passwordSpecialChars = "!@#$%^&*()_+-=[]{}|;:,.<>?"

func validatePassword(raw string) error {
	if len(raw) < 8 {
		return types.NewPayloadInvalid("password must be at least 8 characters")
	}
	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, c := range raw {
		switch {
		case unicode.IsUpper(c):
			hasUpper = true
		case unicode.IsLower(c):
			hasLower = true
		case unicode.IsDigit(c):
			hasDigit = true
		case strings.ContainsRune(passwordSpecialChars, c):
			hasSpecial = true
		}
	}
	if !hasUpper {
		return types.NewPayloadInvalid("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return types.NewPayloadInvalid("password must contain at least one lowercase letter")
	}
	if !hasDigit {
		return types.NewPayloadInvalid("password must contain at least one number")
	}
	if !hasSpecial {
		return types.NewPayloadInvalid("password must contain at least one special character")
	}
	return nil
}

// CreateUser registers an account with a bcrypt-hashed password. Email is
// normalized and must be unique.
func CreateUser(email, rawPassword string, role types.UserRole) (*models.User, error) {
	email = utils.NormalizeEmail(email)
	if email == "" {
		return nil, types.NewPayloadInvalid("email cannot be empty")
	}
	if err := validatePassword(rawPassword); err != nil {
		return nil, err
	}
	if role == "" {
		role = types.ROLE_STUDENT
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(rawPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	d := db.GetDb()
	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	err = d.Transaction(func(tx *gorm.DB) error {
		var existing models.User
		err := tx.Where(&models.User{Email: email}).First(&existing).Error
		if err == nil {
			return types.NewPayloadInvalid("user with email %s already exists", email)
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// AuthenticateUser verifies credentials and returns the account.
func AuthenticateUser(email, rawPassword string) (*models.User, error) {
	email = utils.NormalizeEmail(email)
	d := db.GetDb()
	var user models.User
	if err := d.Where(&models.User{Email: email}).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.NewUnauthorized("invalid email or password")
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(rawPassword)); err != nil {
		return nil, types.NewUnauthorized("invalid email or password")
	}
	return &user, nil
}

func GetUser(userID uint) (*models.User, error) {
	d := db.GetDb()
	var user models.User
	if err := d.Where(&models.User{ID: userID}).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, types.NewNotFound("user %d not found", userID)
		}
		return nil, err
	}
	return &user, nil
}

func ListUsers(role *types.UserRole, limit int) ([]models.User, error) {
	d := db.GetDb()
	q := d.Model(&models.User{})
	if role != nil {
		q = q.Where("role = ?", *role)
	}
	var users []models.User
	if err := q.
		Order("created_at desc").
		Limit(limit).
		Find(&users).
		Error; err != nil {
		return nil, err
	}
	return users, nil
}
