package services

import (
	"errors"
	"strings"

	"github.com/recipebox-dev/recipebox/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailRequired      = errors.New("user must have an email address")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// NormalizeEmail lowercases the domain part of an address and leaves the
// local part untouched.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)

	at := strings.LastIndex(email, "@")

	if at < 0 {
		return email
	}

	return email[:at+1] + strings.ToLower(email[at+1:])
}

func CreateUser(gdb *gorm.DB, email, password, name string) (*models.User, error) {
	email = NormalizeEmail(email)

	if email == "" {
		return nil, ErrEmailRequired
	}

	var existing models.User

	err := gdb.Where("email = ?", email).First(&existing).Error

	if err == nil {
		return nil, ErrEmailTaken
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(passwordHash),
		Name:         name,
		IsActive:     true,
	}

	if err := gdb.Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func CreateSuperuser(gdb *gorm.DB, email, password string) (*models.User, error) {
	user, err := CreateUser(gdb, email, password, "")

	if err != nil {
		return nil, err
	}

	user.IsStaff = true
	user.IsSuperuser = true

	if err := gdb.Save(user).Error; err != nil {
		return nil, err
	}

	return user, nil
}

func Authenticate(gdb *gorm.DB, email, password string) (*models.User, error) {
	var user models.User

	err := gdb.Where("email = ? AND is_active = ?", NormalizeEmail(email), true).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}
