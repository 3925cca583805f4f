package models

import (
	"errors"
	"fmt"

	goval "github.com/go-passwd/validator"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/leebenson/conform"
	"golang.org/x/crypto/bcrypt"
)

const (
	RolePatient  = "patient"
	RoleProvider = "provider"
	RoleAdmin    = "admin"
)

// User represents an account on the platform. A user owns at most one
// patient profile and at most one provider profile depending on role.
type User struct {
	Model
	Email           string `json:"email" gorm:"unique;not null" binding:"required,email" conform:"trim,lower"`
	Password        string `json:"password,omitempty" gorm:"-" validate:"omitempty,min=8"`
	HashedPassword  string `json:"-"`
	FirstName       string `json:"first_name" conform:"trim"`
	LastName        string `json:"last_name" conform:"trim"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`
	ThumbNailURL    string `json:"thumbnail_url,omitempty"`
	Role            string `json:"role" gorm:"default:patient"`
	IsOnboarded     bool   `json:"is_onboarded" gorm:"default:false"`
}

type SignupRequest struct {
	Email     string `json:"email" binding:"required,email" conform:"trim,lower"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" conform:"trim"`
	LastName  string `json:"last_name" conform:"trim"`
	Role      string `json:"role" binding:"omitempty,oneof=patient provider admin"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ForgotPassword struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPassword struct {
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

type UserResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Role        string `json:"role"`
	IsOnboarded bool   `json:"is_onboarded"`
}

type LoginResponse struct {
	UserResponse
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (u *User) Response() UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Role:        u.Role,
		IsOnboarded: u.IsOnboarded,
	}
}

// VerifyPassword compares the supplied password with the stored hash.
func (u *User) VerifyPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password))
}

func ValidatePassword(password string) error {
	passwordValidator := goval.New(goval.MinLength(8, errors.New("password cant be less than 8 characters")),
		goval.MaxLength(64, errors.New("password cant be more than 64 characters")))
	return passwordValidator.Validate(password)
}

func ValidateWhiteSpaces(data interface{}) error {
	return conform.Strings(data)
}

func TranslateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	validatorErrs := err.(validator.ValidationErrors)
	for _, e := range validatorErrs {
		translatedErr := fmt.Errorf(e.Translate(trans) + "; ")
		errs = append(errs, translatedErr)
	}
	return errs
}
