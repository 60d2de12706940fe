package dto

import "github.com/noah-isme/contentguard-api/internal/models"

// LoginRequest holds the sign-in form.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest holds the account creation form.
type SignupRequest struct {
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required"`
	AgreeToTerms bool   `json:"agreeToTerms"`
}

// AuthResponse is returned by login and signup.
type AuthResponse struct {
	User        models.Identity `json:"user"`
	AccessToken string          `json:"accessToken"`
	ExpiresIn   int64           `json:"expiresIn"`
	Redirect    string          `json:"redirect"`
}

// LogoutResponse tells the console where to go after signing out.
type LogoutResponse struct {
	Redirect string `json:"redirect"`
}

// PasswordStrengthRequest carries a candidate password.
type PasswordStrengthRequest struct {
	Password string `json:"password"`
}

// PasswordStrengthResponse scores a candidate password from 0 to 5.
type PasswordStrengthResponse struct {
	Score int    `json:"score"`
	Label string `json:"label"`
}
