package dto

import "github.com/ezzcrafts/testimania/internal/api/validation"

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r SignupRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if !validation.IsValidUsername(r.Username) {
		errors["username"] = "Username must be between 2 and 20 characters"
	}
	if !validation.IsValidEmail(r.Email) {
		errors["email"] = "Invalid email address"
	}
	if !validation.IsValidPassword(r.Password) {
		errors["password"] = "Password must contain more than 6 characters"
	}

	return errors
}

type VerifyRequest struct {
	Username string `json:"username"`
	Code     string `json:"code"`
}

func (r VerifyRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Username == "" {
		errors["username"] = "Username is required"
	}
	if !validation.IsValidVerifyCode(r.Code) {
		errors["code"] = "Code must be 6 digits"
	}

	return errors
}

type ResendVerificationRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

func (r ResendVerificationRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if !validation.IsValidEmail(r.Email) {
		errors["email"] = "Invalid email address"
	}
	if r.Username == "" {
		errors["username"] = "Username is required"
	}

	return errors
}

type VerifyEmailRequest struct {
	Email string `json:"email"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r SignInRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Email == "" {
		errors["email"] = "Email is required"
	}
	if r.Password == "" {
		errors["password"] = "Password is required"
	}

	return errors
}

type TokenSignInRequest struct {
	Token string `json:"token"`
}

type UserDTO struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	IsVerified bool   `json:"isVerified"`
	Image      string `json:"image,omitempty"`
}

type AuthResponse struct {
	Response
	Token string  `json:"token,omitempty"`
	User  UserDTO `json:"user"`
}

type VerifyResponse struct {
	Response
	// Single-use token for the immediate post-verification signin.
	SigninToken string `json:"signinToken,omitempty"`
}

type VerifyEmailResponse struct {
	Response
	IsVerified bool   `json:"isVerified"`
	Username   string `json:"username"`
}
