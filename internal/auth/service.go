package auth

import (
	"context"
	"fmt"

	"github.com/markoswell/optivest/internal/api"
	"github.com/markoswell/optivest/internal/user"
)

type Service struct {
	api api.Doer
}

func NewService(doer api.Doer) *Service {
	return &Service{api: doer}
}

// Credentials carries the session material returned by a successful
// login or signup.
type Credentials struct {
	User  *user.User `json:"user"`
	Token string     `json:"token"`
}

// Login authenticates against the platform and returns the profile
// and access token.
func (s *Service) Login(ctx context.Context, email, password string) (*Credentials, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}

	var out Credentials
	if err := s.api.Post(ctx, "/api/v1/users/login", body, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// RegisterParams carries the signup fields.
type RegisterParams struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Country         string `json:"country"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
	ReferralCode    string `json:"referralCode,omitempty"`
}

// Register creates an account and returns the new session material.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*Credentials, error) {
	var out Credentials
	if err := s.api.Post(ctx, "/api/v1/users/signup", params, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// ForgotPassword requests a reset token be mailed to the address.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}

	return s.api.Post(ctx, "/api/v1/users/forgotPassword", body, nil)
}

// ResetPassword redeems a mailed reset token for a new password.
func (s *Service) ResetPassword(ctx context.Context, token, password string) error {
	body := map[string]string{
		"password":        password,
		"passwordConfirm": password,
	}

	path := fmt.Sprintf("/api/v1/users/resetPassword/%s", token)

	return s.api.Patch(ctx, path, body, nil)
}
