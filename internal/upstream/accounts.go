package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spec-kit/rental-portal/internal/domain"
)

// AuthResult is the upstream login/registration outcome. Tokens are opaque
// strings to this layer; they are stored in the session and echoed back on
// authenticated upstream calls.
type AuthResult struct {
	User         domain.User `json:"user"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
}

// RegisterPayload is the signup form forwarded upstream.
type RegisterPayload struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

// ProfilePayload is the profile-update form forwarded upstream.
type ProfilePayload struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Phone     string `json:"phone"`
}

func decodeAuthResult(body []byte) (*AuthResult, error) {
	var envelope struct {
		Data AuthResult `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode auth response: %w", err)
	}
	return &envelope.Data, nil
}

// Login authenticates against the upstream API.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body, err := c.do(ctx, http.MethodPost, "/users/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	return decodeAuthResult(body)
}

// Register creates an account upstream. The upstream sends the OTP mail.
func (c *Client) Register(ctx context.Context, payload RegisterPayload) error {
	_, err := c.do(ctx, http.MethodPost, "/users/register", "", payload)
	return err
}

// VerifyOTP confirms the emailed one-time code.
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) error {
	_, err := c.do(ctx, http.MethodPost, "/users/verify-otp", "", map[string]string{
		"email": email,
		"otp":   otp,
	})
	return err
}

// RequestPasswordReset asks upstream to mail a reset link.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	_, err := c.do(ctx, http.MethodPost, "/users/forgot-password", "", map[string]string{
		"email": email,
	})
	return err
}

// ResetPassword redeems a reset token for a new password.
func (c *Client) ResetPassword(ctx context.Context, token, password string) error {
	_, err := c.do(ctx, http.MethodPost, "/users/reset-password", "", map[string]string{
		"token":    token,
		"password": password,
	})
	return err
}

// UpdateProfile updates the caller's display fields upstream.
func (c *Client) UpdateProfile(ctx context.Context, token, userID string, payload ProfilePayload) (*domain.User, error) {
	body, err := c.do(ctx, http.MethodPut, "/users/"+userID, token, payload)
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Data struct {
			User domain.User `json:"user"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode profile response: %w", err)
	}
	return &envelope.Data.User, nil
}
