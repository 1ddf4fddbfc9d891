package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/rental-portal/internal/api/dto"
	"github.com/spec-kit/rental-portal/internal/auth"
	"github.com/spec-kit/rental-portal/internal/domain"
	"github.com/spec-kit/rental-portal/internal/events"
	"github.com/spec-kit/rental-portal/internal/session"
	"github.com/spec-kit/rental-portal/internal/upstream"
	apperrors "github.com/spec-kit/rental-portal/pkg/util/errorutil"
)

// AuthHandler fronts the upstream auth endpoints and owns session writes.
// Login and logout are the only paths that mutate the session auth flags.
type AuthHandler struct {
	client     *upstream.Client
	sessions   *session.Manager
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuthHandler constructs handler.
func NewAuthHandler(client *upstream.Client, sessions *session.Manager, dispatcher events.Dispatcher, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{client: client, sessions: sessions, dispatcher: dispatcher, logger: logger}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	result, err := h.client.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	values := map[string]string{
		session.KeyIsAuthenticated: "true",
		session.KeyUserRole:        string(result.User.Role),
		session.KeyUserID:          result.User.ID,
		session.KeyUserEmail:       result.User.Email,
		session.KeyUserFirstName:   result.User.Firstname,
		session.KeyUserLastName:    result.User.Lastname,
		session.KeyUserPhone:       result.User.Phone,
		session.KeyAccessToken:     result.AccessToken,
		session.KeyRefreshToken:    result.RefreshToken,
	}
	if _, err := h.sessions.Issue(c, values); err != nil {
		h.logger.Error("issue session", zap.Error(err))
		return apperrors.NewInternalError(err)
	}

	event := newEvent(c, events.EventUserLoggedIn, result.User.ID)
	event.Actor = events.Actor{UserID: result.User.ID, Role: string(result.User.Role)}
	_ = h.dispatcher.Publish(c.Context(), event)

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": fiber.Map{
				"id":        result.User.ID,
				"name":      result.User.FullName(),
				"firstname": result.User.Firstname,
				"lastname":  result.User.Lastname,
				"email":     result.User.Email,
				"role":      result.User.Role,
			},
		},
		"message": "login successful",
	})
}

// Logout handles POST /auth/logout. The session is cleared wholesale.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	s, _ := auth.SessionFromContext(c)
	userID := ""
	if s != nil {
		userID = s.Get(session.KeyUserID)
	}

	event := newEvent(c, events.EventUserLoggedOut, userID)
	if err := h.sessions.Destroy(c, s); err != nil {
		h.logger.Warn("destroy session", zap.Error(err))
	}
	_ = h.dispatcher.Publish(c.Context(), event)

	return c.JSON(fiber.Map{"message": "logged out"})
}

// Signup handles POST /auth/signup.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Firstname == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("firstname, email, password required", nil)
	}
	if !isTenDigitPhone(req.Phone) {
		return apperrors.NewValidationError("phone must be exactly 10 digits", nil)
	}

	err := h.client.Register(c.Context(), upstream.RegisterPayload{
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  req.Password,
		Role:      req.Role,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "account created, verify the OTP sent to your email",
	})
}

// VerifyOTP handles POST /auth/otp/verify.
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req dto.VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.OTP == "" {
		return apperrors.NewValidationError("email and otp required", nil)
	}

	if err := h.client.VerifyOTP(c.Context(), req.Email, req.OTP); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "email verified"})
}

// ForgotPassword handles POST /auth/password/forgot.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" {
		return apperrors.NewValidationError("email required", nil)
	}

	if err := h.client.RequestPasswordReset(c.Context(), req.Email); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "reset link sent if the account exists"})
}

// ResetPassword handles POST /auth/password/reset.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Token == "" || req.Password == "" {
		return apperrors.NewValidationError("token and password required", nil)
	}

	if err := h.client.ResetPassword(c.Context(), req.Token, req.Password); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "password updated"})
}

// Me handles GET /me, rendering profile fields from the session.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	s, ok := auth.SessionFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "not logged in")
	}
	display := domain.User{
		Firstname: s.Get(session.KeyUserFirstName),
		Lastname:  s.Get(session.KeyUserLastName),
	}
	return c.JSON(fiber.Map{
		"data": dto.ProfileResponse{
			UserID:    s.Get(session.KeyUserID),
			Name:      display.FullName(),
			Email:     s.Get(session.KeyUserEmail),
			Firstname: display.Firstname,
			Lastname:  display.Lastname,
			Phone:     s.Get(session.KeyUserPhone),
			Role:      s.Role(),
		},
	})
}

// UpdateProfile handles PUT /me, forwarding the change upstream and
// rewriting the session display fields.
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	s, ok := auth.SessionFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "not logged in")
	}

	var req dto.ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Phone != "" && !isTenDigitPhone(req.Phone) {
		return apperrors.NewValidationError("phone must be exactly 10 digits", nil)
	}

	updated, err := h.client.UpdateProfile(c.Context(), s.Get(session.KeyAccessToken), s.Get(session.KeyUserID), upstream.ProfilePayload{
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Phone:     req.Phone,
	})
	if err != nil {
		return err
	}

	s.Set(session.KeyUserFirstName, updated.Firstname)
	s.Set(session.KeyUserLastName, updated.Lastname)
	s.Set(session.KeyUserPhone, updated.Phone)
	if err := h.sessions.Update(c, s); err != nil {
		h.logger.Warn("persist session profile", zap.Error(err))
	}

	return c.JSON(fiber.Map{"message": "profile updated"})
}
