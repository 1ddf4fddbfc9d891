package dto

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest payload for registration.
type SignupRequest struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

// VerifyOTPRequest payload for email OTP confirmation.
type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// ForgotPasswordRequest payload for reset-link requests.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest payload for redeeming a reset token.
type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// ProfileUpdateRequest payload for updating display fields.
type ProfileUpdateRequest struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Phone     string `json:"phone"`
}

// ProfileResponse renders the session-held profile display fields. Name is
// the joined display name; the split fields remain for form prefills.
type ProfileResponse struct {
	UserID    string `json:"userId"`
	Name      string `json:"name"`
	Email     string `json:"userEmail"`
	Firstname string `json:"userFirstName"`
	Lastname  string `json:"userLastName"`
	Phone     string `json:"userPhone"`
	Role      string `json:"userRole"`
}
