package dto

// ============================ REQUEST ============================

type SendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Name        string `json:"name" validate:"required,min=2,max=100"`
	DateOfBirth string `json:"dateOfBirth" validate:"omitempty"`
	Class       string `json:"class" validate:"omitempty,oneof=class11 class12 dropper"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,min=8,max=20"`
	City        string `json:"city" validate:"omitempty,max=100"`
}

type CheckUserRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ============================ RESPONSE ============================

type UserResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Class        string `json:"class,omitempty"`
	Subscription string `json:"subscription"`
}

type VerifyOTPResponse struct {
	Verified  bool          `json:"verified"`
	IsNewUser bool          `json:"isNewUser"`
	Token     string        `json:"token,omitempty"`
	User      *UserResponse `json:"user,omitempty"`
}
