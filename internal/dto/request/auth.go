package request

type RequestOtpRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"required,e164"`
	Role        string `json:"role" validate:"required,oneof=CLIENT LAWYER"`
}

type VerifyOtpRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"required,e164"`
	Otp         string `json:"otp" validate:"required,len=6,numeric"`
}

type RequestEmailOtpRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Role defaults to CLIENT when omitted.
type VerifyEmailOtpRequest struct {
	Email string `json:"email" validate:"required,email"`
	Otp   string `json:"otp" validate:"required,len=6,numeric"`
	Role  string `json:"role,omitempty" validate:"omitempty,oneof=CLIENT LAWYER"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type AddRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=CLIENT LAWYER ADMIN"`
}
