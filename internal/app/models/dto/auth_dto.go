package dto

// RegisterRequest carries the fields needed to open an account with a student profile
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email" example:"student@example.com"`
	Password  string `json:"password" binding:"required,min=8" example:"s3cret-pass1"`
	FirstName string `json:"firstName" binding:"required" example:"Aye"`
	LastName  string `json:"lastName" binding:"required" example:"Chan"`
	Phone     string `json:"phone" example:"+95911222333"`
}

// LoginRequest carries login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries the issued token pair
type TokenResponse struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	ExpiresIn        int    `json:"expiresIn" example:"3600"`
	RefreshExpiresIn int    `json:"refreshExpiresIn" example:"2592000"`
}

// ForgotPasswordRequest asks for a password reset mail
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest consumes a reset token and sets a new password
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}
