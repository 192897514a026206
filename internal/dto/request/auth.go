package request

// RegisterRequest creates a new customer account
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email,max=100"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Phone    string `json:"phone,omitempty" binding:"max=20"`
}

// LoginRequest authenticates a user
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest exchanges a refresh token for a new pair
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest changes the caller's password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=72"`
}

// UpdateProfileRequest updates the caller's profile
type UpdateProfileRequest struct {
	Name  string `json:"name,omitempty" binding:"omitempty,min=2,max=100"`
	Phone string `json:"phone,omitempty" binding:"max=20"`
}

// AddressRequest adds or replaces an address book entry
type AddressRequest struct {
	Label      string `json:"label" binding:"required,max=50"`
	FullName   string `json:"full_name" binding:"required,max=100"`
	Phone      string `json:"phone" binding:"required,max=20"`
	Street     string `json:"street" binding:"required,max=200"`
	City       string `json:"city" binding:"required,max=100"`
	Area       string `json:"area,omitempty" binding:"max=100"`
	PostalCode string `json:"postal_code,omitempty" binding:"max=20"`
	Country    string `json:"country" binding:"required,max=100"`
	IsDefault  bool   `json:"is_default"`
}

// UpdateUserStatusRequest blocks or unblocks an account (admin)
type UpdateUserStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active blocked pending"`
}
