package response

import (
	"github.com/velora/velora-commerce-go/internal/domain/entity"
)

// AuthResponse carries the token pair issued on register, login and refresh.
type AuthResponse struct {
	User         *entity.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"`
}
