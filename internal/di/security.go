package di

import (
	"go.uber.org/fx"

	"github.com/velora/velora-commerce-go/internal/config"
	"github.com/velora/velora-commerce-go/internal/security"
)

// SecurityModule provides JWT and password hashing dependencies
var SecurityModule = fx.Module("security",
	fx.Provide(
		security.NewJWTProvider,
		providePasswordHasher,
	),
)

func providePasswordHasher(cfg *config.JWTConfig) *security.PasswordHasher {
	return security.NewPasswordHasher(cfg.BcryptCost)
}
