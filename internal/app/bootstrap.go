package app

import (
	"context"
	"errors"

	"go.uber.org/zap"

	domainUser "shipping-management/internal/domain/user"
	"shipping-management/internal/logger"
	"shipping-management/internal/usecase/user"
)

// EnsureAdmin creates the configured administrator account once.
func (c *Container) EnsureAdmin(ctx context.Context) error {
	boot := c.Config.Bootstrap
	if boot.AdminEmail == "" || boot.AdminPassword == "" {
		return nil
	}

	_, err := c.Users.CreateUser(ctx, &user.CreateUserRequest{
		Email:    boot.AdminEmail,
		Password: boot.AdminPassword,
		FullName: "Administrator",
		Role:     string(domainUser.RoleAdmin),
	})
	if errors.Is(err, domainUser.ErrUserAlreadyExists) {
		return nil
	}
	if err != nil {
		return err
	}

	logger.Info("Administrator account created",
		zap.String("email", boot.AdminEmail),
		zap.String("event", "admin_bootstrapped"),
	)
	return nil
}
