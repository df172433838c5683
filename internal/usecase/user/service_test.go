package user

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"shipping-management/internal/config"
	domainUser "shipping-management/internal/domain/user"
	"shipping-management/internal/infrastructure/memory"
	appErrors "shipping-management/pkg/errors"
	"shipping-management/pkg/utils"
)

func TestUserService(t *testing.T) {
	Convey("Given a user service over the memory store", t, func() {
		ctx := context.Background()
		cfg := &config.Config{JWT: config.JWTConfig{Secret: "test-secret", ExpiryHours: 2}}
		service := NewService(memory.NewUserRepository(memory.NewStore()), cfg)

		created, err := service.CreateUser(ctx, &CreateUserRequest{
			Email:    "Ops@Example.com",
			Password: "shipping123",
			FullName: "Ops Team",
			Role:     string(domainUser.RoleOperator),
		})
		So(err, ShouldBeNil)
		So(created.Email, ShouldEqual, "ops@example.com")

		Convey("login issues a token carrying the role", func() {
			auth, err := service.Login(ctx, &LoginRequest{Email: "ops@example.com", Password: "shipping123"})
			So(err, ShouldBeNil)

			claims, err := utils.ValidateToken(auth.AccessToken, "test-secret")
			So(err, ShouldBeNil)
			So(claims.UserID, ShouldEqual, created.ID)
			So(claims.Role, ShouldEqual, "operator")
		})

		Convey("a wrong password is rejected", func() {
			_, err := service.Login(ctx, &LoginRequest{Email: "ops@example.com", Password: "nope"})
			So(err, ShouldEqual, appErrors.ErrInvalidCredentials)
		})

		Convey("duplicate emails are refused", func() {
			_, err := service.CreateUser(ctx, &CreateUserRequest{
				Email: "ops@example.com", Password: "shipping123", FullName: "Other", Role: "operator",
			})
			So(err, ShouldEqual, domainUser.ErrUserAlreadyExists)
		})

		Convey("unknown roles fail validation", func() {
			_, err := service.CreateUser(ctx, &CreateUserRequest{
				Email: "x@example.com", Password: "shipping123", FullName: "X Y", Role: "root",
			})
			So(appErrors.HasCode(err, appErrors.CodeValidation), ShouldBeTrue)
		})

		Convey("the password can be changed", func() {
			err := service.ChangePassword(ctx, created.ID, &ChangePasswordRequest{
				OldPassword: "shipping123", NewPassword: "newpass456", ConfirmPassword: "newpass456",
			})
			So(err, ShouldBeNil)

			_, err = service.Login(ctx, &LoginRequest{Email: "ops@example.com", Password: "newpass456"})
			So(err, ShouldBeNil)
		})

		Convey("deactivated users cannot log in", func() {
			So(service.DeactivateUser(ctx, created.ID), ShouldBeNil)

			_, err := service.Login(ctx, &LoginRequest{Email: "ops@example.com", Password: "shipping123"})
			So(err, ShouldEqual, domainUser.ErrUserInactive)
		})
	})
}
