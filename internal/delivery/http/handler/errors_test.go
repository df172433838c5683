package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/smartystreets/goconvey/convey"

	"shipping-management/internal/domain/picking"
	"shipping-management/internal/domain/shipment"
	"shipping-management/internal/domain/user"
	appErrors "shipping-management/pkg/errors"
)

func statusFor(err error) int {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/test", nil)
	respondWithError(c, err)
	return rec.Code
}

func TestRespondWithError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	Convey("Errors map to HTTP statuses", t, func() {
		cases := []struct {
			err  error
			want int
		}{
			{fmt.Errorf("load: %w", shipment.ErrShipmentNotFound), http.StatusNotFound},
			{picking.ErrPickingNotFound, http.StatusNotFound},
			{user.ErrUserAlreadyExists, http.StatusConflict},
			{appErrors.ErrInvalidCredentials, http.StatusUnauthorized},
			{user.ErrUserInactive, http.StatusForbidden},
			{appErrors.ErrInsufficientPermissions, http.StatusForbidden},
			{appErrors.NewConfigError("carrier %s has no credential", "NACEX"), http.StatusBadRequest},
			{appErrors.NewUserError("select exactly one rate"), http.StatusBadRequest},
			{picking.ErrNoCarrier, http.StatusBadRequest},
			{&appErrors.CarrierAPIError{Method: "putExpedicion", StatusCode: 503}, http.StatusBadGateway},
			{errors.New("disk on fire"), http.StatusInternalServerError},
		}
		for _, tc := range cases {
			So(statusFor(tc.err), ShouldEqual, tc.want)
		}
	})
}
