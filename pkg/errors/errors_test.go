package errors

import (
	"errors"
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestErrorTaxonomy(t *testing.T) {
	Convey("Given wrapped application errors", t, func() {
		cfgErr := NewConfigError("missing service code on carrier %s", "NACEX")
		wrapped := fmt.Errorf("dispatch P2: %w", cfgErr)

		Convey("config errors are detected through wrapping", func() {
			So(IsConfigError(wrapped), ShouldBeTrue)
			So(HasCode(wrapped, CodeUser), ShouldBeFalse)
			So(cfgErr.Error(), ShouldEqual, "missing service code on carrier NACEX")
		})

		Convey("carrier api errors carry status and body", func() {
			apiErr := &CarrierAPIError{Method: "putExpedicion", StatusCode: 503, Body: "busy"}
			So(IsCarrierAPIError(fmt.Errorf("send: %w", apiErr)), ShouldBeTrue)
			So(apiErr.Error(), ShouldContainSubstring, "503")
			So(apiErr.Error(), ShouldContainSubstring, "busy")
		})

		Convey("transport errors unwrap", func() {
			cause := errors.New("connection refused")
			apiErr := &CarrierAPIError{Method: "getEtiqueta", Err: cause}
			So(errors.Is(apiErr, cause), ShouldBeTrue)
		})
	})
}
