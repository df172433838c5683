package nacex

import (
	"context"
	"net/http"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"shipping-management/internal/carrier"
	appErrors "shipping-management/pkg/errors"
)

func TestClientCall(t *testing.T) {
	creds := Credentials{Login: "WSUSER", Password: "secret"}
	data := []carrier.Field{{Key: "cp", Value: "28001"}, {Key: "extra", Value: "x"}}

	Convey("Given a NACEX endpoint", t, func() {
		fake := newFakeNacex(map[string]fakeResponse{
			MethodAgency: {Body: "2801|MADRID CENTRO\n"},
			MethodCities: {Body: "ERROR 12: invalid postcode"},
			MethodStatus: {Status: http.StatusServiceUnavailable, Body: "busy"},
			MethodPickup: {Status: http.StatusCreated, Body: "REC001"},
		})
		defer fake.Close()
		client := fake.Client()
		ctx := context.Background()

		Convey("requests carry method, ordered data, login and the hashed password", func() {
			body, err := client.Call(ctx, creds, MethodAgency, data)
			So(err, ShouldBeNil)
			So(body, ShouldEqual, "2801|MADRID CENTRO")

			call, ok := fake.Call(MethodAgency)
			So(ok, ShouldBeTrue)
			So(call.Data, ShouldEqual, "cp=28001|extra=x")
			So(call.User, ShouldEqual, "WSUSER")
			So(call.Pass, ShouldEqual, "5EBE2294ECD0E0F08EAB7690D2A6EE69")
		})

		Convey("201 is a success", func() {
			body, err := client.Call(ctx, creds, MethodPickup, data)
			So(err, ShouldBeNil)
			So(body, ShouldEqual, "REC001")
		})

		Convey("an ERROR body fails with a carrier api error", func() {
			_, err := client.Call(ctx, creds, MethodCities, data)
			So(appErrors.IsCarrierAPIError(err), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "invalid postcode")
		})

		Convey("a non-2xx status fails with status and body", func() {
			_, err := client.Call(ctx, creds, MethodStatus, data)
			var apiErr *appErrors.CarrierAPIError
			So(err, ShouldHaveSameTypeAs, apiErr)
			apiErr = err.(*appErrors.CarrierAPIError)
			So(apiErr.StatusCode, ShouldEqual, http.StatusServiceUnavailable)
			So(apiErr.Body, ShouldEqual, "busy")
		})
	})

	Convey("An unreachable endpoint fails with a transport error", t, func() {
		fake := newFakeNacex(nil)
		client := fake.Client()
		fake.Close()

		_, err := client.Call(context.Background(), creds, MethodAgency, data)
		So(appErrors.IsCarrierAPIError(err), ShouldBeTrue)
	})
}
