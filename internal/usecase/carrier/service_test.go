package carrier

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/mock/gomock"

	carrierAdapter "shipping-management/internal/carrier"
	"shipping-management/internal/carrier/mock"
	domainCarrier "shipping-management/internal/domain/carrier"
	"shipping-management/internal/infrastructure/memory"
	appErrors "shipping-management/pkg/errors"
)

func TestCarrierService(t *testing.T) {
	Convey("Given a carrier service backed by memory", t, func() {
		ctx := context.Background()
		store := memory.NewStore()
		carriers := memory.NewCarrierRepository(store)

		ctrl := gomock.NewController(t)
		adapter := mock.NewMockAdapter(ctrl)
		adapter.EXPECT().Kind().Return(domainCarrier.KindNacex).AnyTimes()

		service := NewService(carriers, carrierAdapter.NewRegistry(adapter),
			carrierAdapter.NewOrderBuilder(carriers, memory.NewPartnerRepository(store)))

		cred, err := service.CreateCredential(ctx, &CredentialRequest{Login: "user", Password: "secret"})
		So(err, ShouldBeNil)

		Convey("a NACEX carrier gets default payer and packaging", func() {
			c, err := service.Create(ctx, &CarrierRequest{
				Name:         "NACEX",
				Kind:         domainCarrier.KindNacex,
				ServiceCode:  "01",
				AgencyCode:   "1234",
				CustomerCode: "CLIENT123",
				CredentialID: &cred.ID,
			})
			So(err, ShouldBeNil)
			So(c.Active, ShouldBeTrue)
			So(c.Payer, ShouldEqual, domainCarrier.PayerOrigin)
			So(c.Packaging, ShouldEqual, domainCarrier.PackagingParcel)
			So(ToCarrierResponse(c).ServiceLabel, ShouldEqual, "NACEX 10:00H")

			Convey("and test-connection uses its credential", func() {
				adapter.EXPECT().TestConnection(gomock.Any(), gomock.Any(), "28001").
					DoAndReturn(func(_ context.Context, account carrierAdapter.Account, _ string) (string, error) {
						So(account.Credential.Login, ShouldEqual, "user")
						return "1234|AGENCIA MADRID", nil
					})
				resp, err := service.TestConnection(ctx, c.ID, &LookupRequest{Zip: "28001"})
				So(err, ShouldBeNil)
				So(resp.Answer, ShouldEqual, "1234|AGENCIA MADRID")
			})

			Convey("and cities are looked up by postcode", func() {
				adapter.EXPECT().Cities(gomock.Any(), gomock.Any(), "28001").Return([]string{"MADRID"}, nil)
				resp, err := service.Cities(ctx, c.ID, &LookupRequest{Zip: "28001"})
				So(err, ShouldBeNil)
				So(resp.Cities, ShouldResemble, []string{"MADRID"})
			})
		})

		Convey("unknown service codes are rejected", func() {
			_, err := service.Create(ctx, &CarrierRequest{Name: "NACEX", Kind: domainCarrier.KindNacex, ServiceCode: "99"})
			So(appErrors.HasCode(err, appErrors.CodeValidation), ShouldBeTrue)
		})

		Convey("negative fixed prices are rejected", func() {
			_, err := service.Create(ctx, &CarrierRequest{Name: "Flat", Kind: domainCarrier.KindFixed, FixedPrice: decimal.NewFromInt(-1)})
			So(appErrors.HasCode(err, appErrors.CodeValidation), ShouldBeTrue)
		})

		Convey("an unknown credential is refused", func() {
			missing := uuid.New()
			_, err := service.Create(ctx, &CarrierRequest{Name: "NACEX", Kind: domainCarrier.KindNacex, CredentialID: &missing})
			So(err, ShouldEqual, domainCarrier.ErrCredentialNotFound)
		})

		Convey("the service catalogue is exposed", func() {
			So(len(service.NacexServices()), ShouldBeGreaterThan, 30)
		})
	})
}
