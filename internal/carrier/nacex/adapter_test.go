package nacex

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	. "github.com/smartystreets/goconvey/convey"

	"shipping-management/internal/carrier"
	domainCarrier "shipping-management/internal/domain/carrier"
	"shipping-management/internal/domain/partner"
	"shipping-management/internal/domain/picking"
	"shipping-management/internal/domain/shipment"
	appErrors "shipping-management/pkg/errors"
)

func nacexOrder(recipientZip string) *carrier.Order {
	return &carrier.Order{
		Account: carrier.Account{
			Carrier: &domainCarrier.Carrier{
				Name: "NACEX", Kind: domainCarrier.KindNacex, AgencyCode: "1234", CustomerCode: "CLIENT123",
				ServiceCode: "01", Packaging: domainCarrier.PackagingBag, Payer: domainCarrier.PayerOrigin,
			},
			Credential: &domainCarrier.Credential{Login: "WSUSER", Password: "secret"},
		},
		Picking: &picking.Picking{
			Name: "WH/OUT/00001", Origin: "SO001", ShippingWeight: decimal.RequireFromString("1.5"),
			Note: strings.Repeat("n", 80),
		},
		Recipient: &partner.Partner{
			Name: "Ana Ruiz", Street: "Calle Mayor 1", Zip: recipientZip, City: "MADRID",
			CountryCode: "es", Mobile: "600 111 222",
		},
		Shipper: &partner.Partner{Name: "Warehouse", Street: "Pol. Ind. 3", Zip: "08040", City: "BARCELONA", CountryCode: "ES"},
	}
}

func TestAdapterSend(t *testing.T) {
	ctx := context.Background()

	Convey("Given a NACEX carrier and a delivery order to 28001", t, func() {
		fake := newFakeNacex(map[string]fakeResponse{
			MethodCreate: {Body: "EXP001|AG/TRK001"},
			MethodLabel:  {Body: "UEtGeQ=="},
			MethodCities: {Body: "MADRID\nALCOBENDAS"},
		})
		defer fake.Close()
		adapter := NewAdapter(fake.Client(), nil)
		order := nacexOrder("28001")

		Convey("sending creates the expedition and fetches the label", func() {
			result, err := adapter.Send(ctx, order)
			So(err, ShouldBeNil)
			So(result.ExpeditionCode, ShouldEqual, "EXP001")
			So(result.TrackingRef, ShouldEqual, "TRK001")
			So(len(result.Labels), ShouldEqual, 1)
			So(result.Labels[0].Kind, ShouldEqual, shipment.LabelShipping)
			So(len(result.Labels[0].Data), ShouldEqual, 4)
			So(fake.Methods(), ShouldResemble, []string{MethodCreate, MethodLabel})

			call, _ := fake.Call(MethodCreate)
			So(call.Data, ShouldStartWith, "del_cli=1234|num_cli=CLIENT123|tip_ser=01|tip_cob=O|ref_cli=SO001|tip_env=1|bul=1|kil=1.5|")
			So(call.Data, ShouldContainSubstring, "|pais_ent=ES|cp_ent=28001|pob_ent=MADRID|tel_ent=600 111 222|obs1="+strings.Repeat("n", 60)+"|cp_rec=08040")

			label, _ := fake.Call(MethodLabel)
			So(label.Data, ShouldEqual, "codExp=EXP001|modelo=PDF")
		})

		Convey("the carrier minimum weight wins over a lighter picking", func() {
			order.Carrier.MinWeight = decimal.RequireFromString("2")
			_, err := adapter.Send(ctx, order)
			So(err, ShouldBeNil)
			call, _ := fake.Call(MethodCreate)
			So(call.Data, ShouldContainSubstring, "|kil=2|")
		})

		Convey("a known city passes address validation silently", func() {
			order.Carrier.ValidateAddress = true
			result, err := adapter.Send(ctx, order)
			So(err, ShouldBeNil)
			So(result.Warnings, ShouldBeEmpty)
			So(fake.Methods()[0], ShouldEqual, MethodCities)
		})

		Convey("an unknown city yields a warning but still dispatches", func() {
			order.Carrier.ValidateAddress = true
			order.Recipient.City = "GETAFE"
			result, err := adapter.Send(ctx, order)
			So(err, ShouldBeNil)
			So(result.TrackingRef, ShouldEqual, "TRK001")
			So(len(result.Warnings), ShouldEqual, 1)
			So(result.Warnings[0], ShouldContainSubstring, "ALCOBENDAS")
		})

		Convey("a missing service code is a config error and nothing is sent", func() {
			order.Carrier.ServiceCode = ""
			_, err := adapter.Send(ctx, order)
			So(appErrors.IsConfigError(err), ShouldBeTrue)
			So(fake.Methods(), ShouldBeEmpty)
		})

		Convey("a missing credential is a config error", func() {
			order.Credential = nil
			_, err := adapter.Send(ctx, order)
			So(appErrors.IsConfigError(err), ShouldBeTrue)
		})

		Convey("an incomplete recipient is a config error", func() {
			order.Recipient.Street = ""
			_, err := adapter.Send(ctx, order)
			So(appErrors.IsConfigError(err), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "street")
		})
	})

	Convey("Given a Canary Islands recipient whose customs declaration fails", t, func() {
		fake := newFakeNacex(map[string]fakeResponse{
			MethodCreate:  {Body: "EXP002|AG/TRK002"},
			MethodCustoms: {Status: http.StatusInternalServerError, Body: "down"},
			MethodLabel:   {Body: "UEtGeQ=="},
		})
		defer fake.Close()
		adapter := NewAdapter(fake.Client(), nil)

		result, err := adapter.Send(ctx, nacexOrder("35001"))

		So(err, ShouldBeNil)
		So(result.TrackingRef, ShouldEqual, "TRK002")
		So(fake.Methods(), ShouldResemble, []string{MethodCreate, MethodCustoms, MethodLabel})
		So(len(result.Warnings), ShouldEqual, 1)
		So(len(result.Labels), ShouldEqual, 1)

		customs, _ := fake.Call(MethodCustoms)
		So(customs.Data, ShouldEqual, "expe_codigo=EXP002")
	})

	Convey("Given the expedition call fails", t, func() {
		fake := newFakeNacex(map[string]fakeResponse{MethodCreate: {Body: "ERROR: customer blocked"}})
		defer fake.Close()
		adapter := NewAdapter(fake.Client(), nil)

		_, err := adapter.Send(ctx, nacexOrder("28001"))
		So(appErrors.IsCarrierAPIError(err), ShouldBeTrue)
		So(fake.Methods(), ShouldResemble, []string{MethodCreate})
	})
}

func TestAdapterRateAndTracking(t *testing.T) {
	ctx := context.Background()

	Convey("Rates soft-fail to zero", t, func() {
		fake := newFakeNacex(map[string]fakeResponse{MethodRate: {Body: "ERROR: no tariff"}})
		defer fake.Close()
		adapter := NewAdapter(fake.Client(), nil)

		result, err := adapter.Rate(ctx, nacexOrder("28001"))
		So(err, ShouldBeNil)
		So(result.Success, ShouldBeTrue)
		So(result.Price.IsZero(), ShouldBeTrue)
		So(result.WarningMessage, ShouldNotBeEmpty)

		call, _ := fake.Call(MethodRate)
		So(call.Data, ShouldEqual, "del_cli=1234|num_cli=CLIENT123|cp_rec=08040|cp_ent=28001|tip_ser=01|tip_env=1|kil=1.5")
	})

	Convey("Rates parse the quoted price", t, func() {
		fake := newFakeNacex(map[string]fakeResponse{MethodRate: {Body: "01|8,90|EUR"}})
		defer fake.Close()
		adapter := NewAdapter(fake.Client(), nil)

		result, err := adapter.Rate(ctx, nacexOrder("28001"))
		So(err, ShouldBeNil)
		So(result.Price.String(), ShouldEqual, "8.9")
	})

	Convey("Refreshing status fetches status and history", t, func() {
		fake := newFakeNacex(map[string]fakeResponse{
			MethodStatus:  {Body: "EXP001|12/03/2026|10:15||INCIDENCIA"},
			MethodHistory: {Body: "10/03/2026~09:00~RECOGIDO~BARCELONA|12/03/2026~10:15~AUSENTE"},
		})
		defer fake.Close()
		adapter := NewAdapter(fake.Client(), nil)
		account := nacexOrder("28001").Account

		status, err := adapter.RefreshStatus(ctx, account, "EXP001")
		So(err, ShouldBeNil)
		So(status.Raw, ShouldEqual, "INCIDENCIA")
		So(status.State, ShouldEqual, shipment.StateIncident)
		So(len(status.History), ShouldEqual, 2)
		So(status.Text(), ShouldContainSubstring, "Incident (INCIDENCIA)")
		So(status.HistoryHTML, ShouldContainSubstring, "AUSENTE")

		_, err = adapter.RefreshStatus(ctx, account, "")
		So(err, ShouldEqual, shipment.ErrNoExpeditionCode)
	})

	Convey("Tracking links use the picking agency, falling back to the carrier agency", t, func() {
		adapter := NewAdapter(nil, nil)
		account := nacexOrder("28001").Account
		So(adapter.TrackingURL(account, "0801", "TRK001"), ShouldEqual,
			"https://www.nacex.com/seguimientoDetalle.do?agencia_origen=0801&numero_albaran=TRK001&externo=N")
		So(adapter.TrackingURL(account, "", "TRK001"), ShouldContainSubstring, "agencia_origen=1234&")
		So(adapter.TrackingURL(account, "", ""), ShouldBeEmpty)
	})

	Convey("Return expeditions swap sender and recipient", t, func() {
		fake := newFakeNacex(map[string]fakeResponse{
			MethodCreate: {Body: "EXP009|AG/RET009"},
			MethodLabel:  {Body: "UEtGeQ=="},
		})
		defer fake.Close()
		adapter := NewAdapter(fake.Client(), nil)

		result, err := adapter.ReturnLabel(ctx, nacexOrder("28001"), "SHP/2026/00001")
		So(err, ShouldBeNil)
		So(result.TrackingRef, ShouldEqual, "RET009")
		So(result.Labels[0].Kind, ShouldEqual, shipment.LabelReturn)

		call, _ := fake.Call(MethodCreate)
		So(call.Data, ShouldContainSubstring, "ref_cli=DEV-SHP/2026/00001|")
		So(call.Data, ShouldContainSubstring, "nom_ent=Warehouse|")
		So(call.Data, ShouldContainSubstring, "cp_ent=08040|pob_ent=BARCELONA|")
		So(call.Data, ShouldEndWith, "cp_rec=28001")
	})
}
