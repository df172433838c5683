package nacex

import (
	"testing"

	"github.com/shopspring/decimal"
	. "github.com/smartystreets/goconvey/convey"

	"shipping-management/internal/domain/shipment"
)

func TestCodec(t *testing.T) {
	Convey("putExpedicion data keeps the documented field order", t, func() {
		req := &ExpeditionRequest{
			Agency: "1234", Customer: "CLIENT123", Service: "01", Payer: "O", ClientRef: "SO001",
			Packaging: "1", Packages: 2, Weight: decimal.RequireFromString("1.5"),
			RecipientName: "Ana Ruiz", RecipientStreet: "Calle Mayor 1", RecipientCountry: "ES",
			RecipientZip: "28-001", RecipientCity: "MADRID", RecipientPhone: "600111222",
			Note: "Ring twice", ShipperZip: "08/040", WithReturn: true,
		}
		So(EncodeData(req.Fields()), ShouldEqual,
			"del_cli=1234|num_cli=CLIENT123|tip_ser=01|tip_cob=O|ref_cli=SO001|tip_env=1|bul=2|kil=1.5|"+
				"nom_ent=Ana Ruiz|dir_ent=Calle Mayor 1|pais_ent=ES|cp_ent=28001|pob_ent=MADRID|"+
				"tel_ent=600111222|obs1=Ring twice|cp_rec=08040|ret=S")
	})

	Convey("getValoracion defaults the packaging to parcel", t, func() {
		req := &RateRequest{Agency: "1234", Customer: "C1", ShipperZip: "08040", RecipientZip: "28001", Service: "26", Weight: decimal.Zero}
		So(EncodeData(req.Fields()), ShouldEqual, "del_cli=1234|num_cli=C1|cp_rec=08040|cp_ent=28001|tip_ser=26|tip_env=2|kil=0")
	})

	Convey("Responses parse", t, func() {
		Convey("rates use a decimal comma in the second field", func() {
			price, err := ParsePrice("EXP|12,35|EUR")
			So(err, ShouldBeNil)
			So(price.String(), ShouldEqual, "12.35")

			_, err = ParsePrice("garbage")
			So(err, ShouldNotBeNil)
		})

		Convey("expeditions expose the tracking number after the slash", func() {
			exp, err := ParseExpedition("EXP001|AG/TRK001|x")
			So(err, ShouldBeNil)
			So(exp.Code, ShouldEqual, "EXP001")
			So(exp.Tracking, ShouldEqual, "TRK001")
		})

		Convey("labels use the url-safe variant", func() {
			data, err := DecodeLabel("UEtGeQ**")
			So(err, ShouldBeNil)
			So(len(data), ShouldEqual, 4)
			So(string(data), ShouldEqual, "PKFy")

			data, err = DecodeLabel("_-8*")
			So(err, ShouldBeNil)
			So(data, ShouldResemble, []byte{0xff, 0xef})
		})

		Convey("the status is the fifth field", func() {
			st, err := ParseStatus("EXP001|12/03/2026|10:15|sin observaciones|REPARTO|x")
			So(err, ShouldBeNil)
			So(st.Raw, ShouldEqual, "REPARTO")
			So(st.Label, ShouldEqual, "Out for delivery")

			_, err = ParseStatus("EXP001|12/03/2026")
			So(err, ShouldNotBeNil)
		})

		Convey("history entries are tilde separated", func() {
			entries := ParseHistory("10/03/2026~09:00~RECOGIDO~BARCELONA|11/03/2026~18:30~ENTREGADO")
			So(len(entries), ShouldEqual, 2)
			So(entries[0].String(), ShouldEqual, "10/03/2026 09:00 - RECOGIDO (BARCELONA)")
			So(entries[1].String(), ShouldEqual, "11/03/2026 18:30 - ENTREGADO")

			html, err := RenderHistoryHTML(entries)
			So(err, ShouldBeNil)
			So(html, ShouldStartWith, `<ul class="nacex-history">`)
			So(html, ShouldContainSubstring, "<em>(BARCELONA)</em>")
		})

		Convey("cities are newline separated", func() {
			So(ParseCities("MADRID\r\nALCOBENDAS\n\n"), ShouldResemble, []string{"MADRID", "ALCOBENDAS"})
		})
	})

	Convey("Raw statuses map to lifecycle states", t, func() {
		cases := map[string]shipment.State{
			"OK":         shipment.StateDelivered,
			"RECOGIDO":   shipment.StateInTransit,
			"TRANSITO":   shipment.StateInTransit,
			"REPARTO":    shipment.StateInTransit,
			"INCIDENCIA": shipment.StateIncident,
			"devuelto":   shipment.StateReturned,
			"returned":   shipment.StateReturned,
			"ALMACEN":    "",
		}
		for raw, want := range cases {
			_, got := MapStatus(raw)
			So(got, ShouldEqual, want)
		}
	})

	Convey("Canary postcodes need customs", t, func() {
		So(IsCanaryZip("35001"), ShouldBeTrue)
		So(IsCanaryZip("38-400"), ShouldBeTrue)
		So(IsCanaryZip("28001"), ShouldBeFalse)
	})
}
