package utils

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSanitize(t *testing.T) {
	Convey("Postcodes are reduced to digits", t, func() {
		So(DigitsOnly("28-001"), ShouldEqual, "28001")
		So(DigitsOnly("08/020"), ShouldEqual, "08020")
		So(DigitsOnly(" 35 001 "), ShouldEqual, "35001")
		So(DigitsOnly(""), ShouldEqual, "")
	})

	Convey("Truncate counts runes, not bytes", t, func() {
		So(Truncate("entrega en mañana", 14), ShouldEqual, "entrega en mañ")
		So(Truncate("short", 60), ShouldEqual, "short")
		So(Truncate("abc", 0), ShouldEqual, "")
	})

	Convey("SingleLine flattens multi-line notes", t, func() {
		So(SingleLine("Llamar antes\n\tde entregar "), ShouldEqual, "Llamar antes de entregar")
	})

	Convey("Phones keep digits, plus and spaces", t, func() {
		So(SanitizePhone(" +34 600-123-456 "), ShouldEqual, "+34 600123456")
	})
}

func TestPassword(t *testing.T) {
	Convey("Passwords are hashed with bcrypt", t, func() {
		hash, err := HashPassword("warehouse42")
		So(err, ShouldBeNil)
		So(CheckPassword(hash, "warehouse42"), ShouldBeTrue)
		So(CheckPassword(hash, "warehouse43"), ShouldBeFalse)
	})

	Convey("Weak passwords are rejected", t, func() {
		So(ValidatePassword("short1"), ShouldNotBeNil)
		So(ValidatePassword("onlyletters"), ShouldNotBeNil)
		So(ValidatePassword("letters4nd"), ShouldBeNil)
	})
}
