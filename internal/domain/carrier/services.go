package carrier

// Service is one entry of the NACEX service catalogue.
type Service struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

var nacexServices = []Service{
	{"01", "NACEX 10:00H"},
	{"02", "NACEX 12:00H"},
	{"03", "INTERDIA"},
	{"04", "PLUS BAG 1"},
	{"05", "PLUS BAG 2"},
	{"06", "VALIJA"},
	{"07", "VALIJA IDA Y VUELTA"},
	{"08", "NACEX 19:00H"},
	{"09", "PUENTE URBANO"},
	{"10", "DEVOLUCION ALBARAN CLIENTE"},
	{"11", "NACEX 08:30H"},
	{"12", "DEVOLUCION TALON"},
	{"14", "DEVOLUCION PLUS BAG 1"},
	{"15", "DEVOLUCION PLUS BAG 2"},
	{"17", "DEVOLUCION E-NACEX"},
	{"20", "NACEX MALLORCA MARITIMO"},
	{"21", "NACEX SABADO"},
	{"22", "CANARIAS MARITIMO"},
	{"24", "CANARIAS 24H"},
	{"26", "PLUS PACK"},
	{"27", "E-NACEX"},
	{"28", "PREMIUM"},
	{"29", "NACEX SHOP"},
	{"30", "C@MBIO"},
	{"31", "E-NACEX SHOP"},
	{"33", "C@MBIO SHOP"},
	{"48", "CANARIAS 48H"},
	{"88", "INMEDIATO"},
	{"90", "NACEX.SHOP"},
	{"91", "SWAP"},
	{"95", "RETORNO SWAP"},
	{"96", "DEV. ORIGEN"},
}

// NacexServices returns a copy of the NACEX service catalogue in code order.
func NacexServices() []Service {
	out := make([]Service, len(nacexServices))
	copy(out, nacexServices)
	return out
}

// IsNacexService reports whether code is a known NACEX service code.
func IsNacexService(code string) bool {
	return NacexServiceLabel(code) != ""
}

func NacexServiceLabel(code string) string {
	for _, s := range nacexServices {
		if s.Code == code {
			return s.Label
		}
	}
	return ""
}
