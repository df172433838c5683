package nacex

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/flosch/pongo2/v6"
	"github.com/shopspring/decimal"

	"shipping-management/internal/carrier"
	"shipping-management/internal/domain/shipment"
	"shipping-management/pkg/utils"
)

// EncodeData joins fields as k=v pairs separated by '|', keeping their order.
func EncodeData(fields []carrier.Field) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f.Key + "=" + f.Value
	}
	return strings.Join(parts, "|")
}

func splitFields(body string) []string {
	return strings.Split(strings.TrimSpace(body), "|")
}

// NormalizeZip keeps only the digits of a postcode.
func NormalizeZip(zip string) string {
	return utils.DigitsOnly(zip)
}

// IsCanaryZip reports whether a postcode needs a customs declaration.
func IsCanaryZip(zip string) bool {
	z := NormalizeZip(zip)
	return strings.HasPrefix(z, "35") || strings.HasPrefix(z, "38")
}

// ParsePrice reads the rate from the second field, accepting a decimal comma.
func ParsePrice(body string) (decimal.Decimal, error) {
	fields := splitFields(body)
	if len(fields) < 2 {
		return decimal.Zero, fmt.Errorf("unexpected rate response %q", body)
	}
	raw := strings.ReplaceAll(strings.TrimSpace(fields[1]), ",", ".")
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid rate %q: %w", fields[1], err)
	}
	return price, nil
}

// Expedition is the parsed answer of putExpedicion.
type Expedition struct {
	Code       string
	CarrierRef string
	Tracking   string
}

// ParseExpedition reads "expedition|prefix/tracking|...".
func ParseExpedition(body string) (*Expedition, error) {
	fields := splitFields(body)
	if len(fields) < 2 || fields[0] == "" {
		return nil, fmt.Errorf("unexpected expedition response %q", body)
	}
	exp := &Expedition{Code: strings.TrimSpace(fields[0]), CarrierRef: strings.TrimSpace(fields[1])}
	exp.Tracking = exp.CarrierRef
	if i := strings.Index(exp.CarrierRef, "/"); i >= 0 {
		exp.Tracking = exp.CarrierRef[i+1:]
	}
	return exp, nil
}

var labelReplacer = strings.NewReplacer("-", "+", "_", "/", "*", "=")

// DecodeLabel decodes the base64 variant NACEX uses for label documents.
func DecodeLabel(body string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(labelReplacer.Replace(strings.TrimSpace(body)))
	if err != nil {
		return nil, fmt.Errorf("invalid label encoding: %w", err)
	}
	return data, nil
}

// Raw status codes returned by getEstadoExpedicion.
const (
	StatusDelivered      = "OK"
	StatusCollected      = "RECOGIDO"
	StatusInTransit      = "TRANSITO"
	StatusOutForDelivery = "REPARTO"
	StatusIncident       = "INCIDENCIA"
	StatusReturned       = "DEVUELTO"
)

// Status is the parsed answer of getEstadoExpedicion.
type Status struct {
	Expedition  string
	Date        string
	Time        string
	Observation string
	Raw         string
	Label       string
}

// ParseStatus reads "expedition|date|time|obs|STATUS|...".
func ParseStatus(body string) (*Status, error) {
	fields := splitFields(body)
	if len(fields) < 5 {
		return nil, fmt.Errorf("unexpected status response %q", body)
	}
	st := &Status{
		Expedition:  strings.TrimSpace(fields[0]),
		Date:        strings.TrimSpace(fields[1]),
		Time:        strings.TrimSpace(fields[2]),
		Observation: strings.TrimSpace(fields[3]),
		Raw:         strings.TrimSpace(fields[4]),
	}
	st.Label, _ = MapStatus(st.Raw)
	return st, nil
}

// MapStatus returns the human label of a raw status and the lifecycle state it maps to.
// Unknown statuses map to an empty state and keep their raw text as label.
func MapStatus(raw string) (string, shipment.State) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case StatusDelivered:
		return "Delivered", shipment.StateDelivered
	case StatusCollected:
		return "Collected", shipment.StateInTransit
	case StatusInTransit:
		return "In transit", shipment.StateInTransit
	case StatusOutForDelivery:
		return "Out for delivery", shipment.StateInTransit
	case StatusIncident:
		return "Incident", shipment.StateIncident
	case StatusReturned, "RETURNED":
		return "Returned", shipment.StateReturned
	}
	return raw, ""
}

// HistoryEntry is one step of getHistoricoExpedicion.
type HistoryEntry struct {
	Date        string
	Time        string
	Description string
	Location    string
}

func (e HistoryEntry) String() string {
	s := strings.TrimSpace(e.Date + " " + e.Time)
	if e.Description != "" {
		s += " - " + e.Description
	}
	if e.Location != "" {
		s += " (" + e.Location + ")"
	}
	return s
}

// ParseHistory reads "entry|entry|..." where entry is date~time~description[~location...].
func ParseHistory(body string) []HistoryEntry {
	var entries []HistoryEntry
	for _, raw := range splitFields(body) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		parts := strings.Split(raw, "~")
		e := HistoryEntry{Date: strings.TrimSpace(parts[0])}
		if len(parts) > 1 {
			e.Time = strings.TrimSpace(parts[1])
		}
		if len(parts) > 2 {
			e.Description = strings.TrimSpace(parts[2])
		}
		if len(parts) > 3 {
			e.Location = strings.TrimSpace(strings.Join(parts[3:], " "))
		}
		entries = append(entries, e)
	}
	return entries
}

var historyTemplate = pongo2.Must(pongo2.FromString(
	`<ul class="nacex-history">{% for e in entries %}<li><strong>{{ e.Date }} {{ e.Time }}</strong> {{ e.Description }}{% if e.Location %} <em>({{ e.Location }})</em>{% endif %}</li>{% endfor %}</ul>`,
))

// RenderHistoryHTML renders entries as an HTML list.
func RenderHistoryHTML(entries []HistoryEntry) (string, error) {
	var buf bytes.Buffer
	if err := historyTemplate.ExecuteWriter(pongo2.Context{"entries": entries}, &buf); err != nil {
		return "", fmt.Errorf("render tracking history: %w", err)
	}
	return buf.String(), nil
}

// ParseCities reads the newline separated city list of getPueblos.
func ParseCities(body string) []string {
	var cities []string
	for _, line := range strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			cities = append(cities, line)
		}
	}
	return cities
}
