package notification

import "github.com/flosch/pongo2/v6"

var (
	shipmentCreatedTemplate = pongo2.Must(pongo2.FromString(
		`<p>Shipment <strong>{{ event.ShipmentName }}</strong> created` +
			`{% if event.CarrierName %} with {{ event.CarrierName }}{% endif %}.</p>` +
			`{% if event.TrackingRef %}<p>Tracking: ` +
			`{% if event.TrackingURL %}<a href="{{ event.TrackingURL }}">{{ event.TrackingRef }}</a>` +
			`{% else %}{{ event.TrackingRef }}{% endif %}</p>{% endif %}`))

	stateChangedTemplate = pongo2.Must(pongo2.FromString(
		`<p>State changed from <em>{{ event.FromState }}</em> to <strong>{{ event.ToState }}</strong>` +
			`{% if event.RawStatus %} (carrier status {{ event.RawStatus }}){% endif %}.</p>`))

	incidentTemplate = pongo2.Must(pongo2.FromString(
		`<p>The carrier reported an incident on shipment <strong>{{ event.ShipmentName }}</strong>` +
			`{% if event.PickingName %} for delivery order <strong>{{ event.PickingName }}</strong>{% endif %}.</p>` +
			`{% if event.RawStatus %}<p>Carrier status: {{ event.RawStatus }}</p>{% endif %}` +
			`{% if event.TrackingURL %}<p><a href="{{ event.TrackingURL }}">Track the parcel</a></p>{% endif %}`))
)
