package nacex

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"shipping-management/internal/carrier"
	domainCarrier "shipping-management/internal/domain/carrier"
	"shipping-management/internal/domain/partner"
	"shipping-management/internal/domain/picking"
	"shipping-management/internal/domain/shipment"
	appErrors "shipping-management/pkg/errors"
	"shipping-management/pkg/utils"
)

const trackingURLTemplate = "https://www.nacex.com/seguimientoDetalle.do?agencia_origen=%s&numero_albaran=%s&externo=N"

const noteMaxLength = 60

// Adapter implements carrier.Adapter on top of the NACEX client.
type Adapter struct {
	client *Client
	log    *zap.Logger
}

func NewAdapter(client *Client, log *zap.Logger) *Adapter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Adapter{client: client, log: log}
}

func (a *Adapter) Kind() domainCarrier.ProviderKind {
	return domainCarrier.KindNacex
}

func credentials(account carrier.Account) (Credentials, error) {
	if account.Carrier == nil {
		return Credentials{}, appErrors.NewConfigError("carrier is not set")
	}
	if account.Credential == nil || account.Credential.Login == "" {
		return Credentials{}, appErrors.NewConfigError("missing NACEX credential on carrier %s", account.Carrier.Name)
	}
	return Credentials{Login: account.Credential.Login, Password: account.Credential.Password}, nil
}

func checkCarrierConfig(c *domainCarrier.Carrier) error {
	var missing []string
	if c.AgencyCode == "" {
		missing = append(missing, "agency code")
	}
	if c.CustomerCode == "" {
		missing = append(missing, "customer code")
	}
	if c.ServiceCode == "" {
		missing = append(missing, "service code")
	}
	if len(missing) > 0 {
		return appErrors.NewConfigError("missing %s on carrier %s", strings.Join(missing, ", "), c.Name)
	}
	return nil
}

func checkRecipient(p *partner.Partner) error {
	if p == nil {
		return appErrors.NewConfigError("the delivery order has no recipient")
	}
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"name", p.Name}, {"street", p.Street}, {"zip", p.Zip}, {"city", p.City}, {"country", p.CountryCode},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return appErrors.NewConfigError("recipient %s is missing: %s", p.Name, strings.Join(missing, ", "))
	}
	return nil
}

func checkShipper(p *partner.Partner) error {
	if p == nil || NormalizeZip(p.Zip) == "" {
		return appErrors.NewConfigError("the shipper address has no zip")
	}
	return nil
}

// PayerCode maps the carriage payer to its wire code.
func PayerCode(p domainCarrier.Payer) string {
	switch p {
	case domainCarrier.PayerDestination:
		return "D"
	case domainCarrier.PayerThird:
		return "T"
	}
	return "O"
}

// PackagingCode maps the packaging kind to its wire code, parcel by default.
func PackagingCode(p domainCarrier.Packaging) string {
	switch p {
	case domainCarrier.PackagingDocuments:
		return "0"
	case domainCarrier.PackagingBag:
		return "1"
	}
	return "2"
}

// ShippingWeight is the larger of the picking weight and the carrier minimum.
func ShippingWeight(p *picking.Picking, c *domainCarrier.Carrier) decimal.Decimal {
	weight := decimal.Zero
	if p != nil {
		weight = p.ShippingWeight
	}
	return decimal.Max(weight, c.MinWeight)
}

func (a *Adapter) Rate(ctx context.Context, order *carrier.Order) (*carrier.RateResult, error) {
	creds, err := credentials(order.Account)
	if err != nil {
		return nil, err
	}
	c := order.Carrier

	req := &RateRequest{
		Agency:    c.AgencyCode,
		Customer:  c.CustomerCode,
		Service:   c.ServiceCode,
		Packaging: PackagingCode(c.Packaging),
		Weight:    ShippingWeight(order.Picking, c),
	}
	if order.Shipper != nil {
		req.ShipperZip = order.Shipper.Zip
	}
	if order.Recipient != nil {
		req.RecipientZip = order.Recipient.Zip
	}

	price, err := a.client.GetValoracion(ctx, creds, req)
	if err != nil {
		a.log.Warn("NACEX rate unavailable, quoting zero",
			zap.String("carrier", c.Name),
			zap.Error(err),
			zap.String("event", "nacex_rate_soft_fail"),
		)
		return &carrier.RateResult{
			Success:        true,
			Price:          decimal.Zero,
			WarningMessage: "NACEX rate unavailable: " + err.Error(),
		}, nil
	}

	return &carrier.RateResult{Success: true, Price: price}, nil
}

func (a *Adapter) buildExpedition(order *carrier.Order, recipient, shipper *partner.Partner, ref string) *ExpeditionRequest {
	c := order.Carrier
	req := &ExpeditionRequest{
		Agency:           c.AgencyCode,
		Customer:         c.CustomerCode,
		Service:          c.ServiceCode,
		Payer:            PayerCode(c.Payer),
		ClientRef:        ref,
		Packaging:        PackagingCode(c.Packaging),
		Packages:         1,
		Weight:           ShippingWeight(order.Picking, c),
		RecipientName:    utils.SingleLine(recipient.Name),
		RecipientStreet:  utils.SingleLine(strings.TrimSpace(recipient.Street + " " + recipient.Street2)),
		RecipientCountry: strings.ToUpper(recipient.CountryCode),
		RecipientZip:     recipient.Zip,
		RecipientCity:    utils.SingleLine(recipient.City),
		RecipientPhone:   utils.SanitizePhone(recipient.ContactPhone()),
		ShipperZip:       shipper.Zip,
		WithReturn:       c.WithReturn,
	}
	if order.Picking != nil {
		req.Packages = order.Picking.PackageCount()
		req.Note = utils.Truncate(utils.SingleLine(order.Picking.Note), noteMaxLength)
	}
	return req
}

func (a *Adapter) Send(ctx context.Context, order *carrier.Order) (*carrier.SendResult, error) {
	creds, err := credentials(order.Account)
	if err != nil {
		return nil, err
	}
	if err := checkCarrierConfig(order.Carrier); err != nil {
		return nil, err
	}
	if err := checkRecipient(order.Recipient); err != nil {
		return nil, err
	}
	if err := checkShipper(order.Shipper); err != nil {
		return nil, err
	}

	result := &carrier.SendResult{}
	if order.Picking != nil {
		result.Price = order.Picking.CarrierPrice
	}
	if order.Carrier.ValidateAddress {
		if warning := a.validateAddress(ctx, creds, order.Recipient); warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
	}

	ref := ""
	if order.Picking != nil {
		ref = order.Picking.ClientReference()
	}
	exp, err := a.client.PutExpedicion(ctx, creds, a.buildExpedition(order, order.Recipient, order.Shipper, ref))
	if err != nil {
		return nil, err
	}
	result.ExpeditionCode = exp.Code
	result.TrackingRef = exp.Tracking

	a.log.Info("NACEX expedition created",
		zap.String("expedition", exp.Code),
		zap.String("tracking_ref", exp.Tracking),
		zap.String("reference", ref),
		zap.String("event", "nacex_expedition_created"),
	)

	if IsCanaryZip(order.Recipient.Zip) {
		if _, err := a.client.PutAduana(ctx, creds, exp.Code); err != nil {
			a.log.Warn("NACEX customs declaration failed",
				zap.String("expedition", exp.Code),
				zap.Error(err),
				zap.String("event", "nacex_customs_failed"),
			)
			result.Warnings = append(result.Warnings, "Canary customs declaration failed: "+err.Error())
		}
	}

	label, err := a.fetchLabel(ctx, creds, exp.Code, exp.Tracking, shipment.LabelShipping)
	if err != nil {
		a.log.Warn("NACEX label retrieval failed",
			zap.String("expedition", exp.Code),
			zap.Error(err),
			zap.String("event", "nacex_label_failed"),
		)
		result.Warnings = append(result.Warnings, "Label could not be retrieved: "+err.Error())
	} else {
		result.Labels = append(result.Labels, *label)
	}

	return result, nil
}

// validateAddress returns a warning when the recipient city is unknown for its postcode.
// Lookup failures are logged and never block the dispatch.
func (a *Adapter) validateAddress(ctx context.Context, creds Credentials, recipient *partner.Partner) string {
	cities, err := a.client.GetPueblos(ctx, creds, recipient.Zip)
	if err != nil {
		a.log.Warn("NACEX address validation unavailable",
			zap.String("zip", recipient.Zip),
			zap.Error(err),
			zap.String("event", "nacex_address_validation_failed"),
		)
		return ""
	}
	if len(cities) == 0 {
		return ""
	}
	city := strings.TrimSpace(recipient.City)
	for _, c := range cities {
		if strings.EqualFold(c, city) {
			return ""
		}
	}
	return fmt.Sprintf("City %s does not match NACEX cities for postcode %s: %s",
		city, NormalizeZip(recipient.Zip), strings.Join(cities, ", "))
}

func (a *Adapter) fetchLabel(ctx context.Context, creds Credentials, expeditionCode, tracking string, kind shipment.LabelKind) (*carrier.LabelPayload, error) {
	data, err := a.client.GetEtiqueta(ctx, creds, expeditionCode)
	if err != nil {
		return nil, err
	}
	ref := tracking
	if ref == "" {
		ref = expeditionCode
	}
	return &carrier.LabelPayload{
		Name: fmt.Sprintf("Label-%s-%s.pdf", ref, kind),
		Data: data,
		Kind: kind,
	}, nil
}

func (a *Adapter) Cancel(ctx context.Context, account carrier.Account, expeditionCode string) error {
	creds, err := credentials(account)
	if err != nil {
		return err
	}
	if expeditionCode == "" {
		return appErrors.NewUserError("there is no NACEX expedition to cancel")
	}
	if err := a.client.CancelExpedicion(ctx, creds, expeditionCode); err != nil {
		return err
	}
	a.log.Info("NACEX expedition cancelled",
		zap.String("expedition", expeditionCode),
		zap.String("event", "nacex_expedition_cancelled"),
	)
	return nil
}

// ReturnLabel creates the reverse expedition: the original recipient ships back to the warehouse.
func (a *Adapter) ReturnLabel(ctx context.Context, order *carrier.Order, originalName string) (*carrier.SendResult, error) {
	creds, err := credentials(order.Account)
	if err != nil {
		return nil, err
	}
	if err := checkCarrierConfig(order.Carrier); err != nil {
		return nil, err
	}
	// Roles swap: the warehouse receives, the customer's postcode becomes the origin.
	if err := checkRecipient(order.Shipper); err != nil {
		return nil, err
	}
	if err := checkShipper(order.Recipient); err != nil {
		return nil, err
	}

	req := a.buildExpedition(order, order.Shipper, order.Recipient, "DEV-"+originalName)
	req.WithReturn = false
	exp, err := a.client.PutExpedicion(ctx, creds, req)
	if err != nil {
		return nil, err
	}

	result := &carrier.SendResult{ExpeditionCode: exp.Code, TrackingRef: exp.Tracking}
	label, err := a.fetchLabel(ctx, creds, exp.Code, exp.Tracking, shipment.LabelReturn)
	if err != nil {
		a.log.Warn("NACEX return label retrieval failed",
			zap.String("expedition", exp.Code),
			zap.Error(err),
			zap.String("event", "nacex_label_failed"),
		)
		result.Warnings = append(result.Warnings, "Return label could not be retrieved: "+err.Error())
	} else {
		result.Labels = append(result.Labels, *label)
	}
	return result, nil
}

func (a *Adapter) RefreshStatus(ctx context.Context, account carrier.Account, expeditionCode string) (*carrier.TrackingStatus, error) {
	creds, err := credentials(account)
	if err != nil {
		return nil, err
	}
	if expeditionCode == "" {
		return nil, shipment.ErrNoExpeditionCode
	}

	st, err := a.client.GetEstadoExpedicion(ctx, creds, expeditionCode)
	if err != nil {
		return nil, err
	}
	label, state := MapStatus(st.Raw)
	status := &carrier.TrackingStatus{Raw: st.Raw, Label: label, State: state}

	entries, err := a.client.GetHistoricoExpedicion(ctx, creds, expeditionCode)
	if err != nil {
		a.log.Warn("NACEX tracking history unavailable",
			zap.String("expedition", expeditionCode),
			zap.Error(err),
			zap.String("event", "nacex_history_failed"),
		)
		return status, nil
	}
	for _, e := range entries {
		status.History = append(status.History, e.String())
	}
	if status.HistoryHTML, err = RenderHistoryHTML(entries); err != nil {
		a.log.Warn("render tracking history", zap.Error(err))
	}
	return status, nil
}

func (a *Adapter) ReprintLabel(ctx context.Context, account carrier.Account, expeditionCode string) (*carrier.LabelPayload, error) {
	creds, err := credentials(account)
	if err != nil {
		return nil, err
	}
	if expeditionCode == "" {
		return nil, shipment.ErrNoExpeditionCode
	}
	return a.fetchLabel(ctx, creds, expeditionCode, "", shipment.LabelReprint)
}

func (a *Adapter) TrackingURL(account carrier.Account, agencyRef, trackingRef string) string {
	if trackingRef == "" {
		return ""
	}
	agency := agencyRef
	if agency == "" && account.Carrier != nil {
		agency = account.Carrier.AgencyCode
	}
	return fmt.Sprintf(trackingURLTemplate, agency, trackingRef)
}

func (a *Adapter) SchedulePickup(ctx context.Context, account carrier.Account, req *carrier.PickupRequest) (string, error) {
	creds, err := credentials(account)
	if err != nil {
		return "", err
	}
	fields := []carrier.Field{
		{Key: "del_cli", Value: account.Carrier.AgencyCode},
		{Key: "num_cli", Value: account.Carrier.CustomerCode},
	}
	if req != nil {
		fields = append(fields, req.Fields...)
	}
	return a.client.PutRecogida(ctx, creds, fields)
}

func (a *Adapter) Cities(ctx context.Context, account carrier.Account, zip string) ([]string, error) {
	creds, err := credentials(account)
	if err != nil {
		return nil, err
	}
	return a.client.GetPueblos(ctx, creds, zip)
}

func (a *Adapter) TestConnection(ctx context.Context, account carrier.Account, zip string) (string, error) {
	creds, err := credentials(account)
	if err != nil {
		return "", err
	}
	return a.client.GetAgencia(ctx, creds, zip)
}
