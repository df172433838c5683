package nacex

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"shipping-management/internal/carrier"
)

const (
	MethodRate    = "getValoracion"
	MethodCreate  = "putExpedicion"
	MethodCustoms = "putAduana"
	MethodLabel   = "getEtiqueta"
	MethodCancel  = "cancelExpedicion"
	MethodStatus  = "getEstadoExpedicion"
	MethodHistory = "getHistoricoExpedicion"
	MethodCities  = "getPueblos"
	MethodAgency  = "getAgencia"
	MethodPickup  = "putRecogida"
)

// RateRequest holds the getValoracion inputs.
type RateRequest struct {
	Agency       string
	Customer     string
	ShipperZip   string
	RecipientZip string
	Service      string
	Packaging    string
	Weight       decimal.Decimal
}

func (r *RateRequest) Fields() []carrier.Field {
	packaging := r.Packaging
	if packaging == "" {
		packaging = "2"
	}
	return []carrier.Field{
		{Key: "del_cli", Value: r.Agency},
		{Key: "num_cli", Value: r.Customer},
		{Key: "cp_rec", Value: NormalizeZip(r.ShipperZip)},
		{Key: "cp_ent", Value: NormalizeZip(r.RecipientZip)},
		{Key: "tip_ser", Value: r.Service},
		{Key: "tip_env", Value: packaging},
		{Key: "kil", Value: r.Weight.String()},
	}
}

// ExpeditionRequest holds the putExpedicion inputs.
type ExpeditionRequest struct {
	Agency           string
	Customer         string
	Service          string
	Payer            string
	ClientRef        string
	Packaging        string
	Packages         int
	Weight           decimal.Decimal
	RecipientName    string
	RecipientStreet  string
	RecipientCountry string
	RecipientZip     string
	RecipientCity    string
	RecipientPhone   string
	Note             string
	ShipperZip       string
	WithReturn       bool
}

// Fields returns the putExpedicion data in the order the service expects.
func (r *ExpeditionRequest) Fields() []carrier.Field {
	fields := []carrier.Field{
		{Key: "del_cli", Value: r.Agency},
		{Key: "num_cli", Value: r.Customer},
		{Key: "tip_ser", Value: r.Service},
		{Key: "tip_cob", Value: r.Payer},
		{Key: "ref_cli", Value: r.ClientRef},
		{Key: "tip_env", Value: r.Packaging},
		{Key: "bul", Value: fmt.Sprintf("%d", r.Packages)},
		{Key: "kil", Value: r.Weight.String()},
		{Key: "nom_ent", Value: r.RecipientName},
		{Key: "dir_ent", Value: r.RecipientStreet},
		{Key: "pais_ent", Value: r.RecipientCountry},
		{Key: "cp_ent", Value: NormalizeZip(r.RecipientZip)},
		{Key: "pob_ent", Value: r.RecipientCity},
		{Key: "tel_ent", Value: r.RecipientPhone},
		{Key: "obs1", Value: r.Note},
		{Key: "cp_rec", Value: NormalizeZip(r.ShipperZip)},
	}
	if r.WithReturn {
		fields = append(fields, carrier.Field{Key: "ret", Value: "S"})
	}
	return fields
}

func expeditionField(code string) []carrier.Field {
	return []carrier.Field{{Key: "expe_codigo", Value: code}}
}

func (c *Client) GetValoracion(ctx context.Context, creds Credentials, req *RateRequest) (decimal.Decimal, error) {
	body, err := c.Call(ctx, creds, MethodRate, req.Fields())
	if err != nil {
		return decimal.Zero, err
	}
	return ParsePrice(body)
}

func (c *Client) PutExpedicion(ctx context.Context, creds Credentials, req *ExpeditionRequest) (*Expedition, error) {
	body, err := c.Call(ctx, creds, MethodCreate, req.Fields())
	if err != nil {
		return nil, err
	}
	return ParseExpedition(body)
}

func (c *Client) PutAduana(ctx context.Context, creds Credentials, expeditionCode string) (string, error) {
	return c.Call(ctx, creds, MethodCustoms, expeditionField(expeditionCode))
}

func (c *Client) GetEtiqueta(ctx context.Context, creds Credentials, expeditionCode string) ([]byte, error) {
	body, err := c.Call(ctx, creds, MethodLabel, []carrier.Field{
		{Key: "codExp", Value: expeditionCode},
		{Key: "modelo", Value: "PDF"},
	})
	if err != nil {
		return nil, err
	}
	return DecodeLabel(body)
}

func (c *Client) CancelExpedicion(ctx context.Context, creds Credentials, expeditionCode string) error {
	_, err := c.Call(ctx, creds, MethodCancel, expeditionField(expeditionCode))
	return err
}

func (c *Client) GetEstadoExpedicion(ctx context.Context, creds Credentials, expeditionCode string) (*Status, error) {
	body, err := c.Call(ctx, creds, MethodStatus, expeditionField(expeditionCode))
	if err != nil {
		return nil, err
	}
	return ParseStatus(body)
}

func (c *Client) GetHistoricoExpedicion(ctx context.Context, creds Credentials, expeditionCode string) ([]HistoryEntry, error) {
	body, err := c.Call(ctx, creds, MethodHistory, expeditionField(expeditionCode))
	if err != nil {
		return nil, err
	}
	return ParseHistory(body), nil
}

func (c *Client) GetPueblos(ctx context.Context, creds Credentials, zip string) ([]string, error) {
	body, err := c.Call(ctx, creds, MethodCities, []carrier.Field{{Key: "cp", Value: NormalizeZip(zip)}})
	if err != nil {
		return nil, err
	}
	return ParseCities(body), nil
}

func (c *Client) GetAgencia(ctx context.Context, creds Credentials, zip string) (string, error) {
	return c.Call(ctx, creds, MethodAgency, []carrier.Field{{Key: "cp", Value: NormalizeZip(zip)}})
}

func (c *Client) PutRecogida(ctx context.Context, creds Credentials, fields []carrier.Field) (string, error) {
	return c.Call(ctx, creds, MethodPickup, fields)
}
