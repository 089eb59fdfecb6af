// Package mercadopago implementa el puerto PaymentProvider contra la API de
// Mercado Pago y la verificación de firma de sus webhooks.
package mercadopago

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestorialegal/tramites-api/internal/application/usecase"
	"github.com/gestorialegal/tramites-api/pkg/config"
)

const apiBaseURL = "https://api.mercadopago.com"

var _ usecase.PaymentProvider = (*Client)(nil)

// Client consulta pagos a la API de Mercado Pago con el access token del estudio.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient construye el cliente del gateway.
func NewClient(cfg config.MercadoPagoConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    apiBaseURL,
		token:      cfg.AccessToken,
	}
}

// paymentResponse subset de GET /v1/payments/{id} que nos interesa.
type paymentResponse struct {
	ID                int64           `json:"id"`
	Status            string          `json:"status"`
	ExternalReference string          `json:"external_reference"`
	TransactionAmount decimal.Decimal `json:"transaction_amount"`
}

// GetPayment re-consulta el estado autoritativo de un pago al gateway.
func (c *Client) GetPayment(ctx context.Context, id string) (*usecase.ProviderPayment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/payments/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("armar request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("consultar pago %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("consultar pago %s: status %d", id, resp.StatusCode)
	}

	var body paymentResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decodificar pago %s: %w", id, err)
	}
	return &usecase.ProviderPayment{
		ID:                fmt.Sprintf("%d", body.ID),
		Status:            body.Status,
		ExternalReference: body.ExternalReference,
		TransactionAmount: body.TransactionAmount,
	}, nil
}
