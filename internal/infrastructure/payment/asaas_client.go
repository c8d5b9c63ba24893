// Package payment integra o gateway de cobrança Asaas via API REST.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gestorpro/gestor-api/internal/application/billing"
)

const (
	// EnvSandbox identifica o ambiente de testes do Asaas.
	EnvSandbox = "sandbox"
	// EnvProd identifica o ambiente de produção.
	EnvProd = "prod"

	baseURLSandbox = "https://sandbox.asaas.com/api/v3"
	baseURLProd    = "https://api.asaas.com/v3"
)

var _ billing.PaymentGateway = (*AsaasClient)(nil)

// AsaasClient implementa billing.PaymentGateway sobre a API REST do Asaas.
// Usa net/http da stdlib; autenticação via header access_token.
type AsaasClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewAsaasClient constrói o cliente. baseURL vazio escolhe pelo ambiente;
// o timeout cobre a latência alta ocasional do gateway.
func NewAsaasClient(baseURL, apiKey, env string) *AsaasClient {
	if baseURL == "" {
		baseURL = baseURLSandbox
		if env == EnvProd {
			baseURL = baseURLProd
		}
	}
	return &AsaasClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

type asaasCustomer struct {
	ID string `json:"id"`
}

type asaasCustomerList struct {
	Data []asaasCustomer `json:"data"`
}

type asaasPayment struct {
	ID         string `json:"id"`
	InvoiceURL string `json:"invoiceUrl"`
}

type asaasError struct {
	Errors []struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"errors"`
}

// FindOrCreateCustomer busca o cliente pelo CPF/CNPJ e cria se não existir.
func (c *AsaasClient) FindOrCreateCustomer(ctx context.Context, name, taxID, email string) (string, error) {
	var list asaasCustomerList
	query := url.Values{"cpfCnpj": {taxID}}
	if err := c.do(ctx, http.MethodGet, "/customers?"+query.Encode(), nil, &list); err != nil {
		return "", err
	}
	if len(list.Data) > 0 {
		return list.Data[0].ID, nil
	}

	body := map[string]string{
		"name":    name,
		"cpfCnpj": taxID,
	}
	if email != "" {
		body["email"] = email
	}
	var created asaasCustomer
	if err := c.do(ctx, http.MethodPost, "/customers", body, &created); err != nil {
		return "", err
	}
	return created.ID, nil
}

// CreatePayment cria uma cobrança (boleto/pix) e devolve id e URL da fatura.
// externalReference leva o id da empresa, que volta no webhook.
func (c *AsaasClient) CreatePayment(ctx context.Context, in billing.PaymentRequest) (*billing.PaymentResult, error) {
	body := map[string]any{
		"customer":          in.CustomerID,
		"billingType":       "UNDEFINED",
		"value":             in.Amount.InexactFloat64(),
		"dueDate":           in.DueDate.Format("2006-01-02"),
		"description":       in.Description,
		"externalReference": in.ExternalReference,
	}
	var payment asaasPayment
	if err := c.do(ctx, http.MethodPost, "/payments", body, &payment); err != nil {
		return nil, err
	}
	return &billing.PaymentResult{ID: payment.ID, InvoiceURL: payment.InvoiceURL}, nil
}

func (c *AsaasClient) do(ctx context.Context, method, path string, body, out any) error {
	if c.apiKey == "" {
		return fmt.Errorf("asaas: API key não configurada")
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("asaas: marshal body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("asaas: criar request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("access_token", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("asaas: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("asaas: ler resposta: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr asaasError
		if json.Unmarshal(data, &apiErr) == nil && len(apiErr.Errors) > 0 {
			return fmt.Errorf("asaas: %s (%s)", apiErr.Errors[0].Description, apiErr.Errors[0].Code)
		}
		return fmt.Errorf("asaas: status %d em %s %s", resp.StatusCode, method, path)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("asaas: decodificar resposta: %w", err)
		}
	}
	return nil
}
