package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentRequest descreve a cobrança a criar no gateway.
type PaymentRequest struct {
	CustomerID        string
	ExternalReference string // id da empresa; volta no webhook para localizar a assinatura
	Description       string
	Amount            decimal.Decimal
	DueDate           time.Time
}

// PaymentResult é o retorno do gateway ao criar uma cobrança.
type PaymentResult struct {
	ID         string
	InvoiceURL string
}

// PaymentGateway porta para o gateway de cobrança externo (Asaas).
type PaymentGateway interface {
	FindOrCreateCustomer(ctx context.Context, name, taxID, email string) (string, error)
	CreatePayment(ctx context.Context, in PaymentRequest) (*PaymentResult, error)
}
