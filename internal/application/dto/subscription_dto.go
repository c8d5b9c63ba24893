package dto

import "time"

// SubscriptionResponse estado da assinatura da empresa.
type SubscriptionResponse struct {
	ID               string     `json:"id"`
	CompanyID        string     `json:"company_id"`
	Status           string     `json:"status"`
	CurrentPeriodEnd *time.Time `json:"current_period_end,omitempty"`
	ManualOverride   bool       `json:"manual_override"`
	BlockedReason    *string    `json:"blocked_reason,omitempty"`
	Allowed          bool       `json:"allowed"`
	DenyReason       string     `json:"deny_reason,omitempty"`
}

// GrantSubscriptionRequest concessão manual de vigência (super-admin).
type GrantSubscriptionRequest struct {
	Days int `json:"days" validate:"required,min=1,max=3650"`
}

// BlockSubscriptionRequest bloqueio manual com motivo (super-admin).
type BlockSubscriptionRequest struct {
	Reason string `json:"reason" validate:"required,min=3"`
}

// CheckoutRequest entrada para criar a cobrança da assinatura no gateway.
type CheckoutRequest struct {
	TaxID string `json:"tax_id" validate:"required"`
}

// CheckoutResponse URL da fatura gerada no gateway.
type CheckoutResponse struct {
	InvoiceURL string `json:"invoice_url"`
}

// PaymentWebhookRequest corpo enviado pelo gateway de pagamento.
// ExternalReference carrega o id da empresa dona da assinatura.
type PaymentWebhookRequest struct {
	Event   string `json:"event"`
	Payment struct {
		ID                string `json:"id"`
		ExternalReference string `json:"externalReference"`
	} `json:"payment"`
}
