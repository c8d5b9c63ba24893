package entity

import "time"

// Status possíveis de uma assinatura.
const (
	SubscriptionActive        = "active"
	SubscriptionPastDue       = "past_due"
	SubscriptionInactive      = "inactive"
	SubscriptionCancelled     = "cancelled"
	SubscriptionBlockedManual = "blocked_manual"
)

// Subscription representa a assinatura de uma Company (no máximo uma por
// empresa). Criada como inactive no provisionamento; mutada pelo webhook de
// pagamento ou por ação manual do super-administrador. Nunca é removida
// fisicamente — o ciclo de vida é só de status.
type Subscription struct {
	ID               string
	CompanyID        string
	Status           string
	CurrentPeriodEnd *time.Time
	ManualOverride   bool
	BlockedReason    *string
	TaxID            string // CPF/CNPJ usado na cobrança (persistido ao criar checkout)
	GatewayCustomer  string // ID do cliente no gateway de pagamento (vazio até o primeiro checkout)
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsCurrent informa se o período vigente cobre o instante now.
func (s *Subscription) IsCurrent(now time.Time) bool {
	return s.Status == SubscriptionActive && s.CurrentPeriodEnd != nil && !s.CurrentPeriodEnd.Before(now)
}
