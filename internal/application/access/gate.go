// Package access decide se a sessão atual pode usar as funcionalidades
// protegidas da aplicação, a partir do estado da assinatura da empresa.
// A decisão é um predicado puro sobre estado já carregado; quem busca a
// assinatura e redireciona o usuário é a borda HTTP.
package access

import (
	"strings"
	"time"

	"github.com/gestorpro/gestor-api/internal/domain/entity"
)

// Motivos de negação devolvidos em Decision.Reason.
const (
	ReasonUnauthenticated = "unauthenticated" // sem sessão → tela de login
	ReasonNoSubscription  = "no_subscription" // sem registro de cobrança → tela de assinatura
	ReasonExpired         = "expired"         // período vigente terminou
	ReasonStatus          = "status_"         // prefixo + status atual (past_due, blocked_manual, ...)
)

// Identity é o recorte mínimo da sessão que o gate precisa conhecer.
// Email vazio significa usuário anônimo.
type Identity struct {
	Email     string
	CompanyID string
}

// Decision resultado do gate. Quando Allowed é falso, Reason indica para a
// borda se o destino é login ou a tela de cobrança.
type Decision struct {
	Allowed bool
	Reason  string
}

// Gate avalia o acesso ao app. SuperAdminEmail, quando configurado, passa
// incondicionalmente por todas as verificações de assinatura.
type Gate struct {
	superAdminEmail string
}

// NewGate constrói o gate com o email do super-administrador (pode ser vazio).
func NewGate(superAdminEmail string) *Gate {
	return &Gate{superAdminEmail: normalizeEmail(superAdminEmail)}
}

// CanUseApp decide se a sessão pode usar o app.
//
// Regras, na ordem:
//  1. email do super-admin (case-insensitive, sem espaços) → permite sempre;
//  2. erro ao buscar a assinatura → nega (fail-closed: falha em verificação
//     de cobrança nunca vira acesso liberado);
//  3. assinatura ausente → nega (sem registro de cobrança não há trial);
//  4. permite somente com status active, período definido e não vencido.
func (g *Gate) CanUseApp(id Identity, sub *entity.Subscription, fetchErr error, now time.Time) Decision {
	if id.Email == "" {
		return Decision{Allowed: false, Reason: ReasonUnauthenticated}
	}
	if g.superAdminEmail != "" && normalizeEmail(id.Email) == g.superAdminEmail {
		return Decision{Allowed: true}
	}
	if fetchErr != nil || sub == nil {
		return Decision{Allowed: false, Reason: ReasonNoSubscription}
	}
	if sub.Status != entity.SubscriptionActive {
		return Decision{Allowed: false, Reason: ReasonStatus + sub.Status}
	}
	if sub.CurrentPeriodEnd == nil || sub.CurrentPeriodEnd.Before(now) {
		return Decision{Allowed: false, Reason: ReasonExpired}
	}
	return Decision{Allowed: true}
}

// IsSuperAdmin informa se o email corresponde ao super-administrador configurado.
func (g *Gate) IsSuperAdmin(email string) bool {
	return g.superAdminEmail != "" && normalizeEmail(email) == g.superAdminEmail
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
