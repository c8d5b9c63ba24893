package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Papéis válidos para User.
const (
	RoleAdmin    = "admin"
	RoleVendedor = "vendedor"
)

// User representa um usuário do sistema (pertence a uma Company).
// Usuários nunca são apagados: o arquivamento renomeia o email para liberá-lo
// e preserva o histórico referenciado (vendas, movimentos).
type User struct {
	ID            string
	CompanyID     string
	Email         string
	PasswordHash  string // bcrypt, nunca plano após persistir
	Name          string
	Phone         string
	Role          string          // admin, vendedor
	CommissionPct decimal.Decimal // % de comissão sobre vendas (0 para admin sem comissão)
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
