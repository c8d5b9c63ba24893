package dto

import "github.com/shopspring/decimal"

// CreateUserRequest criação de usuário por um admin da empresa.
type CreateUserRequest struct {
	Email         string          `json:"email" validate:"required,email"`
	Password      string          `json:"password" validate:"required,min=6"`
	Name          string          `json:"name" validate:"required,min=2,max=200"`
	Phone         string          `json:"phone"`
	Role          string          `json:"role" validate:"required,oneof=admin vendedor"`
	CommissionPct decimal.Decimal `json:"commission_pct"`
}

// UpdateUserRequest mutações permitidas a um admin (papel, comissão, telefone).
type UpdateUserRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=2,max=200"`
	Phone         *string          `json:"phone"`
	Role          *string          `json:"role" validate:"omitempty,oneof=admin vendedor"`
	CommissionPct *decimal.Decimal `json:"commission_pct"`
}
