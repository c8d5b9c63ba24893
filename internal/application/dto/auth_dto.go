package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SignupRequest entrada para cadastro de uma nova empresa com seu admin.
type SignupRequest struct {
	CompanyName string `json:"company_name" validate:"required,min=2,max=200"`
	TaxID       string `json:"tax_id"`
	Name        string `json:"name" validate:"required,min=2,max=200"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	Phone       string `json:"phone"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token mais o usuário autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse saída de um usuário.
type UserResponse struct {
	ID            string          `json:"id"`
	CompanyID     string          `json:"company_id"`
	Email         string          `json:"email"`
	Name          string          `json:"name"`
	Phone         string          `json:"phone,omitempty"`
	Role          string          `json:"role"`
	CommissionPct decimal.Decimal `json:"commission_pct"`
	Active        bool            `json:"active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
