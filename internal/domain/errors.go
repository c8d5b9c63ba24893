package domain

import "errors"

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound             = errors.New("recurso não encontrado")
	ErrUserNotFound         = errors.New("usuário não encontrado")
	ErrEmailAlreadyExists   = errors.New("o email já está cadastrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrUnauthorized         = errors.New("não autorizado")
	ErrForbidden            = errors.New("acesso negado")
	ErrConflict             = errors.New("conflito com o estado atual")
	ErrInsufficientStock    = errors.New("estoque insuficiente")
	ErrSubscriptionRequired = errors.New("assinatura inativa ou vencida")
	ErrInvalidTaxID         = errors.New("CPF/CNPJ inválido")
	ErrPaymentExceedsTotal  = errors.New("pagamento excede o valor total")
)
