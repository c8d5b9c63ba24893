package dto

// PageRequest paginação para listagens.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=200"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica valores padrão quando Limit/Offset vêm zerados.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadados de página nas respostas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse corpo de erro HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
