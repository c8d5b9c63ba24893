package ledger

import (
	"context"

	"github.com/gestorpro/gestor-api/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de BD, passando
// repositórios atados a essa tx. Garante que a atualização do estoque do
// produto e o append do movimento sejam atômicos: ou os dois persistem,
// ou nenhum.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}
