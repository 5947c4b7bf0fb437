package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Stock status values. Never persisted; see StatusEstoque.
const (
	StatusDisponivel   = "DISPONIVEL"
	StatusBaixoEstoque = "BAIXO_ESTOQUE"
	StatusSemEstoque   = "SEM_ESTOQUE"
)

// Produto is a catalogue item. QuantidadeAtual mirrors the sum of the
// remaining balances of its active lots.
type Produto struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Codigo           string    `gorm:"uniqueIndex;not null"`
	Nome             string    `gorm:"index;not null"`
	Descricao        *string
	Categoria        *string         `gorm:"type:varchar(100);index"`
	FornecedorID     *uuid.UUID      `gorm:"type:uuid;index"`
	PrecoCusto       decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	PrecoVenda       decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	QuantidadeAtual  int             `gorm:"not null;default:0"`
	QuantidadeMinima int             `gorm:"not null;default:0"`
	Unidade          string          `gorm:"type:varchar(10);not null;default:'UN'"`
	Localizacao      *string
	Ativo            bool `gorm:"not null;default:true"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Fornecedor *Fornecedor `gorm:"foreignKey:FornecedorID"`
}

// StatusEstoque derives the stock status from a quantity and its threshold.
func StatusEstoque(atual, minimo int) string {
	switch {
	case atual <= 0:
		return StatusSemEstoque
	case atual <= minimo:
		return StatusBaixoEstoque
	default:
		return StatusDisponivel
	}
}

func (p Produto) Status() string { return StatusEstoque(p.QuantidadeAtual, p.QuantidadeMinima) }
