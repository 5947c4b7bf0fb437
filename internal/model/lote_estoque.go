package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LoteEstoque is one batch of stock received by a single ENTRADA movement.
// 0 <= SaldoAtual <= QuantidadeInicial. Lots are never deleted; an exhausted
// lot simply keeps SaldoAtual = 0.
type LoteEstoque struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProdutoID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	MovimentoEntradaID uuid.UUID       `gorm:"type:uuid;not null"`
	FornecedorID       *uuid.UUID      `gorm:"type:uuid"`
	QuantidadeInicial  int             `gorm:"not null"`
	SaldoAtual         int             `gorm:"not null"`
	PrecoCustoUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PrecoVendaUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	DataEntrada        time.Time       `gorm:"not null;index"`
	DataValidade       *time.Time      `gorm:"type:date"`
	NumeroLote         *string         `gorm:"type:varchar(100)"`
	Ativo              bool            `gorm:"not null;default:true"`
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Produto *Produto `gorm:"foreignKey:ProdutoID"`
}

func (LoteEstoque) TableName() string { return "lotes_estoque" }

// ConsumoLote links a SAIDA movement to each lot it drew from, so a later
// reversal can put the quantity back into the same lots.
type ConsumoLote struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MovimentoID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	LoteID              uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProdutoID           uuid.UUID       `gorm:"type:uuid;not null"`
	OrdemServicoID      *uuid.UUID      `gorm:"type:uuid;index"`
	Quantidade          int             `gorm:"not null"`
	QuantidadeDevolvida int             `gorm:"not null;default:0"`
	CustoUnitario       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt           time.Time
}

func (ConsumoLote) TableName() string { return "consumos_lote" }

// Pendente is the quantity of this consumption not yet returned.
func (c ConsumoLote) Pendente() int { return c.Quantidade - c.QuantidadeDevolvida }
