package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MovimentoEntrada = "ENTRADA"
	MovimentoSaida   = "SAIDA"
)

// Origem distinguishes why a movement happened. DEVOLUCAO entries are the
// reversal credits of an order and are summed as already-returned quantity.
const (
	OrigemCompra    = "COMPRA"
	OrigemOrdem     = "ORDEM"
	OrigemDevolucao = "DEVOLUCAO"
	OrigemAjuste    = "AJUSTE"
)

// MovimentoEstoque is an append-only log row for every stock change.
type MovimentoEstoque struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProdutoID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	FornecedorID    *uuid.UUID      `gorm:"type:uuid"`
	Tipo            string          `gorm:"type:varchar(10);not null;index"`
	Origem          string          `gorm:"type:varchar(20);not null"`
	Quantidade      int             `gorm:"not null"`
	PrecoCusto      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	PrecoVenda      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	ValorTotal      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	EstoqueAnterior int             `gorm:"not null"`
	EstoqueNovo     int             `gorm:"not null"`
	Motivo          *string         `gorm:"type:varchar(100)"`
	Observacoes     *string
	UsuarioID       *uuid.UUID `gorm:"type:uuid"`
	UsuarioNome     *string
	OrdemServicoID  *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt       time.Time  `gorm:"index"`

	Produto *Produto `gorm:"foreignKey:ProdutoID"`
}

func (MovimentoEstoque) TableName() string { return "movimentos_estoque" }
