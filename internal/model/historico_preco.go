package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// HistoricoPreco is an immutable record of a product price change.
// Motivo: entrada_estoque | margem_lucro | manual
type HistoricoPreco struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProdutoID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	FornecedorID *uuid.UUID      `gorm:"type:uuid"`
	CustoAntes   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CustoDepois  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	VendaAntes   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	VendaDepois  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Motivo       string          `gorm:"type:varchar(30);not null"`
	CreatedAt    time.Time
}

func (HistoricoPreco) TableName() string { return "historico_precos" }

const (
	MotivoPrecoEntrada = "entrada_estoque"
	MotivoPrecoMargem  = "margem_lucro"
	MotivoPrecoManual  = "manual"
)
