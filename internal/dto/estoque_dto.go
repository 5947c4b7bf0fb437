package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// EntradaEstoqueRequest registers a purchase. Positive PrecoCusto/PrecoVenda
// overwrite the product's cached prices.
type EntradaEstoqueRequest struct {
	ProdutoID    string           `json:"produto_id"    validate:"required,uuid"`
	Quantidade   int              `json:"quantidade"    validate:"required,gt=0"`
	PrecoCusto   decimal.Decimal  `json:"preco_custo"`
	PrecoVenda   *decimal.Decimal `json:"preco_venda"`
	FornecedorID *string          `json:"fornecedor_id" validate:"omitempty,uuid"`
	NumeroLote   *string          `json:"numero_lote"   validate:"omitempty,max=50"`
	DataValidade *time.Time       `json:"data_validade"`
	Motivo       *string          `json:"motivo"        validate:"omitempty,max=100"`
	Observacoes  *string          `json:"observacoes"`
}

type SaidaEstoqueRequest struct {
	ProdutoID   string  `json:"produto_id"  validate:"required,uuid"`
	Quantidade  int     `json:"quantidade"  validate:"required,gt=0"`
	Motivo      *string `json:"motivo"      validate:"omitempty,max=100"`
	Observacoes *string `json:"observacoes"`
}

type AjusteEstoqueRequest struct {
	NovoEstoque int     `json:"novo_estoque" validate:"min=0"`
	Motivo      *string `json:"motivo"       validate:"omitempty,max=100"`
}

// ─── Filters ─────────────────────────────────────────────────────────────────

type MovimentoFilter struct {
	ProdutoID      string     `form:"produto_id"`
	Tipo           string     `form:"tipo"`
	Origem         string     `form:"origem"`
	OrdemServicoID string     `form:"ordem_servico_id"`
	Desde          *time.Time `form:"desde" time_format:"2006-01-02"`
	Ate            *time.Time `form:"ate"   time_format:"2006-01-02"`
	Page           int        `form:"page,default=1"    validate:"min=1"`
	Limit          int        `form:"limit,default=100" validate:"min=1,max=500"`
}

type LoteFilter struct {
	ProdutoID         string `form:"produto_id"`
	ApenasDisponiveis bool   `form:"apenas_disponiveis"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MovimentoResponse struct {
	ID              string          `json:"id"`
	ProdutoID       string          `json:"produto_id"`
	ProdutoNome     string          `json:"produto_nome,omitempty"`
	Tipo            string          `json:"tipo"`
	Origem          string          `json:"origem"`
	Quantidade      int             `json:"quantidade"`
	PrecoCusto      decimal.Decimal `json:"preco_custo"`
	PrecoVenda      decimal.Decimal `json:"preco_venda"`
	ValorTotal      decimal.Decimal `json:"valor_total"`
	EstoqueAnterior int             `json:"estoque_anterior"`
	EstoqueNovo     int             `json:"estoque_novo"`
	Motivo          *string         `json:"motivo"`
	Observacoes     *string         `json:"observacoes"`
	UsuarioNome     *string         `json:"usuario_nome"`
	OrdemServicoID  *string         `json:"ordem_servico_id"`
	CreatedAt       time.Time       `json:"created_at"`
}

type MovimentoListResponse struct {
	Data  []MovimentoResponse `json:"data"`
	Total int64               `json:"total"`
	Page  int                 `json:"page"`
	Limit int                 `json:"limit"`
}

type LoteResponse struct {
	ID                 string          `json:"id"`
	ProdutoID          string          `json:"produto_id"`
	ProdutoNome        string          `json:"produto_nome,omitempty"`
	NumeroLote         *string         `json:"numero_lote"`
	QuantidadeInicial  int             `json:"quantidade_inicial"`
	SaldoAtual         int             `json:"saldo_atual"`
	PrecoCustoUnitario decimal.Decimal `json:"preco_custo_unitario"`
	PrecoVendaUnitario decimal.Decimal `json:"preco_venda_unitario"`
	DataEntrada        time.Time       `json:"data_entrada"`
	DataValidade       *time.Time      `json:"data_validade"`
	Ativo              bool            `json:"ativo"`
}
