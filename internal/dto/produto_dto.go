package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CriarProdutoRequest struct {
	Codigo           string          `json:"codigo"            validate:"required,min=1,max=50"`
	Nome             string          `json:"nome"              validate:"required,min=2,max=255"`
	Descricao        *string         `json:"descricao"`
	Categoria        *string         `json:"categoria"         validate:"omitempty,max=100"`
	FornecedorID     *string         `json:"fornecedor_id"     validate:"omitempty,uuid"`
	PrecoCusto       decimal.Decimal `json:"preco_custo"`
	PrecoVenda       decimal.Decimal `json:"preco_venda"`
	QuantidadeMinima int             `json:"quantidade_minima" validate:"min=0"`
	Unidade          string          `json:"unidade"           validate:"omitempty,max=10"`
	Localizacao      *string         `json:"localizacao"`
}

type AtualizarProdutoRequest struct {
	Nome             *string          `json:"nome"              validate:"omitempty,min=2,max=255"`
	Descricao        *string          `json:"descricao"`
	Categoria        *string          `json:"categoria"         validate:"omitempty,max=100"`
	FornecedorID     *string          `json:"fornecedor_id"     validate:"omitempty,uuid"`
	PrecoCusto       *decimal.Decimal `json:"preco_custo"`
	PrecoVenda       *decimal.Decimal `json:"preco_venda"`
	QuantidadeMinima *int             `json:"quantidade_minima" validate:"omitempty,min=0"`
	Unidade          *string          `json:"unidade"           validate:"omitempty,max=10"`
	Localizacao      *string          `json:"localizacao"`
	Ativo            *bool            `json:"ativo"`
}

type AplicarMargemRequest struct {
	// Nil means the configured default margin.
	Margem *decimal.Decimal `json:"margem"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProdutoFilter struct {
	Search       string `form:"search"`
	Categoria    string `form:"categoria"`
	FornecedorID string `form:"fornecedor_id"`
	EstoqueBaixo bool   `form:"estoque_baixo"`
	Ativo        string `form:"ativo"` // "false" | "all" | default active only
	Page         int    `form:"page,default=1"   validate:"min=1"`
	Limit        int    `form:"limit,default=50" validate:"min=1,max=500"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProdutoResponse struct {
	ID               string          `json:"id"`
	Codigo           string          `json:"codigo"`
	Nome             string          `json:"nome"`
	Descricao        *string         `json:"descricao"`
	Categoria        *string         `json:"categoria"`
	FornecedorID     *string         `json:"fornecedor_id"`
	PrecoCusto       decimal.Decimal `json:"preco_custo"`
	PrecoVenda       decimal.Decimal `json:"preco_venda"`
	QuantidadeAtual  int             `json:"quantidade_atual"`
	QuantidadeMinima int             `json:"quantidade_minima"`
	Unidade          string          `json:"unidade"`
	Localizacao      *string         `json:"localizacao"`
	Status           string          `json:"status"`
	Ativo            bool            `json:"ativo"`
}

type ProdutoListResponse struct {
	Data       []ProdutoResponse `json:"data"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

type AplicarMargemResponse struct {
	Margem           decimal.Decimal `json:"margem"`
	ProdutosAfetados int             `json:"produtos_afetados"`
}

// HistoricoPrecoItem is one row of a product's price history.
type HistoricoPrecoItem struct {
	ID           string          `json:"id"`
	ProdutoID    string          `json:"produto_id"`
	FornecedorID *string         `json:"fornecedor_id,omitempty"`
	CustoAntes   decimal.Decimal `json:"custo_antes"`
	CustoDepois  decimal.Decimal `json:"custo_depois"`
	VendaAntes   decimal.Decimal `json:"venda_antes"`
	VendaDepois  decimal.Decimal `json:"venda_depois"`
	Motivo       string          `json:"motivo"`
	CreatedAt    time.Time       `json:"created_at"`
}
