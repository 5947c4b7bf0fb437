package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RelatorioEstoqueItem is one product row of the stock report. ValorEstoque is
// the sum of remaining lot balances at their own unit cost.
type RelatorioEstoqueItem struct {
	ProdutoID        string          `json:"produto_id"`
	Codigo           string          `json:"codigo"`
	Nome             string          `json:"nome"`
	Categoria        *string         `json:"categoria"`
	QuantidadeAtual  int             `json:"quantidade_atual"`
	QuantidadeMinima int             `json:"quantidade_minima"`
	Status           string          `json:"status"`
	PrecoCusto       decimal.Decimal `json:"preco_custo"`
	PrecoVenda       decimal.Decimal `json:"preco_venda"`
	ValorEstoque     decimal.Decimal `json:"valor_estoque"`
}

type RelatorioEstoqueResponse struct {
	Itens      []RelatorioEstoqueItem `json:"itens"`
	ValorTotal decimal.Decimal        `json:"valor_total"`
	GeradoEm   time.Time              `json:"gerado_em"`
}

type RelatorioMovimentosFilter struct {
	Desde *time.Time `form:"desde" time_format:"2006-01-02"`
	Ate   *time.Time `form:"ate"   time_format:"2006-01-02"`
	Tipo  string     `form:"tipo"`
}

type RelatorioMovimentosResponse struct {
	Movimentos   []MovimentoResponse `json:"movimentos"`
	TotalEntrada decimal.Decimal     `json:"total_entrada"`
	TotalSaida   decimal.Decimal     `json:"total_saida"`
}
