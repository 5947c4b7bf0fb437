package dto

import "github.com/shopspring/decimal"

type DashboardResumoResponse struct {
	TotalClientes        int64           `json:"total_clientes"`
	TotalVeiculos        int64           `json:"total_veiculos"`
	TotalProdutos        int64           `json:"total_produtos"`
	ProdutosBaixoEstoque int64           `json:"produtos_baixo_estoque"`
	OrdensAbertas        int64           `json:"ordens_abertas"`
	FaturamentoMes       decimal.Decimal `json:"faturamento_mes"`
}

type ProdutoMaisVendido struct {
	ProdutoID  string `json:"produto_id"`
	Nome       string `json:"nome"`
	Quantidade int64  `json:"quantidade"`
}

// AlertaDashboard is one item of the dashboard feed. Only the fields of its
// Tipo are set.
type AlertaDashboard struct {
	Tipo          string  `json:"tipo"`
	Titulo        string  `json:"titulo"`
	Descricao     string  `json:"descricao"`
	Prioridade    string  `json:"prioridade"`
	Data          *string `json:"data,omitempty"`
	KmAtual       *int    `json:"km_atual,omitempty"`
	KmProximo     *int    `json:"km_proximo,omitempty"`
	EstoqueAtual  *int    `json:"estoque_atual,omitempty"`
	EstoqueMinimo *int    `json:"estoque_minimo,omitempty"`
}

type DashboardAlertasResponse struct {
	TotalAlertas int               `json:"total_alertas"`
	Alertas      []AlertaDashboard `json:"alertas"`
}

type ConfiguracaoResponse struct {
	Chave     string  `json:"chave"`
	Valor     string  `json:"valor"`
	Descricao *string `json:"descricao"`
	Tipo      string  `json:"tipo"`
}

type AtualizarConfiguracaoRequest struct {
	Valor string `json:"valor" validate:"required"`
}
