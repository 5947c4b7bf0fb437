package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ItemOrdemRequest struct {
	ProdutoID     *string         `json:"produto_id"     validate:"omitempty,uuid"`
	Descricao     string          `json:"descricao"      validate:"required,max=255"`
	Quantidade    int             `json:"quantidade"     validate:"required,gt=0"`
	ValorUnitario decimal.Decimal `json:"valor_unitario"`
	DescontoItem  decimal.Decimal `json:"desconto_item"`
	Tipo          string          `json:"tipo"           validate:"required,oneof=PRODUTO SERVICO"`
	Observacoes   *string         `json:"observacoes"`
}

type CriarOrdemRequest struct {
	ClienteID              string             `json:"cliente_id"   validate:"required,uuid"`
	VeiculoID              *string            `json:"veiculo_id"   validate:"omitempty,uuid"`
	TipoOrdem              string             `json:"tipo_ordem"   validate:"required,oneof=VENDA SERVICO VENDA_SERVICO"`
	Prioridade             string             `json:"prioridade"   validate:"omitempty,oneof=BAIXA MEDIA ALTA URGENTE"`
	DescricaoServico       *string            `json:"descricao_servico"`
	DescricaoProblema      *string            `json:"descricao_problema"`
	Observacoes            *string            `json:"observacoes"`
	DataPrevista           *time.Time         `json:"data_prevista"`
	KmVeiculo              *int               `json:"km_veiculo"   validate:"omitempty,min=0"`
	ValorServico           decimal.Decimal    `json:"valor_servico"`
	PercentualDesconto     decimal.Decimal    `json:"percentual_desconto"`
	TipoDesconto           string             `json:"tipo_desconto" validate:"omitempty,oneof=TOTAL VENDA SERVICO"`
	FuncionarioResponsavel *string            `json:"funcionario_responsavel"`
	FormaPagamento         *string            `json:"forma_pagamento"`
	Itens                  []ItemOrdemRequest `json:"itens"        validate:"dive"`
}

// AtualizarOrdemRequest is a partial update. Itens, when present, replaces the
// whole item list.
type AtualizarOrdemRequest struct {
	Status                 *string             `json:"status"        validate:"omitempty,oneof=PENDENTE EM_ANDAMENTO AGUARDANDO_PECA AGUARDANDO_APROVACAO CONCLUIDA CANCELADA"`
	MotivoCancelamento     *string             `json:"motivo_cancelamento"`
	Prioridade             *string             `json:"prioridade"    validate:"omitempty,oneof=BAIXA MEDIA ALTA URGENTE"`
	DescricaoServico       *string             `json:"descricao_servico"`
	DescricaoProblema      *string             `json:"descricao_problema"`
	Observacoes            *string             `json:"observacoes"`
	DataPrevista           *time.Time          `json:"data_prevista"`
	KmVeiculo              *int                `json:"km_veiculo"    validate:"omitempty,min=0"`
	ValorServico           *decimal.Decimal    `json:"valor_servico"`
	PercentualDesconto     *decimal.Decimal    `json:"percentual_desconto"`
	TipoDesconto           *string             `json:"tipo_desconto" validate:"omitempty,oneof=TOTAL VENDA SERVICO"`
	FuncionarioResponsavel *string             `json:"funcionario_responsavel"`
	FormaPagamento         *string             `json:"forma_pagamento"`
	AprovadoCliente        *bool               `json:"aprovado_cliente"`
	Itens                  *[]ItemOrdemRequest `json:"itens"         validate:"omitempty,dive"`
}

type CancelarOrdemRequest struct {
	Motivo string `json:"motivo" validate:"required,min=1"`
}

type OrdemFilter struct {
	ClienteID string     `form:"cliente_id"`
	VeiculoID string     `form:"veiculo_id"`
	Status    string     `form:"status"`
	TipoOrdem string     `form:"tipo_ordem"`
	Desde     *time.Time `form:"desde" time_format:"2006-01-02"`
	Ate       *time.Time `form:"ate"   time_format:"2006-01-02"`
	Page      int        `form:"page,default=1"   validate:"min=1"`
	Limit     int        `form:"limit,default=50" validate:"min=1,max=500"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemOrdemResponse struct {
	ID            string          `json:"id"`
	ProdutoID     *string         `json:"produto_id"`
	Descricao     string          `json:"descricao"`
	Quantidade    int             `json:"quantidade"`
	ValorUnitario decimal.Decimal `json:"valor_unitario"`
	DescontoItem  decimal.Decimal `json:"desconto_item"`
	ValorTotal    decimal.Decimal `json:"valor_total"`
	Tipo          string          `json:"tipo"`
	Observacoes   *string         `json:"observacoes"`
}

type OrdemResponse struct {
	ID                     string              `json:"id"`
	Numero                 string              `json:"numero"`
	ClienteID              string              `json:"cliente_id"`
	ClienteNome            string              `json:"cliente_nome,omitempty"`
	VeiculoID              *string             `json:"veiculo_id"`
	VeiculoPlaca           *string             `json:"veiculo_placa,omitempty"`
	TipoOrdem              string              `json:"tipo_ordem"`
	Status                 string              `json:"status"`
	Prioridade             string              `json:"prioridade"`
	DescricaoServico       *string             `json:"descricao_servico"`
	DescricaoProblema      *string             `json:"descricao_problema"`
	Observacoes            *string             `json:"observacoes"`
	DataAbertura           time.Time           `json:"data_abertura"`
	DataPrevista           *time.Time          `json:"data_prevista"`
	DataConclusao          *time.Time          `json:"data_conclusao"`
	KmVeiculo              *int                `json:"km_veiculo"`
	ValorPecas             decimal.Decimal     `json:"valor_pecas"`
	ValorServico           decimal.Decimal     `json:"valor_servico"`
	ValorSubtotal          decimal.Decimal     `json:"valor_subtotal"`
	PercentualDesconto     decimal.Decimal     `json:"percentual_desconto"`
	ValorDesconto          decimal.Decimal     `json:"valor_desconto"`
	TipoDesconto           string              `json:"tipo_desconto"`
	ValorTotal             decimal.Decimal     `json:"valor_total"`
	FuncionarioResponsavel *string             `json:"funcionario_responsavel"`
	FormaPagamento         *string             `json:"forma_pagamento"`
	AprovadoCliente        bool                `json:"aprovado_cliente"`
	MotivoCancelamento     *string             `json:"motivo_cancelamento"`
	Itens                  []ItemOrdemResponse `json:"itens"`
}

type OrdemListResponse struct {
	Data       []OrdemResponse `json:"data"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

type OrdemEstatisticasResponse struct {
	PorStatus           map[string]int64 `json:"por_status"`
	Total               int64            `json:"total"`
	ValorTotal          decimal.Decimal  `json:"valor_total"`
	FaturamentoMesAtual decimal.Decimal  `json:"faturamento_mes_atual"`
}
