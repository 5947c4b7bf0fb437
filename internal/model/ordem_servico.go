package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order status values. CONCLUIDA and CANCELADA are terminal.
const (
	OrdemPendente            = "PENDENTE"
	OrdemEmAndamento         = "EM_ANDAMENTO"
	OrdemAguardandoPeca      = "AGUARDANDO_PECA"
	OrdemAguardandoAprovacao = "AGUARDANDO_APROVACAO"
	OrdemConcluida           = "CONCLUIDA"
	OrdemCancelada           = "CANCELADA"
)

// Order types.
const (
	TipoOrdemVenda        = "VENDA"
	TipoOrdemServico      = "SERVICO"
	TipoOrdemVendaServico = "VENDA_SERVICO"
)

// Discount basis.
const (
	DescontoTotal   = "TOTAL"
	DescontoVenda   = "VENDA"
	DescontoServico = "SERVICO"
)

// Line item types.
const (
	ItemProduto = "PRODUTO"
	ItemServico = "SERVICO"
)

// OrdemServico is a service/sale order. ValorTotal = ValorSubtotal - ValorDesconto
// where ValorSubtotal = ValorPecas + ValorServico.
type OrdemServico struct {
	ID                     uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Numero                 string     `gorm:"type:varchar(20);uniqueIndex;not null"`
	ClienteID              uuid.UUID  `gorm:"type:uuid;not null;index"`
	VeiculoID              *uuid.UUID `gorm:"type:uuid;index"`
	TipoOrdem              string     `gorm:"type:varchar(20);not null;default:'SERVICO'"`
	Status                 string     `gorm:"type:varchar(30);not null;default:'PENDENTE';index"`
	Prioridade             string     `gorm:"type:varchar(20);not null;default:'MEDIA'"`
	DescricaoServico       *string
	DescricaoProblema      *string
	Observacoes            *string
	DataAbertura           time.Time `gorm:"not null"`
	DataPrevista           *time.Time
	DataConclusao          *time.Time
	KmVeiculo              *int
	ValorServico           decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	ValorPecas             decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	ValorSubtotal          decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	PercentualDesconto     decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	ValorDesconto          decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	TipoDesconto           string          `gorm:"type:varchar(20);not null;default:'TOTAL'"`
	ValorTotal             decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	FuncionarioResponsavel *string
	FormaPagamento         *string `gorm:"type:varchar(50)"`
	AprovadoCliente        bool    `gorm:"not null;default:false"`
	MotivoCancelamento     *string
	CreatedAt              time.Time
	UpdatedAt              time.Time

	Cliente *Cliente    `gorm:"foreignKey:ClienteID"`
	Veiculo *Veiculo    `gorm:"foreignKey:VeiculoID"`
	Itens   []ItemOrdem `gorm:"foreignKey:OrdemID;constraint:OnDelete:CASCADE"`
}

func (OrdemServico) TableName() string { return "ordens_servico" }

// ItemOrdem is one line of an order. ProdutoID is set only for PRODUTO lines.
type ItemOrdem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrdemID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProdutoID     *uuid.UUID      `gorm:"type:uuid;index"`
	Descricao     string          `gorm:"not null"`
	Quantidade    int             `gorm:"not null;default:1"`
	ValorUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	DescontoItem  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	ValorTotal    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Tipo          string          `gorm:"type:varchar(20);not null"`
	Observacoes   *string
	CreatedAt     time.Time

	Produto *Produto `gorm:"foreignKey:ProdutoID"`
}

func (ItemOrdem) TableName() string { return "itens_ordem" }
