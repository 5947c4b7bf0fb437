package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ManutencaoHistorico records a maintenance performed on a vehicle and the
// estimated next due mileage/date. At most one row per completed order.
type ManutencaoHistorico struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VeiculoID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Tipo           string          `gorm:"type:varchar(100);not null"`
	Descricao      *string
	KmRealizada    int             `gorm:"not null"`
	DataRealizada  time.Time       `gorm:"type:date;not null"`
	KmProxima      *int
	DataProxima    *time.Time      `gorm:"type:date"`
	Valor          decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Observacoes    *string
	OrdemServicoID *uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	CreatedAt      time.Time
}

func (ManutencaoHistorico) TableName() string { return "manutencoes_historico" }

// AlertaKm flags a vehicle for follow-up once it nears KmProximoServico.
type AlertaKm struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VeiculoID        uuid.UUID `gorm:"type:uuid;not null;index"`
	TipoServico      string    `gorm:"type:varchar(100);not null"`
	KmProximoServico int       `gorm:"not null"`
	KmIntervalo      int       `gorm:"not null;default:10000"`
	Descricao        *string
	Prioridade       string `gorm:"type:varchar(10);not null;default:'MEDIA'"`
	Ativo            bool   `gorm:"not null;default:true"`
	Notificado       bool   `gorm:"not null;default:false"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Veiculo *Veiculo `gorm:"foreignKey:VeiculoID"`
}

func (AlertaKm) TableName() string { return "alertas_km" }

// SugestaoManutencao is a catalog entry with the usual replacement interval
// of a part, shown to attendants when quoting a service.
type SugestaoManutencao struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NomePeca       string    `gorm:"type:varchar(200);not null"`
	KmMediaTroca   string    `gorm:"type:varchar(100);not null"`
	Observacoes    *string
	IntervaloKmMin *int
	IntervaloKmMax *int
	TipoServico    *string `gorm:"type:varchar(100);index"`
	Ativo          bool    `gorm:"not null;default:true"`
	OrdemExibicao  *int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (SugestaoManutencao) TableName() string { return "sugestoes_manutencao" }
