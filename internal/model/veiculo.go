package model

import (
	"time"

	"github.com/google/uuid"
)

// Veiculo belongs to one customer. Placa is stored upper-case without separators.
type Veiculo struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Marca       string    `gorm:"not null"`
	Modelo      string    `gorm:"not null"`
	Ano         int       `gorm:"not null"`
	Cor         *string
	Placa       *string `gorm:"type:varchar(10);uniqueIndex"`
	Chassis     *string `gorm:"type:varchar(50)"`
	Renavam     *string `gorm:"type:varchar(20)"`
	KmAtual     int     `gorm:"not null;default:0"`
	Combustivel *string `gorm:"type:varchar(20)"`
	Observacoes *string
	Ativo       bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Cliente *Cliente `gorm:"foreignKey:ClienteID"`
}
