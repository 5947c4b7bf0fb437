package model

import (
	"time"

	"github.com/google/uuid"
)

// Fornecedor is a parts supplier.
type Fornecedor struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome        string    `gorm:"not null;index"`
	RazaoSocial *string
	Cnpj        *string `gorm:"type:varchar(20);uniqueIndex"`
	Email       *string
	Telefone    *string `gorm:"type:varchar(20)"`
	Endereco    *string
	Cidade      *string
	Estado      *string `gorm:"type:varchar(2)"`
	Cep         *string `gorm:"type:varchar(10)"`
	Contato     *string
	Observacoes *string
	Ativo       bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Fornecedor) TableName() string { return "fornecedores" }
