package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente is a customer, either a person (PF) or a company (PJ).
type Cliente struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome               string    `gorm:"not null;index"`
	CpfCnpj            *string   `gorm:"type:varchar(20);index"`
	Email              *string   `gorm:"index"`
	Telefone           *string   `gorm:"type:varchar(20)"`
	Telefone2          *string   `gorm:"type:varchar(20)"`
	Whatsapp           *string   `gorm:"type:varchar(20)"`
	Endereco           *string
	Numero             *string
	Complemento        *string
	Bairro             *string
	Cidade             *string
	Estado             *string `gorm:"type:varchar(2)"`
	Cep                *string `gorm:"type:varchar(10)"`
	Tipo               string  `gorm:"type:varchar(2);not null;default:'PF'"`
	DataNascimento     *time.Time `gorm:"type:date"`
	NomeFantasia       *string
	RazaoSocial        *string
	ContatoResponsavel *string
	RgIe               *string `gorm:"type:varchar(20)"`
	Observacoes        *string
	Ativo              bool `gorm:"not null;default:true"`
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Veiculos []Veiculo `gorm:"foreignKey:ClienteID"`
}
