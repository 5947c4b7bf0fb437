package model

import "time"

// Well-known configuration keys.
const (
	ConfigMargemLucroPadrao = "margem_lucro_padrao"
	ConfigDescontoMaximoOS  = "desconto_maximo_os"
)

// Configuracao is a key/value shop setting.
type Configuracao struct {
	Chave     string `gorm:"type:varchar(100);primaryKey"`
	Valor     string `gorm:"not null"`
	Descricao *string
	Tipo      string `gorm:"type:varchar(20);not null;default:'string'"` // string | number | boolean
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Configuracao) TableName() string { return "configuracoes" }
