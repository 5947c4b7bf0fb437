package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Seeded profile names. PerfilAdministrador cannot be edited or removed.
const (
	PerfilAdministrador = "Administrador"
	PerfilSupervisor    = "Supervisor"
	PerfilOperador      = "Operador"
)

// Permissoes lists the screens a profile opens. Stored as jsonb.
type Permissoes struct {
	DashboardGerencial   bool `json:"dashboard_gerencial"`
	DashboardOperacional bool `json:"dashboard_operacional"`
	Clientes             bool `json:"clientes"`
	Veiculos             bool `json:"veiculos"`
	Estoque              bool `json:"estoque"`
	OrdensServico        bool `json:"ordens_servico"`
	Fornecedores         bool `json:"fornecedores"`
	Relatorios           bool `json:"relatorios"`
	Configuracoes        bool `json:"configuracoes"`
	Usuarios             bool `json:"usuarios"`
	Perfis               bool `json:"perfis"`
}

func (p Permissoes) Value() (driver.Value, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (p *Permissoes) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*p = Permissoes{}
		return nil
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return errors.New("permissoes: tipo de coluna não suportado")
	}
}

// Perfil is a named permission set assigned to users.
type Perfil struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome       string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Descricao  *string
	Permissoes Permissoes `gorm:"type:jsonb;not null"`
	Ativo      bool       `gorm:"not null;default:true"`
	Editavel   bool       `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Perfil) TableName() string { return "perfis" }
