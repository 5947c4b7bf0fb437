package model

import (
	"time"

	"github.com/google/uuid"
)

// Roles.
const (
	RolAdministrador = "administrador"
	RolSupervisor    = "supervisor"
	RolAtendente     = "atendente"
)

// Usuario is a system user with role-based access.
type Usuario struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string     `gorm:"uniqueIndex;not null"`
	Nome         string     `gorm:"not null"`
	Email        *string    `gorm:"uniqueIndex"`
	PasswordHash string     `gorm:"not null"`
	Rol          string     `gorm:"type:varchar(20);not null"`
	PerfilID     *uuid.UUID `gorm:"type:uuid;index"`
	Ativo        bool       `gorm:"not null;default:true"`
	UltimoLogin  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Perfil *Perfil `gorm:"foreignKey:PerfilID"`
}
