package dto

import "time"

// ── Request DTOs ──────────────────────────────────────────────────────────────

// Permission keys missing from Permissoes are stored as false.
type CriarPerfilRequest struct {
	Nome       string          `json:"nome"       validate:"required,min=2,max=100"`
	Descricao  *string         `json:"descricao"`
	Permissoes map[string]bool `json:"permissoes" validate:"required"`
	Ativo      *bool           `json:"ativo"`
}

type AtualizarPerfilRequest struct {
	Nome       *string         `json:"nome"       validate:"omitempty,min=2,max=100"`
	Descricao  *string         `json:"descricao"`
	Permissoes map[string]bool `json:"permissoes"`
	Ativo      *bool           `json:"ativo"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type PerfilResponse struct {
	ID         string          `json:"id"`
	Nome       string          `json:"nome"`
	Descricao  *string         `json:"descricao"`
	Permissoes map[string]bool `json:"permissoes"`
	Ativo      bool            `json:"ativo"`
	Editavel   bool            `json:"editavel"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
