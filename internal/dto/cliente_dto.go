package dto

import "time"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ClienteRequest struct {
	Nome               string     `json:"nome"     validate:"required,min=2,max=255"`
	CpfCnpj            *string    `json:"cpf_cnpj" validate:"omitempty,max=20"`
	Email              *string    `json:"email"    validate:"omitempty,email"`
	Telefone           *string    `json:"telefone" validate:"omitempty,max=20"`
	Telefone2          *string    `json:"telefone2"`
	Whatsapp           *string    `json:"whatsapp"`
	Endereco           *string    `json:"endereco"`
	Numero             *string    `json:"numero"`
	Complemento        *string    `json:"complemento"`
	Bairro             *string    `json:"bairro"`
	Cidade             *string    `json:"cidade"`
	Estado             *string    `json:"estado"   validate:"omitempty,len=2"`
	Cep                *string    `json:"cep"`
	Tipo               string     `json:"tipo"     validate:"omitempty,oneof=PF PJ"`
	DataNascimento     *time.Time `json:"data_nascimento"`
	NomeFantasia       *string    `json:"nome_fantasia"`
	RazaoSocial        *string    `json:"razao_social"`
	ContatoResponsavel *string    `json:"contato_responsavel"`
	RgIe               *string    `json:"rg_ie"`
	Observacoes        *string    `json:"observacoes"`
}

type ClienteFilter struct {
	Search string `form:"search"`
	Ativo  string `form:"ativo"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=500"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ClienteResponse struct {
	ID             string     `json:"id"`
	Nome           string     `json:"nome"`
	CpfCnpj        *string    `json:"cpf_cnpj"`
	Email          *string    `json:"email"`
	Telefone       *string    `json:"telefone"`
	Whatsapp       *string    `json:"whatsapp"`
	Endereco       *string    `json:"endereco"`
	Cidade         *string    `json:"cidade"`
	Estado         *string    `json:"estado"`
	Cep            *string    `json:"cep"`
	Tipo           string     `json:"tipo"`
	DataNascimento *time.Time `json:"data_nascimento"`
	RazaoSocial    *string    `json:"razao_social"`
	Observacoes    *string    `json:"observacoes"`
	Ativo          bool       `json:"ativo"`
}

type ClienteListResponse struct {
	Data       []ClienteResponse `json:"data"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

// ClienteBuscaResponse answers a lookup by document or phone, bundling the
// customer's active vehicles.
type ClienteBuscaResponse struct {
	Encontrado bool              `json:"encontrado"`
	Mensagem   string            `json:"message,omitempty"`
	Cliente    *ClienteResponse  `json:"cliente,omitempty"`
	Veiculos   []VeiculoResponse `json:"veiculos"`
}
