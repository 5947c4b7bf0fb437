package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type FornecedorRequest struct {
	Nome        string  `json:"nome"         validate:"required,min=2,max=255"`
	RazaoSocial *string `json:"razao_social"`
	Cnpj        *string `json:"cnpj"         validate:"omitempty,max=20"`
	Email       *string `json:"email"        validate:"omitempty,email"`
	Telefone    *string `json:"telefone"     validate:"omitempty,max=20"`
	Endereco    *string `json:"endereco"`
	Cidade      *string `json:"cidade"`
	Estado      *string `json:"estado"       validate:"omitempty,len=2"`
	Cep         *string `json:"cep"`
	Contato     *string `json:"contato"`
	Observacoes *string `json:"observacoes"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type FornecedorResponse struct {
	ID          string  `json:"id"`
	Nome        string  `json:"nome"`
	RazaoSocial *string `json:"razao_social"`
	Cnpj        *string `json:"cnpj"`
	Email       *string `json:"email"`
	Telefone    *string `json:"telefone"`
	Endereco    *string `json:"endereco"`
	Cidade      *string `json:"cidade"`
	Estado      *string `json:"estado"`
	Cep         *string `json:"cep"`
	Contato     *string `json:"contato"`
	Observacoes *string `json:"observacoes"`
	Ativo       bool    `json:"ativo"`
}
