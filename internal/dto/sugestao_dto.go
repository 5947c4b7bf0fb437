package dto

import "time"

// ── Request DTOs ──────────────────────────────────────────────────────────────

type CriarSugestaoRequest struct {
	NomePeca       string  `json:"nome_peca"        validate:"required,min=2,max=200"`
	KmMediaTroca   string  `json:"km_media_troca"   validate:"required,max=100"`
	Observacoes    *string `json:"observacoes"`
	IntervaloKmMin *int    `json:"intervalo_km_min" validate:"omitempty,min=0"`
	IntervaloKmMax *int    `json:"intervalo_km_max" validate:"omitempty,min=0"`
	TipoServico    *string `json:"tipo_servico"     validate:"omitempty,max=100"`
	Ativo          *bool   `json:"ativo"`
	OrdemExibicao  *int    `json:"ordem_exibicao"`
}

// AtualizarSugestaoRequest changes only the fields that are sent.
type AtualizarSugestaoRequest struct {
	NomePeca       *string `json:"nome_peca"        validate:"omitempty,min=2,max=200"`
	KmMediaTroca   *string `json:"km_media_troca"   validate:"omitempty,max=100"`
	Observacoes    *string `json:"observacoes"`
	IntervaloKmMin *int    `json:"intervalo_km_min" validate:"omitempty,min=0"`
	IntervaloKmMax *int    `json:"intervalo_km_max" validate:"omitempty,min=0"`
	TipoServico    *string `json:"tipo_servico"     validate:"omitempty,max=100"`
	Ativo          *bool   `json:"ativo"`
	OrdemExibicao  *int    `json:"ordem_exibicao"`
}

// SugestaoFilter: Ativo is "true", "false" or empty for both.
type SugestaoFilter struct {
	Ativo       string `form:"ativo"        validate:"omitempty,oneof=true false"`
	TipoServico string `form:"tipo_servico"`
	Page        int    `form:"page,default=1"    validate:"min=1"`
	Limit       int    `form:"limit,default=100" validate:"min=1,max=500"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type SugestaoResponse struct {
	ID             string    `json:"id"`
	NomePeca       string    `json:"nome_peca"`
	KmMediaTroca   string    `json:"km_media_troca"`
	Observacoes    *string   `json:"observacoes"`
	IntervaloKmMin *int      `json:"intervalo_km_min"`
	IntervaloKmMax *int      `json:"intervalo_km_max"`
	TipoServico    *string   `json:"tipo_servico"`
	Ativo          bool      `json:"ativo"`
	OrdemExibicao  *int      `json:"ordem_exibicao"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
