package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type VeiculoRequest struct {
	ClienteID   string  `json:"cliente_id"  validate:"required,uuid"`
	Marca       string  `json:"marca"       validate:"required,max=100"`
	Modelo      string  `json:"modelo"      validate:"required,max=100"`
	Ano         int     `json:"ano"         validate:"required,min=1900,max=2100"`
	Cor         *string `json:"cor"`
	Placa       *string `json:"placa"       validate:"omitempty,min=7,max=10"`
	Chassis     *string `json:"chassis"     validate:"omitempty,max=50"`
	Renavam     *string `json:"renavam"     validate:"omitempty,max=20"`
	KmAtual     int     `json:"km_atual"    validate:"min=0"`
	Combustivel *string `json:"combustivel" validate:"omitempty,oneof=GASOLINA ETANOL DIESEL FLEX GNV ELETRICO HIBRIDO"`
	Observacoes *string `json:"observacoes"`
}

type AtualizarKmRequest struct {
	KmAtual int `json:"km_atual" validate:"min=0"`
}

type TransferirVeiculoRequest struct {
	ClienteID string `json:"cliente_id" validate:"required,uuid"`
}

type VeiculoFilter struct {
	ClienteID string `form:"cliente_id"`
	Search    string `form:"search"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=500"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type VeiculoResponse struct {
	ID          string  `json:"id"`
	ClienteID   string  `json:"cliente_id"`
	ClienteNome string  `json:"cliente_nome,omitempty"`
	Marca       string  `json:"marca"`
	Modelo      string  `json:"modelo"`
	Ano         int     `json:"ano"`
	Cor         *string `json:"cor"`
	Placa       *string `json:"placa"`
	Chassis     *string `json:"chassis"`
	Renavam     *string `json:"renavam"`
	KmAtual     int     `json:"km_atual"`
	Combustivel *string `json:"combustivel"`
	Observacoes *string `json:"observacoes"`
	Ativo       bool    `json:"ativo"`
}

type VeiculoListResponse struct {
	Data  []VeiculoResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

type ManutencaoResponse struct {
	ID             string          `json:"id"`
	VeiculoID      string          `json:"veiculo_id"`
	Tipo           string          `json:"tipo"`
	Descricao      *string         `json:"descricao"`
	KmRealizada    int             `json:"km_realizada"`
	DataRealizada  time.Time       `json:"data_realizada"`
	KmProxima      *int            `json:"km_proxima"`
	DataProxima    *time.Time      `json:"data_proxima"`
	Valor          decimal.Decimal `json:"valor"`
	OrdemServicoID *string         `json:"ordem_servico_id"`
}

type SugestaoVeiculo struct {
	Tipo        string    `json:"tipo"`
	UltimaKm    int       `json:"ultima_km"`
	UltimaData  time.Time `json:"ultima_data"`
	ProximaKm   int       `json:"proxima_km"`
	KmRestantes int       `json:"km_restantes"`
	Urgencia    string    `json:"urgencia"`
	Mensagem    string    `json:"mensagem"`
}

type SugestoesVeiculoResponse struct {
	VeiculoID      string            `json:"veiculo_id"`
	Placa          *string           `json:"placa"`
	KmAtual        int               `json:"km_atual"`
	TotalSugestoes int               `json:"total_sugestoes"`
	Sugestoes      []SugestaoVeiculo `json:"sugestoes"`
}
