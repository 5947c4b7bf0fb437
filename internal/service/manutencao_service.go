package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"autocenter/internal/dto"
	"autocenter/internal/model"
	"autocenter/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	intervaloKmPadrao = 10000
	tipoManutencao    = "Manutenção"
	maxTipoRunes      = 100

	antecedenciaSugestaoKm = 1000
	urgenciaUrgente        = "urgente"
	urgenciaProxima        = "proxima"
)

// intervalosKm maps service keywords to the usual km between services.
// Order matters: the first matching keyword wins.
var intervalosKm = []struct {
	palavras  []string
	intervalo int
}{
	{[]string{"óleo", "oleo", "lubrificante"}, 5000},
	{[]string{"filtro"}, 10000},
	{[]string{"correia"}, 50000},
	{[]string{"vela"}, 20000},
	{[]string{"freio", "pastilha", "disco"}, 30000},
	{[]string{"amortecedor", "suspensão", "suspensao"}, 40000},
	{[]string{"pneu", "balanceamento", "alinhamento"}, 10000},
	{[]string{"bateria"}, 50000},
	{[]string{"ar condicionado", "climatizador"}, 15000},
	{[]string{"revisão", "revisao", "inspeção", "inspecao"}, 10000},
}

// IntervaloKm returns the km interval for a service description.
func IntervaloKm(descricao string) int {
	d := strings.ToLower(descricao)
	for _, e := range intervalosKm {
		for _, p := range e.palavras {
			if strings.Contains(d, p) {
				return e.intervalo
			}
		}
	}
	return intervaloKmPadrao
}

type ManutencaoService interface {
	// RegistrarHistoricoTx records the maintenance performed by a completed
	// order. It is a no-op for sales, orders without a vehicle and orders
	// already recorded.
	RegistrarHistoricoTx(tx *gorm.DB, ordem *model.OrdemServico) (*model.ManutencaoHistorico, error)
	ListarPorVeiculo(ctx context.Context, veiculoID uuid.UUID) ([]dto.ManutencaoResponse, error)
	// Sugestoes lists services due within antecedenciaSugestaoKm of the
	// vehicle's current mileage, or already overdue.
	Sugestoes(ctx context.Context, veiculoID uuid.UUID) (*dto.SugestoesVeiculoResponse, error)
}

type manutencaoService struct {
	repo     repository.ManutencaoRepository
	veiculos repository.VeiculoRepository
	now      func() time.Time
}

func NewManutencaoService(repo repository.ManutencaoRepository, veiculos repository.VeiculoRepository) ManutencaoService {
	return &manutencaoService{repo: repo, veiculos: veiculos, now: time.Now}
}

func (s *manutencaoService) RegistrarHistoricoTx(tx *gorm.DB, ordem *model.OrdemServico) (*model.ManutencaoHistorico, error) {
	if ordem.VeiculoID == nil {
		return nil, nil
	}
	if ordem.TipoOrdem != model.TipoOrdemServico && ordem.TipoOrdem != model.TipoOrdemVendaServico {
		return nil, nil
	}
	existe, err := s.repo.ExistsByOrdemTx(tx, ordem.ID)
	if err != nil {
		return nil, err
	}
	if existe {
		return nil, nil
	}

	var servicos []string
	for _, it := range ordem.Itens {
		if it.Tipo == model.ItemServico && strings.TrimSpace(it.Descricao) != "" {
			servicos = append(servicos, strings.TrimSpace(it.Descricao))
		}
	}
	tipo := tipoManutencao
	var descricao string
	switch {
	case len(servicos) > 0:
		tipo = truncarRunes(servicos[0], maxTipoRunes)
		descricao = strings.Join(servicos, ", ")
	case ordem.DescricaoServico != nil && *ordem.DescricaoServico != "":
		descricao = *ordem.DescricaoServico
	case ordem.DescricaoProblema != nil && *ordem.DescricaoProblema != "":
		descricao = *ordem.DescricaoProblema
	default:
		descricao = "Serviço realizado"
	}

	km := 0
	switch {
	case ordem.KmVeiculo != nil && *ordem.KmVeiculo > 0:
		km = *ordem.KmVeiculo
	case ordem.Veiculo != nil:
		km = ordem.Veiculo.KmAtual
	}

	hoje := s.now()
	if ordem.DataConclusao != nil {
		hoje = *ordem.DataConclusao
	}
	dataRealizada := time.Date(hoje.Year(), hoje.Month(), hoje.Day(), 0, 0, 0, 0, hoje.Location())
	intervalo := IntervaloKm(descricao)
	ordemID := ordem.ID

	h := &model.ManutencaoHistorico{
		ID:             uuid.New(),
		VeiculoID:      *ordem.VeiculoID,
		Tipo:           tipo,
		Descricao:      &descricao,
		KmRealizada:    km,
		DataRealizada:  dataRealizada,
		Valor:          ordem.ValorTotal,
		Observacoes:    ordem.Observacoes,
		OrdemServicoID: &ordemID,
		CreatedAt:      s.now(),
	}
	// Without a known mileage there is nothing to project.
	if km > 0 {
		kmProxima := km + intervalo
		dataProxima := dataRealizada.AddDate(0, intervalo/1000, 0)
		h.KmProxima = &kmProxima
		h.DataProxima = &dataProxima
	}
	if err := s.repo.CreateTx(tx, h); err != nil {
		return nil, err
	}

	// The service was just done, so earlier alerts for it are stale.
	if err := s.repo.DesativarAlertasTx(tx, *ordem.VeiculoID, tipo); err != nil {
		return nil, err
	}
	if h.KmProxima != nil {
		alerta := &model.AlertaKm{
			ID:               uuid.New(),
			VeiculoID:        *ordem.VeiculoID,
			TipoServico:      tipo,
			KmProximoServico: *h.KmProxima,
			KmIntervalo:      intervalo,
			Descricao:        &descricao,
			Prioridade:       "MEDIA",
			Ativo:            true,
		}
		if err := s.repo.CreateAlertaTx(tx, alerta); err != nil {
			return nil, err
		}
	}

	log.Info().
		Str("ordem", ordem.Numero).
		Str("veiculo_id", ordem.VeiculoID.String()).
		Int("km_realizada", km).
		Msg("manutencao: histórico registrado")
	return h, nil
}

func (s *manutencaoService) ListarPorVeiculo(ctx context.Context, veiculoID uuid.UUID) ([]dto.ManutencaoResponse, error) {
	if _, err := s.veiculos.FindByID(ctx, veiculoID); err != nil {
		return nil, notFoundOr(err, "Veículo não encontrado")
	}
	list, err := s.repo.ListByVeiculo(ctx, veiculoID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ManutencaoResponse, 0, len(list))
	for _, h := range list {
		r := dto.ManutencaoResponse{
			ID:            h.ID.String(),
			VeiculoID:     h.VeiculoID.String(),
			Tipo:          h.Tipo,
			Descricao:     h.Descricao,
			KmRealizada:   h.KmRealizada,
			DataRealizada: h.DataRealizada,
			KmProxima:     h.KmProxima,
			DataProxima:   h.DataProxima,
			Valor:         h.Valor,
		}
		if h.OrdemServicoID != nil {
			id := h.OrdemServicoID.String()
			r.OrdemServicoID = &id
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *manutencaoService) Sugestoes(ctx context.Context, veiculoID uuid.UUID) (*dto.SugestoesVeiculoResponse, error) {
	v, err := s.veiculos.FindByID(ctx, veiculoID)
	if err != nil {
		return nil, notFoundOr(err, "Veículo não encontrado")
	}
	list, err := s.repo.ListByVeiculo(ctx, veiculoID)
	if err != nil {
		return nil, err
	}

	resp := &dto.SugestoesVeiculoResponse{
		VeiculoID: v.ID.String(),
		Placa:     v.Placa,
		KmAtual:   v.KmAtual,
		Sugestoes: []dto.SugestaoVeiculo{},
	}
	for i, h := range list {
		if h.KmProxima == nil || substituida(list, i) {
			continue
		}
		restantes := *h.KmProxima - v.KmAtual
		if restantes > antecedenciaSugestaoKm {
			continue
		}
		urgencia, rotulo := urgenciaProxima, "Próxima"
		if restantes <= 0 {
			urgencia, rotulo = urgenciaUrgente, "Atrasada"
		}
		resp.Sugestoes = append(resp.Sugestoes, dto.SugestaoVeiculo{
			Tipo:        h.Tipo,
			UltimaKm:    h.KmRealizada,
			UltimaData:  h.DataRealizada,
			ProximaKm:   *h.KmProxima,
			KmRestantes: restantes,
			Urgencia:    urgencia,
			Mensagem: fmt.Sprintf("%s: %s - Última em %d km, prevista para %d km",
				rotulo, h.Tipo, h.KmRealizada, *h.KmProxima),
		})
	}
	// Most overdue first.
	sort.SliceStable(resp.Sugestoes, func(a, b int) bool {
		return resp.Sugestoes[a].KmRestantes < resp.Sugestoes[b].KmRestantes
	})
	resp.TotalSugestoes = len(resp.Sugestoes)
	return resp, nil
}

// substituida reports whether a later record of the same service type exists.
func substituida(list []model.ManutencaoHistorico, i int) bool {
	h := list[i]
	for j, o := range list {
		if j == i || !strings.EqualFold(o.Tipo, h.Tipo) {
			continue
		}
		if o.DataRealizada.After(h.DataRealizada) ||
			(o.DataRealizada.Equal(h.DataRealizada) && o.KmRealizada > h.KmRealizada) {
			return true
		}
	}
	return false
}

func truncarRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
