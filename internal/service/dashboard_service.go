package service

import (
	"context"
	"fmt"
	"time"

	"autocenter/internal/dto"
	"autocenter/internal/model"
	"autocenter/internal/repository"
)

type DashboardService interface {
	Resumo(ctx context.Context) (*dto.DashboardResumoResponse, error)
	MaisUsados(ctx context.Context, limit int) ([]dto.ProdutoMaisVendido, error)
	// Alertas gathers upcoming birthdays, due maintenance and low stock.
	// TotalAlertas counts everything found; the list is capped.
	Alertas(ctx context.Context) (*dto.DashboardAlertasResponse, error)
}

const (
	alertaDiasAniversario = 7
	alertaAntecedenciaKm  = 1000
	alertaMaxEstoque      = 10
	alertaMaxItens        = 20
)

type dashboardService struct {
	clientes   repository.ClienteRepository
	veiculos   repository.VeiculoRepository
	produtos   repository.ProdutoRepository
	ordens     repository.OrdemRepository
	movimentos repository.MovimentoRepository
	manutencao repository.ManutencaoRepository
	now        func() time.Time
}

func NewDashboardService(
	clientes repository.ClienteRepository,
	veiculos repository.VeiculoRepository,
	produtos repository.ProdutoRepository,
	ordens repository.OrdemRepository,
	movimentos repository.MovimentoRepository,
	manutencao repository.ManutencaoRepository,
) DashboardService {
	return &dashboardService{
		clientes:   clientes,
		veiculos:   veiculos,
		produtos:   produtos,
		ordens:     ordens,
		movimentos: movimentos,
		manutencao: manutencao,
		now:        time.Now,
	}
}

func (s *dashboardService) Resumo(ctx context.Context) (*dto.DashboardResumoResponse, error) {
	var (
		resp dto.DashboardResumoResponse
		err  error
	)
	if resp.TotalClientes, err = s.clientes.Count(ctx); err != nil {
		return nil, err
	}
	if resp.TotalVeiculos, err = s.veiculos.Count(ctx); err != nil {
		return nil, err
	}
	if resp.TotalProdutos, err = s.produtos.Count(ctx); err != nil {
		return nil, err
	}
	baixo, err := s.produtos.ListBaixoEstoque(ctx)
	if err != nil {
		return nil, err
	}
	resp.ProdutosBaixoEstoque = int64(len(baixo))

	porStatus, err := s.ordens.ContarPorStatus(ctx)
	if err != nil {
		return nil, err
	}
	for status, n := range porStatus {
		if !statusTerminal(status) {
			resp.OrdensAbertas += n
		}
	}

	desde := inicioDoMes(s.now())
	if resp.FaturamentoMes, err = s.ordens.SomaTotal(ctx, model.OrdemConcluida, &desde); err != nil {
		return nil, err
	}
	return &resp, nil
}

// MaisUsados ranks products by quantity consumed by orders this month.
func (s *dashboardService) MaisUsados(ctx context.Context, limit int) ([]dto.ProdutoMaisVendido, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	rows, err := s.movimentos.TopSaidasOrdem(ctx, inicioDoMes(s.now()), limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProdutoMaisVendido, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ProdutoMaisVendido{ProdutoID: r.ProdutoID.String(), Nome: r.Nome, Quantidade: r.Quantidade})
	}
	return out, nil
}

func (s *dashboardService) Alertas(ctx context.Context) (*dto.DashboardAlertasResponse, error) {
	var alertas []dto.AlertaDashboard

	hoje := s.now()
	for d := 0; d <= alertaDiasAniversario; d++ {
		clientes, err := s.clientes.ListAniversariantes(ctx, hoje.AddDate(0, 0, d))
		if err != nil {
			return nil, err
		}
		for _, c := range clientes {
			data := c.DataNascimento.Format("2006-01-02")
			alertas = append(alertas, dto.AlertaDashboard{
				Tipo:       "aniversario",
				Titulo:     "Aniversário de " + c.Nome,
				Descricao:  "Cliente faz aniversário em " + c.DataNascimento.Format("02/01"),
				Prioridade: "baixa",
				Data:       &data,
			})
		}
	}

	pendentes, err := s.manutencao.ListAlertasPendentes(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range pendentes {
		v := a.Veiculo
		if v == nil {
			if v, err = s.veiculos.FindByID(ctx, a.VeiculoID); err != nil {
				continue
			}
		}
		restante := a.KmProximoServico - v.KmAtual
		if restante > alertaAntecedenciaKm {
			continue
		}
		prioridade, titulo := "media", "Serviço próximo"
		if restante <= 0 {
			prioridade, titulo = "alta", "Serviço vencido"
		}
		kmAtual, kmProximo := v.KmAtual, a.KmProximoServico
		alertas = append(alertas, dto.AlertaDashboard{
			Tipo:       "manutencao",
			Titulo:     fmt.Sprintf("%s - %s %s", titulo, v.Marca, v.Modelo),
			Descricao:  fmt.Sprintf("%s - KM atual: %d, Próximo: %d", a.TipoServico, kmAtual, kmProximo),
			Prioridade: prioridade,
			KmAtual:    &kmAtual,
			KmProximo:  &kmProximo,
		})
	}

	baixo, err := s.produtos.ListBaixoEstoque(ctx)
	if err != nil {
		return nil, err
	}
	if len(baixo) > alertaMaxEstoque {
		baixo = baixo[:alertaMaxEstoque]
	}
	for _, p := range baixo {
		atual, minimo := p.QuantidadeAtual, p.QuantidadeMinima
		alertas = append(alertas, dto.AlertaDashboard{
			Tipo:          "estoque",
			Titulo:        "Estoque baixo - " + p.Nome,
			Descricao:     fmt.Sprintf("Estoque atual: %d, Mínimo: %d", atual, minimo),
			Prioridade:    "media",
			EstoqueAtual:  &atual,
			EstoqueMinimo: &minimo,
		})
	}

	resp := &dto.DashboardAlertasResponse{TotalAlertas: len(alertas), Alertas: alertas}
	if len(resp.Alertas) > alertaMaxItens {
		resp.Alertas = resp.Alertas[:alertaMaxItens]
	}
	if resp.Alertas == nil {
		resp.Alertas = []dto.AlertaDashboard{}
	}
	return resp, nil
}
