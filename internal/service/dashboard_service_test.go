package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"autocenter/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardResumo(t *testing.T) {
	clientes := newStubClienteRepo()
	veiculos := newStubVeiculoRepo(clientes)
	produtos := newStubProdutoRepo()
	ordens := newStubOrdemRepo(clientes, veiculos)
	movimentos := &stubMovimentoRepo{}

	c := &model.Cliente{ID: uuid.New(), Nome: "Ana", Ativo: true}
	clientes.clientes[c.ID] = c
	clientes.clientes[uuid.New()] = &model.Cliente{Nome: "Inativo", Ativo: false}
	v := &model.Veiculo{ID: uuid.New(), ClienteID: c.ID, Ativo: true}
	veiculos.veiculos[v.ID] = v
	seedProduto(produtos, "Baixo", 1, "1", "2")
	seedProduto(produtos, "Cheio", 10, "1", "2")

	fevereiro := time.Date(2024, 2, 20, 10, 0, 0, 0, time.UTC)
	for _, o := range []model.OrdemServico{
		{Status: model.OrdemPendente, DataAbertura: t0},
		{Status: model.OrdemEmAndamento, DataAbertura: t0},
		{Status: model.OrdemAguardandoPeca, DataAbertura: t0},
		{Status: model.OrdemConcluida, DataAbertura: t0.Add(time.Hour), ValorTotal: decimal.NewFromInt(100)},
		{Status: model.OrdemConcluida, DataAbertura: fevereiro, ValorTotal: decimal.NewFromInt(50)},
		{Status: model.OrdemCancelada, DataAbertura: t0, ValorTotal: decimal.NewFromInt(70)},
	} {
		o := o
		o.ID = uuid.New()
		ordens.ordens[o.ID] = &o
	}

	svc := NewDashboardService(clientes, veiculos, produtos, ordens, movimentos, &stubManutencaoRepo{}).(*dashboardService)
	svc.now = func() time.Time { return t0 }

	r, err := svc.Resumo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), r.TotalClientes)
	assert.Equal(t, int64(1), r.TotalVeiculos)
	assert.Equal(t, int64(2), r.TotalProdutos)
	assert.Equal(t, int64(1), r.ProdutosBaixoEstoque)
	assert.Equal(t, int64(3), r.OrdensAbertas)
	assert.True(t, r.FaturamentoMes.Equal(decimal.NewFromInt(100)))
}

func TestDashboardMaisUsados(t *testing.T) {
	movimentos := &stubMovimentoRepo{}
	a, b := uuid.New(), uuid.New()
	movimentos.movimentos = []model.MovimentoEstoque{
		{ProdutoID: a, Tipo: model.MovimentoSaida, Origem: model.OrigemOrdem, Quantidade: 2},
		{ProdutoID: b, Tipo: model.MovimentoSaida, Origem: model.OrigemOrdem, Quantidade: 5},
		{ProdutoID: a, Tipo: model.MovimentoSaida, Origem: model.OrigemOrdem, Quantidade: 1},
		{ProdutoID: a, Tipo: model.MovimentoSaida, Origem: model.OrigemAjuste, Quantidade: 9},
		{ProdutoID: a, Tipo: model.MovimentoEntrada, Origem: model.OrigemDevolucao, Quantidade: 1},
	}
	clientes := newStubClienteRepo()
	veiculos := newStubVeiculoRepo(clientes)
	svc := NewDashboardService(clientes, veiculos, newStubProdutoRepo(), newStubOrdemRepo(clientes, veiculos), movimentos, &stubManutencaoRepo{})

	top, err := svc.MaisUsados(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, b.String(), top[0].ProdutoID)
	assert.Equal(t, int64(5), top[0].Quantidade)
	assert.Equal(t, int64(3), top[1].Quantidade)

	top, err = svc.MaisUsados(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, top, 1)
}

func TestDashboardAlertas(t *testing.T) {
	clientes := newStubClienteRepo()
	veiculos := newStubVeiculoRepo(clientes)
	produtos := newStubProdutoRepo()
	manut := &stubManutencaoRepo{}

	nasc := func(m time.Month, d int) *time.Time { x := time.Date(1990, m, d, 0, 0, 0, 0, time.UTC); return &x }
	// t0 is 2024-03-01: the window runs through March 8.
	for nome, dn := range map[string]*time.Time{
		"Ana":   nasc(time.March, 1),
		"Bruno": nasc(time.March, 8),
		"Caio":  nasc(time.March, 9),
		"Duda":  nil,
	} {
		c := &model.Cliente{ID: uuid.New(), Nome: nome, Ativo: true, DataNascimento: dn}
		clientes.clientes[c.ID] = c
	}

	v := &model.Veiculo{ID: uuid.New(), Marca: "Fiat", Modelo: "Uno", KmAtual: 50000, Ativo: true}
	veiculos.veiculos[v.ID] = v
	manut.alertas = []model.AlertaKm{
		{ID: uuid.New(), VeiculoID: v.ID, TipoServico: "Troca de óleo", KmProximoServico: 49000, Ativo: true},
		{ID: uuid.New(), VeiculoID: v.ID, TipoServico: "Alinhamento", KmProximoServico: 50800, Ativo: true},
		{ID: uuid.New(), VeiculoID: v.ID, TipoServico: "Correia", KmProximoServico: 90000, Ativo: true},
		{ID: uuid.New(), VeiculoID: v.ID, TipoServico: "Velas", KmProximoServico: 40000, Ativo: true, Notificado: true},
	}
	seedProduto(produtos, "Filtro", 1, "1", "2")
	seedProduto(produtos, "Pneu", 30, "1", "2")

	svc := NewDashboardService(clientes, veiculos, produtos, newStubOrdemRepo(clientes, veiculos), &stubMovimentoRepo{}, manut).(*dashboardService)
	svc.now = func() time.Time { return t0 }

	r, err := svc.Alertas(context.Background())
	require.NoError(t, err)
	require.Equal(t, 5, r.TotalAlertas)
	require.Len(t, r.Alertas, 5)

	porTipo := map[string][]string{}
	for _, a := range r.Alertas {
		porTipo[a.Tipo] = append(porTipo[a.Tipo], a.Titulo+"|"+a.Prioridade)
	}
	assert.ElementsMatch(t, []string{"Aniversário de Ana|baixa", "Aniversário de Bruno|baixa"}, porTipo["aniversario"])
	assert.ElementsMatch(t, []string{
		"Serviço vencido - Fiat Uno|alta",
		"Serviço próximo - Fiat Uno|media",
	}, porTipo["manutencao"])
	assert.Equal(t, []string{"Estoque baixo - Filtro|media"}, porTipo["estoque"])
}

func TestDashboardAlertas_TotalContaTudoListaLimitada(t *testing.T) {
	clientes := newStubClienteRepo()
	veiculos := newStubVeiculoRepo(clientes)
	produtos := newStubProdutoRepo()
	for i := 0; i < 15; i++ {
		seedProduto(produtos, fmt.Sprintf("P%02d", i), 0, "1", "2")
	}
	aniversario := t0
	for i := 0; i < 12; i++ {
		c := &model.Cliente{ID: uuid.New(), Nome: fmt.Sprintf("C%02d", i), Ativo: true, DataNascimento: &aniversario}
		clientes.clientes[c.ID] = c
	}

	svc := NewDashboardService(clientes, veiculos, produtos, newStubOrdemRepo(clientes, veiculos), &stubMovimentoRepo{}, &stubManutencaoRepo{}).(*dashboardService)
	svc.now = func() time.Time { return t0 }

	r, err := svc.Alertas(context.Background())
	require.NoError(t, err)
	// 12 birthdays plus low stock capped at 10.
	assert.Equal(t, 22, r.TotalAlertas)
	assert.Len(t, r.Alertas, 20)
}
