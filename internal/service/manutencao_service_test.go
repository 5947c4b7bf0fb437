package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"autocenter/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntervaloKm(t *testing.T) {
	cases := map[string]int{
		"Troca de ÓLEO e filtro":    5000,
		"Substituição de filtro":    10000,
		"Correia dentada":           50000,
		"Troca de velas":            20000,
		"Pastilha de freio":         30000,
		"Revisao da suspensao":      40000,
		"Alinhamento":               10000,
		"Bateria nova":              50000,
		"Higienização climatizador": 15000,
		"Lavagem":                   10000,
	}
	for desc, want := range cases {
		assert.Equal(t, want, IntervaloKm(desc), desc)
	}
}

func novaManutencao() (*manutencaoService, *stubManutencaoRepo, *stubVeiculoRepo) {
	repo := &stubManutencaoRepo{}
	veiculos := newStubVeiculoRepo(newStubClienteRepo())
	s := NewManutencaoService(repo, veiculos).(*manutencaoService)
	s.now = func() time.Time { return t0 }
	return s, repo, veiculos
}

func ordemConcluida(veiculoID *uuid.UUID, km *int, itens ...model.ItemOrdem) *model.OrdemServico {
	concl := time.Date(2024, 3, 10, 17, 45, 0, 0, time.UTC)
	return &model.OrdemServico{
		ID:            uuid.New(),
		Numero:        "00000007",
		VeiculoID:     veiculoID,
		TipoOrdem:     model.TipoOrdemServico,
		Status:        model.OrdemConcluida,
		KmVeiculo:     km,
		DataConclusao: &concl,
		ValorTotal:    decimal.RequireFromString("180.00"),
		Itens:         itens,
	}
}

func TestRegistrarHistorico_ProjetaProximaManutencao(t *testing.T) {
	s, repo, _ := novaManutencao()
	vid := uuid.New()
	km := 40000
	o := ordemConcluida(&vid, &km, model.ItemOrdem{Tipo: model.ItemServico, Descricao: "Troca de pastilhas"})

	h, err := s.RegistrarHistoricoTx(nil, o)
	require.NoError(t, err)
	require.NotNil(t, h)

	assert.Equal(t, "Troca de pastilhas", h.Tipo)
	assert.Equal(t, 40000, h.KmRealizada)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), h.DataRealizada)
	require.NotNil(t, h.KmProxima)
	assert.Equal(t, 70000, *h.KmProxima)
	require.NotNil(t, h.DataProxima)
	assert.Equal(t, time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), *h.DataProxima)
	assert.True(t, h.Valor.Equal(decimal.NewFromInt(180)))

	require.Len(t, repo.alertas, 1)
	assert.Equal(t, 70000, repo.alertas[0].KmProximoServico)
	assert.Equal(t, 30000, repo.alertas[0].KmIntervalo)
	assert.Equal(t, "MEDIA", repo.alertas[0].Prioridade)
}

func TestRegistrarHistorico_Ignorados(t *testing.T) {
	s, repo, _ := novaManutencao()
	vid := uuid.New()
	km := 1000

	venda := ordemConcluida(&vid, &km)
	venda.TipoOrdem = model.TipoOrdemVenda
	h, err := s.RegistrarHistoricoTx(nil, venda)
	require.NoError(t, err)
	assert.Nil(t, h)

	h, err = s.RegistrarHistoricoTx(nil, ordemConcluida(nil, &km))
	require.NoError(t, err)
	assert.Nil(t, h)

	o := ordemConcluida(&vid, &km)
	_, err = s.RegistrarHistoricoTx(nil, o)
	require.NoError(t, err)
	h, err = s.RegistrarHistoricoTx(nil, o)
	require.NoError(t, err)
	assert.Nil(t, h, "segunda conclusão da mesma ordem")
	assert.Len(t, repo.historico, 1)
}

func TestRegistrarHistorico_DescricaoEKmDeFallback(t *testing.T) {
	s, repo, _ := novaManutencao()
	vid := uuid.New()
	problema := "Barulho na suspensão"
	o := ordemConcluida(&vid, nil)
	o.DescricaoProblema = &problema
	o.Veiculo = &model.Veiculo{ID: vid, KmAtual: 80000}

	h, err := s.RegistrarHistoricoTx(nil, o)
	require.NoError(t, err)
	assert.Equal(t, "Manutenção", h.Tipo)
	assert.Equal(t, problema, *h.Descricao)
	assert.Equal(t, 80000, h.KmRealizada)
	assert.Equal(t, 120000, *h.KmProxima)
	assert.Len(t, repo.alertas, 1)
}

func TestRegistrarHistorico_KmZeroUsaKmDoVeiculo(t *testing.T) {
	s, _, _ := novaManutencao()
	vid := uuid.New()
	zero := 0
	o := ordemConcluida(&vid, &zero, model.ItemOrdem{Tipo: model.ItemServico, Descricao: "Troca de óleo"})
	o.Veiculo = &model.Veiculo{ID: vid, KmAtual: 61000}

	h, err := s.RegistrarHistoricoTx(nil, o)
	require.NoError(t, err)
	assert.Equal(t, 61000, h.KmRealizada)
	require.NotNil(t, h.KmProxima)
	assert.Equal(t, 66000, *h.KmProxima)
}

func TestRegistrarHistorico_NovaTrocaAposentaAlertaAnterior(t *testing.T) {
	s, repo, _ := novaManutencao()
	vid := uuid.New()
	outro := uuid.New()
	oleo := model.ItemOrdem{Tipo: model.ItemServico, Descricao: "Troca de óleo"}

	for _, c := range []struct {
		veiculo uuid.UUID
		km      int
		item    model.ItemOrdem
	}{
		{vid, 10000, oleo},
		{vid, 11000, model.ItemOrdem{Tipo: model.ItemServico, Descricao: "Alinhamento"}},
		{outro, 10000, oleo},
		{vid, 12000, oleo},
	} {
		v, km := c.veiculo, c.km
		_, err := s.RegistrarHistoricoTx(nil, ordemConcluida(&v, &km, c.item))
		require.NoError(t, err)
	}

	ativos := map[uuid.UUID][]int{}
	for _, a := range repo.alertas {
		if a.Ativo && a.TipoServico == "Troca de óleo" {
			ativos[a.VeiculoID] = append(ativos[a.VeiculoID], a.KmProximoServico)
		}
	}
	assert.Equal(t, []int{17000}, ativos[vid])
	assert.Equal(t, []int{15000}, ativos[outro])

	pendentes, err := repo.ListAlertasPendentes(context.Background())
	require.NoError(t, err)
	assert.Len(t, pendentes, 3, "óleo do veículo, alinhamento e óleo do outro veículo")
}

func TestRegistrarHistorico_SemKmNaoProjeta(t *testing.T) {
	s, repo, _ := novaManutencao()
	vid := uuid.New()
	o := ordemConcluida(&vid, nil)

	h, err := s.RegistrarHistoricoTx(nil, o)
	require.NoError(t, err)
	assert.Equal(t, "Serviço realizado", *h.Descricao)
	assert.Nil(t, h.KmProxima)
	assert.Nil(t, h.DataProxima)
	assert.Empty(t, repo.alertas)
}

func TestRegistrarHistorico_TipoTruncado(t *testing.T) {
	s, _, _ := novaManutencao()
	vid := uuid.New()
	km := 10
	longo := strings.Repeat("ç", 150)
	h, err := s.RegistrarHistoricoTx(nil, ordemConcluida(&vid, &km, model.ItemOrdem{Tipo: model.ItemServico, Descricao: longo}))
	require.NoError(t, err)
	assert.Equal(t, 100, len([]rune(h.Tipo)))
}

func TestListarPorVeiculo(t *testing.T) {
	s, _, veiculos := novaManutencao()
	v := &model.Veiculo{ID: uuid.New(), ClienteID: uuid.New(), Ativo: true}
	veiculos.veiculos[v.ID] = v
	km := 5000
	_, err := s.RegistrarHistoricoTx(nil, ordemConcluida(&v.ID, &km))
	require.NoError(t, err)

	list, err := s.ListarPorVeiculo(context.Background(), v.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.NotNil(t, list[0].OrdemServicoID)

	_, err = s.ListarPorVeiculo(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, ErrNaoEncontrado))
}

func TestSugestoes_VencidasEProximas(t *testing.T) {
	s, repo, veiculos := novaManutencao()
	placa := "ABC1D23"
	v := &model.Veiculo{ID: uuid.New(), ClienteID: uuid.New(), Placa: &placa, KmAtual: 50000, Ativo: true}
	veiculos.veiculos[v.ID] = v

	dia := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	km := func(n int) *int { return &n }
	repo.historico = []model.ManutencaoHistorico{
		{VeiculoID: v.ID, Tipo: "Troca de óleo", KmRealizada: 40000, DataRealizada: dia(1), KmProxima: km(45000)},
		{VeiculoID: v.ID, Tipo: "Troca de óleo", KmRealizada: 44000, DataRealizada: dia(20), KmProxima: km(49000)},
		{VeiculoID: v.ID, Tipo: "Filtro de ar", KmRealizada: 41000, DataRealizada: dia(5), KmProxima: km(51000)},
		{VeiculoID: v.ID, Tipo: "Correia dentada", KmRealizada: 20000, DataRealizada: dia(2), KmProxima: km(70000)},
		{VeiculoID: v.ID, Tipo: "Alinhamento", KmRealizada: 0, DataRealizada: dia(3)},
		{VeiculoID: uuid.New(), Tipo: "Troca de óleo", KmRealizada: 1000, DataRealizada: dia(4), KmProxima: km(6000)},
	}

	r, err := s.Sugestoes(context.Background(), v.ID)
	require.NoError(t, err)
	assert.Equal(t, v.ID.String(), r.VeiculoID)
	assert.Equal(t, &placa, r.Placa)
	assert.Equal(t, 50000, r.KmAtual)
	require.Equal(t, 2, r.TotalSugestoes)
	require.Len(t, r.Sugestoes, 2)

	oleo := r.Sugestoes[0]
	assert.Equal(t, "Troca de óleo", oleo.Tipo)
	assert.Equal(t, 44000, oleo.UltimaKm)
	assert.Equal(t, -1000, oleo.KmRestantes)
	assert.Equal(t, "urgente", oleo.Urgencia)
	assert.True(t, strings.HasPrefix(oleo.Mensagem, "Atrasada"), oleo.Mensagem)

	filtro := r.Sugestoes[1]
	assert.Equal(t, "Filtro de ar", filtro.Tipo)
	assert.Equal(t, 1000, filtro.KmRestantes)
	assert.Equal(t, "proxima", filtro.Urgencia)
}

func TestSugestoes_VeiculoInexistente(t *testing.T) {
	s, _, _ := novaManutencao()
	_, err := s.Sugestoes(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, ErrNaoEncontrado))
}

func TestSugestoes_SemHistoricoListaVazia(t *testing.T) {
	s, _, veiculos := novaManutencao()
	v := &model.Veiculo{ID: uuid.New(), KmAtual: 1000, Ativo: true}
	veiculos.veiculos[v.ID] = v

	r, err := s.Sugestoes(context.Background(), v.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, r.TotalSugestoes)
	assert.NotNil(t, r.Sugestoes)
}
