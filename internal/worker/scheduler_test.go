package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"autocenter/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProdutos []model.Produto

func (f fakeProdutos) ListBaixoEstoque(context.Context) ([]model.Produto, error) { return f, nil }

type fakeAlertas struct {
	pendentes  []model.AlertaKm
	notificado map[uuid.UUID]string
}

func (f *fakeAlertas) ListAlertasPendentes(context.Context) ([]model.AlertaKm, error) {
	return f.pendentes, nil
}

func (f *fakeAlertas) MarcarNotificado(_ context.Context, id uuid.UUID, prioridade string) error {
	if f.notificado == nil {
		f.notificado = map[uuid.UUID]string{}
	}
	f.notificado[id] = prioridade
	return nil
}

type fakeAniversariantes struct {
	dia      time.Time
	clientes []model.Cliente
}

func (f *fakeAniversariantes) ListAniversariantes(_ context.Context, dia time.Time) ([]model.Cliente, error) {
	f.dia = dia
	return f.clientes, nil
}

type fakeLocker struct {
	ocupado  bool
	keys     []string
	liberado int
}

func (f *fakeLocker) TryObtain(_ context.Context, key string, _ time.Duration) (func(), bool, error) {
	f.keys = append(f.keys, key)
	if f.ocupado {
		return nil, false, nil
	}
	return func() { f.liberado++ }, true, nil
}

func strPtr(s string) *string { return &s }

func TestEstoqueBaixo_EnviaParaAlertEmail(t *testing.T) {
	emails := &fakeEmails{}
	s := NewScheduler(SchedulerConfig{
		Produtos: fakeProdutos{
			{Nome: "Filtro de óleo", Codigo: "FO-01", QuantidadeAtual: 1, QuantidadeMinima: 5, Unidade: "UN"},
			{Nome: "Óleo 5W30", Codigo: "OL-5W30", QuantidadeAtual: 0, QuantidadeMinima: 10, Unidade: "L"},
		},
		Emails:     emails,
		AlertEmail: "estoque@oficina.com",
	})

	n, err := s.EstoqueBaixo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, emails.jobs, 1)
	assert.Equal(t, []string{"estoque@oficina.com"}, emails.jobs[0].To)
	assert.Contains(t, emails.jobs[0].Body, "- Filtro de óleo (FO-01): 1/5 UN")
	assert.Contains(t, emails.jobs[0].Body, "- Óleo 5W30 (OL-5W30): 0/10 L")
}

func TestEstoqueBaixo_SemAlertEmailOuSemProdutos(t *testing.T) {
	emails := &fakeEmails{}
	s := NewScheduler(SchedulerConfig{Produtos: fakeProdutos{{Nome: "x"}}, Emails: emails})
	n, err := s.EstoqueBaixo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Empty(t, emails.jobs)

	s = NewScheduler(SchedulerConfig{Produtos: fakeProdutos{}, Emails: emails, AlertEmail: "a@b.com"})
	n, err = s.EstoqueBaixo(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, emails.jobs)
}

func TestAlertasKm(t *testing.T) {
	dono := &model.Cliente{Nome: "Carlos", Email: strPtr("carlos@x.com")}
	longe := model.AlertaKm{ID: uuid.New(), TipoServico: "Troca de óleo", KmProximoServico: 50000,
		Veiculo: &model.Veiculo{Marca: "Fiat", Modelo: "Uno", KmAtual: 48999, Cliente: dono}}
	proximo := model.AlertaKm{ID: uuid.New(), TipoServico: "Troca de óleo", KmProximoServico: 50000,
		Veiculo: &model.Veiculo{Marca: "VW", Modelo: "Gol", KmAtual: 49000, Cliente: dono}}
	vencido := model.AlertaKm{ID: uuid.New(), TipoServico: "Correia dentada", KmProximoServico: 60000,
		Veiculo: &model.Veiculo{Marca: "Ford", Modelo: "Ka", KmAtual: 60500, Cliente: &model.Cliente{Nome: "Ana"}}}
	semVeiculo := model.AlertaKm{ID: uuid.New(), KmProximoServico: 1}

	alertas := &fakeAlertas{pendentes: []model.AlertaKm{longe, proximo, vencido, semVeiculo}}
	emails := &fakeEmails{}
	s := NewScheduler(SchedulerConfig{Alertas: alertas, Emails: emails, ShopName: "Oficina"})

	n, err := s.AlertasKm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, map[uuid.UUID]string{proximo.ID: "MEDIA", vencido.ID: "ALTA"}, alertas.notificado)

	// Only the owner with an email is reminded.
	require.Len(t, emails.jobs, 1)
	assert.Equal(t, []string{"carlos@x.com"}, emails.jobs[0].To)
	assert.Contains(t, emails.jobs[0].Body, "faltam 1000 km")
	assert.Contains(t, emails.jobs[0].Subject, "Troca de óleo")
}

func TestAniversarios_UsaDataLocal(t *testing.T) {
	sp := time.FixedZone("BRT", -3*3600)
	aniv := &fakeAniversariantes{clientes: []model.Cliente{
		{ID: uuid.New(), Nome: "Paula", Email: strPtr("paula@x.com")},
		{ID: uuid.New(), Nome: "Rui"},
	}}
	emails := &fakeEmails{}
	s := NewScheduler(SchedulerConfig{Clientes: aniv, Emails: emails, Location: sp})
	// 01:30 UTC on the 15th is still the 14th in BRT.
	s.now = func() time.Time { return time.Date(2024, 5, 15, 1, 30, 0, 0, time.UTC) }

	n, err := s.Aniversarios(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 14, aniv.dia.Day())
	require.Len(t, emails.jobs, 1)
	assert.Contains(t, emails.jobs[0].Body, "Olá Paula!")
	assert.Contains(t, emails.jobs[0].Body, "AutoCenter")
}

func TestRunLocked(t *testing.T) {
	locker := &fakeLocker{}
	s := NewScheduler(SchedulerConfig{Locker: locker})
	rodou := 0
	sweep := func(context.Context) (int, error) { rodou++; return 0, nil }

	assert.True(t, s.RunLocked(context.Background(), SweepAlertasKm, sweep))
	assert.Equal(t, []string{"lock:sweep:alertas_km"}, locker.keys)
	assert.Equal(t, 1, locker.liberado)

	locker.ocupado = true
	assert.False(t, s.RunLocked(context.Background(), SweepAlertasKm, sweep))
	assert.Equal(t, 1, rodou)

	falha := func(context.Context) (int, error) { return 0, errors.New("db down") }
	assert.False(t, NewScheduler(SchedulerConfig{}).RunLocked(context.Background(), SweepEstoqueBaixo, falha))
}
