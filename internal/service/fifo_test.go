package service

import (
	"errors"
	"testing"
	"time"

	"autocenter/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func novoLote(produtoID uuid.UUID, saldo int, custo string, entrada time.Time) model.LoteEstoque {
	return model.LoteEstoque{
		ID:                 uuid.New(),
		ProdutoID:          produtoID,
		QuantidadeInicial:  saldo,
		SaldoAtual:         saldo,
		PrecoCustoUnitario: decimal.RequireFromString(custo),
		DataEntrada:        entrada,
		Ativo:              true,
	}
}

func saldoPorID(lotes []model.LoteEstoque) map[uuid.UUID]int {
	out := make(map[uuid.UUID]int, len(lotes))
	for _, l := range lotes {
		out[l.ID] = l.SaldoAtual
	}
	return out
}

func TestConsumirFIFO_ConsomeLotesMaisAntigosPrimeiro(t *testing.T) {
	pid := uuid.New()
	antigo := novoLote(pid, 10, "5.00", t0)
	novo := novoLote(pid, 5, "8.00", t0.Add(24*time.Hour))
	lotes := []model.LoteEstoque{antigo, novo}

	res, err := ConsumirFIFO(lotes, 12)
	require.NoError(t, err)

	require.Len(t, res.Consumos, 2)
	assert.Equal(t, antigo.ID, res.Consumos[0].LoteID)
	assert.Equal(t, 10, res.Consumos[0].Quantidade)
	assert.Equal(t, novo.ID, res.Consumos[1].LoteID)
	assert.Equal(t, 2, res.Consumos[1].Quantidade)
	assert.True(t, res.CustoTotal.Equal(decimal.NewFromInt(66)), "custo total: %s", res.CustoTotal)
	assert.True(t, res.CustoMedio.Equal(decimal.RequireFromString("5.5")), "custo médio: %s", res.CustoMedio)

	saldos := saldoPorID(lotes)
	assert.Equal(t, 0, saldos[antigo.ID])
	assert.Equal(t, 3, saldos[novo.ID])
}

func TestConsumirFIFO_IndependeDaOrdemDeEntrada(t *testing.T) {
	pid := uuid.New()
	antigo := novoLote(pid, 4, "2.00", t0)
	novo := novoLote(pid, 4, "3.00", t0.Add(time.Hour))

	res, err := ConsumirFIFO([]model.LoteEstoque{novo, antigo}, 5)
	require.NoError(t, err)

	require.Len(t, res.Consumos, 2)
	assert.Equal(t, antigo.ID, res.Consumos[0].LoteID)
	assert.True(t, res.CustoTotal.Equal(decimal.NewFromInt(11)))
}

func TestConsumirFIFO_EstoqueInsuficienteNaoAltera(t *testing.T) {
	pid := uuid.New()
	a := novoLote(pid, 10, "5.00", t0)
	b := novoLote(pid, 5, "8.00", t0.Add(time.Hour))
	lotes := []model.LoteEstoque{a, b}

	res, err := ConsumirFIFO(lotes, 16)
	assert.Nil(t, res)

	var insuf *EstoqueInsuficienteError
	require.True(t, errors.As(err, &insuf))
	assert.Equal(t, 15, insuf.Disponivel)
	assert.Equal(t, 16, insuf.Solicitado)

	saldos := saldoPorID(lotes)
	assert.Equal(t, 10, saldos[a.ID])
	assert.Equal(t, 5, saldos[b.ID])
}

func TestConsumirFIFO_QuantidadeZero(t *testing.T) {
	lotes := []model.LoteEstoque{novoLote(uuid.New(), 3, "1.00", t0)}

	res, err := ConsumirFIFO(lotes, 0)
	require.NoError(t, err)
	assert.Empty(t, res.Consumos)
	assert.True(t, res.CustoTotal.IsZero())
	assert.Equal(t, 3, lotes[0].SaldoAtual)
}

func TestConsumirFIFO_IgnoraLotesInativos(t *testing.T) {
	pid := uuid.New()
	inativo := novoLote(pid, 10, "1.00", t0)
	inativo.Ativo = false
	ativo := novoLote(pid, 2, "9.00", t0.Add(time.Hour))

	_, err := ConsumirFIFO([]model.LoteEstoque{inativo, ativo}, 3)
	var insuf *EstoqueInsuficienteError
	require.True(t, errors.As(err, &insuf))
	assert.Equal(t, 2, insuf.Disponivel)
	assert.Equal(t, 2, SaldoDisponivel([]model.LoteEstoque{inativo, ativo}))
}
